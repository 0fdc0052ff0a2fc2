package models

import "time"

// Default role assigned to accounts that have no explicit role stored.
const DefaultRole = "user"

// User represents one account as persisted in the user store.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the unique account identifier used during authentication.
	// Uniqueness is enforced case-insensitively by the store.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// It MUST never contain a plaintext password and is never serialised.
	PasswordHash string `json:"-"`

	// TOTPSecret is the base32-encoded TOTP seed. Empty until the account
	// completes 2FA enrollment; immutable once set.
	TOTPSecret string `json:"-"`

	// Enabled reports whether the account may authenticate at all.
	Enabled bool `json:"enabled"`

	// Role is the authorization role of the account. Empty means DefaultRole.
	Role string `json:"role"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasTOTPSecret reports whether the account has completed 2FA enrollment.
func (u User) HasTOTPSecret() bool {
	return u.TOTPSecret != ""
}

// RoleOrDefault returns the stored role, falling back to DefaultRole when
// the column is empty.
func (u User) RoleOrDefault() string {
	if u.Role == "" {
		return DefaultRole
	}
	return u.Role
}

// AuthUser is the minimal request-scoped identity attached to the context by
// the authentication middleware. It carries only what downstream handlers
// need and never includes credential material.
type AuthUser struct {
	UserID   int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullAuth bool   `json:"fullAuth"`
}
