package store

import (
	"context"

	"github.com/authgate/authgate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the persistence contract of the user store. The core
// never mutates an account through any other path: accounts are inserted at
// registration, read during authentication, and receive exactly one TOTP
// secret write during enrollment.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. Returns ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks an account up by email, case-insensitively.
	// Returns ErrNoUserWasFound when no account matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks an account up by its stable identifier.
	// Returns ErrNoUserWasFound when no account matches.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateTOTPSecret persists secret for the account only if no secret is
	// stored yet, then returns the account as currently persisted. Under a
	// concurrent first-enrollment race the first writer wins and later
	// callers observe the winner's secret in the returned record.
	UpdateTOTPSecret(ctx context.Context, userID int64, secret string) (models.User, error)
}
