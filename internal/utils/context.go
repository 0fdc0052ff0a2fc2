// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, HTTP response
// writing, and bearer-token extraction.
package utils

import (
	"context"

	"github.com/authgate/authgate/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AuthUserCtxKey is the key used to store the authenticated identity in the
// request context. Used together with GetAuthUserFromContext for type-safe
// retrieval.
var AuthUserCtxKey = contextKey("authUser")

// GetAuthUserFromContext retrieves the authenticated identity from the
// context.
//
// Returns the identity and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetAuthUserFromContext(ctx context.Context) (models.AuthUser, bool) {
	authUser, ok := ctx.Value(AuthUserCtxKey).(models.AuthUser)
	return authUser, ok
}
