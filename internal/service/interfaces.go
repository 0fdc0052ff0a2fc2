package service

import (
	"context"

	"github.com/authgate/authgate/models"
)

// TokenResult is returned by every operation that issues a credential: the
// signed token plus the flow-stage hint telling the client what to do next.
type TokenResult struct {
	Token string
	Next  models.NextStep
}

// SetupResult is the provisioning material returned by a 2FA setup call.
type SetupResult struct {
	// QRCode is a base64 PNG data URI of the enrollment QR code.
	QRCode string

	// Secret is the base32 TOTP secret for manual entry.
	Secret string
}

// AuthService implements the password stage of the authentication flow and
// the request-time session checks.
type AuthService interface {
	// Login verifies email+password and issues a partial credential. All
	// security-relevant failures collapse to ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (TokenResult, error)

	// Create registers a new account and issues a partial credential with
	// the setup-2fa hint.
	Create(ctx context.Context, email, confirmEmail, password string) (TokenResult, error)

	// VerifyPartial reports whether tokenString decodes and its identity
	// still exists. It never returns an error: any failure is false.
	VerifyPartial(ctx context.Context, tokenString string) bool

	// Authenticate decodes a credential and re-validates its identity
	// against the user store, producing the request-scoped AuthUser.
	Authenticate(ctx context.Context, tokenString string) (models.AuthUser, error)
}

// TwoFactorService implements the TOTP second factor of the flow.
type TwoFactorService interface {
	// Setup provisions (or idempotently re-returns) the TOTP secret of the
	// identity behind the partial token and renders its enrollment QR.
	Setup(ctx context.Context, tokenString string) (SetupResult, error)

	// Verify checks a submitted TOTP code against the stored secret and,
	// on success, upgrades the partial credential to a full one.
	Verify(ctx context.Context, tokenString, code string) (TokenResult, error)
}
