package service

import "errors"

var (
	// ErrValidationMissingFields is returned when a required request field
	// is empty after sanitization.
	ErrValidationMissingFields = errors.New("missing fields")

	// ErrValidationEmailFormat is returned when a submitted email does not
	// have the local@domain.tld shape.
	ErrValidationEmailFormat = errors.New("invalid email format")

	// ErrValidationEmailMismatch is returned when email and confirmEmail
	// differ at account creation.
	ErrValidationEmailMismatch = errors.New("emails do not match")

	// ErrValidationWeakPassword is returned when a submitted password fails
	// the strength policy.
	ErrValidationWeakPassword = errors.New("password must be at least 8 chars and include uppercase, lowercase, number, special char")

	// ErrInvalidCredentials covers every login-stage failure: unknown email,
	// disabled account, wrong password. Collapsing them prevents account
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenIsExpiredOrInvalid covers every token-stage failure.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrAccountDisabled is returned when a decoded credential points to an
	// account whose enabled flag has been cleared.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrWrongOTPCode covers both a non-matching TOTP code and an account
	// without a stored secret; the two are indistinguishable to a caller.
	ErrWrongOTPCode = errors.New("invalid code")

	// ErrTokenCreationFailed wraps signing-infrastructure failures.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
