package models

// Request and response bodies of the JSON API. Field names follow the wire
// contract consumed by the browser scripts.

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateRequest is the body of POST /api/auth/create.
type CreateRequest struct {
	Email        string `json:"email"`
	ConfirmEmail string `json:"confirmEmail"`
	Password     string `json:"password"`
}

// TwoFactorSetupRequest is the body of POST /api/2fa/setup.
type TwoFactorSetupRequest struct {
	Token string `json:"token"`
}

// TwoFactorVerifyRequest is the body of POST /api/2fa/verify.
type TwoFactorVerifyRequest struct {
	Token string `json:"token"`
	Code  string `json:"code"`
}

// TokenResponse is returned by every operation that issues a credential.
type TokenResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	Next    NextStep `json:"next"`
}

// VerifyResponse is returned by GET /api/auth/verify.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// TwoFactorSetupResponse is returned by POST /api/2fa/setup. QRCode is a
// base64 PNG data URI renderable directly in an <img> tag.
type TwoFactorSetupResponse struct {
	QRCode string `json:"qrCode"`
	Secret string `json:"secret"`
}

// MeResponse is returned by GET /api/me for a fully authenticated session.
type MeResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Message string `json:"message"`
}
