package models

// NextStep is the flow-stage hint returned alongside a token. The auth
// service is the single source of truth for stage transitions; clients only
// ever echo these values back as navigation targets.
type NextStep string

const (
	// NextSetup2FA directs a client holding a partial token to enroll a
	// TOTP secret before anything else.
	NextSetup2FA NextStep = "setup-2fa"

	// NextVerify2FA directs a client holding a partial token to submit a
	// TOTP code for an already-enrolled account.
	NextVerify2FA NextStep = "verify-2fa"

	// NextDashboard signals that the returned token is fully authenticated.
	NextDashboard NextStep = "dashboard"
)
