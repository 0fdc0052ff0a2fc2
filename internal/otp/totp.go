// Package otp implements the TOTP second factor: secret provisioning
// material (enrollment keys and otpauth URIs), QR rendering for
// authenticator apps, and clock-skew tolerant code verification.
package otp

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"net/url"
	"strconv"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTP parameters shared by enrollment and verification. These are the
// authenticator-app defaults; changing them would break codes for every
// already-enrolled account.
const (
	// Period is the TOTP time-step in seconds.
	Period = 30

	// DefaultWindow is how many adjacent time-steps are accepted in each
	// direction to absorb clock drift between server and authenticator.
	DefaultWindow = 1

	// secretSize is the entropy of a generated secret in bytes (160 bits),
	// which base32-encodes to 32 characters.
	secretSize = 20

	// qrImageSize is the edge length in pixels of rendered QR codes.
	qrImageSize = 256
)

// Enrollment is the provisioning material handed to a client during 2FA
// setup: the base32 secret for manual entry and the otpauth:// URI an
// authenticator app imports (usually via the QR rendering).
type Enrollment struct {
	// Secret is the base32-encoded TOTP seed.
	Secret string

	// URI is the otpauth:// enrollment URI embedding the secret, the
	// account label, and the issuer.
	URI string

	key *otp.Key
}

// Manager creates and re-derives enrollment material. The issuer is the
// label authenticator apps display next to the account name. Manager is
// immutable and safe for concurrent use.
type Manager struct {
	issuer string
}

// NewManager constructs a Manager stamping every enrollment with issuer.
func NewManager(issuer string) *Manager {
	return &Manager{issuer: issuer}
}

// NewEnrollment generates a fresh cryptographically random secret (160 bits)
// for the given account and derives its enrollment URI.
func (m *Manager) NewEnrollment(account string) (Enrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      m.issuer,
		AccountName: account,
		Period:      Period,
		SecretSize:  secretSize,
	})
	if err != nil {
		return Enrollment{}, fmt.Errorf("error generating totp secret: %w", err)
	}

	return Enrollment{Secret: key.Secret(), URI: key.URL(), key: key}, nil
}

// EnrollmentFromSecret re-derives the enrollment material for an already
// persisted base32 secret. Calling it repeatedly for the same secret and
// account yields the identical URI, which is what makes repeated setup
// requests idempotent.
func (m *Manager) EnrollmentFromSecret(secret, account string) (Enrollment, error) {
	// totp.Generate would re-encode the secret, so the otpauth URL is built
	// directly in the same shape Generate produces.
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", m.issuer)
	v.Set("period", strconv.Itoa(Period))
	v.Set("algorithm", otp.AlgorithmSHA1.String())
	v.Set("digits", otp.DigitsSix.String())

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + m.issuer + ":" + account,
		RawQuery: v.Encode(),
	}

	key, err := otp.NewKeyFromURL(u.String())
	if err != nil {
		return Enrollment{}, fmt.Errorf("error deriving enrollment from stored secret: %w", err)
	}

	return Enrollment{Secret: key.Secret(), URI: key.URL(), key: key}, nil
}

// QRCodeDataURI renders the enrollment URI as a PNG QR code and returns it
// as a base64 data URI suitable for direct use in an <img> tag.
func (e Enrollment) QRCodeDataURI() (string, error) {
	img, err := e.key.Image(qrImageSize, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("error rendering enrollment QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("error encoding enrollment QR code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Verify reports whether code matches the TOTP value derived from the
// base32 secret at the current time-step or within windowSteps adjacent
// steps in either direction.
//
// A malformed or non-matching code yields false, never an error: a wrong
// code is an expected outcome. The underlying comparison is constant-time.
func Verify(secret, code string, windowSteps uint) bool {
	return VerifyAt(secret, code, windowSteps, time.Now())
}

// VerifyAt is Verify with an explicit reference time. Exposed so callers
// and tests can pin the clock.
func VerifyAt(secret, code string, windowSteps uint, at time.Time) bool {
	valid, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    Period,
		Skew:      windowSteps,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}

	return valid
}
