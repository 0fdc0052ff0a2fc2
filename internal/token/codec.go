// Package token implements the credential codec: issuance and verification
// of signed, time-bounded JWT credentials carrying the claim set
// {uid, email, full_auth, exp}.
//
// A credential's authority is entirely determined by its signed claims plus
// the current wall-clock time; there is no server-side session state. Expiry
// is enforced here, in the codec, so every consumer gets consistent temporal
// semantics.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single error returned by [Codec.Verify] for every
// verification failure: bad signature, wrong issuer, malformed token,
// expired token, or a claim set missing required fields. Callers must treat
// any failure uniformly as unauthenticated and never branch on the cause.
var ErrInvalidToken = errors.New("token is expired or invalid")

// Claims is the fixed, strongly-typed claim set embedded in every issued
// credential. Partial and full credentials differ only in the FullAuth flag
// and lifetime, never in shape.
type Claims struct {
	// UserID is the stable identifier of the authenticated account.
	UserID int64 `json:"uid"`

	// Email is the account email at issue time.
	Email string `json:"email"`

	// FullAuth is true only for credentials issued after a successful
	// second-factor verification.
	FullAuth bool `json:"full_auth,omitempty"`

	jwt.RegisteredClaims
}

// Codec issues and verifies HMAC-SHA256 signed credentials. It is immutable
// after construction and safe for concurrent use.
type Codec struct {
	signKey []byte
	issuer  string
}

// NewCodec constructs a Codec signing with signKey and stamping every token
// with issuer. Returns an error if either parameter is empty.
func NewCodec(signKey, issuer string) (*Codec, error) {
	if signKey == "" || issuer == "" {
		return nil, errors.New("invalid params for creating token codec")
	}

	return &Codec{
		signKey: []byte(signKey),
		issuer:  issuer,
	}, nil
}

// Issue creates a signed credential for the given identity with an absolute
// expiry of now+ttl. It is a pure function of its inputs and the current
// time.
func (c *Codec) Issue(userID int64, email string, fullAuth bool, ttl time.Duration) (string, error) {
	if userID == 0 || ttl <= 0 {
		return "", errors.New("invalid params for issuing token")
	}

	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Email:    email,
		FullAuth: fullAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing token: %w", err)
	}

	return tokenString, nil
}

// Verify checks the signature, issuer, and expiry of tokenString and returns
// the decoded claim set. Any failure, including a missing or zero user
// identifier, is reported as [ErrInvalidToken] with no further detail.
func (c *Codec) Verify(tokenString string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return c.signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	// A token without a subject identity cannot authorize anything even if
	// its signature checks out.
	if claims.UserID == 0 {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
