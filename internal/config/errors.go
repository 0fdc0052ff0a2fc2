package config

import "errors"

var (
	// ErrNoTokenSignKey is returned when no token signing key was provided
	// by any configuration source. The service refuses to start rather than
	// fall back to a well-known key.
	ErrNoTokenSignKey = errors.New("token sign key is not configured")

	// ErrNoTokenIssuer is returned when no token issuer was provided by any
	// configuration source.
	ErrNoTokenIssuer = errors.New("token issuer is not configured")
)
