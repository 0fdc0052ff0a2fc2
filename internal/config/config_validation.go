package config

// validate fills in defaults for optional settings and rejects configs that
// are missing values the service cannot run without.
func (c *StructuredConfig) validate() error {
	if c.Auth.TokenSignKey == "" {
		return ErrNoTokenSignKey
	}

	if c.Auth.TokenIssuer == "" {
		return ErrNoTokenIssuer
	}

	if c.Auth.PartialTokenTTL == 0 {
		c.Auth.PartialTokenTTL = DefaultPartialTokenTTL
	}

	if c.Auth.FullTokenTTL == 0 {
		c.Auth.FullTokenTTL = DefaultFullTokenTTL
	}

	if c.Auth.TOTPIssuer == "" {
		c.Auth.TOTPIssuer = DefaultTOTPIssuer
	}

	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = DefaultHTTPAddress
	}

	return nil
}
