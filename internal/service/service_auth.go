package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/logger"
	"github.com/authgate/authgate/internal/store"
	"github.com/authgate/authgate/internal/token"
	"github.com/authgate/authgate/internal/validators"
	"github.com/authgate/authgate/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles account creation, credential verification, and issuance of
// partial (password-stage) credentials using a UserRepository for
// persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up
	// accounts.
	userRepository store.UserRepository

	// codec issues and verifies signed credentials.
	codec *token.Codec

	// partialTokenTTL is the lifetime of password-stage credentials.
	partialTokenTTL time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given UserRepository
// and credential codec, with lifetimes taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, codec *token.Codec, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		codec:           codec,
		partialTokenTTL: cfg.PartialTokenTTL,
		logger:          logger,
	}
}

// Login authenticates the password stage of the flow.
//
// Inputs are sanitized and length-capped before any further processing. The
// account must exist, be enabled, and match the password hash; every one of
// those failures is reported as ErrInvalidCredentials so that a caller
// cannot distinguish an unknown email from a wrong password.
//
// On success a partial credential is issued together with the stage hint:
// verify-2fa when a TOTP secret is already stored, setup-2fa otherwise.
func (a *authService) Login(ctx context.Context, email, password string) (TokenResult, error) {
	log := logger.FromContext(ctx)

	email = validators.Sanitize(email, validators.MaxEmailLength)
	password = validators.Sanitize(password, validators.MaxPasswordLength)

	if email == "" || password == "" {
		return TokenResult{}, ErrValidationMissingFields
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Str("email", email).Msg("login attempt for unknown email")
			return TokenResult{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user search by email failed")
		return TokenResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.Enabled {
		log.Debug().Int64("id", user.UserID).Msg("login attempt for disabled account")
		return TokenResult{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Debug().Int64("id", user.UserID).Msg("wrong password")
		return TokenResult{}, ErrInvalidCredentials
	}

	signed, err := a.codec.Issue(user.UserID, user.Email, false, a.partialTokenTTL)
	if err != nil {
		return TokenResult{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	next := models.NextSetup2FA
	if user.HasTOTPSecret() {
		next = models.NextVerify2FA
	}

	return TokenResult{Token: signed, Next: next}, nil
}

// Create registers a new account.
//
// Validation order: presence, email shape (both fields), email match,
// password policy — all before any store access. Persistence relies on the
// store's unique constraint for duplicate detection, so two concurrent
// creates for the same email cannot both succeed.
func (a *authService) Create(ctx context.Context, email, confirmEmail, password string) (TokenResult, error) {
	log := logger.FromContext(ctx)

	email = validators.Sanitize(email, validators.MaxEmailLength)
	confirmEmail = validators.Sanitize(confirmEmail, validators.MaxEmailLength)
	password = validators.Sanitize(password, validators.MaxPasswordLength)

	if email == "" || confirmEmail == "" || password == "" {
		return TokenResult{}, ErrValidationMissingFields
	}

	if !validators.IsValidEmail(email) || !validators.IsValidEmail(confirmEmail) {
		return TokenResult{}, ErrValidationEmailFormat
	}

	if email != confirmEmail {
		return TokenResult{}, ErrValidationEmailMismatch
	}

	if !validators.IsValidPassword(password) {
		return TokenResult{}, ErrValidationWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return TokenResult{}, fmt.Errorf("password hashing failed: %w", err)
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return TokenResult{}, err
		}
		log.Err(err).Msg("user creation ended with error")
		return TokenResult{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	signed, err := a.codec.Issue(created.UserID, created.Email, false, a.partialTokenTTL)
	if err != nil {
		return TokenResult{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return TokenResult{Token: signed, Next: models.NextSetup2FA}, nil
}

// VerifyPartial reports whether tokenString is a currently valid credential
// whose identity still exists. Every failure yields false; the caller never
// learns which part failed.
func (a *authService) VerifyPartial(ctx context.Context, tokenString string) bool {
	claims, err := a.codec.Verify(tokenString)
	if err != nil {
		return false
	}

	if _, err := a.userRepository.FindUserByID(ctx, claims.UserID); err != nil {
		return false
	}

	return true
}

// Authenticate is the request-time session check: decode the credential,
// re-validate the claimed identity against the store (defends against
// tokens for deleted or disabled accounts), and produce the minimal
// request-scoped identity.
//
// Returns ErrTokenIsExpiredOrInvalid for a bad token or a vanished account,
// and ErrAccountDisabled for an account whose enabled flag was cleared.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.AuthUser, error) {
	log := logger.FromContext(ctx)

	claims, err := a.codec.Verify(tokenString)
	if err != nil {
		return models.AuthUser{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Debug().Int64("id", claims.UserID).Msg("token for vanished account")
			return models.AuthUser{}, ErrTokenIsExpiredOrInvalid
		}
		log.Err(err).Msg("user search by id failed")
		return models.AuthUser{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if !user.Enabled {
		return models.AuthUser{}, ErrAccountDisabled
	}

	return models.AuthUser{
		UserID:   user.UserID,
		Email:    user.Email,
		Role:     user.RoleOrDefault(),
		FullAuth: claims.FullAuth,
	}, nil
}
