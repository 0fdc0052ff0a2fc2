package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/logger"
	"github.com/authgate/authgate/internal/otp"
	"github.com/authgate/authgate/internal/store"
	"github.com/authgate/authgate/internal/token"
	"github.com/authgate/authgate/internal/validators"
	"github.com/authgate/authgate/models"
)

// twoFactorService is the concrete implementation of TwoFactorService: the
// secret provisioner and the second-factor verification step.
//
// Provisioning is lazy and idempotent: the first setup call generates and
// persists a secret, every later call re-returns the stored one with the
// identical enrollment URI. There is no rotation path — a compromised
// secret can only be replaced by an operator clearing the stored value,
// which is an explicit administrative action outside this service.
type twoFactorService struct {
	userRepository store.UserRepository
	codec          *token.Codec
	otpManager     *otp.Manager

	// fullTokenTTL is the lifetime of credentials issued after a successful
	// second-factor verification.
	fullTokenTTL time.Duration

	logger *logger.Logger
}

// NewTwoFactorService constructs a TwoFactorService wired to the given
// repository, credential codec, and enrollment manager.
func NewTwoFactorService(userRepository store.UserRepository, codec *token.Codec, otpManager *otp.Manager, cfg config.Auth, logger *logger.Logger) TwoFactorService {
	return &twoFactorService{
		userRepository: userRepository,
		codec:          codec,
		otpManager:     otpManager,
		fullTokenTTL:   cfg.FullTokenTTL,
		logger:         logger,
	}
}

// Setup provisions the TOTP secret for the identity behind the partial
// token and returns the enrollment QR plus the base32 secret.
//
// For an account without a secret a fresh one is generated and written with
// the store's conditional update; the secret actually persisted (which
// under a concurrent race may be another caller's) is the one returned. For
// an already-enrolled account the stored secret is re-returned unchanged.
func (s *twoFactorService) Setup(ctx context.Context, tokenString string) (SetupResult, error) {
	log := logger.FromContext(ctx)

	claims, err := s.codec.Verify(validators.Sanitize(tokenString, validators.MaxTokenLength))
	if err != nil {
		return SetupResult{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := s.userRepository.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return SetupResult{}, err
		}
		log.Err(err).Msg("user search by id failed")
		return SetupResult{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if !user.HasTOTPSecret() {
		enrollment, err := s.otpManager.NewEnrollment(user.Email)
		if err != nil {
			log.Err(err).Msg("generating totp secret failed")
			return SetupResult{}, fmt.Errorf("generating totp secret failed: %w", err)
		}

		user, err = s.userRepository.UpdateTOTPSecret(ctx, user.UserID, enrollment.Secret)
		if err != nil {
			log.Err(err).Msg("persisting totp secret failed")
			return SetupResult{}, fmt.Errorf("persisting totp secret failed: %w", err)
		}
	}

	// Always derive the enrollment material from the secret as persisted,
	// so a racing caller hands out the winner's secret, not its own draft.
	enrollment, err := s.otpManager.EnrollmentFromSecret(user.TOTPSecret, user.Email)
	if err != nil {
		log.Err(err).Msg("deriving enrollment failed")
		return SetupResult{}, fmt.Errorf("deriving enrollment failed: %w", err)
	}

	qr, err := enrollment.QRCodeDataURI()
	if err != nil {
		log.Err(err).Msg("rendering enrollment QR failed")
		return SetupResult{}, fmt.Errorf("rendering enrollment QR failed: %w", err)
	}

	return SetupResult{QRCode: qr, Secret: enrollment.Secret}, nil
}

// Verify checks the submitted TOTP code against the stored secret and, on
// success, issues a full credential with the dashboard hint.
//
// An account without a stored secret and a non-matching code are both
// reported as ErrWrongOTPCode; distinguishing them would leak enrollment
// state to a holder of a stolen partial token.
func (s *twoFactorService) Verify(ctx context.Context, tokenString, code string) (TokenResult, error) {
	log := logger.FromContext(ctx)

	code = validators.SanitizeNumeric(code, validators.MaxCodeLength)
	if code == "" {
		return TokenResult{}, ErrValidationMissingFields
	}

	claims, err := s.codec.Verify(validators.Sanitize(tokenString, validators.MaxTokenLength))
	if err != nil {
		return TokenResult{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := s.userRepository.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return TokenResult{}, err
		}
		log.Err(err).Msg("user search by id failed")
		return TokenResult{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if !user.HasTOTPSecret() {
		log.Debug().Int64("id", user.UserID).Msg("2fa verify attempt without enrolled secret")
		return TokenResult{}, ErrWrongOTPCode
	}

	if !otp.Verify(user.TOTPSecret, code, otp.DefaultWindow) {
		log.Debug().Int64("id", user.UserID).Msg("wrong totp code")
		return TokenResult{}, ErrWrongOTPCode
	}

	signed, err := s.codec.Issue(user.UserID, user.Email, true, s.fullTokenTTL)
	if err != nil {
		return TokenResult{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return TokenResult{Token: signed, Next: models.NextDashboard}, nil
}
