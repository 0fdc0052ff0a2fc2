package service

import (
	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/logger"
	"github.com/authgate/authgate/internal/otp"
	"github.com/authgate/authgate/internal/store"
	"github.com/authgate/authgate/internal/token"
)

// Services aggregates every application service behind one construction
// point.
type Services struct {
	AuthService      AuthService
	TwoFactorService TwoFactorService
}

// NewServices builds the credential codec and enrollment manager from cfg
// and wires up all services against the given storages.
func NewServices(storages *store.Storages, cfg config.Auth, logger *logger.Logger) (*Services, error) {
	codec, err := token.NewCodec(cfg.TokenSignKey, cfg.TokenIssuer)
	if err != nil {
		return nil, err
	}

	otpManager := otp.NewManager(cfg.TOTPIssuer)

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, codec, cfg, logger),
		TwoFactorService: NewTwoFactorService(storages.UserRepository, codec, otpManager, cfg, logger),
	}, nil
}
