package store

import (
	"context"

	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/logger"
)

// Storages aggregates every repository of the service behind one
// construction point.
type Storages struct {
	UserRepository UserRepository
}

// NewStorages connects to the configured database, applies migrations, and
// wires up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
	}, nil
}
