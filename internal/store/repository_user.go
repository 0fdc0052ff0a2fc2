package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/authgate/authgate/internal/logger"
	"github.com/authgate/authgate/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and the one-shot TOTP secret write
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// scanUser scans one result row in the canonical column order into a
// models.User. The totp_secret column is nullable: NULL maps to the empty
// string (not enrolled).
func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var totpSecret sql.NullString
	var role sql.NullString

	err := row.Scan(&user.UserID, &user.Email, &user.PasswordHash, &totpSecret, &user.Enabled, &role, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	user.TOTPSecret = totpSecret.String
	user.Role = role.String
	return user, nil
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, Role).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := createUserQuery(user.Email, user.PasswordHash).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building insert query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindUserByEmail retrieves the account whose email matches, compared
// case-insensitively.
//
// Error handling:
//   - No matching row → [ErrNoUserWasFound].
//   - Any other failure → wrapped [ErrScanningRow].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := findUserByEmailQuery(email).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error finding user by email")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// FindUserByID retrieves the account with the given identifier.
//
// Error handling mirrors [FindUserByEmail].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := findUserByIDQuery(userID).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error finding user by id")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// UpdateTOTPSecret performs the conditional one-shot secret write: the
// UPDATE matches only while totp_secret is NULL, so exactly one secret value
// is ever durably associated with an account. The account is re-read
// afterwards and returned as persisted, which under a race hands losers the
// winner's secret.
func (r *userRepository) UpdateTOTPSecret(ctx context.Context, userID int64, secret string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := setTOTPSecretQuery(userID, secret).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateTOTPSecret").Msg("error building update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateTOTPSecret").Msg("error updating totp secret")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		log.Debug().Int64("user_id", userID).Msg("totp secret already set, keeping stored value")
	}

	// Confirming re-read: the caller must observe the durably persisted
	// secret, whichever writer won.
	return r.FindUserByID(ctx, userID)
}
