package store

import sq "github.com/Masterminds/squirrel"

// psql is the shared statement builder configured for PostgreSQL positional
// placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// userColumns is the canonical column order scanned into models.User.
var userColumns = []string{"user_id", "email", "password_hash", "totp_secret", "enabled", "role", "created_at"}

func createUserQuery(email, passwordHash string) sq.InsertBuilder {
	return psql.Insert("users").
		Columns("email", "password_hash", "enabled").
		Values(email, passwordHash, true).
		Suffix("RETURNING user_id, email, password_hash, totp_secret, enabled, role, created_at")
}

func findUserByEmailQuery(email string) sq.SelectBuilder {
	return psql.Select(userColumns...).
		From("users").
		Where("LOWER(email) = LOWER(?)", email)
}

func findUserByIDQuery(userID int64) sq.SelectBuilder {
	return psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userID})
}

// setTOTPSecretQuery writes the secret only when none is stored yet, which
// is what makes concurrent first-enrollment races safe: the first writer
// wins and every later writer matches zero rows.
func setTOTPSecretQuery(userID int64, secret string) sq.UpdateBuilder {
	return psql.Update("users").
		Set("totp_secret", secret).
		Where(sq.Eq{"user_id": userID}).
		Where("totp_secret IS NULL")
}
