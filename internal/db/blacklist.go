package db

import "context"

func (db *Postgres) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token = $1)`, token).Scan(&exists)
	return exists, err
}

// Blacklist records token once. A concurrent insert of the same value is
// absorbed by ON CONFLICT.
func (db *Postgres) Blacklist(ctx context.Context, token string) error {
	exists, err := db.IsBlacklisted(ctx, token)
	if err != nil || exists {
		return err
	}

	query := `
		INSERT INTO blacklisted_tokens (token, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (token) DO NOTHING
	`
	_, err = db.Pool.Exec(ctx, query, token)
	return err
}
