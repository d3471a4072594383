package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/satriobayu/authsvc/internal/model"
)

const userColumns = `id, username, password_hash, photo_profile, photo_public_id, created_at, updated_at`

// username is declared with the username_ci collation, so "=" below is
// case-insensitive and accent-sensitive.

func (db *Postgres) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1
		LIMIT 1
	`
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

func (db *Postgres) FindUserByUsernameExcluding(ctx context.Context, username string, excludeID uuid.UUID) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 AND id <> $2
		LIMIT 1
	`
	return scanUser(db.Pool.QueryRow(ctx, query, username, excludeID))
}

func (db *Postgres) FindUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return scanUser(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) InsertUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, photo_profile, photo_public_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := db.Pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.PhotoProfile,
		user.PhotoPublicID,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return translate(err)
}

func (db *Postgres) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET username = $2, password_hash = $3, photo_profile = $4, photo_public_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := db.Pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.PhotoProfile,
		user.PhotoPublicID,
	).Scan(&user.UpdatedAt)
	return translate(err)
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.PhotoProfile,
		&user.PhotoPublicID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
