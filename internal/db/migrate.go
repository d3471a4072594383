package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/satriobayu/authsvc/internal/db/migrations"
)

// Migrate applies the embedded migrations through a database/sql handle
// borrowed from the pool.
func (db *Postgres) Migrate(ctx context.Context) error {
	conn := stdlib.OpenDBFromPool(db.Pool)
	defer conn.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
