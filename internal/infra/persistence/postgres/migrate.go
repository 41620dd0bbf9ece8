package postgres

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"usergate/internal/errors"
	"usergate/internal/infra/persistence/postgres/migrations"
)

// RunMigrations applies the embedded goose migrations against the given
// connection. Called on startup when postgres.migrate is enabled.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}
