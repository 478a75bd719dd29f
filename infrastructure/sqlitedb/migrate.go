package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/zentask/infrastructure/sqldb"
	"github.com/jrazmi/zentask/schema"
)

// Migrate applies every pending file from schema/sqlitemigrations, tracked
// in the same schema_migrations table layout the postgres driver uses.
// A nil logger discards progress output.
func Migrate(ctx context.Context, db *sqlx.DB, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	migrations, err := sqldb.LoadMigrations(schema.MigrationsFS, schema.SQLiteDir)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			applied_at DATETIME NOT NULL
		)`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := applyMigration(ctx, db, log, m); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Version, err)
		}
	}

	log.InfoContext(ctx, "migrations complete", "count", len(migrations))
	return nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, log *slog.Logger, m sqldb.Migration) error {
	var existing string
	err := db.GetContext(ctx, &existing, "SELECT checksum FROM schema_migrations WHERE version = ?", m.Version)
	switch {
	case err == nil:
		if err := m.Verify(existing); err != nil {
			return err
		}
		log.DebugContext(ctx, "migration already applied", "version", m.Version)
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("lookup migration: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, checksum, applied_at) VALUES (?, ?, ?)",
		m.Version, m.Checksum, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.InfoContext(ctx, "migration applied", "version", m.Version, "checksum", m.Checksum[:8])
	return nil
}
