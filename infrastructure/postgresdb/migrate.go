package postgresdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/zentask/infrastructure/sqldb"
	"github.com/jrazmi/zentask/schema"
)

// Migrate applies every pending file from schema/pgmigrations in name
// order. Applied versions are tracked with their checksum in
// schema_migrations; an edited migration stops the run. Forward only.
func Migrate(ctx context.Context, pool *Pool, log *slog.Logger) error {
	if err := StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	migrations, err := sqldb.LoadMigrations(schema.MigrationsFS, schema.PostgresDir)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			checksum VARCHAR(64) NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := applyMigration(ctx, pool, log, m); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Version, err)
		}
	}

	log.InfoContext(ctx, "migrations complete", "count", len(migrations))
	return nil
}

func applyMigration(ctx context.Context, pool *Pool, log *slog.Logger, m sqldb.Migration) error {
	var existing string
	err := pool.QueryRow(ctx, "SELECT checksum FROM schema_migrations WHERE version = $1", m.Version).Scan(&existing)
	switch {
	case err == nil:
		if err := m.Verify(existing); err != nil {
			return err
		}
		log.DebugContext(ctx, "migration already applied", "version", m.Version)
		return nil
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("lookup migration: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, checksum) VALUES ($1, $2)", m.Version, m.Checksum); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.InfoContext(ctx, "migration applied", "version", m.Version, "checksum", m.Checksum[:8])
	return nil
}
