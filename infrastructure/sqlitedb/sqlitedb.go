// Package sqlitedb opens embedded SQLite databases through sqlx and the
// pure-Go modernc driver, and mirrors the postgresdb helpers for them.
package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/zentask/sdk/environment"
	_ "modernc.org/sqlite"
)

// Set of error variables for CRUD operations.
var (
	ErrDBNotFound        = sql.ErrNoRows
	ErrDBDuplicatedEntry = errors.New("duplicated entry")
	ErrForeignKey        = errors.New("foreign key violation")
)

type DB = sqlx.DB

// Options represents the exportable database configuration.
type Options struct {
	Path        string        `env:"SQLITE_PATH" default:"zentask.db"`
	BusyTimeout time.Duration `env:"SQLITE_BUSY_TIMEOUT" default:"5s"`
}

// NewFromEnv opens the database named by SQLITE_PATH.
func NewFromEnv(prefix string) (*sqlx.DB, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sqlite config: %w", err)
	}
	return Open(cfg)
}

// Open opens (or creates) the database with foreign keys and WAL enabled.
// A single connection is used, so every query inside a transaction must go
// through Querier.
func Open(cfg Options) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	return db, nil
}

// NewTestDB opens a migrated in-memory database that closes with the test.
func NewTestDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := Open(Options{Path: ":memory:", BusyTimeout: time.Second})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("closing test db: %v", err)
		}
	})

	if err := Migrate(context.Background(), db, nil); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func dsn(cfg Options) string {
	params := []string{
		"_pragma=foreign_keys(1)",
		fmt.Sprintf("_pragma=busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()),
		"_time_format=sqlite",
	}
	if cfg.Path != ":memory:" {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	return cfg.Path + "?" + strings.Join(params, "&")
}

// StatusCheck returns nil if it can successfully talk to the database.
func StatusCheck(ctx context.Context, db *sqlx.DB) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}
	return db.PingContext(ctx)
}

// HandleError converts driver errors to package sentinels.
func HandleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrDBNotFound
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %s", ErrDBDuplicatedEntry, msg)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %s", ErrForeignKey, msg)
	}
	return err
}
