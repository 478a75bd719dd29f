package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo/stores/projectspgxstore"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo/stores/projectssqlitestore"
	"github.com/jrazmi/zentask/core/repositories/schemamigrationsrepo"
	"github.com/jrazmi/zentask/core/repositories/schemamigrationsrepo/stores/schemamigrationspgxstore"
	"github.com/jrazmi/zentask/core/repositories/schemamigrationsrepo/stores/schemamigrationssqlitestore"
	"github.com/jrazmi/zentask/core/repositories/tasksrepo"
	"github.com/jrazmi/zentask/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/zentask/core/repositories/tasksrepo/stores/taskssqlitestore"
	"github.com/jrazmi/zentask/core/repositories/usersrepo"
	"github.com/jrazmi/zentask/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/jrazmi/zentask/core/repositories/usersrepo/stores/userssqlitestore"
	"github.com/jrazmi/zentask/infrastructure/postgresdb"
	"github.com/jrazmi/zentask/infrastructure/sqldb"
	"github.com/jrazmi/zentask/infrastructure/sqlitedb"
	"github.com/jrazmi/zentask/schema"
	"github.com/jrazmi/zentask/sdk/logger"
)

// Repositories are the core repositories bound to one datastore.
type Repositories struct {
	Users      *usersrepo.Repository
	Projects   *projectsrepo.Repository
	Tasks      *tasksrepo.Repository
	Migrations *schemamigrationsrepo.Repository
	Tx         repositories.Transactor
}

// Datastore is an open database plus the repositories built on it.
type Datastore struct {
	Driver       string
	Repositories Repositories

	migrate      func(ctx context.Context) error
	migrationDir string
	statusCheck  func(ctx context.Context) error
	close        func() error
}

// OpenDatastore connects to the database chosen by DB_DRIVER, reading the
// driver settings from the same prefix.
func OpenDatastore(prefix string, log *logger.Logger, cfg StoreConfig) (*Datastore, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		pool, err := postgresdb.NewFromEnv(prefix, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return nil, fmt.Errorf("configuring postgres support: %w", err)
		}
		return NewPostgresDatastore(log, pool, loc), nil

	case DriverSQLite:
		db, err := sqlitedb.NewFromEnv(prefix)
		if err != nil {
			return nil, fmt.Errorf("configuring sqlite support: %w", err)
		}
		return NewSQLiteDatastore(log, db, loc), nil
	}

	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}

// NewPostgresDatastore binds the pgx stores to pool.
func NewPostgresDatastore(log *logger.Logger, pool *postgresdb.Pool, loc *time.Location) *Datastore {
	tx := postgresdb.NewTransactor(pool)
	projects := projectsrepo.NewRepository(log, projectspgxstore.NewStore(log, pool))

	return &Datastore{
		Driver: DriverPostgres,
		Repositories: Repositories{
			Users:      usersrepo.NewRepository(log, userspgxstore.NewStore(log, pool)),
			Projects:   projects,
			Tasks:      tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pool), projects, tx, tasksrepo.WithLocation(loc)),
			Migrations: schemamigrationsrepo.NewRepository(log, schemamigrationspgxstore.NewStore(log, pool)),
			Tx:         tx,
		},
		migrate: func(ctx context.Context) error {
			return postgresdb.Migrate(ctx, pool, log.Logger)
		},
		migrationDir: schema.PostgresDir,
		statusCheck: func(ctx context.Context) error {
			return postgresdb.StatusCheck(ctx, pool)
		},
		close: func() error {
			pool.Close()
			return nil
		},
	}
}

// NewSQLiteDatastore binds the sqlite stores to db.
func NewSQLiteDatastore(log *logger.Logger, db *sqlx.DB, loc *time.Location) *Datastore {
	tx := sqlitedb.NewTransactor(db)
	projects := projectsrepo.NewRepository(log, projectssqlitestore.NewStore(log, db))

	return &Datastore{
		Driver: DriverSQLite,
		Repositories: Repositories{
			Users:      usersrepo.NewRepository(log, userssqlitestore.NewStore(log, db)),
			Projects:   projects,
			Tasks:      tasksrepo.NewRepository(log, taskssqlitestore.NewStore(log, db), projects, tx, tasksrepo.WithLocation(loc)),
			Migrations: schemamigrationsrepo.NewRepository(log, schemamigrationssqlitestore.NewStore(log, db)),
			Tx:         tx,
		},
		migrate: func(ctx context.Context) error {
			return sqlitedb.Migrate(ctx, db, log.Logger)
		},
		migrationDir: schema.SQLiteDir,
		statusCheck: func(ctx context.Context) error {
			return sqlitedb.StatusCheck(ctx, db)
		},
		close: db.Close,
	}
}

// Migrate applies pending embedded migrations.
func (d *Datastore) Migrate(ctx context.Context) error {
	return d.migrate(ctx)
}

// MigrationFiles returns the embedded migrations for this driver.
func (d *Datastore) MigrationFiles() ([]sqldb.Migration, error) {
	return sqldb.LoadMigrations(schema.MigrationsFS, d.migrationDir)
}

// StatusCheck pings the database.
func (d *Datastore) StatusCheck(ctx context.Context) error {
	return d.statusCheck(ctx)
}

func (d *Datastore) Close() error {
	return d.close()
}
