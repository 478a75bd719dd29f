package schemamigrationssqlitestore

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/zentask/core/repositories/schemamigrationsrepo"
	"github.com/jrazmi/zentask/core/repositories/storeerrs"
	"github.com/jrazmi/zentask/sdk/logger"
)

type Store struct {
	log *logger.Logger
	db  *sqlx.DB
}

func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

func (s *Store) List(ctx context.Context) ([]schemamigrationsrepo.SchemaMigration, error) {
	var tables int
	if err := s.db.GetContext(ctx, &tables, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'`); err != nil {
		return nil, storeerrs.FromSQLite(err)
	}

	migrations := []schemamigrationsrepo.SchemaMigration{}
	if tables == 0 {
		return migrations, nil
	}

	if err := s.db.SelectContext(ctx, &migrations, `SELECT version, checksum, applied_at FROM schema_migrations ORDER BY version`); err != nil {
		return nil, storeerrs.FromSQLite(err)
	}
	return migrations, nil
}
