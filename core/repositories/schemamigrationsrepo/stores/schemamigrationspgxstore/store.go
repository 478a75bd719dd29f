package schemamigrationspgxstore

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/zentask/core/repositories/schemamigrationsrepo"
	"github.com/jrazmi/zentask/core/repositories/storeerrs"
	"github.com/jrazmi/zentask/infrastructure/postgresdb"
	"github.com/jrazmi/zentask/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) List(ctx context.Context) ([]schemamigrationsrepo.SchemaMigration, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT to_regclass('schema_migrations') IS NOT NULL`).Scan(&exists); err != nil {
		return nil, storeerrs.FromPostgres(err)
	}
	if !exists {
		return []schemamigrationsrepo.SchemaMigration{}, nil
	}

	rows, err := s.pool.Query(ctx, `SELECT version, checksum, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, storeerrs.FromPostgres(err)
	}
	defer rows.Close()

	migrations, err := pgx.CollectRows(rows, pgx.RowToStructByName[schemamigrationsrepo.SchemaMigration])
	if err != nil {
		return nil, storeerrs.FromPostgres(err)
	}
	return migrations, nil
}
