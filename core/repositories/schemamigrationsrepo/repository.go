// Package schemamigrationsrepo reads the migration ledger so operators can
// see which embedded migrations a database has applied.
package schemamigrationsrepo

import (
	"context"
	"fmt"

	"github.com/jrazmi/zentask/infrastructure/sqldb"
	"github.com/jrazmi/zentask/sdk/logger"
)

type Storer interface {
	// List returns applied migrations ordered by version. A database that
	// was never migrated yields an empty list.
	List(ctx context.Context) ([]SchemaMigration, error)
}

type Repository struct {
	log    *logger.Logger
	storer Storer
}

func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

func (r *Repository) List(ctx context.Context) ([]SchemaMigration, error) {
	applied, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schema migrations: %w", err)
	}
	return applied, nil
}

// Status reports every known migration file, plus any applied version
// whose file no longer exists, in version order.
func (r *Repository) Status(ctx context.Context, files []sqldb.Migration) ([]MigrationStatus, error) {
	applied, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	byVersion := make(map[string]SchemaMigration, len(applied))
	for _, m := range applied {
		byVersion[m.Version] = m
	}

	statuses := make([]MigrationStatus, 0, len(files))
	for _, f := range files {
		st := MigrationStatus{Version: f.Version}
		if m, ok := byVersion[f.Version]; ok {
			st.Applied = true
			st.AppliedAt = &m.AppliedAt
			st.Modified = f.Verify(m.Checksum) != nil
			delete(byVersion, f.Version)
		}
		statuses = append(statuses, st)
	}

	for _, m := range applied {
		if _, orphan := byVersion[m.Version]; orphan {
			statuses = append(statuses, MigrationStatus{Version: m.Version, Applied: true, AppliedAt: &m.AppliedAt, Modified: true})
		}
	}

	return statuses, nil
}
