// Package storeerrs translates driver errors into repository errors so
// stores of either driver fail the same way.
package storeerrs

import (
	"errors"
	"fmt"

	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/infrastructure/postgresdb"
	"github.com/jrazmi/zentask/infrastructure/sqlitedb"
)

// FromPostgres maps pgx errors. Unknown errors pass through.
func FromPostgres(err error) error {
	return translate(postgresdb.HandlePgError(err),
		postgresdb.ErrDBNotFound, postgresdb.ErrDBDuplicatedEntry, postgresdb.ErrForeignKey)
}

// FromSQLite maps sqlite errors. Unknown errors pass through.
func FromSQLite(err error) error {
	return translate(sqlitedb.HandleError(err),
		sqlitedb.ErrDBNotFound, sqlitedb.ErrDBDuplicatedEntry, sqlitedb.ErrForeignKey)
}

func translate(err, notFound, duplicate, foreignKey error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, notFound):
		return repositories.ErrNotFound
	case errors.Is(err, duplicate):
		return fmt.Errorf("%w: %w", repositories.ErrConflict, err)
	case errors.Is(err, foreignKey):
		// The referenced row vanished or never belonged to the caller.
		return fmt.Errorf("%w: %w", repositories.ErrNotFound, err)
	}
	return err
}
