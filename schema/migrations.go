// Package schema contains embedded migration files.
package schema

import "embed"

// Directories inside MigrationsFS, one per driver.
const (
	PostgresDir = "pgmigrations"
	SQLiteDir   = "sqlitemigrations"
)

// MigrationsFS contains every driver's SQL migration files.
//
//go:embed pgmigrations/*.sql sqlitemigrations/*.sql
var MigrationsFS embed.FS
