package schemamigrationsrepo

import "time"

// SchemaMigration is one row of schema_migrations.
type SchemaMigration struct {
	Version   string    `db:"version"`
	Checksum  string    `db:"checksum"`
	AppliedAt time.Time `db:"applied_at"`
}

// MigrationStatus compares an embedded migration file with the database.
type MigrationStatus struct {
	Version   string
	Applied   bool
	AppliedAt *time.Time
	// Modified is set when the file changed after it was applied.
	Modified bool
}
