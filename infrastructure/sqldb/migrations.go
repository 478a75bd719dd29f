package sqldb

import (
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Migration is one forward-only schema file.
type Migration struct {
	Version  string
	SQL      string
	Checksum string
}

// ErrChecksumMismatch reports an applied migration whose file changed.
type ErrChecksumMismatch struct {
	Version  string
	Expected string
	Actual   string
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("migration %s has been modified after being applied (expected: %s, got: %s)",
		e.Version, e.Expected, e.Actual)
}

// LoadMigrations reads every .sql file directly inside dir, sorted by
// name. Use numeric prefixes: 001_init.sql, 002_add_x.sql.
func LoadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, Migration{
			Version:  name,
			SQL:      string(content),
			Checksum: fmt.Sprintf("%x", sha256.Sum256(content)),
		})
	}
	return migrations, nil
}

// Verify checks an applied checksum against the file on disk.
func (m Migration) Verify(applied string) error {
	if applied != m.Checksum {
		return &ErrChecksumMismatch{Version: m.Version, Expected: applied, Actual: m.Checksum}
	}
	return nil
}
