// Package testutil provides shared test helpers for creating config files,
// in-memory databases, and wordlist fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gloser-app/gloser/internal/catalog"
	"github.com/gloser-app/gloser/internal/database"
)

// SetupTestConfig creates a minimal config file and all required directories
// for testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"wordlists", "dictionaries"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`user: tester
language: "no"
database:
  driver: sqlite3
  path: %s
wordlists:
  directory: %s
dictionary:
  cache_directory: %s
`,
		filepath.Join(tmpDir, "gloser.db"),
		filepath.Join(tmpDir, "wordlists"),
		filepath.Join(tmpDir, "dictionaries"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NewDatabase opens a throwaway SQLite database with the schema applied. The
// database lives in a temp directory and is closed when the test finishes.
func NewDatabase(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gloser_test.db")
	db, err := sqlx.Open("sqlite3", path+"?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	require.NoError(t, database.EnsureSchema(context.Background(), db, database.DriverSQLite))
	return db
}

// SeedVocabulary inserts items into the catalog and returns them with their
// assigned IDs, in input order.
func SeedVocabulary(t *testing.T, db *sqlx.DB, items []catalog.Item) []catalog.Item {
	t.Helper()

	repository := catalog.NewRepository(db)
	seeded := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		require.NoError(t, repository.Upsert(context.Background(), &item))
		seeded = append(seeded, item)
	}
	return seeded
}

// WriteWordList writes a wordlist fixture as YAML and returns its path.
func WriteWordList(t *testing.T, dir, name string, list catalog.WordList) string {
	t.Helper()

	content, err := yaml.Marshal(list)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}
