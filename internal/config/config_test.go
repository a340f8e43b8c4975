package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	wordlistsDir := t.TempDir()

	tests := []struct {
		name              string
		configContent     string
		wantErr           bool
		wantErrorContains []string
		want              *Config
	}{
		{
			name: "valid config file with custom values",
			configContent: `user: kari
language: nb
database:
  driver: sqlite3
  path: custom/words.db
wordlists:
  directory: ` + wordlistsDir + `
lesson:
  batch_size: 10
`,
			want: &Config{
				User:     "kari",
				Language: "nb",
				Database: DatabaseConfig{
					Driver:   "sqlite3",
					Path:     "custom/words.db",
					Host:     "localhost",
					Port:     3306,
					Database: "gloser",
					Username: "gloser",
				},
				Wordlists: WordlistsConfig{
					Directory: wordlistsDir,
				},
				Dictionary: DictionaryConfig{
					BaseURL:        "https://ord.uib.no",
					CacheDirectory: filepath.Join("dictionaries", "ordbokene"),
					TimeoutSeconds: 10,
				},
				Lesson: LessonConfig{BatchSize: 10},
				Review: ReviewConfig{Limit: 50},
			},
		},
		{
			name:          "empty config uses defaults",
			configContent: "{}\n",
			want: &Config{
				User:     "local",
				Language: "no",
				Database: DatabaseConfig{
					Driver:   "sqlite3",
					Path:     filepath.Join(".", "gloser.db"),
					Host:     "localhost",
					Port:     3306,
					Database: "gloser",
					Username: "gloser",
				},
				Dictionary: DictionaryConfig{
					BaseURL:        "https://ord.uib.no",
					CacheDirectory: filepath.Join("dictionaries", "ordbokene"),
					TimeoutSeconds: 10,
				},
				Lesson: LessonConfig{BatchSize: 5},
				Review: ReviewConfig{Limit: 50},
			},
		},
		{
			name: "invalid YAML format",
			configContent: `user: kari
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
			},
		},
		{
			name: "unsupported database driver",
			configContent: `database:
  driver: postgres
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"database.driver",
			},
		},
		{
			name: "wordlists directory does not exist",
			configContent: `wordlists:
  directory: /no/such/wordlists/dir
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"must be an existing directory",
			},
		},
		{
			name: "batch size must be positive",
			configContent: `lesson:
  batch_size: 0
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"lesson.batch_size",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.configContent)
			loader, err := NewConfigLoader(path)
			require.NoError(t, err)

			got, err := loader.Load()
			if tt.wantErr {
				require.Error(t, err)
				for _, want := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_PasswordFromEnvironment(t *testing.T) {
	t.Setenv("GLOSER_DB_PASSWORD", "hunter2")

	path := writeConfigFile(t, "database:\n  driver: mysql\n")
	loader, err := NewConfigLoader(path)
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Database.Password)
}

func TestLoad_ExplicitMissingFileErrors(t *testing.T) {
	loader, err := NewConfigLoader(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	_, err = loader.Load()
	// An explicitly named file that does not exist is an error; only the
	// search-path lookup tolerates absence.
	assert.Error(t, err)
}
