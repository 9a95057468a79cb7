package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbank/internal/review"
)

func defaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:     StorageDriverYAML,
			YAMLPath:   filepath.Join("data", "wordbank.yml"),
			SQLitePath: filepath.Join("data", "wordbank.db"),
			MySQL: DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "wordbank",
				Username: "user",
			},
		},
		Dictionaries: DictionariesConfig{
			API:           DictionaryRapidAPI,
			RetryAttempts: 3,
			RapidAPI: RapidAPIConfig{
				CacheDirectory: filepath.Join("dictionaries", "rapidapi"),
			},
			FreeDictionary: FreeDictionaryConfig{
				BaseURL: "https://api.dictionaryapi.dev/api/v2/entries/en",
			},
		},
		Scheduler: review.DefaultSchedulerConfig(),
		Server: ServerConfig{
			Port: 8080,
			CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
		Outputs: OutputsConfig{
			ReviewSheetDirectory: filepath.Join("outputs", "review_sheet"),
		},
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("RAPID_API_HOST", "")
	t.Setenv("RAPID_API_KEY", "")
	t.Setenv("DB_PASSWORD", "")

	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "valid config file with custom values",
			configContent: `storage:
  driver: sqlite
  sqlite_path: custom/wordbank.db
dictionaries:
  api: free_dictionary
  retry_attempts: 5
  free_dictionary:
    base_url: http://localhost:9000/entries/en
scheduler:
  good_interval_factor: 2.5
  min_interval_days: 2
server:
  port: 9090
outputs:
  review_sheet_directory: custom/sheets
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Storage.Driver = StorageDriverSQLite
				cfg.Storage.SQLitePath = "custom/wordbank.db"
				cfg.Dictionaries.API = DictionaryFreeDictionary
				cfg.Dictionaries.RetryAttempts = 5
				cfg.Dictionaries.FreeDictionary.BaseURL = "http://localhost:9000/entries/en"
				cfg.Scheduler.GoodIntervalFactor = 2.5
				cfg.Scheduler.MinIntervalDays = 2
				cfg.Server.Port = 9090
				cfg.Outputs.ReviewSheetDirectory = "custom/sheets"
				return cfg
			},
		},
		{
			name: "explicit config file path",
			configContent: `storage:
  driver: mysql
  mysql:
    host: db.example.com
    port: 3307
    max_open_conns: 10
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Storage.Driver = StorageDriverMySQL
				cfg.Storage.MySQL.Host = "db.example.com"
				cfg.Storage.MySQL.Port = 3307
				cfg.Storage.MySQL.MaxOpenConns = 10
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `storage:
  driver: yaml
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown storage driver",
			configContent: `storage:
  driver: postgres
`,
			wantErrorContains: []string{"invalid configuration", "driver must be one of [yaml mysql sqlite]"},
		},
		{
			name: "scheduler coefficients out of range",
			configContent: `scheduler:
  lapse_penalty: 1.5
  min_interval_days: 0
`,
			wantErrorContains: []string{"invalid configuration", "lapse_penalty", "min_interval_days"},
		},
		{
			name: "max interval beyond the cap",
			configContent: `scheduler:
  max_interval_days: 100000
`,
			wantErrorContains: []string{"invalid configuration", "max_interval_days"},
		},
		{
			name: "missing review sheet template",
			configContent: `templates:
  review_sheet_template: /nonexistent/review_sheet.md.tmpl
`,
			wantErrorContains: []string{"templates.review_sheet_template must be an existing and readable file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "wordbank.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			got, err := Load(configPath)
			if len(tt.wantErrorContains) > 0 {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("RAPID_API_HOST", "wordsapiv1.p.rapidapi.com")
	t.Setenv("RAPID_API_KEY", "secret-key")
	t.Setenv("DB_PASSWORD", "db-secret")
	t.Setenv("WORDBANK_STORAGE_DRIVER", "sqlite")
	t.Setenv("WORDBANK_SERVER_PORT", "9999")
	t.Chdir(t.TempDir())

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "wordsapiv1.p.rapidapi.com", got.Dictionaries.RapidAPI.Host)
	assert.Equal(t, "secret-key", got.Dictionaries.RapidAPI.Key)
	assert.Equal(t, "db-secret", got.Storage.MySQL.Password)
	assert.Equal(t, StorageDriverSQLite, got.Storage.Driver)
	assert.Equal(t, 9999, got.Server.Port)
}

func TestLoad_ExistingTemplate(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "sheet.md.tmpl")
	require.NoError(t, os.WriteFile(templatePath, []byte("# {{ .Title }}"), 0644))
	configPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("templates:\n  review_sheet_template: "+templatePath+"\n"), 0644))

	got, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, templatePath, got.Templates.ReviewSheetTemplate)
}
