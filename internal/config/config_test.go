package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GustavoCaso/spendsort/internal/logger"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "config.yaml",
			content: `categories: rules.json
backend: sqlite
db: test.db
date_format: "2006-01-02"
currency: EUR
port: 9090
upload_ttl: 5m
logger:
  level: debug
  format: json
  output: discard
`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `categories = "rules.json"
backend = "sqlite"
db = "test.db"
date_format = "2006-01-02"
currency = "EUR"
port = 9090
upload_ttl = "5m"

[logger]
level = "debug"
format = "json"
output = "discard"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := Parse(writeConfig(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Failed to parse config: %v", err)
			}

			want := Config{
				Categories: "rules.json",
				Backend:    BackendSQLite,
				DB:         "test.db",
				DateFormat: "2006-01-02",
				Currency:   "EUR",
				Port:       9090,
				UploadTTL:  5 * time.Minute,
				Logger: logger.Config{
					Level:  logger.LevelDebug,
					Format: logger.FormatJSON,
					Output: "discard",
				},
			}

			if *conf != want {
				t.Errorf("Parse() = %+v, want %+v", *conf, want)
			}

			if err = conf.Validate(); err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	conf, err := Parse(writeConfig(t, "config.yml", "currency: USD\n"))
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if conf.Currency != "USD" {
		t.Errorf("Expected currency 'USD', got '%s'", conf.Currency)
	}

	if conf.DateFormat != defaultDateFormat {
		t.Errorf("Expected date format '%s', got '%s'", defaultDateFormat, conf.DateFormat)
	}

	if conf.Categories != defaultCategories {
		t.Errorf("Expected categories '%s', got '%s'", defaultCategories, conf.Categories)
	}
}

func TestParseENV(t *testing.T) {
	t.Setenv("SPENDSORT_CATEGORIES", "env.json")
	t.Setenv("SPENDSORT_BACKEND", "sqlite")
	t.Setenv("SPENDSORT_DB", "env.db")
	t.Setenv("SPENDSORT_DATE_FORMAT", "2006-01-02")
	t.Setenv("SPENDSORT_CURRENCY", "GBP")
	t.Setenv("SPENDSORT_PORT", "3000")
	t.Setenv("SPENDSORT_UPLOAD_TTL", "1h")
	t.Setenv("SPENDSORT_LOG_LEVEL", "warn")
	t.Setenv("SPENDSORT_LOG_FORMAT", "json")
	t.Setenv("SPENDSORT_LOG_OUTPUT", "discard")

	path := writeConfig(t, "config.yaml", "currency: EUR\nport: 9090\n")

	conf, err := Parse(path)
	if err != nil {
		t.Fatalf("Failed to parse config: %v", err)
	}

	if conf.Categories != "env.json" {
		t.Errorf("Expected categories 'env.json', got '%s'", conf.Categories)
	}

	if conf.Backend != BackendSQLite {
		t.Errorf("Expected backend 'sqlite', got '%s'", conf.Backend)
	}

	if conf.DB != "env.db" {
		t.Errorf("Expected DB path 'env.db', got '%s'", conf.DB)
	}

	if conf.Currency != "GBP" {
		t.Errorf("Expected currency 'GBP', got '%s'", conf.Currency)
	}

	if conf.Port != 3000 {
		t.Errorf("Expected port 3000, got %d", conf.Port)
	}

	if conf.UploadTTL != time.Hour {
		t.Errorf("Expected upload ttl 1h, got %s", conf.UploadTTL)
	}

	if conf.Logger.Level != "warn" {
		t.Fatalf("Expected logger level 'warn', got '%s'", conf.Logger.Level)
	}

	if conf.Logger.Format != "json" {
		t.Fatalf("Expected logger format 'json', got '%s'", conf.Logger.Format)
	}

	if conf.Logger.Output != "discard" {
		t.Fatalf("Expected logger output 'discard', got '%s'", conf.Logger.Output)
	}
}

func TestParseInvalidENV(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port", key: "SPENDSORT_PORT", value: "http"},
		{name: "upload ttl", key: "SPENDSORT_UPLOAD_TTL", value: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			if _, err := Parse(""); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestParseNonExistentFile(t *testing.T) {
	conf, err := Parse("non-existent-file.yaml")
	if err != nil {
		t.Fatalf("Expected no error when parsing non-existent file, got %+v", err)
	}

	if *conf != *defaults() {
		t.Errorf("Parse() = %+v, want defaults %+v", *conf, *defaults())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "unsupported extension", file: "config.ini", content: "port=1"},
		{name: "malformed yaml", file: "config.yaml", content: "port: [1"},
		{name: "malformed toml", file: "config.toml", content: "port = "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(writeConfig(t, tt.file, tt.content)); err == nil {
				t.Errorf("Expected error parsing %s", tt.file)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	conf := defaults()
	conf.Backend = "postgres"
	conf.Port = 0
	conf.DateFormat = " "
	conf.Logger.Level = "trace"

	err := conf.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}

	for _, fragment := range []string{"unknown backend", "invalid port", "date format", "log level"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("Validate() error %q does not mention %q", err.Error(), fragment)
		}
	}

	if err = defaults().Validate(); err != nil {
		t.Errorf("defaults().Validate() unexpected error: %v", err)
	}
}
