package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/GustavoCaso/spendsort/internal/logger"
)

type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

type Config struct {
	Categories string        `toml:"categories"  yaml:"categories"`
	Backend    Backend       `toml:"backend"     yaml:"backend"`
	DB         string        `toml:"db"          yaml:"db"`
	DateFormat string        `toml:"date_format" yaml:"date_format"`
	Currency   string        `toml:"currency"    yaml:"currency"`
	Port       int           `toml:"port"        yaml:"port"`
	UploadTTL  time.Duration `toml:"upload_ttl"  yaml:"upload_ttl"`
	Logger     logger.Config `toml:"logger"      yaml:"logger"`
}

const (
	defaultCategories = "categories.json"
	defaultBackend    = BackendJSON
	defaultDBFile     = "spendsort.db"
	defaultDateFormat = "02/01/2006"
	defaultCurrency   = "LKR"
	defaultPort       = 8080
	defaultUploadTTL  = 30 * time.Minute
	defaultLogLevel   = logger.LevelInfo
	defaultLogFormat  = logger.FormatText
	defaultLogOutput  = "stdout"
)

func defaults() *Config {
	return &Config{
		Categories: defaultCategories,
		Backend:    defaultBackend,
		DB:         defaultDBFile,
		DateFormat: defaultDateFormat,
		Currency:   defaultCurrency,
		Port:       defaultPort,
		UploadTTL:  defaultUploadTTL,
		Logger: logger.Config{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			Output: defaultLogOutput,
		},
	}
}

// Parse reads the configuration file at path, if it exists, and applies
// SPENDSORT_* environment overrides on top of it.
func Parse(path string) (*Config, error) {
	conf := defaults()

	if err := conf.parseFile(path); err != nil {
		return nil, err
	}

	if err := conf.parseEnv(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) parseFile(path string) error {
	if path == "" {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(content, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, c)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	return nil
}

func (c *Config) parseEnv() error {
	if categories := os.Getenv("SPENDSORT_CATEGORIES"); categories != "" {
		c.Categories = categories
	}

	if backend := os.Getenv("SPENDSORT_BACKEND"); backend != "" {
		c.Backend = Backend(backend)
	}

	if db := os.Getenv("SPENDSORT_DB"); db != "" {
		c.DB = db
	}

	if format := os.Getenv("SPENDSORT_DATE_FORMAT"); format != "" {
		c.DateFormat = format
	}

	if currency := os.Getenv("SPENDSORT_CURRENCY"); currency != "" {
		c.Currency = currency
	}

	if port := os.Getenv("SPENDSORT_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SPENDSORT_PORT %q: %w", port, err)
		}
		c.Port = p
	}

	if ttl := os.Getenv("SPENDSORT_UPLOAD_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid SPENDSORT_UPLOAD_TTL %q: %w", ttl, err)
		}
		c.UploadTTL = d
	}

	if level := os.Getenv("SPENDSORT_LOG_LEVEL"); level != "" {
		c.Logger.Level = logger.Level(level)
	}

	if format := os.Getenv("SPENDSORT_LOG_FORMAT"); format != "" {
		c.Logger.Format = logger.Format(format)
	}

	if output := os.Getenv("SPENDSORT_LOG_OUTPUT"); output != "" {
		c.Logger.Output = output
	}

	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Categories) == "" && c.Backend == BackendJSON {
		errs = append(errs, errors.New("categories file must not be empty"))
	}

	switch c.Backend {
	case BackendJSON:
	case BackendSQLite:
		if strings.TrimSpace(c.DB) == "" {
			errs = append(errs, errors.New("db must not be empty for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}

	if strings.TrimSpace(c.DateFormat) == "" {
		errs = append(errs, errors.New("date format must not be empty"))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}

	if c.UploadTTL <= 0 {
		errs = append(errs, fmt.Errorf("upload ttl must be positive, got %s", c.UploadTTL))
	}

	switch c.Logger.Level {
	case logger.LevelDebug, logger.LevelInfo, logger.LevelWarn, logger.LevelError:
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Logger.Level))
	}

	switch c.Logger.Format {
	case logger.FormatText, logger.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logger.Format))
	}

	return errors.Join(errs...)
}
