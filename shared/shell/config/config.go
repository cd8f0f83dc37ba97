package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// AdapterPGX connects to Postgres through a pgx pool.
	AdapterPGX = "pgx"

	// AdapterSQL connects to Postgres through database/sql and lib/pq.
	AdapterSQL = "sql"

	// AdapterSQLX connects to Postgres through sqlx and lib/pq.
	AdapterSQLX = "sqlx"

	// AdapterSQLite opens a local SQLite rule database.
	AdapterSQLite = "sqlite"
)

// Environment variables that override the configuration file.
const (
	EnvAdapter  = "RULES_DB_ADAPTER"
	EnvHost     = "RULES_DB_HOST"
	EnvPort     = "RULES_DB_PORT"
	EnvName     = "RULES_DB_NAME"
	EnvSSLMode  = "RULES_DB_SSLMODE"
	EnvPath     = "RULES_DB_PATH"
	EnvLogLevel = "RULES_LOG_LEVEL"
)

const (
	defaultHost     = "localhost"
	defaultPort     = 5432
	defaultName     = "rules"
	defaultSSLMode  = "require"
	defaultLogLevel = "info"
)

var (
	// ErrReadingConfigFailed is returned when the configuration file cannot be read or parsed.
	ErrReadingConfigFailed = errors.New("reading configuration failed")

	// ErrInvalidConfig is returned when the configuration is incomplete or inconsistent.
	ErrInvalidConfig = errors.New("invalid configuration")
)

var knownAdapters = []string{AdapterPGX, AdapterSQL, AdapterSQLX, AdapterSQLite}

// Config is the complete configuration of the rule family analyzer.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig describes where the rule database lives. Path is only used by the sqlite adapter.
type DatabaseConfig struct {
	Adapter string      `yaml:"adapter"`
	Host    string      `yaml:"host"`
	Port    int         `yaml:"port"`
	Name    string      `yaml:"name"`
	SSLMode string      `yaml:"sslmode"`
	Path    string      `yaml:"path"`
	Tables  TableConfig `yaml:"tables"`
}

// TableConfig overrides individual table names; empty entries keep the default.
type TableConfig struct {
	Rules         string `yaml:"rules"`
	Outcomes      string `yaml:"outcomes"`
	Conditions    string `yaml:"conditions"`
	Jurisdictions string `yaml:"jurisdictions"`
	MatterTypes   string `yaml:"matter_types"`
}

// LogConfig configures the CLI's structured logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when neither a file nor environment variables say otherwise.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Adapter: AdapterPGX,
			Host:    defaultHost,
			Port:    defaultPort,
			Name:    defaultName,
			SSLMode: defaultSSLMode,
		},
		Log: LogConfig{Level: defaultLogLevel},
	}
}

// Load reads the YAML file at path (skipped when path is empty), applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadingConfigFailed, err)
		}

		if cfg, err = Parse(raw); err != nil {
			return Config{}, err
		}
	}

	cfg, err := cfg.WithEnv(os.LookupEnv)
	if err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Parse decodes YAML on top of the defaults.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Join(ErrReadingConfigFailed, err)
	}

	return cfg, nil
}

// WithEnv returns a copy of the configuration with the RULES_* variables found by lookup applied.
func (c Config) WithEnv(lookup func(key string) (string, bool)) (Config, error) {
	overrides := map[string]*string{
		EnvAdapter:  &c.Database.Adapter,
		EnvHost:     &c.Database.Host,
		EnvName:     &c.Database.Name,
		EnvSSLMode:  &c.Database.SSLMode,
		EnvPath:     &c.Database.Path,
		EnvLogLevel: &c.Log.Level,
	}

	for key, target := range overrides {
		if value, ok := lookup(key); ok && value != "" {
			*target = value
		}
	}

	if value, ok := lookup(EnvPort); ok && value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			return Config{}, errors.Join(ErrInvalidConfig, fmt.Errorf("%s: %w", EnvPort, err))
		}
		c.Database.Port = port
	}

	return c, nil
}

// Validate checks that the configuration can be used to open a session.
func (c Config) Validate() error {
	db := c.Database

	if !slices.Contains(knownAdapters, db.Adapter) {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("unknown database adapter %q", db.Adapter))
	}

	if db.Adapter == AdapterSQLite {
		if db.Path == "" {
			return errors.Join(ErrInvalidConfig, errors.New("sqlite adapter needs a database path"))
		}
		return nil
	}

	if db.Host == "" || db.Name == "" {
		return errors.Join(ErrInvalidConfig, errors.New("database host and name must be set"))
	}

	if db.Port <= 0 || db.Port > 65535 {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("database port %d out of range", db.Port))
	}

	return nil
}
