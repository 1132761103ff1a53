package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Record source types.
const (
	SourceCSV      = "csv"
	SourceJSON     = "json"
	SourcePostgres = "postgres"
)

// PostgreSQL drivers.
const (
	DriverPGX   = "pgx"
	DriverSQLDB = "sqldb"
	DriverSQLX  = "sqlx"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalidConfig is returned by Validate, joined with one error per violated rule.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the complete application configuration.
type Config struct {
	Catalog       CatalogConfig       `yaml:"catalog"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// CatalogConfig selects where the catalog is bootstrapped from.
type CatalogConfig struct {
	// Name overrides the name from the metadata row when not empty.
	Name string `yaml:"name"`

	// Source is one of csv, json, postgres (default: csv).
	Source string `yaml:"source"`

	// File is the path of the csv or json document.
	File string `yaml:"file"`
}

// PostgresConfig holds the settings of the postgres record source.
type PostgresConfig struct {
	DSN    string `yaml:"dsn"`
	Driver string `yaml:"driver"`
	Table  string `yaml:"table"`

	MaxConns        int32         `yaml:"maxConns"`
	MinConns        int32         `yaml:"minConns"`
	MaxConnLifetime time.Duration `yaml:"maxConnLifetime"`
	MaxConnIdleTime time.Duration `yaml:"maxConnIdleTime"`
	ConnectTimeout  time.Duration `yaml:"connectTimeout"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string `yaml:"level"`

	// Format is text or json (default: text).
	Format string `yaml:"format"`
}

// ObservabilityConfig controls the OpenTelemetry instrumentation of the catalog service.
type ObservabilityConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"serviceName"`
}

// Default returns the configuration used when nothing else is configured.
func Default() Config {
	return Config{
		Catalog: CatalogConfig{
			Source: SourceCSV,
		},
		Postgres: PostgresConfig{
			Driver:          DriverPGX,
			Table:           "catalog_records",
			MaxConns:        8,
			MinConns:        2,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 5 * time.Minute,
			ConnectTimeout:  5 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: FormatText,
		},
		Observability: ObservabilityConfig{
			ServiceName: "library-catalog",
		},
	}
}

// Validate checks the configuration and reports every violation at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Catalog.Source {
	case SourceCSV, SourceJSON:
		if strings.TrimSpace(c.Catalog.File) == "" {
			errs = append(errs, fmt.Errorf("catalog.file is required for source %q", c.Catalog.Source))
		}
	case SourcePostgres:
		errs = append(errs, c.Postgres.validate()...)
	default:
		errs = append(errs, fmt.Errorf("catalog.source must be one of csv, json, postgres, got %q", c.Catalog.Source))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}

	for name, d := range map[string]time.Duration{
		"server.readTimeout":     c.Server.ReadTimeout,
		"server.writeTimeout":    c.Server.WriteTimeout,
		"server.idleTimeout":     c.Server.IdleTimeout,
		"server.requestTimeout":  c.Server.RequestTimeout,
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}

	if !slices.Contains([]string{"debug", "info", "warn", "warning", "error"}, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level))
	}

	if !slices.Contains([]string{FormatText, FormatJSON}, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format))
	}

	if c.Observability.Enabled && c.Observability.ServiceName == "" {
		errs = append(errs, errors.New("observability.serviceName is required when observability is enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	return nil
}

func (p PostgresConfig) validate() []error {
	var errs []error

	if p.DSN == "" {
		errs = append(errs, errors.New("postgres.dsn is required for source postgres"))
	}

	if !slices.Contains([]string{DriverPGX, DriverSQLDB, DriverSQLX}, p.Driver) {
		errs = append(errs, fmt.Errorf("postgres.driver must be one of pgx, sqldb, sqlx, got %q", p.Driver))
	}

	if p.Table == "" {
		errs = append(errs, errors.New("postgres.table must not be empty"))
	}

	if p.MaxConns < 1 {
		errs = append(errs, errors.New("postgres.maxConns must be at least 1"))
	}

	if p.MinConns < 0 || p.MinConns > p.MaxConns {
		errs = append(errs, errors.New("postgres.minConns must be between 0 and postgres.maxConns"))
	}

	return errs
}
