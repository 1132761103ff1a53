package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultEnvFile = ".env"
	envPrefix      = "LIBRARY_"
)

var (
	// ErrReadingConfigFileFailed is returned when the YAML file cannot be read.
	ErrReadingConfigFileFailed = errors.New("reading config file failed")

	// ErrParsingConfigFileFailed is returned when the YAML file is malformed.
	ErrParsingConfigFileFailed = errors.New("parsing config file failed")

	// ErrReadingEnvFileFailed is returned when an existing .env file cannot be parsed.
	ErrReadingEnvFileFailed = errors.New("reading env file failed")

	// ErrInvalidEnvValue is returned when an environment variable cannot be converted.
	ErrInvalidEnvValue = errors.New("invalid environment variable value")
)

type loader struct {
	envFile   string
	lookupEnv func(string) (string, bool)
	overrides []func(*Config)
}

// Option defines a functional option for Load.
type Option func(*loader)

// WithEnvFile sets the .env file to read, the default is ".env" in the working directory.
// A missing file is not an error. An empty path disables the .env step.
func WithEnvFile(path string) Option {
	return func(l *loader) {
		l.envFile = path
	}
}

// WithLookupEnv replaces os.LookupEnv as the source of environment variables.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(l *loader) {
		l.lookupEnv = lookup
	}
}

// WithOverride registers a function that adjusts the loaded configuration before validation.
// Overrides run in the order they were given.
func WithOverride(override func(*Config)) Option {
	return func(l *loader) {
		l.overrides = append(l.overrides, override)
	}
}

// Load builds the configuration. path names an optional YAML file, empty means no file.
//
// Variables from the process environment win over the ones from the .env file, which is
// never written to the process environment.
func Load(path string, options ...Option) (Config, error) {
	l := loader{
		envFile:   defaultEnvFile,
		lookupEnv: os.LookupEnv,
	}

	for _, option := range options {
		option(&l)
	}

	cfg := Default()

	if path != "" {
		if err := readYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readEnvFile(l.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if value, ok := l.lookupEnv(key); ok {
			return value, true
		}

		value, ok := dotenv[key]

		return value, ok
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	for _, override := range l.overrides {
		override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func readYAML(path string, cfg *Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingConfigFileFailed, err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return errors.Join(ErrParsingConfigFileFailed, err)
	}

	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, errors.Join(ErrReadingEnvFileFailed, err)
	}

	return values, nil
}

// applyEnv overrides cfg with every LIBRARY_* variable lookup knows about.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"CATALOG_NAME":      &cfg.Catalog.Name,
		"CATALOG_SOURCE":    &cfg.Catalog.Source,
		"CATALOG_FILE":      &cfg.Catalog.File,
		"POSTGRES_DSN":      &cfg.Postgres.DSN,
		"POSTGRES_DRIVER":   &cfg.Postgres.Driver,
		"POSTGRES_TABLE":    &cfg.Postgres.Table,
		"SERVER_ADDR":       &cfg.Server.Addr,
		"LOG_LEVEL":         &cfg.Logging.Level,
		"LOG_FORMAT":        &cfg.Logging.Format,
		"OTEL_SERVICE_NAME": &cfg.Observability.ServiceName,
	}

	int32s := map[string]*int32{
		"POSTGRES_MAX_CONNS": &cfg.Postgres.MaxConns,
		"POSTGRES_MIN_CONNS": &cfg.Postgres.MinConns,
	}

	durations := map[string]*time.Duration{
		"POSTGRES_MAX_CONN_LIFETIME":  &cfg.Postgres.MaxConnLifetime,
		"POSTGRES_MAX_CONN_IDLE_TIME": &cfg.Postgres.MaxConnIdleTime,
		"POSTGRES_CONNECT_TIMEOUT":    &cfg.Postgres.ConnectTimeout,
		"SERVER_READ_TIMEOUT":         &cfg.Server.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":        &cfg.Server.WriteTimeout,
		"SERVER_IDLE_TIMEOUT":         &cfg.Server.IdleTimeout,
		"SERVER_REQUEST_TIMEOUT":      &cfg.Server.RequestTimeout,
		"SERVER_SHUTDOWN_TIMEOUT":     &cfg.Server.ShutdownTimeout,
	}

	bools := map[string]*bool{
		"OTEL_ENABLED": &cfg.Observability.Enabled,
	}

	for key, target := range strs {
		if value, ok := lookup(envPrefix + key); ok {
			*target = strings.TrimSpace(value)
		}
	}

	for key, target := range int32s {
		value, ok := lookup(envPrefix + key)
		if !ok {
			continue
		}

		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
		if err != nil {
			return envValueError(key, value, err)
		}

		*target = int32(n)
	}

	for key, target := range durations {
		value, ok := lookup(envPrefix + key)
		if !ok {
			continue
		}

		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return envValueError(key, value, err)
		}

		*target = d
	}

	for key, target := range bools {
		value, ok := lookup(envPrefix + key)
		if !ok {
			continue
		}

		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return envValueError(key, value, err)
		}

		*target = b
	}

	return nil
}

func envValueError(key string, value string, err error) error {
	return errors.Join(ErrInvalidEnvValue, fmt.Errorf("%s%s=%q: %w", envPrefix, key, value, err))
}
