package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBDriver string `env:"BLOGLY_DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"BLOGLY_DB_DSN"    envDefault:"blogly.db"`
	SQLEcho  bool   `env:"BLOGLY_SQL_ECHO"  envDefault:"false"`

	LogLevel  string `env:"BLOGLY_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"BLOGLY_LOG_FORMAT" envDefault:"console"`
	GinMode   string `env:"GIN_MODE"          envDefault:"release"`

	ReadTimeout     time.Duration `env:"BLOGLY_READ_TIMEOUT"     envDefault:"30s"`
	WriteTimeout    time.Duration `env:"BLOGLY_WRITE_TIMEOUT"    envDefault:"30s"`
	IdleTimeout     time.Duration `env:"BLOGLY_IDLE_TIMEOUT"     envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"BLOGLY_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load reads any of the given .env files that exist, then parses the
// environment into a Config. Variables already set in the environment win
// over values from the files.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that have a fixed set of choices
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("database DSN is required")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported gin mode %q", c.GinMode)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}
