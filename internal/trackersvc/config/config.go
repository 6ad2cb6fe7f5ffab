package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// Config is the tracker service configuration, read from the environment.
type Config struct {
	Port           string        `env:"TRACKER_SERVICE_PORT" envDefault:"7000"`
	DatabaseType   string        `env:"DATABASE_TYPE" envDefault:"postgres"`
	PostgresURL    string        `env:"POSTGRES_URL"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"./data/tracker.db"`
	JWTSecret      string        `env:"JWT_SECRET_KEY,required,notEmpty"`
	RateLimit      int           `env:"RATE_LIMIT" envDefault:"300"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	NatsURL        string        `env:"NATS_URL"`
	NatsToken      string        `env:"NATS_TOKEN"`
	EventsSubject  string        `env:"TRACKER_EVENTS_SUBJECT" envDefault:"tracker.events"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogDir         string        `env:"LOG_DIR"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DatabaseType = strings.ToLower(strings.TrimSpace(cfg.DatabaseType))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DatabaseType {
	case DatabasePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when DATABASE_TYPE=%s", DatabasePostgres)
		}
	case DatabaseSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DATABASE_TYPE=%s", DatabaseSQLite)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_TYPE %q", c.DatabaseType)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	return nil
}

// EventsEnabled reports whether tracker events go to NATS.
func (c Config) EventsEnabled() bool {
	return c.NatsURL != ""
}
