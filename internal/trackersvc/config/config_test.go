package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("POSTGRES_URL", "postgres://localhost/tracker")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, DatabasePostgres, cfg.DatabaseType)
	assert.Equal(t, 300, cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "tracker.events", cfg.EventsSubject)
	assert.False(t, cfg.EventsEnabled())
}

func TestLoadSQLite(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DATABASE_TYPE", " SQLite ")
	t.Setenv("SQLITE_PATH", "/tmp/t.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DatabaseSQLite, cfg.DatabaseType)
	assert.Equal(t, "/tmp/t.db", cfg.SQLitePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.EventsEnabled())
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("POSTGRES_URL", "postgres://localhost/tracker")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{DatabaseType: DatabasePostgres, PostgresURL: "postgres://x", RateLimit: 10}
	require.NoError(t, base.Validate())

	noURL := base
	noURL.PostgresURL = ""
	assert.Error(t, noURL.Validate())

	unknown := base
	unknown.DatabaseType = "mysql"
	assert.Error(t, unknown.Validate())

	noRate := base
	noRate.RateLimit = 0
	assert.Error(t, noRate.Validate())
}
