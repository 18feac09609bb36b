package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
env: prod
http_server:
  address: 0.0.0.0:9090
sessions:
  ttl: 5m
pages:
  per_page: 20
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg := MustLoad(path)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "0.0.0.0:9090", cfg.Address)
	assert.Equal(t, 5*time.Minute, cfg.Sessions.TTL)
	assert.Equal(t, 20, cfg.Pages.PerPage)
	// unset values keep their defaults
	assert.Equal(t, "session_id", cfg.Sessions.CookieName)
}

func TestMustLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := MustLoad(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost:8080", cfg.Address)
	assert.Equal(t, time.Minute, cfg.Sessions.TTL)
	assert.Equal(t, 10, cfg.Pages.PerPage)
	assert.Equal(t, 25, cfg.Pages.SeedMessages)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/override.db")
	cfg := MustLoad("")
	assert.Equal(t, "/tmp/override.db", cfg.Storage.Path)
}
