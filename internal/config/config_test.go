package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("TABLY_API_KEY", "secret-key")

	raw := `
store:
  id: 42
backend:
  base_url: https://api.example.com
  api_key: ${TABLY_API_KEY}
  cache_ttl_seconds: 30
redis:
  address: localhost:6379
monitoring:
  prometheus_enabled: true
  prometheus_port: 9091
`
	assert.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Store.ID)
	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "secret-key", cfg.Backend.APIKey)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())

	// Defaults
	assert.Equal(t, 8090, cfg.Monitoring.HealthCheckPort)
	assert.Equal(t, 5, cfg.Backend.RateLimitBurst)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
