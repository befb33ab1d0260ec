package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: ":9090"
upstream_url: http://intel.local/api
poll_interval: 5s
canvas_width: 640
`), 0644))

	t.Setenv("GHOSTQUANT_PORT", ":7070")
	t.Setenv("GHOSTQUANT_REDIS_ADDR", "localhost:6379")
	t.Setenv("GHOSTQUANT_SNAPSHOT_RETENTION", "25")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Port)
	assert.Equal(t, "http://intel.local/api", cfg.UpstreamURL)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 640.0, cfg.CanvasWidth)
	assert.Equal(t, 800.0, cfg.CanvasHeight)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 25, cfg.SnapshotRetention)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.UpstreamURL = "http://intel.local"
	cfg.CacheTTL = 90 * time.Second
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }},
		{"zero canvas", func(c *Config) { c.CanvasWidth = 0 }},
		{"zero max nodes", func(c *Config) { c.MaxNodes = 0 }},
		{"negative retention", func(c *Config) { c.SnapshotRetention = -1 }},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(PathEnv, "")
	assert.Equal(t, DefaultPath, Path())

	t.Setenv(PathEnv, "/etc/ghostquant.yaml")
	assert.Equal(t, "/etc/ghostquant.yaml", Path())
}
