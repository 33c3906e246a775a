package sitecfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "15s", cfg.Server.ReadTimeout)
	assert.Equal(t, "15s", cfg.Server.WriteTimeout)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "dist", cfg.Export.Dir)
	assert.Equal(t, "us-east-1", cfg.Export.S3Region)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.False(t, cfg.Logger.Development)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SITESMITH_SERVER_ADDRESS", ":9090")
	t.Setenv("SITESMITH_DATABASE_URL", "postgres://localhost/sitesmith?sslmode=disable")
	t.Setenv("SITESMITH_LOGGER_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "postgres://localhost/sitesmith?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitesmith.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":3000"
export:
  dir: out
  s3_bucket: acme-sites
logger:
  level: warn
  development: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Address)
	assert.Equal(t, "out", cfg.Export.Dir)
	assert.Equal(t, "acme-sites", cfg.Export.S3Bucket)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.True(t, cfg.Logger.Development)
	// Untouched keys keep their defaults.
	assert.Equal(t, "15s", cfg.Server.ReadTimeout)
}

func TestLoadFileEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitesmith.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \":3000\"\n"), 0o644))

	t.Setenv("SITESMITH_SERVER_ADDRESS", ":4000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.Server.Address)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
