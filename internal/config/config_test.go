package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixelveil.yaml")
	content := `
bind: 127.0.0.1
port: 9100
api_key: sekrit
allowed_origins:
  - https://app.example.com
data_dir: /var/lib/pixelveil
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Bind)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "sekrit", cfg.APIKey)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "/var/lib/pixelveil", cfg.DataDir)
	assert.Equal(t, "127.0.0.1:9100", cfg.Addr())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault_EnvOverrides(t *testing.T) {
	t.Setenv("PIXELVEIL_PORT", "9999")
	t.Setenv("PIXELVEIL_API_KEY", "from-env")
	t.Setenv("PIXELVEIL_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("PIXELVEIL_MAX_UPLOAD_BYTES", "1048576")

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.MaxUploadBytes)
}

func TestLoadOrDefault_IgnoresBadUploadLimitEnv(t *testing.T) {
	t.Setenv("PIXELVEIL_MAX_UPLOAD_BYTES", "-5")

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
}

func TestLoadOrDefault_IgnoresBadPortEnv(t *testing.T) {
	t.Setenv("PIXELVEIL_PORT", "not-a-port")

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
}
