package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mindwave.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Empty(t, cfg.Admin.Names)
	assert.Equal(t, "localhost:8080", cfg.ListenAddr())
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

admin {
  names  = ["Overseer", "Backstage"]
  secret = "hunter2"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, []string{"Overseer", "Backstage"}, cfg.Admin.Names)
	assert.Equal(t, "hunter2", cfg.Admin.Secret)
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
server {
  port = 3000
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	require.NotNil(t, cfg.Admin, "missing admin block decodes to empty settings")
}

func TestLoadMalformedHCL(t *testing.T) {
	path := writeConfig(t, `server { port = `)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("admin names without secret", func(t *testing.T) {
		cfg := Default()
		cfg.Admin.Names = []string{"Overseer"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("admin names with secret", func(t *testing.T) {
		cfg := Default()
		cfg.Admin.Names = []string{"Overseer"}
		cfg.Admin.Secret = "s3cret"
		assert.NoError(t, cfg.Validate())
	})
}
