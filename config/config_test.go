package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.System.Listen)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "Asia/Manila", cfg.System.Location)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Empty(t, cfg.Admin.Password)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greenbasket.yml")
	data := `
system:
  listen: ":9000"
  debug: false
database:
  type: sqlite
  name: /tmp/greenbasket.db
session:
  secret: file-secret
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.System.Listen)
	assert.False(t, cfg.System.Debug)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/tmp/greenbasket.db", cfg.Database.Name)
	assert.Equal(t, "file-secret", cfg.Session.Secret)
	// untouched sections keep their defaults
	assert.Equal(t, "Asia/Manila", cfg.System.Location)
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("system: [not a map"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("GREENBASKET_LISTEN", ":7777")
	t.Setenv("GREENBASKET_DB_TYPE", "sqlite")
	t.Setenv("GREENBASKET_DB_PORT", "15432")
	t.Setenv("GREENBASKET_DEBUG", "false")
	t.Setenv("GREENBASKET_ADMIN_USERNAME", "boss")
	t.Setenv("GREENBASKET_ADMIN_PASSWORD", "s3cret")
	t.Setenv("GREENBASKET_ADMIN_EMAIL", "boss@example.com")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.System.Listen)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 15432, cfg.Database.Port)
	assert.False(t, cfg.System.Debug)
	assert.Equal(t, "boss", cfg.Admin.Username)
	assert.Equal(t, "s3cret", cfg.Admin.Password)
	assert.Equal(t, "boss@example.com", cfg.Admin.Email)
}

func TestEnvOverridesIgnoreBadValues(t *testing.T) {
	t.Setenv("GREENBASKET_DB_PORT", "not-a-number")
	t.Setenv("GREENBASKET_DEBUG", "maybe")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.System.Debug)
}
