package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_FileValues(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9001"
  mode: debug
jwt:
  secret: test-secret
  expire_hours: 2
database:
  driver: sqlite
  path: ":memory:"
storage:
  type: minio
program:
  target_minutes: 600
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, 600, cfg.Program.TargetMinutes)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "5 0 * * *", cfg.Jobs.FreezeCron)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, `
jwt:
  secret: file-secret
storage:
  type: minio
`)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DRIVER", "postgres")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestLoadConfig_ReleaseRejectsShortSecret(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
storage:
  type: minio
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestValidate(t *testing.T) {
	base := Config{
		JWT:      JWTConfig{Secret: "s"},
		Database: DatabaseConfig{Driver: "mysql"},
		Program:  ProgramConfig{TargetMinutes: 1200},
	}
	assert.NoError(t, base.Validate())

	bad := base
	bad.Database.Driver = "oracle"
	assert.Error(t, bad.Validate())

	bad = base
	bad.JWT.Secret = ""
	assert.Error(t, bad.Validate())

	bad = base
	bad.Program.TargetMinutes = 0
	assert.Error(t, bad.Validate())
}
