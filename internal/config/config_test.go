package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samueldk12/trainer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Server.EnableSeed)
	assert.Equal(t, config.DriverMongo, cfg.Database.Driver)
	assert.Equal(t, config.AuthModeProvisional, cfg.Auth.Mode)
	assert.Equal(t, time.Hour, cfg.Auth.JWT.Expiration)
	assert.Equal(t, "user@test.com", cfg.Auth.Provisional.Email)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, 15*time.Minute, cfg.S3.UploadExpiry)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Stdout)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
  enable_seed: true
database:
  driver: memory
auth:
  mode: jwt
  jwt:
    secret: file-secret
    expiration: 30m
s3:
  bucket_name: images
log:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("SERVER_ADDRESS", ":7070")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.True(t, cfg.Server.EnableSeed)
	assert.Equal(t, config.DriverMemory, cfg.Database.Driver)
	assert.Equal(t, config.AuthModeJWT, cfg.Auth.Mode)
	assert.Equal(t, "env-secret", cfg.Auth.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.JWT.Expiration)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown driver":     "database:\n  driver: sqlite\n",
		"unknown auth mode":  "auth:\n  mode: oauth\n",
		"jwt without secret": "auth:\n  mode: jwt\n",
		"broken yaml":        "server: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
			_, err := config.LoadConfig(dir)
			assert.Error(t, err)
		})
	}
}
