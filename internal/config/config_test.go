package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad_ValidConfig(t *testing.T) {
	configContent := `
env: development
mongo_connection:
  uri: "mongodb://localhost:27017"
  database: "tours_test"
  timeout: 10s
redis_connection:
  addressredis: "localhost:6379"
  password: "redis_pass"
  user: "redis_user"
  db: 1
  max_retries: 3
  dial_timeout: 5s
  timeoutredis: 10s
http_server:
  addresshttp: ":3000"
  timeouthttp: 30s
  idle_timeout: 60s
jwttoken:
  jwt_secret_key: "test_secret_key"
  token_ttl: 5m
reset_token:
  reset_token_ttl: 10m
smtp:
  smtp_host: "smtp.example.com"
  smtp_port: "587"
  smtp_user: "mailer"
  smtp_pass: "mailer_pass"
  smtp_from: "Admin <hello@example.com>"
`

	tmpFile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer func() {
		err = os.Remove(tmpFile.Name())
		require.NoError(t, err)
	}()

	_, err = tmpFile.WriteString(configContent)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	t.Setenv("CONFIG_PATH", tmpFile.Name())

	cfg := MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "mongodb://localhost:27017", cfg.URI)
	assert.Equal(t, "tours_test", cfg.Database)
	assert.Equal(t, ":3000", cfg.AddressHTTP)
	assert.Equal(t, "test_secret_key", cfg.JWTSecretKey)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.ResetTokenTTL)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, "Admin <hello@example.com>", cfg.SMTPFrom)
}

func TestMustLoad_EnvOverride(t *testing.T) {
	configContent := `
env: development
mongo_connection:
  uri: "mongodb://localhost:27017"
  database: "tours_test"
jwttoken:
  jwt_secret_key: "from_file"
`

	tmpFile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer func() {
		err = os.Remove(tmpFile.Name())
		require.NoError(t, err)
	}()

	_, err = tmpFile.WriteString(configContent)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	t.Setenv("CONFIG_PATH", tmpFile.Name())
	t.Setenv("JWT_SECRET", "from_env")

	cfg := MustLoad()

	assert.Equal(t, "from_env", cfg.JWTSecretKey)
}

func TestMustLoad_Defaults(t *testing.T) {
	configContent := `
mongo_connection:
  uri: "mongodb://localhost:27017"
  database: "tours_test"
`

	tmpFile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer func() {
		err = os.Remove(tmpFile.Name())
		require.NoError(t, err)
	}()

	_, err = tmpFile.WriteString(configContent)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	t.Setenv("CONFIG_PATH", tmpFile.Name())

	cfg := MustLoad()

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, ":3000", cfg.AddressHTTP)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.ResetTokenTTL)
	assert.Equal(t, "587", cfg.SMTPPort)
}
