package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, cfg.Api.Timeout)
		assert.Equal(t, ":8090", cfg.Server.Addr)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://broker.internal:9000
  timeout: 3s
  retries: 5
server:
  addr: ":7000"
  session_ttl: 1h
logging:
  level: debug
timezone: Asia/Tehran
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "http://broker.internal:9000", cfg.Api.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.Api.Timeout)
		assert.EqualValues(t, 5, cfg.Api.Retries)
		assert.Equal(t, ":7000", cfg.Server.Addr)
		assert.Equal(t, time.Hour, cfg.Server.SessionTTL)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)

		loc, err := cfg.Location()
		require.NoError(t, err)
		assert.Equal(t, "Asia/Tehran", loc.String())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"BROKER_API_URL":     "http://other:8080",
		"BROKER_API_TIMEOUT": "250ms",
		"BROKER_API_RETRIES": "0",
		"LISTEN_ADDR":        ":9999",
		"LOG_FORMAT":         "json",
		"OTEL_ENABLED":       "TRUE",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))

	assert.Equal(t, "http://other:8080", cfg.Api.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Api.Timeout)
	assert.EqualValues(t, 0, cfg.Api.Retries)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Telemetry.Enabled)

	env["BROKER_API_TIMEOUT"] = "soon"
	assert.Error(t, cfg.applyEnv(lookup))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Api.Timeout = 0
	assert.Error(t, cfg.Validate())
}

func TestInitEnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DEV_ENV_FILENAME), []byte("BROKER_CLIENT_TEST_VAR=from-dev\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BROKER_CLIENT_TEST_VAR") })

	require.NoError(t, InitEnvironmentVariables(dir, "development"))
	assert.Equal(t, "from-dev", os.Getenv("BROKER_CLIENT_TEST_VAR"))

	require.NoError(t, InitEnvironmentVariables(dir, "production"))
}
