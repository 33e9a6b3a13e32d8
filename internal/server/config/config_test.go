package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"vaultd"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.False(t, cfg.InMemory)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_JsonAndFlags(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	body := `{"endpoint_addr": ":9090", "secret_key": "prod", "shutdown_timeout": "10s"}`
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))

	resetArgs(t, "-c", file, "-a", ":7070", "-inmemory")

	cfg := LoadConfig()

	// flags win over JSON
	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, "prod", cfg.SecretKey)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.InMemory)
}

func TestLoadConfig_EnvSecrets(t *testing.T) {
	resetArgs(t)
	t.Setenv("VAULTD_SECRET_KEY", "from-env")
	t.Setenv("VAULTD_DATABASE_DSN", "postgres://elsewhere/db")

	cfg := LoadConfig()

	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, "postgres://elsewhere/db", cfg.DatabaseDSN)
}
