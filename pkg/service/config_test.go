package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"LIVEKIT_URL", "LIVEKIT_API_KEY", "LIVEKIT_API_SECRET",
		"HTTP_PORT", "TOKEN_TTL", "STORE_REAP_MODE", "REDIS_URL", "CACHE_TTL",
	} {
		t.Setenv(name, "")
	}
}

func writeRuntimeConfig(t *testing.T, body string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), ".runtimeconfig.json")
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
	return file
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(WithRuntimeConfigFile(filepath.Join(t.TempDir(), "missing.json")))
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.HTTP.Port)
	assert.Equal(t, 6*time.Hour, cfg.Token.TTL)
	assert.True(t, cfg.Store.Seed)
	assert.Equal(t, time.Minute, cfg.Store.ReapInterval)
	assert.Equal(t, 60*time.Minute, cfg.Store.IdleThreshold)
	assert.Equal(t, "deactivate", cfg.Store.ReapMode)
	assert.Zero(t, cfg.Cache.TTL)
	assert.Equal(t, "salon-server", cfg.Tracing.ServiceName)
	assert.False(t, cfg.Livekit.HasCredentials())
}

func TestLoadConfig_EnvOverridesRuntimeConfig(t *testing.T) {
	clearEnv(t)
	file := writeRuntimeConfig(t, `{
		"livekit": {"url": "wss://file.livekit.cloud", "api_key": "file-key", "api_secret": "file-secret"},
		"store": {"reap_mode": "remove"}
	}`)
	t.Setenv("LIVEKIT_API_KEY", "env-key")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := LoadConfig(WithRuntimeConfigFile(file))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Livekit.APIKey)
	assert.Equal(t, "file-secret", cfg.Livekit.APISecret)
	assert.Equal(t, "wss://file.livekit.cloud", cfg.Livekit.URL)
	assert.Equal(t, "remove", cfg.Store.ReapMode)
	assert.Equal(t, 30*time.Minute, cfg.Token.TTL)
	assert.True(t, cfg.Livekit.HasCredentials())
}

func TestLoadConfig_MalformedRuntimeConfig(t *testing.T) {
	clearEnv(t)
	file := writeRuntimeConfig(t, `{"livekit":`)

	_, err := LoadConfig(WithRuntimeConfigFile(file))
	assert.Error(t, err)
}
