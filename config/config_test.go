package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"TDS_VARIANT", "TDS_LISTEN_ADDR", "OPENAI_API_KEY", "TDS_AI_URL", "TDS_AI_MODEL",
	"TDS_AI_TIMEOUT", "TDS_SETTINGS_STORE", "SQLITE_PATH", "REDIS_ADDR", "REDIS_PASSWORD",
	"REDIS_DB",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "income_tax", cfg.Variant)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 0.7, cfg.AI.Temperature)
	assert.Equal(t, 500, cfg.AI.MaxTokens)
	assert.Equal(t, StoreSQLite, cfg.Settings.Store)
	assert.Equal(t, "data/settings.db", cfg.Settings.SQLitePath)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
variant: water_quality
server:
  addr: ":9090"
  read_timeout: 5s
rate_limit:
  requests: 10
  window: 30s
ai:
  model: gpt-4o
  temperature: 0
  timeout: 10s
settings:
  store: memory
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "water_quality", cfg.Variant)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Zero(t, cfg.AI.Temperature)
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout)
	assert.Equal(t, StoreMemory, cfg.Settings.Store)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TDS_AI_MODEL", "env-model")
	t.Setenv("TDS_AI_TIMEOUT", "3s")
	t.Setenv("TDS_SETTINGS_STORE", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	path := writeConfig(t, "ai:\n  model: file-model\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "env-model", cfg.AI.Model)
	assert.Equal(t, 3*time.Second, cfg.AI.Timeout)
	assert.Equal(t, StoreRedis, cfg.Settings.Store)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown variant", func(c *Config) { c.Variant = "payroll" }, "variant"},
		{"unknown store", func(c *Config) { c.Settings.Store = "etcd" }, "settings.store"},
		{"redis without addr", func(c *Config) { c.Settings.Store = StoreRedis }, "redis.addr"},
		{"negative rate limit", func(c *Config) { c.RateLimit.Requests = -1 }, "rate_limit"},
		{"negative timeout", func(c *Config) { c.AI.Timeout = -time.Second }, "ai.timeout"},
		{"temperature too high", func(c *Config) { c.AI.Temperature = 3 }, "ai.temperature"},
		{"negative max tokens", func(c *Config) { c.AI.MaxTokens = -1 }, "ai.max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
