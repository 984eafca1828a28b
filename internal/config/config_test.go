package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.False(t, cfg.LLM.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"https base url", func(c *Config) { c.API.BaseURL = "https://prep.example.com/" }, false},
		{"ftp base url", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, true},
		{"base url without host", func(c *Config) { c.API.BaseURL = "http://" }, true},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"uppercase log level", func(c *Config) { c.Log.Level = "DEBUG" }, false},
		{"llm provider without key", func(c *Config) { c.LLM.Provider = "anthropic" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(env(map[string]string{
		"PREPDECK_API_BASE_URL":       "http://backend:9000",
		"PREPDECK_API_TIMEOUT":        "5s",
		"PREPDECK_DEFAULT_PROBLEM_ID": "two-sum",
		"PREPDECK_DB":                 "/tmp/prep.db",
		"PREPDECK_LOG_LEVEL":          "debug",
		"PREPDECK_METRICS_ADDR":       "127.0.0.1:9464",
		"PREPDECK_LLM_PROVIDER":       "gemini",
		"PREPDECK_GEMINI_API_KEY":     "g-key",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "two-sum", cfg.API.DefaultProblemID)
	assert.Equal(t, "/tmp/prep.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
}

func TestApplyEnv_BadTimeout(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(env(map[string]string{"PREPDECK_API_TIMEOUT": "soon"}))
	assert.Error(t, err)
}

func TestApplyEnv_DiscoversProvider(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{"OPENAI_API_KEY": "sk"})))
	assert.Equal(t, "openai", cfg.LLM.Provider)

	cfg = DefaultConfig()
	cfg.LLM.Provider = "none"
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{"OPENAI_API_KEY": "sk"})))
	assert.Equal(t, "none", cfg.LLM.Provider)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://prep.example.com
  timeout: 12s
log:
  level: warn
llm:
  provider: none
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://prep.example.com", cfg.API.BaseURL)
	assert.Equal(t, 12*time.Second, cfg.API.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.LLM.Enabled())
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model, "unset fields keep defaults")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("PREPDECK_CONFIG", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("PREPDECK_DEFAULT_PROBLEM_ID=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PREPDECK_DEFAULT_PROBLEM_ID") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.API.DefaultProblemID)
}
