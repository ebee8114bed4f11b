package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig is a helper that writes a TOML config file to a temp directory
// and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing test config")
	return path
}

// clearEnv unsets the given variables for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

var allEnvKeys = []string{
	"AI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
	"AI_ENDPOINT", "AI_MODE", "PORT", "LOG_LEVEL",
}

func TestLoad_ValidConfig(t *testing.T) {
	clearEnv(t, allEnvKeys...)
	content := `
[ai]
provider = "anthropic"
api_key = "sk-test-key-123"
model = "claude-sonnet-4-5"
endpoint = "http://localhost:9999/v1/messages"
mode = "live"

[server]
port = 9090
auto_open_browser = false

[storage]
backend = "memory"
path = "/tmp/x.db"
key = "my_drafts"
api = "remote"
remote_latency_ms = 50

[log]
level = "debug"
`
	path := writeTestConfig(t, content)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.Equal(t, "sk-test-key-123", cfg.AI.APIKey)
	assert.Equal(t, "claude-sonnet-4-5", cfg.AI.Model)
	assert.Equal(t, "http://localhost:9999/v1/messages", cfg.AI.Endpoint)
	assert.False(t, cfg.AI.UseMock(), "live mode with a key should not use the mock")

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Server.AutoOpenBrowser)

	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "my_drafts", cfg.Storage.Key)
	assert.Equal(t, "remote", cfg.Storage.API)
	assert.Equal(t, 50*time.Millisecond, cfg.Storage.RemoteLatency())

	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoad_MissingFile_CreatesDefault(t *testing.T) {
	clearEnv(t, allEnvKeys...)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path, "default config file not created")

	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "live", cfg.AI.Mode)
	assert.True(t, cfg.AI.UseMock(), "no API key should select the mock")
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.AutoOpenBrowser)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "blog_ai_drafts", cfg.Storage.Key)
	assert.Equal(t, "local", cfg.Storage.API)
	assert.Equal(t, 300, cfg.Storage.RemoteLatencyMS)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	clearEnv(t, allEnvKeys...)
	content := `
[ai]
api_key = "sk-test"

[server]

[storage]
`
	path := writeTestConfig(t, content)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./data/drafts.db", cfg.Storage.Path)
	assert.Equal(t, 300, cfg.Storage.RemoteLatencyMS)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ExplicitZeroLatencyKept(t *testing.T) {
	clearEnv(t, allEnvKeys...)
	path := writeTestConfig(t, "[storage]\nremote_latency_ms = 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Storage.RemoteLatencyMS)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		env      map[string]string
		want     string
	}{
		{
			name:     "generic key",
			provider: "anthropic",
			env:      map[string]string{"AI_API_KEY": "from-env-generic"},
			want:     "from-env-generic",
		},
		{
			name:     "anthropic key",
			provider: "anthropic",
			env:      map[string]string{"ANTHROPIC_API_KEY": "from-env-anthropic"},
			want:     "from-env-anthropic",
		},
		{
			name:     "openai key",
			provider: "openai",
			env:      map[string]string{"OPENAI_API_KEY": "from-env-openai"},
			want:     "from-env-openai",
		},
		{
			name:     "openai key for chat provider",
			provider: "openai-chat",
			env:      map[string]string{"OPENAI_API_KEY": "from-env-openai"},
			want:     "from-env-openai",
		},
		{
			name:     "gemini key",
			provider: "gemini",
			env:      map[string]string{"GEMINI_API_KEY": "from-env-gemini"},
			want:     "from-env-gemini",
		},
		{
			name:     "provider key for another provider is ignored",
			provider: "gemini",
			env:      map[string]string{"OPENAI_API_KEY": "from-env-openai"},
			want:     "from-config",
		},
		{
			name:     "generic key takes precedence",
			provider: "anthropic",
			env: map[string]string{
				"ANTHROPIC_API_KEY": "from-env-anthropic",
				"AI_API_KEY":        "from-env-generic",
			},
			want: "from-env-generic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t, allEnvKeys...)
			content := `
[ai]
provider = "` + tt.provider + `"
api_key = "from-config"
`
			path := writeTestConfig(t, content)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.AI.APIKey)
		})
	}
}

func TestLoad_EnvVar_ModeEndpointPort(t *testing.T) {
	clearEnv(t, allEnvKeys...)
	path := writeTestConfig(t, "[ai]\napi_key = \"sk-test\"\n")
	t.Setenv("AI_MODE", "mock")
	t.Setenv("AI_ENDPOINT", "http://localhost:1234")
	t.Setenv("PORT", "9191")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.AI.UseMock(), "AI_MODE=mock should select the mock")
	assert.Equal(t, "http://localhost:1234", cfg.AI.Endpoint)
	assert.Equal(t, 9191, cfg.Server.Port)
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	clearEnv(t, allEnvKeys...)
	path := writeTestConfig(t, "")
	t.Setenv("PORT", "eighty")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t, allEnvKeys...)
	path := writeTestConfig(t, "[ai]\nprovider = \"gemini\"\n")
	envPath := filepath.Join(filepath.Dir(path), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("GEMINI_API_KEY=from-dotenv\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.AI.APIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown provider", content: "[ai]\nprovider = \"cohere\""},
		{name: "typo provider", content: "[ai]\nprovider = \"open ai\""},
		{name: "unknown mode", content: "[ai]\nmode = \"offline\""},
		{name: "zero port", content: "[server]\nport = 0"},
		{name: "negative port", content: "[server]\nport = -1"},
		{name: "port too high", content: "[server]\nport = 70000"},
		{name: "unknown storage backend", content: "[storage]\nbackend = \"redis\""},
		{name: "unknown storage api", content: "[storage]\napi = \"cloud\""},
		{name: "negative latency", content: "[storage]\nremote_latency_ms = -5"},
		{name: "malformed toml", content: "[ai\nprovider ="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t, allEnvKeys...)
			path := writeTestConfig(t, tt.content)

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, LogConfig{Level: tt.level}.SlogLevel())
		})
	}
}
