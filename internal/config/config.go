package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	AI      AIConfig      `toml:"ai"`
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// AIConfig holds content assistant settings.
type AIConfig struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
	Endpoint string `toml:"endpoint"`
	Mode     string `toml:"mode"` // "live" | "mock"
}

// UseMock reports whether the simulated backend should be used instead of
// the configured provider.
func (c AIConfig) UseMock() bool {
	return c.Mode == "mock" || c.APIKey == ""
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `toml:"port"`
	AutoOpenBrowser bool `toml:"auto_open_browser"`
}

// StorageConfig holds draft persistence settings.
type StorageConfig struct {
	Backend         string `toml:"backend"` // "sqlite" | "memory"
	Path            string `toml:"path"`
	Key             string `toml:"key"`
	API             string `toml:"api"` // "local" | "remote"
	RemoteLatencyMS int    `toml:"remote_latency_ms"`
}

// RemoteLatency returns the simulated remote API delay.
func (c StorageConfig) RemoteLatency() time.Duration {
	return time.Duration(c.RemoteLatencyMS) * time.Millisecond
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// SlogLevel maps Level to a slog.Level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const defaultConfigContent = `[ai]
provider = "openai"               # "openai", "openai-chat", "anthropic" or "gemini"
api_key = ""                      # Your API key (or set AI_API_KEY env var)
model = ""                        # Empty selects the provider's default model
endpoint = ""                     # Override the provider URL
mode = "live"                     # "live" or "mock" (mock is used when api_key is empty)

[server]
port = 8080
auto_open_browser = true

[storage]
backend = "sqlite"                # "sqlite" or "memory"
path = "./data/drafts.db"
key = "blog_ai_drafts"
api = "local"                     # "local" or "remote" (simulated latency-bearing API)
remote_latency_ms = 300

[log]
level = "info"
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. A .env file next
// to the config is loaded into the environment first, then environment
// variables override values from the file with highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// "port = 0" is an error rather than silently becoming the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg, md)
	loadDotEnv(filepath.Join(filepath.Dir(path), ".env"))
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// loadDotEnv loads variables from a .env file without overriding variables
// that are already set. A missing file is ignored.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		slog.Warn("failed to load .env file", "path", path, "error", err)
		return
	}
	slog.Debug("loaded .env file", "path", path)
}

// validateExplicit checks values that were explicitly set in the TOML file.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("storage", "remote_latency_ms") {
		if cfg.Storage.RemoteLatencyMS < 0 {
			return fmt.Errorf("invalid storage.remote_latency_ms %d: must be >= 0", cfg.Storage.RemoteLatencyMS)
		}
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config, md toml.MetaData) {
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "openai"
	}
	if cfg.AI.Mode == "" {
		cfg.AI.Mode = "live"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "sqlite"
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "./data/drafts.db"
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = "blog_ai_drafts"
	}
	if cfg.Storage.API == "" {
		cfg.Storage.API = "local"
	}
	// Zero latency is a legitimate explicit choice.
	if !md.IsDefined("storage", "remote_latency_ms") {
		cfg.Storage.RemoteLatencyMS = 300
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for ai.api_key:
//  1. AI_API_KEY (generic, highest)
//  2. OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY, matching the provider
func applyEnvOverrides(cfg *Config) error {
	var providerKey string
	switch cfg.AI.Provider {
	case "openai", "openai-chat":
		providerKey = "OPENAI_API_KEY"
	case "anthropic":
		providerKey = "ANTHROPIC_API_KEY"
	case "gemini":
		providerKey = "GEMINI_API_KEY"
	}
	if v := os.Getenv(providerKey); providerKey != "" && v != "" {
		cfg.AI.APIKey = v
	}

	if v := os.Getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("AI_ENDPOINT"); v != "" {
		cfg.AI.Endpoint = v
	}
	if v := os.Getenv("AI_MODE"); v != "" {
		cfg.AI.Mode = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "openai", "openai-chat", "anthropic", "gemini":
		// valid
	default:
		return fmt.Errorf("invalid ai.provider %q: must be \"openai\", \"openai-chat\", \"anthropic\" or \"gemini\"", cfg.AI.Provider)
	}

	switch cfg.AI.Mode {
	case "live", "mock":
	default:
		return fmt.Errorf("invalid ai.mode %q: must be \"live\" or \"mock\"", cfg.AI.Mode)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	switch cfg.Storage.Backend {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("invalid storage.backend %q: must be \"sqlite\" or \"memory\"", cfg.Storage.Backend)
	}

	switch cfg.Storage.API {
	case "local", "remote":
	default:
		return fmt.Errorf("invalid storage.api %q: must be \"local\" or \"remote\"", cfg.Storage.API)
	}

	if cfg.AI.APIKey == "" && cfg.AI.Mode == "live" {
		slog.Warn("ai.api_key is empty: using the mock assistant; set it in the config file or via AI_API_KEY")
	}

	return nil
}
