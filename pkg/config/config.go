package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Agent   AgentConfig   `toml:"agent"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Tracing TracingConfig `toml:"tracing"`
	Audit   AuditConfig   `toml:"audit"`
}

type AgentConfig struct {
	Name            string `toml:"name"`
	Description     string `toml:"description"`
	Provider        string `toml:"provider"`
	Model           string `toml:"model"`
	APIKeyEnv       string `toml:"api_key_env"`
	BaseURL         string `toml:"base_url"`
	SystemPrompt    string `toml:"system_prompt"`
	MaxOutputTokens int    `toml:"max_output_tokens"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
	// ExternalURL is the base URL advertised on the agent card. Defaults to
	// a localhost URL derived from the port.
	ExternalURL string `toml:"external_url"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type TracingConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
}

type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	DSN     string `toml:"dsn"`
}

func Default() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:        "LocalGuide",
			Description: "Provides information about local attractions and destinations",
			Provider:    "openai",
			Model:       "gpt-4o-mini",
		},
		Server: ServerConfig{
			Bind: "loopback",
			Port: 8000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Audit: AuditConfig{
			Enabled: true,
			DSN:     filepath.Join(DataDir(), "localguide.db"),
		},
	}
}

var (
	current *Config
	mu      sync.RWMutex
)

func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Audit.DSN == "" {
		cfg.Audit.DSN = filepath.Join(DataDir(), "localguide.db")
	}

	mu.Lock()
	current = cfg
	mu.Unlock()

	return cfg, nil
}

func Current() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return Default()
	}
	return current
}

// LoadEnv reads a .env file from the working directory when present. Missing
// files are not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// BaseURL is the URL the agent card advertises.
func (s ServerConfig) BaseURL() string {
	if s.ExternalURL != "" {
		return s.ExternalURL
	}
	return fmt.Sprintf("http://localhost:%d", s.Port)
}

// APIKey resolves the provider API key from the configured environment
// variable, if any. Provider clients fall back to their own well-known
// variables when this is empty.
func (a AgentConfig) APIKey() string {
	if a.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(a.APIKeyEnv)
}

func DataDir() string {
	if dir := os.Getenv("LOCALGUIDE_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".localguide"
	}
	return filepath.Join(home, ".localguide")
}

func DefaultConfigPath() string {
	return filepath.Join(DataDir(), "localguide.toml")
}

func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
