// Package config provides configuration loading for the content orchestrator.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	LLM          LLMConfig          `yaml:"llm"`
	Conversation ConversationConfig `yaml:"conversation"`
	Recorder     RecorderConfig     `yaml:"recorder"`
}

// ServerConfig configures the HTTP layer.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`
	// RequestTimeout bounds one inbound generation request end to end.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// LLMConfig configures the generation backend.
type LLMConfig struct {
	// Provider selects the backend: "openai", an OpenAI-compatible gateway
	// via base_url, or "mock" for local runs.
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	// APIKey is used directly when set; otherwise APIKeyEnv names the
	// environment variable to read it from.
	APIKey    string `yaml:"api_key"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	// Timeout bounds a single backend call.
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
}

// ConversationConfig tunes the per-user history store.
type ConversationConfig struct {
	// TTL is how long an idle user's history survives.
	TTL time.Duration `yaml:"ttl"`
	// SweepInterval is how often expired records are evicted.
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// RecorderConfig configures the best-effort prompt audit boundary.
type RecorderConfig struct {
	// Endpoint is the audit-service URL; empty disables recording.
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: 60 * time.Second,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			Timeout:     30 * time.Second,
			Temperature: 0.7,
			MaxTokens:   2048,
		},
		Conversation: ConversationConfig{
			TTL:           24 * time.Hour,
			SweepInterval: time.Hour,
		},
		Recorder: RecorderConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// LoadFromFile reads a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Load reads the file at path when it exists, layered over the defaults.
// A missing file is not an error: the defaults stand.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	loaded, err := LoadFromFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	cfg.Merge(loaded)
	return cfg, nil
}

// Merge overlays non-zero values from other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.RequestTimeout > 0 {
		c.Server.RequestTimeout = other.Server.RequestTimeout
	}
	if other.LLM.Provider != "" {
		c.LLM.Provider = other.LLM.Provider
	}
	if other.LLM.Model != "" {
		c.LLM.Model = other.LLM.Model
	}
	if other.LLM.APIKey != "" {
		c.LLM.APIKey = other.LLM.APIKey
	}
	if other.LLM.APIKeyEnv != "" {
		c.LLM.APIKeyEnv = other.LLM.APIKeyEnv
	}
	if other.LLM.BaseURL != "" {
		c.LLM.BaseURL = other.LLM.BaseURL
	}
	if other.LLM.Timeout > 0 {
		c.LLM.Timeout = other.LLM.Timeout
	}
	if other.LLM.Temperature > 0 {
		c.LLM.Temperature = other.LLM.Temperature
	}
	if other.LLM.MaxTokens > 0 {
		c.LLM.MaxTokens = other.LLM.MaxTokens
	}
	if other.Conversation.TTL > 0 {
		c.Conversation.TTL = other.Conversation.TTL
	}
	if other.Conversation.SweepInterval > 0 {
		c.Conversation.SweepInterval = other.Conversation.SweepInterval
	}
	if other.Recorder.Endpoint != "" {
		c.Recorder.Endpoint = other.Recorder.Endpoint
	}
	if other.Recorder.Timeout > 0 {
		c.Recorder.Timeout = other.Recorder.Timeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return fmt.Errorf("llm.provider is required")
	}
	if c.LLM.Provider != "mock" && c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive")
	}
	if c.Conversation.TTL <= 0 {
		return fmt.Errorf("conversation.ttl must be positive")
	}
	return nil
}

// ResolveAPIKey returns the configured key, reading the environment when
// only api_key_env is set.
func (c LLMConfig) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.APIKeyEnv != "" {
		return os.Getenv(c.APIKeyEnv)
	}
	return ""
}
