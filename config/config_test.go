package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Conversation.TTL)
	assert.Equal(t, time.Hour, cfg.Conversation.SweepInterval)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
llm:
  model: my-model
  temperature: 0.2
conversation:
  ttl: 48h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "my-model", cfg.LLM.Model)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	assert.Equal(t, 48*time.Hour, cfg.Conversation.TTL)
	// Untouched fields keep their defaults.
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Model = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.LLM.Provider = "mock"
	cfg.LLM.Model = ""
	assert.NoError(t, cfg.Validate(), "mock provider needs no model")

	cfg = DefaultConfig()
	cfg.Conversation.TTL = 0
	assert.Error(t, cfg.Validate())
}

func TestResolveAPIKey(t *testing.T) {
	llm := LLMConfig{APIKey: "direct"}
	assert.Equal(t, "direct", llm.ResolveAPIKey())

	t.Setenv("TEST_ORCH_KEY", "from-env")
	llm = LLMConfig{APIKeyEnv: "TEST_ORCH_KEY"}
	assert.Equal(t, "from-env", llm.ResolveAPIKey())

	assert.Empty(t, LLMConfig{}.ResolveAPIKey())
}
