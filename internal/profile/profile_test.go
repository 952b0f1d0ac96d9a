package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultsAndModeNormalization(t *testing.T) {
	p := &Profile{Mode: "invalid"}
	require.NoError(t, p.Validate())
	assert.Equal(t, "demo", p.Mode)
	assert.Equal(t, "memory", p.Driver)
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	p := &Profile{Mode: "dev", Driver: "postgres"}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store driver")
}

func TestValidate_SqliteDSNDerivedFromMode(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{Mode: "prod", Driver: "sqlite", Data: dir}
	require.NoError(t, p.Validate())
	assert.Contains(t, p.DSN, "mindwell_prod.db")
}

func TestFromEnv_ProviderDefaults(t *testing.T) {
	t.Setenv("MINDWELL_LLM_PROVIDER", "deepseek")
	t.Setenv("MINDWELL_LLM_API_KEY", "key")
	t.Setenv("MINDWELL_LLM_BASE_URL", "")
	t.Setenv("MINDWELL_LLM_MODEL", "")

	p := &Profile{}
	p.FromEnv()
	assert.Equal(t, "https://api.deepseek.com", p.LLMBaseURL)
	assert.Equal(t, "deepseek-chat", p.LLMModel)
	assert.True(t, p.IsAIEnabled())
}

func TestFromEnv_UnknownProviderFallsBack(t *testing.T) {
	t.Setenv("MINDWELL_LLM_PROVIDER", "mystery")
	p := &Profile{}
	p.FromEnv()
	assert.Equal(t, "openai", p.LLMProvider)
	assert.Equal(t, "https://api.openai.com/v1", p.LLMBaseURL)
}

func TestListenAddr(t *testing.T) {
	p := &Profile{Addr: "127.0.0.1", Port: 28080}
	assert.Equal(t, "127.0.0.1:28080", p.ListenAddr())
}
