package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLMHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.LLMModel)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://ai.internal:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithLLMModel("gpt-4o-mini"),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://ai.internal:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://ai.internal:9100/v1", cfg.LLMHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
}

func TestConfig_NormalizeAddsV1Suffix(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already suffixed", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.LLMHost)
		})
	}
}

func TestConfig_ValidateRejectsMissingFields(t *testing.T) {
	cfg := NewConfig()
	cfg.EmbeddingModel = ""
	assert.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.LLMHost = ""
	assert.Error(t, cfg.Validate())
}
