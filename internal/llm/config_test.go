package llm

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, "text-embedding-004", config.EmbeddingModel)
	assert.Equal(t, DefaultTimeout, config.CallTimeout())
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestCallTimeout_Custom(t *testing.T) {
	config := &Config{Timeout: 5 * time.Second}
	assert.Equal(t, 5*time.Second, config.CallTimeout())
}

func TestCleanJSONBlock(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		`{"a":1}`:                 `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for input, want := range cases {
		assert.Equal(t, want, CleanJSONBlock(input))
	}
}

func TestGenerationError_UnwrapsTimeout(t *testing.T) {
	err := &GenerationError{Model: "gemini-2.5-flash", Err: ErrTimeout}
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Contains(t, err.Error(), "gemini-2.5-flash")

	contentErr := &GenerationError{Model: "gemini-2.5-flash", Err: errors.New("no candidates in response")}
	assert.False(t, errors.Is(contentErr, ErrTimeout))
}

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(t.Context(), DefaultConfig(), "")
	assert.Error(t, err)
}
