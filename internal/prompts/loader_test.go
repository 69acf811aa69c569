package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("planner.json", "decide-next-action")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.State}}")
	assert.Contains(t, prompt, "{{.MaxQuestions}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("planner.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestAllAgentPromptsPresent(t *testing.T) {
	ClearCache()

	keys := map[string][]string{
		"planner.json":       {"system", "decide-next-action"},
		"agents.json":        {"expert-system", "generate-question", "evaluate-answer", "behavioral-system", "behavioral-select", "behavioral-evaluate"},
		"understanding.json": {"candidate-system", "analyze-candidate", "job-system", "normalize-job"},
		"evaluation.json":    {"system", "generate-evaluation"},
	}
	for file, fileKeys := range keys {
		for _, key := range fileKeys {
			prompt, err := Get(file, key)
			require.NoError(t, err, "%s/%s", file, key)
			assert.NotEmpty(t, prompt, "%s/%s", file, key)
		}
	}
}

func TestFormat(t *testing.T) {
	template := "Generate a {{.Difficulty}}-level question about {{.Competency}}."
	data := map[string]string{
		"Difficulty": "senior",
		"Competency": "System Design",
	}

	result := Format(template, data)
	assert.Equal(t, "Generate a senior-level question about System Design.", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}
