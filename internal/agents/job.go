package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/prompts"
	"github.com/Kedhareswer/interviewai-navigator/internal/schemas"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// JobAgent normalizes free-text job descriptions into structured
// competencies, tech stack, and domain.
type JobAgent struct {
	client llm.Client
	system string
}

func NewJobAgent(client llm.Client) *JobAgent {
	return &JobAgent{
		client: client,
		system: prompts.MustGet("understanding.json", "job-system"),
	}
}

// Normalize extracts the structured form of a job description. The result
// always carries at least one competency; the schema rejects empty output.
func (a *JobAgent) Normalize(ctx context.Context, description string) (*types.NormalizedJob, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("job description is empty")
	}

	tmpl, err := prompts.Get("understanding.json", "normalize-job")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(tmpl, map[string]string{"Description": description})

	raw, err := a.client.GenerateJSON(ctx, prompt, a.system, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("job normalization failed: %w", err)
	}

	var normalized types.NormalizedJob
	if err := schemas.Decode(schemas.NormalizedJob, raw, &normalized); err != nil {
		return nil, err
	}
	return &normalized, nil
}
