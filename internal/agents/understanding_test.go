package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/rag"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

func analysisJSON() string {
	return `{
		"strengths": ["Strong distributed systems background", "Open source maintainer"],
		"risks": ["Little frontend exposure"],
		"recommendedDifficulty": "senior",
		"summary": "Experienced backend engineer with production Go and Postgres work.",
		"experienceLevel": "8 years, mostly backend",
		"keyTechnologies": ["Go", "Postgres", "Kafka"]
	}`
}

func TestCandidateAgent_Analyze(t *testing.T) {
	client := &fakeLLM{response: analysisJSON()}
	retriever := &fakeRetriever{chunks: []rag.Chunk{{Source: "resume", Text: "Led the payments platform team."}}}
	agent := NewCandidateAgent(client, retriever)

	job := &types.Job{
		Title: "Backend Engineer",
		Level: types.LevelSenior,
		Normalized: &types.NormalizedJob{
			Competencies: []types.Competency{{Name: "System Design", Weight: 0.5, Level: "senior"}},
			TechStack:    []string{"Go", "Postgres"},
		},
	}
	candidate := &types.Candidate{ID: uuid.New(), Name: "Dana", Links: types.CandidateLinks{GitHub: "https://github.com/dana"}}

	analysis, err := agent.Analyze(context.Background(), job, candidate)
	require.NoError(t, err)
	assert.Equal(t, types.DifficultySenior, analysis.RecommendedDifficulty)
	assert.Len(t, analysis.Strengths, 2)
	assert.Equal(t, llm.TierAdvanced, client.lastTier)
	assert.Contains(t, client.lastPrompt, "Led the payments platform team.")
	assert.Contains(t, client.lastPrompt, "System Design")
	assert.Contains(t, client.lastPrompt, "github.com/dana")
}

func TestCandidateAgent_Analyze_UnnormalizedJob(t *testing.T) {
	client := &fakeLLM{response: analysisJSON()}
	agent := NewCandidateAgent(client, nil)

	job := &types.Job{Title: "Engineer", Level: types.LevelMid}
	candidate := &types.Candidate{ID: uuid.New(), Name: "Sam"}

	_, err := agent.Analyze(context.Background(), job, candidate)
	require.NoError(t, err)
	assert.Contains(t, client.lastPrompt, "None listed.")
}

func TestCandidateAgent_Analyze_RejectsInvalidDifficulty(t *testing.T) {
	client := &fakeLLM{response: `{"strengths":[],"risks":[],"recommendedDifficulty":"expert","summary":"s","experienceLevel":"e","keyTechnologies":[]}`}
	agent := NewCandidateAgent(client, nil)

	_, err := agent.Analyze(context.Background(), &types.Job{Title: "X"}, &types.Candidate{ID: uuid.New()})
	assert.Error(t, err)
}

func TestJobAgent_Normalize(t *testing.T) {
	client := &fakeLLM{response: `{
		"competencies": [
			{"name": "System Design", "weight": 0.4, "level": "senior"},
			{"name": "Go", "weight": 0.35, "level": "senior"},
			{"name": "SQL", "weight": 0.25, "level": "mid"}
		],
		"level": "senior",
		"techStack": ["Go", "Postgres", "Kafka"],
		"requirements": ["5+ years backend experience"],
		"domain": "backend"
	}`}
	agent := NewJobAgent(client)

	normalized, err := agent.Normalize(context.Background(), "We are hiring a senior backend engineer...")
	require.NoError(t, err)
	assert.Len(t, normalized.Competencies, 3)
	assert.Equal(t, "backend", normalized.Domain)
	assert.Equal(t, llm.TierAdvanced, client.lastTier)
}

func TestJobAgent_Normalize_EmptyDescription(t *testing.T) {
	agent := NewJobAgent(&fakeLLM{})
	_, err := agent.Normalize(context.Background(), "   ")
	assert.Error(t, err)
}

func TestJobAgent_Normalize_RejectsEmptyCompetencies(t *testing.T) {
	client := &fakeLLM{response: `{"competencies":[],"level":"mid","techStack":[],"requirements":[]}`}
	agent := NewJobAgent(client)

	_, err := agent.Normalize(context.Background(), "Some description")
	assert.Error(t, err)
}

func TestJobAgent_Normalize_ModelFailure(t *testing.T) {
	client := &fakeLLM{err: errors.New("quota exhausted")}
	agent := NewJobAgent(client)

	_, err := agent.Normalize(context.Background(), "Some description")
	assert.Error(t, err)
}
