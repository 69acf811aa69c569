package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/prompts"
	"github.com/Kedhareswer/interviewai-navigator/internal/rag"
	"github.com/Kedhareswer/interviewai-navigator/internal/schemas"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// Candidate analysis draws on a wider context window than question
// generation: the whole profile matters, not one competency.
const candidateContextChunks = 10

// CandidateAgent synthesizes a candidate's ingested materials against a
// job into strengths, risks, and a recommended difficulty.
type CandidateAgent struct {
	client    llm.Client
	retriever rag.Retriever
	system    string
}

func NewCandidateAgent(client llm.Client, retriever rag.Retriever) *CandidateAgent {
	return &CandidateAgent{
		client:    client,
		retriever: retriever,
		system:    prompts.MustGet("understanding.json", "candidate-system"),
	}
}

// Analyze produces the candidate analysis the planner seeds its difficulty
// from. The job should be normalized; an unnormalized job still analyzes,
// with only title and level as requirements context.
func (a *CandidateAgent) Analyze(ctx context.Context, job *types.Job, candidate *types.Candidate) (*types.CandidateAnalysis, error) {
	query := job.Title
	techStack := ""
	competencies := "None listed."
	if job.Normalized != nil {
		techStack = strings.Join(job.Normalized.TechStack, ", ")
		competencies = formatCompetencies(job.Normalized.Competencies)
		query = job.Title + " " + techStack
	}

	candidateContext := retrieveContext(ctx, a.retriever, candidate.ID, query, candidateContextChunks)

	profile, err := json.Marshal(map[string]any{
		"name":  candidate.Name,
		"email": candidate.Email,
		"links": candidate.Links.URLs(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode candidate profile: %w", err)
	}

	tmpl, err := prompts.Get("understanding.json", "analyze-candidate")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(tmpl, map[string]string{
		"JobLevel":         job.Level,
		"JobTitle":         job.Title,
		"Competencies":     competencies,
		"TechStack":        techStack,
		"CandidateContext": candidateContext,
		"CandidateProfile": string(profile),
	})

	raw, err := a.client.GenerateJSON(ctx, prompt, a.system, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("candidate analysis failed: %w", err)
	}

	var analysis types.CandidateAnalysis
	if err := schemas.Decode(schemas.CandidateAnalysis, raw, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func formatCompetencies(competencies []types.Competency) string {
	if len(competencies) == 0 {
		return "None listed."
	}
	lines := make([]string, 0, len(competencies))
	for _, c := range competencies {
		lines = append(lines, fmt.Sprintf("- %s (%s, weight %.2f)", c.Name, c.Level, c.Weight))
	}
	return strings.Join(lines, "\n")
}
