// Package planning implements the interview planner: initializing per-interview
// state from the job and candidate analysis, deciding the next action, and
// folding answer scores back into competency coverage.
package planning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/prompts"
	"github.com/Kedhareswer/interviewai-navigator/internal/schemas"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// DefaultMaxQuestions caps an interview when no explicit limit is configured.
const DefaultMaxQuestions = 15

// ErrJobNotNormalized is returned when an interview starts against a job
// whose description was never normalized into competencies.
var ErrJobNotNormalized = errors.New("job has no normalized competencies")

// ErrInvalidDecision is returned when the model's decision passes the schema
// but violates planner rules, such as a question without a competency.
var ErrInvalidDecision = errors.New("planner produced an invalid decision")

// Config tunes planner behavior.
type Config struct {
	MaxQuestions int
	// CumulativeScores switches competency scoring from the two-point
	// average of previous and newest score to a running mean over all
	// answers. Off by default: the two-point average weights recent
	// answers higher, which matches how interviewers actually adjust.
	CumulativeScores bool
}

// Planner drives the interview state machine.
type Planner struct {
	client llm.Client
	config Config
	system string
}

func New(client llm.Client, config Config) *Planner {
	if config.MaxQuestions <= 0 {
		config.MaxQuestions = DefaultMaxQuestions
	}
	return &Planner{
		client: client,
		config: config,
		system: prompts.MustGet("planner.json", "system"),
	}
}

// Initialize builds the planner state for a new interview. Difficulty comes
// from the interview's override when set, otherwise from the candidate
// analysis recommendation, otherwise from the job level.
func (p *Planner) Initialize(job *types.Job, interview *types.Interview, analysis *types.CandidateAnalysis) (*types.PlannerState, error) {
	if job.Normalized == nil || len(job.Normalized.Competencies) == 0 {
		return nil, fmt.Errorf("job %s: %w", job.ID, ErrJobNotNormalized)
	}

	competencies := make([]types.CompetencyState, 0, len(job.Normalized.Competencies))
	for _, c := range job.Normalized.Competencies {
		competencies = append(competencies, types.CompetencyState{Name: c.Name})
	}

	difficulty := types.Difficulty(interview.DifficultyOverride)
	if !difficulty.Valid() {
		if analysis != nil && analysis.RecommendedDifficulty.Valid() {
			difficulty = analysis.RecommendedDifficulty
		} else {
			difficulty = types.Difficulty(job.Normalized.Level)
		}
	}
	if !difficulty.Valid() {
		difficulty = types.DifficultyMid
	}

	return &types.PlannerState{
		Competencies:      competencies,
		MaxQuestions:      p.config.MaxQuestions,
		Difficulty:        difficulty,
		CandidateAnalysis: analysis,
		JobDomain:         job.Normalized.Domain,
	}, nil
}

// DecideNextAction returns the planner's next step. The question cap is
// enforced here, before the model is consulted: a full interview completes
// regardless of what the model would prefer.
func (p *Planner) DecideNextAction(ctx context.Context, state *types.PlannerState, techStack []string) (*types.PlannerDecision, error) {
	if state.QuestionCount >= state.MaxQuestions {
		return &types.PlannerDecision{
			Action:    types.ActionComplete,
			Reasoning: "question limit reached",
		}, nil
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode planner state: %w", err)
	}
	analysisJSON := "Not available."
	if state.CandidateAnalysis != nil {
		if data, err := json.Marshal(state.CandidateAnalysis); err == nil {
			analysisJSON = string(data)
		}
	}

	tmpl, err := prompts.Get("planner.json", "decide-next-action")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(tmpl, map[string]string{
		"State":             string(stateJSON),
		"QuestionCount":     fmt.Sprintf("%d", state.QuestionCount),
		"MaxQuestions":      fmt.Sprintf("%d", state.MaxQuestions),
		"Uncovered":         uncoveredList(state),
		"JobDomain":         state.JobDomain,
		"TechStack":         techStackList(techStack),
		"CandidateAnalysis": analysisJSON,
	})

	raw, err := p.client.GenerateJSON(ctx, prompt, p.system, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("planner decision failed: %w", err)
	}

	var decision types.PlannerDecision
	if err := schemas.Decode(schemas.PlannerDecision, raw, &decision); err != nil {
		return nil, err
	}
	if decision.Action == types.ActionQuestion {
		if decision.Competency == "" || decision.AgentType == "" {
			return nil, fmt.Errorf("%w: question without competency or agent type", ErrInvalidDecision)
		}
		if state.Competency(decision.Competency) == nil && decision.AgentType != types.AgentHR {
			return nil, fmt.Errorf("%w: unknown competency %q", ErrInvalidDecision, decision.Competency)
		}
	}
	return &decision, nil
}

// RecordQuestion marks a question as asked against a competency.
func (p *Planner) RecordQuestion(state *types.PlannerState, competency string) {
	state.QuestionCount++
	state.CurrentCompetency = competency
	if cs := state.Competency(competency); cs != nil {
		cs.QuestionsAsked++
	}
}

// RecordScore folds an answer score into the competency's running score and
// marks the competency covered. The default blend averages the previous
// score with the newest one; each new answer carries half the weight.
// Scoring closes out the pending question, so CurrentCompetency resets.
func (p *Planner) RecordScore(state *types.PlannerState, competency string, score float64) {
	state.CurrentCompetency = ""
	cs := state.Competency(competency)
	if cs == nil {
		return
	}
	cs.Covered = true
	switch {
	case cs.Score == nil:
		cs.Score = &score
	case p.config.CumulativeScores:
		n := float64(cs.QuestionsAsked)
		if n < 2 {
			n = 2
		}
		blended := (*cs.Score*(n-1) + score) / n
		cs.Score = &blended
	default:
		blended := (*cs.Score + score) / 2
		cs.Score = &blended
	}
}

func uncoveredList(state *types.PlannerState) string {
	var names []string
	for _, c := range state.Competencies {
		if !c.Covered {
			names = append(names, c.Name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}

func techStackList(techStack []string) string {
	if len(techStack) == 0 {
		return "Unknown"
	}
	return strings.Join(techStack, ", ")
}
