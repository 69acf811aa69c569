// Package evaluation synthesizes the final interview evaluation from the
// event log. Numeric scores are recomputed from score events; the model only
// writes the narrative summaries and the hiring recommendation.
package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Kedhareswer/interviewai-navigator/internal/llm"
	"github.com/Kedhareswer/interviewai-navigator/internal/prompts"
	"github.com/Kedhareswer/interviewai-navigator/internal/schemas"
	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// EventSource replays an interview's event log. *db.DB satisfies this.
type EventSource interface {
	ListEvents(ctx context.Context, interviewID uuid.UUID, typ types.EventType) ([]types.InterviewEvent, error)
}

// Synthesizer produces evaluations from completed interviews.
type Synthesizer struct {
	client llm.Client
	events EventSource
	system string
}

func NewSynthesizer(client llm.Client, events EventSource) *Synthesizer {
	return &Synthesizer{
		client: client,
		events: events,
		system: prompts.MustGet("evaluation.json", "system"),
	}
}

// Synthesize replays the event log and produces the evaluation. The stored
// scores are always the per-competency means computed here, never numbers
// the model emits; rerunning over the same log yields the same scores.
func (s *Synthesizer) Synthesize(ctx context.Context, interviewID uuid.UUID, job *types.Job, candidate *types.Candidate) (*types.Evaluation, error) {
	events, err := s.events.ListEvents(ctx, interviewID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to replay interview events: %w", err)
	}

	scores, questionCount, answerCount := Replay(events)

	tmpl, err := prompts.Get("evaluation.json", "generate-evaluation")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(tmpl, map[string]string{
		"Job":           jobSummary(job),
		"Candidate":     candidateSummary(candidate),
		"Scores":        formatScores(scores),
		"QuestionCount": fmt.Sprintf("%d", questionCount),
		"AnswerCount":   fmt.Sprintf("%d", answerCount),
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, s.system, llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("evaluation synthesis failed: %w", err)
	}

	var out struct {
		Summary          string                    `json:"summary"`
		CandidateSummary string                    `json:"candidateSummary"`
		Recommendation   types.HiringRecommendation `json:"recommendation"`
	}
	if err := schemas.Decode(schemas.Evaluation, raw, &out); err != nil {
		return nil, err
	}

	return &types.Evaluation{
		ID:               uuid.New(),
		InterviewID:      interviewID,
		Scores:           scores,
		Summary:          out.Summary,
		CandidateSummary: out.CandidateSummary,
		Recommendation:   out.Recommendation,
	}, nil
}

// Replay folds an event log into per-competency mean scores and the
// question and answer counts.
func Replay(events []types.InterviewEvent) (scores map[string]float64, questionCount, answerCount int) {
	sums := map[string]float64{}
	counts := map[string]int{}

	for _, ev := range events {
		switch ev.Type {
		case types.EventQuestion:
			questionCount++
		case types.EventAnswer:
			answerCount++
		case types.EventScore:
			var payload types.ScorePayload
			if err := json.Unmarshal(ev.Payload, &payload); err != nil || payload.Competency == "" {
				continue
			}
			sums[payload.Competency] += payload.Score
			counts[payload.Competency]++
		}
	}

	scores = make(map[string]float64, len(sums))
	for competency, sum := range sums {
		scores[competency] = sum / float64(counts[competency])
	}
	return scores, questionCount, answerCount
}

func formatScores(scores map[string]float64) string {
	if len(scores) == 0 {
		return "No scored answers."
	}
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("- %s: %.2f", name, scores[name]))
	}
	return strings.Join(lines, "\n")
}

func jobSummary(job *types.Job) string {
	if job == nil {
		return "Unknown"
	}
	return fmt.Sprintf("%s (%s level)", job.Title, job.Level)
}

func candidateSummary(candidate *types.Candidate) string {
	if candidate == nil {
		return "Unknown"
	}
	return candidate.Name
}
