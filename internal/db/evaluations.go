package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// UpsertEvaluation stores the final evaluation for an interview.
// Re-running evaluation replaces the previous row (keyed by interview id).
func (db *DB) UpsertEvaluation(ctx context.Context, ev *types.Evaluation) error {
	scores, err := json.Marshal(ev.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO evaluations (id, interview_id, scores_json, summary, candidate_summary, recommendation)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (interview_id) DO UPDATE
		 SET scores_json = $3, summary = $4, candidate_summary = $5, recommendation = $6, created_at = NOW()
		 RETURNING id, created_at`,
		ev.ID, ev.InterviewID, scores, ev.Summary, ev.CandidateSummary, ev.Recommendation,
	).Scan(&ev.ID, &ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert evaluation: %w", err)
	}
	return nil
}

// GetEvaluation retrieves the evaluation for an interview.
func (db *DB) GetEvaluation(ctx context.Context, interviewID uuid.UUID) (*types.Evaluation, error) {
	var (
		ev     types.Evaluation
		scores []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, interview_id, scores_json, summary, candidate_summary, recommendation, created_at
		 FROM evaluations WHERE interview_id = $1`,
		interviewID,
	).Scan(&ev.ID, &ev.InterviewID, &scores, &ev.Summary, &ev.CandidateSummary, &ev.Recommendation, &ev.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("evaluation for interview %s: %w", interviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}

	if len(scores) > 0 {
		if err := json.Unmarshal(scores, &ev.Scores); err != nil {
			return nil, fmt.Errorf("failed to decode scores: %w", err)
		}
	}
	return &ev, nil
}
