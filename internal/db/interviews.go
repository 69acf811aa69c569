package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// InterviewFilter narrows ListInterviews results. Zero values are ignored.
type InterviewFilter struct {
	JobID       *uuid.UUID
	CandidateID *uuid.UUID
	Status      types.InterviewStatus
	Limit       int
}

// CreateInterview inserts a scheduled interview.
func (db *DB) CreateInterview(ctx context.Context, iv *types.Interview) error {
	agents, err := json.Marshal(iv.SelectedAgents)
	if err != nil {
		return fmt.Errorf("failed to marshal selected agents: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO interviews (id, job_id, candidate_id, mode, status, difficulty_override, selected_agents)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		iv.ID, iv.JobID, iv.CandidateID, iv.Mode, iv.Status, nullIfEmpty(iv.DifficultyOverride), agents,
	).Scan(&iv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

// GetInterview retrieves an interview by ID.
func (db *DB) GetInterview(ctx context.Context, id uuid.UUID) (*types.Interview, error) {
	var (
		iv       types.Interview
		override *string
		agents   []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, mode, status, difficulty_override, selected_agents, created_at, completed_at
		 FROM interviews WHERE id = $1`,
		id,
	).Scan(&iv.ID, &iv.JobID, &iv.CandidateID, &iv.Mode, &iv.Status, &override, &agents, &iv.CreatedAt, &iv.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("interview %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}

	if override != nil {
		iv.DifficultyOverride = *override
	}
	if len(agents) > 0 {
		if err := json.Unmarshal(agents, &iv.SelectedAgents); err != nil {
			return nil, fmt.Errorf("failed to decode selected agents: %w", err)
		}
	}
	return &iv, nil
}

// UpdateInterviewStatus moves an interview to a new status. The transition
// is validated against the current row so concurrent writers cannot move a
// terminal interview.
func (db *DB) UpdateInterviewStatus(ctx context.Context, id uuid.UUID, status types.InterviewStatus, completedAt *time.Time) error {
	current, err := db.GetInterview(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransitionTo(status) {
		return fmt.Errorf("illegal status transition %s -> %s for interview %s", current.Status, status, id)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE interviews SET status = $1, completed_at = $2 WHERE id = $3 AND status = $4`,
		status, completedAt, id, current.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update interview status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interview %s changed concurrently: %w", id, ErrVersionConflict)
	}
	return nil
}

// ListInterviews returns interviews matching the filter, newest first.
func (db *DB) ListInterviews(ctx context.Context, filter InterviewFilter) ([]*types.Interview, error) {
	q := psql.Select("id", "job_id", "candidate_id", "mode", "status", "difficulty_override", "selected_agents", "created_at", "completed_at").
		From("interviews").
		OrderBy("created_at DESC")
	if filter.JobID != nil {
		q = q.Where(sq.Eq{"job_id": *filter.JobID})
	}
	if filter.CandidateID != nil {
		q = q.Where(sq.Eq{"candidate_id": *filter.CandidateID})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build interview query: %w", err)
	}

	rows, err := db.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	var out []*types.Interview
	for rows.Next() {
		var (
			iv       types.Interview
			override *string
			agents   []byte
		)
		if err := rows.Scan(&iv.ID, &iv.JobID, &iv.CandidateID, &iv.Mode, &iv.Status, &override, &agents, &iv.CreatedAt, &iv.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		if override != nil {
			iv.DifficultyOverride = *override
		}
		if len(agents) > 0 {
			if err := json.Unmarshal(agents, &iv.SelectedAgents); err != nil {
				return nil, fmt.Errorf("failed to decode selected agents: %w", err)
			}
		}
		out = append(out, &iv)
	}
	return out, rows.Err()
}

// DeleteInterview removes an interview and, via schema cascade, its events,
// state, and evaluation. This is the only path that removes events.
func (db *DB) DeleteInterview(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interview %s: %w", id, ErrNotFound)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
