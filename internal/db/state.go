package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// PlannerStateRecord is a persisted planner state with its concurrency version.
type PlannerStateRecord struct {
	InterviewID uuid.UUID
	State       *types.PlannerState
	Version     int
}

// LoadPlannerState retrieves the planner state for an interview.
func (db *DB) LoadPlannerState(ctx context.Context, interviewID uuid.UUID) (*PlannerStateRecord, error) {
	var (
		rec  PlannerStateRecord
		data []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT interview_id, state, version FROM interview_state WHERE interview_id = $1`,
		interviewID,
	).Scan(&rec.InterviewID, &data, &rec.Version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("planner state for interview %s: %w", interviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load planner state: %w", err)
	}

	rec.State = &types.PlannerState{}
	if err := json.Unmarshal(data, rec.State); err != nil {
		return nil, fmt.Errorf("failed to decode planner state: %w", err)
	}
	return &rec, nil
}

// SavePlannerState upserts the planner state for an interview with an
// optimistic-concurrency check. Pass expectedVersion 0 for a fresh insert;
// otherwise the row's current version must match or ErrVersionConflict is
// returned. The stored version is incremented on every save.
func (db *DB) SavePlannerState(ctx context.Context, interviewID uuid.UUID, state *types.PlannerState, expectedVersion int) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal planner state: %w", err)
	}

	if expectedVersion == 0 {
		_, err = db.pool.Exec(ctx,
			`INSERT INTO interview_state (interview_id, state, version, updated_at)
			 VALUES ($1, $2, 1, NOW())
			 ON CONFLICT (interview_id) DO NOTHING`,
			interviewID, data,
		)
		if err != nil {
			return fmt.Errorf("failed to insert planner state: %w", err)
		}
		return nil
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE interview_state SET state = $1, version = version + 1, updated_at = NOW()
		 WHERE interview_id = $2 AND version = $3`,
		data, interviewID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to save planner state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("planner state for interview %s: %w", interviewID, ErrVersionConflict)
	}
	return nil
}

// DeletePlannerState removes the planner state when an interview completes.
func (db *DB) DeletePlannerState(ctx context.Context, interviewID uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM interview_state WHERE interview_id = $1`, interviewID)
	if err != nil {
		return fmt.Errorf("failed to delete planner state: %w", err)
	}
	return nil
}
