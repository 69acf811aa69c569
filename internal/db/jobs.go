package db

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// CreateJob inserts a job with its raw description. The normalized form is
// filled in later by job ingestion.
func (db *DB) CreateJob(ctx context.Context, job *types.Job) error {
	agents, err := json.Marshal(job.PreferredAgents)
	if err != nil {
		return fmt.Errorf("failed to marshal preferred agents: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, title, level, description, preferred_agents, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		job.ID, job.Title, job.Level, job.Description, agents, job.CreatedBy,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var (
		job        types.Job
		normalized []byte
		agents     []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, level, description, normalized_json, preferred_agents, created_by, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.Title, &job.Level, &job.Description, &normalized, &agents, &job.CreatedBy, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if len(normalized) > 0 {
		job.Normalized = &types.NormalizedJob{}
		if err := json.Unmarshal(normalized, job.Normalized); err != nil {
			return nil, fmt.Errorf("failed to decode normalized job: %w", err)
		}
	}
	if len(agents) > 0 {
		if err := json.Unmarshal(agents, &job.PreferredAgents); err != nil {
			return nil, fmt.Errorf("failed to decode preferred agents: %w", err)
		}
	}
	return &job, nil
}

// SetJobNormalized overwrites a job's normalized structure wholesale.
// Re-ingestion replaces, never merges.
func (db *DB) SetJobNormalized(ctx context.Context, id uuid.UUID, normalized *types.NormalizedJob) error {
	data, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("failed to marshal normalized job: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET normalized_json = $1, level = $2, updated_at = NOW() WHERE id = $3`,
		data, normalized.Level, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set normalized job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListJobs returns jobs, optionally filtered by creator, newest first.
func (db *DB) ListJobs(ctx context.Context, createdBy *uuid.UUID, limit int) ([]*types.Job, error) {
	q := psql.Select("id", "title", "level", "description", "normalized_json", "preferred_agents", "created_by", "created_at", "updated_at").
		From("jobs").
		OrderBy("created_at DESC")
	if createdBy != nil {
		q = q.Where(sq.Eq{"created_by": *createdBy})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build job query: %w", err)
	}

	rows, err := db.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*types.Job
	for rows.Next() {
		var (
			job        types.Job
			normalized []byte
			agents     []byte
		)
		if err := rows.Scan(&job.ID, &job.Title, &job.Level, &job.Description, &normalized, &agents, &job.CreatedBy, &job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if len(normalized) > 0 {
			job.Normalized = &types.NormalizedJob{}
			if err := json.Unmarshal(normalized, job.Normalized); err != nil {
				return nil, fmt.Errorf("failed to decode normalized job: %w", err)
			}
		}
		if len(agents) > 0 {
			if err := json.Unmarshal(agents, &job.PreferredAgents); err != nil {
				return nil, fmt.Errorf("failed to decode preferred agents: %w", err)
			}
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

// DeleteJob removes a job. Interviews referencing it cascade at the schema level.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return nil
}
