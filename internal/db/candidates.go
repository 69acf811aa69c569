package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// CreateCandidate inserts a candidate record.
func (db *DB) CreateCandidate(ctx context.Context, c *types.Candidate) error {
	links, err := json.Marshal(c.Links)
	if err != nil {
		return fmt.Errorf("failed to marshal candidate links: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO candidates (id, name, email, links, owner_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Email, links, c.OwnerID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

// GetCandidate retrieves a candidate by ID.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	var (
		c     types.Candidate
		links []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, links, owner_id, created_at, updated_at
		 FROM candidates WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Email, &links, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	if len(links) > 0 {
		if err := json.Unmarshal(links, &c.Links); err != nil {
			return nil, fmt.Errorf("failed to decode candidate links: %w", err)
		}
	}
	return &c, nil
}

// ListCandidates returns candidates, optionally filtered by owner, newest first.
func (db *DB) ListCandidates(ctx context.Context, ownerID *uuid.UUID, limit int) ([]*types.Candidate, error) {
	q := psql.Select("id", "name", "email", "links", "owner_id", "created_at", "updated_at").
		From("candidates").
		OrderBy("created_at DESC")
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build candidate query: %w", err)
	}

	rows, err := db.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var out []*types.Candidate
	for rows.Next() {
		var (
			c     types.Candidate
			links []byte
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &links, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if len(links) > 0 {
			if err := json.Unmarshal(links, &c.Links); err != nil {
				return nil, fmt.Errorf("failed to decode candidate links: %w", err)
			}
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// DeleteCandidate removes a candidate and, via schema cascade, their chunks.
func (db *DB) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return nil
}
