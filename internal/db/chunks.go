package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// CandidateChunk is one indexed text fragment about a candidate, with its
// embedding vector. Chunks are derived data: regenerable at any time, no
// identity beyond the most recent ingestion.
type CandidateChunk struct {
	CandidateID uuid.UUID
	Source      string
	Text        string
	URL         string
	Metadata    map[string]any
	Embedding   []float32
}

// ReplaceCandidateChunks deletes a candidate's existing chunks and inserts
// the new set in one transaction. Ingestion always replaces wholesale.
func (db *DB) ReplaceCandidateChunks(ctx context.Context, candidateID uuid.UUID, chunks []CandidateChunk) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin chunk replace: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `DELETE FROM candidate_chunks WHERE candidate_id = $1`, candidateID); err != nil {
		return fmt.Errorf("failed to clear candidate chunks: %w", err)
	}

	for _, chunk := range chunks {
		metadata, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal chunk metadata: %w", err)
		}
		embedding, err := json.Marshal(chunk.Embedding)
		if err != nil {
			return fmt.Errorf("failed to marshal chunk embedding: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO candidate_chunks (candidate_id, source, chunk_text, url, metadata, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			candidateID, chunk.Source, chunk.Text, chunk.URL, metadata, embedding,
		); err != nil {
			return fmt.Errorf("failed to insert candidate chunk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit chunk replace: %w", err)
	}
	return nil
}

// ListCandidateChunks returns all indexed chunks for a candidate.
func (db *DB) ListCandidateChunks(ctx context.Context, candidateID uuid.UUID) ([]CandidateChunk, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT candidate_id, source, chunk_text, url, metadata, embedding
		 FROM candidate_chunks WHERE candidate_id = $1`,
		candidateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate chunks: %w", err)
	}
	defer rows.Close()

	var chunks []CandidateChunk
	for rows.Next() {
		var (
			chunk     CandidateChunk
			metadata  []byte
			embedding []byte
		)
		if err := rows.Scan(&chunk.CandidateID, &chunk.Source, &chunk.Text, &chunk.URL, &metadata, &embedding); err != nil {
			return nil, fmt.Errorf("failed to scan candidate chunk: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode chunk metadata: %w", err)
			}
		}
		if len(embedding) > 0 {
			if err := json.Unmarshal(embedding, &chunk.Embedding); err != nil {
				return nil, fmt.Errorf("failed to decode chunk embedding: %w", err)
			}
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// DeleteCandidateChunks removes all indexed chunks for a candidate.
func (db *DB) DeleteCandidateChunks(ctx context.Context, candidateID uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM candidate_chunks WHERE candidate_id = $1`, candidateID)
	if err != nil {
		return fmt.Errorf("failed to delete candidate chunks: %w", err)
	}
	return nil
}
