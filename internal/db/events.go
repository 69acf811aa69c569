package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kedhareswer/interviewai-navigator/internal/types"
)

// AppendEvent records one event in an interview's append-only timeline.
func (db *DB) AppendEvent(ctx context.Context, ev *types.InterviewEvent) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO interview_events (id, interview_id, type, payload, timestamp)
		 VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, ev.InterviewID, ev.Type, []byte(ev.Payload), ev.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append %s event: %w", ev.Type, err)
	}
	return nil
}

// ListEvents returns an interview's events ordered by timestamp ascending,
// optionally filtered by type.
func (db *DB) ListEvents(ctx context.Context, interviewID uuid.UUID, eventType types.EventType) ([]types.InterviewEvent, error) {
	q := psql.Select("id", "interview_id", "type", "payload", "timestamp").
		From("interview_events").
		Where(sq.Eq{"interview_id": interviewID}).
		OrderBy("timestamp ASC", "id ASC")
	if eventType != "" {
		q = q.Where(sq.Eq{"type": eventType})
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build event query: %w", err)
	}

	rows, err := db.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []types.InterviewEvent
	for rows.Next() {
		var ev types.InterviewEvent
		if err := rows.Scan(&ev.ID, &ev.InterviewID, &ev.Type, (*[]byte)(&ev.Payload), &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// LatestQuestionEvent returns the most recent question event for an
// interview, or ErrNotFound if no question has been asked.
func (db *DB) LatestQuestionEvent(ctx context.Context, interviewID uuid.UUID) (*types.InterviewEvent, error) {
	var ev types.InterviewEvent
	err := db.pool.QueryRow(ctx,
		`SELECT id, interview_id, type, payload, timestamp
		 FROM interview_events
		 WHERE interview_id = $1 AND type = $2
		 ORDER BY timestamp DESC, id DESC
		 LIMIT 1`,
		interviewID, types.EventQuestion,
	).Scan(&ev.ID, &ev.InterviewID, &ev.Type, (*[]byte)(&ev.Payload), &ev.Timestamp)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("question event for interview %s: %w", interviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest question: %w", err)
	}
	return &ev, nil
}

// CountEvents returns the number of events of the given type for an interview.
func (db *DB) CountEvents(ctx context.Context, interviewID uuid.UUID, eventType types.EventType) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM interview_events WHERE interview_id = $1 AND type = $2`,
		interviewID, eventType,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}
