package storage

import (
	"context"
	"fmt"
	"time"
)

// ActivityEntry is one recorded bill event, written by the worker from
// consumed AMQP messages.
type ActivityEntry struct {
	ID         int64
	BillID     string
	Owner      string
	Action     string
	OccurredAt time.Time
	RecordedAt time.Time
}

func (r *SQLiteRepository) RecordActivity(ctx context.Context, billID, owner, action string, occurredAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_log (bill_id, owner, action, occurred_at, recorded_at)
		VALUES (?, ?, ?, ?, ?)`,
		billID, owner, action, occurredAt.Unix(), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

// ListActivity returns the owner's most recent entries, newest first.
func (r *SQLiteRepository) ListActivity(ctx context.Context, owner string, limit int) ([]ActivityEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, bill_id, owner, action, occurred_at, recorded_at
		FROM activity_log WHERE owner = ?
		ORDER BY occurred_at DESC LIMIT ?`, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity log: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var (
			e          ActivityEntry
			occurredAt int64
			recordedAt int64
		)
		if err := rows.Scan(&e.ID, &e.BillID, &e.Owner, &e.Action, &occurredAt, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		e.OccurredAt = time.Unix(occurredAt, 0).UTC()
		e.RecordedAt = time.Unix(recordedAt, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity log: %w", err)
	}
	return entries, nil
}
