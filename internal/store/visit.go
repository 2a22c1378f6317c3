package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type visitRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

func (r *visitRepo) Record(ctx context.Context, topicID, entryID, activity string) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO visits
		(topic_id, entry_id, activity, sequence, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (topic_id, entry_id, activity) DO NOTHING`),
		topicID, entryID, activity, seq, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

func (r *visitRepo) ListByTopic(ctx context.Context, topicID string) ([]Visit, error) {
	var rows []struct {
		Visit
		CreatedAtMs int64 `db:"created_at"`
	}
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(
		`SELECT * FROM visits WHERE topic_id = ? ORDER BY sequence ASC`), topicID)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}

	out := make([]Visit, len(rows))
	for i, row := range rows {
		out[i] = row.Visit
		out[i].CreatedAt = time.UnixMilli(row.CreatedAtMs).UTC()
	}
	return out, nil
}
