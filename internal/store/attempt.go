package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type attemptRow struct {
	Attempt
	CreatedAtMs int64 `db:"created_at"`
}

func (r attemptRow) attempt() Attempt {
	a := r.Attempt
	a.CreatedAt = time.UnixMilli(r.CreatedAtMs).UTC()
	return a
}

type attemptRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

func (r *attemptRepo) Save(ctx context.Context, a *Attempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Sequence == 0 {
		seq, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		a.Sequence = seq
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	row := attemptRow{Attempt: *a, CreatedAtMs: a.CreatedAt.UnixMilli()}
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO attempts
		(id, sequence, topic_id, entry_id, correct, incorrect, accuracy_percent,
		 time_taken_seconds, speed_per_minute, timed_out, created_at)
		VALUES (:id, :sequence, :topic_id, :entry_id, :correct, :incorrect, :accuracy_percent,
		 :time_taken_seconds, :speed_per_minute, :timed_out, :created_at)`, row)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) ListByTopic(ctx context.Context, topicID string, opts QueryOpts) ([]Attempt, error) {
	var (
		where []string
		args  []any
	)
	if topicID != "" {
		where = append(where, "topic_id = ?")
		args = append(args, topicID)
	}
	if opts.After > 0 {
		where = append(where, "sequence > ?")
		args = append(args, opts.After)
	}
	if !opts.From.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, opts.From.UnixMilli())
	}

	q := "SELECT * FROM attempts"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	var rows []attemptRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	out := make([]Attempt, len(rows))
	for i, row := range rows {
		out[i] = row.attempt()
	}
	return out, nil
}

func (r *attemptRepo) Best(ctx context.Context, topicID, entryID string) (*Attempt, error) {
	var row attemptRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT * FROM attempts
		WHERE topic_id = ? AND entry_id = ?
		ORDER BY accuracy_percent DESC, speed_per_minute DESC, sequence ASC
		LIMIT 1`), topicID, entryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("best attempt: %w", err)
	}
	a := row.attempt()
	return &a, nil
}
