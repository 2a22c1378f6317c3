package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type llmCallRow struct {
	LLMCall
	CreatedAtMs int64 `db:"created_at"`
}

func (r llmCallRow) call() LLMCall {
	c := r.LLMCall
	c.Timestamp = time.UnixMilli(r.CreatedAtMs).UTC()
	return c
}

type llmCallRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

func (r *llmCallRepo) Append(ctx context.Context, call LLMCall) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	call.Sequence = seq
	if call.Timestamp.IsZero() {
		call.Timestamp = time.Now()
	}

	row := llmCallRow{LLMCall: call, CreatedAtMs: call.Timestamp.UnixMilli()}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO llm_calls
		(sequence, provider, model, purpose, input_tokens, output_tokens, latency_ms,
		 success, error_message, request_body, response_body, created_at)
		VALUES (:sequence, :provider, :model, :purpose, :input_tokens, :output_tokens, :latency_ms,
		 :success, :error_message, :request_body, :response_body, :created_at)`, row)
	if err != nil {
		return fmt.Errorf("append LLM call: %w", err)
	}
	return nil
}

func (r *llmCallRepo) Query(ctx context.Context, opts QueryOpts) ([]LLMCall, error) {
	q := "SELECT * FROM llm_calls WHERE sequence > ? AND created_at >= ? ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	var from int64
	if !opts.From.IsZero() {
		from = opts.From.UnixMilli()
	}

	var rows []llmCallRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), opts.After, from); err != nil {
		return nil, fmt.Errorf("query LLM calls: %w", err)
	}

	out := make([]LLMCall, len(rows))
	for i, row := range rows {
		out[i] = row.call()
	}
	return out, nil
}

func (r *llmCallRepo) Get(ctx context.Context, id int64) (*LLMCall, error) {
	var row llmCallRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT * FROM llm_calls WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM call: %w", err)
	}
	c := row.call()
	return &c, nil
}

func (r *llmCallRepo) UsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	var out []PurposeUsage
	err := r.db.SelectContext(ctx, &out, `SELECT
			purpose,
			model,
			COUNT(*) AS calls,
			SUM(CASE WHEN success THEN 0 ELSE 1 END) AS failures,
			SUM(input_tokens) AS input_tokens,
			SUM(output_tokens) AS output_tokens
		FROM llm_calls
		GROUP BY purpose, model
		ORDER BY purpose, model`)
	if err != nil {
		return nil, fmt.Errorf("LLM usage: %w", err)
	}
	return out, nil
}
