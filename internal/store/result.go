package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/examprep/internal/exam"
)

// resultRepo implements ResultRepo with dialect-aware SQL builders.
type resultRepo struct {
	db      *sql.DB
	dialect string
}

func (r *resultRepo) Append(ctx context.Context, res exam.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(ExamResultsTable.Name).
		Columns("result_id", "variant_id", "percent", "finished_at", "payload").
		Values(res.ID, res.VariantID, res.Percent, res.FinishedAt.UTC(), string(payload)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *resultRepo) Recent(ctx context.Context, limit int) ([]exam.Result, error) {
	b := entsql.Dialect(r.dialect)
	sel := b.Select("payload").
		From(b.Table(ExamResultsTable.Name)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []exam.Result
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var res exam.Result
		if err := json.Unmarshal(payload, &res); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

func (r *resultRepo) Prune(ctx context.Context, keep int) error {
	// Find the id threshold: the first row past the keep most recent.
	b := entsql.Dialect(r.dialect)
	query, args := b.Select("id").
		From(b.Table(ExamResultsTable.Name)).
		OrderBy(entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep results exist
	}
	if err != nil {
		return fmt.Errorf("query results for prune: %w", err)
	}

	query, args = b.Delete(ExamResultsTable.Name).
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune results: %w", err)
	}
	return nil
}

func (r *resultRepo) Count(ctx context.Context) (int, error) {
	b := entsql.Dialect(r.dialect)
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(ExamResultsTable.Name)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

func (r *resultRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(r.dialect).Delete(ExamResultsTable.Name).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	return nil
}
