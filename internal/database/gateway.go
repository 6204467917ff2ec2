package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx, so every statement helper
// works the same inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NullText is how SQL NULL is rendered in a Result.
const NullText = "null"

// Result is a fully materialized result set: column names plus every row as
// text. No cursor outlives the call that produced it.
type Result struct {
	Columns []string
	Rows    [][]string
}

func (r *Result) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// ExecuteUpdate runs an INSERT/UPDATE/DELETE and returns the affected row count.
func ExecuteUpdate(ctx context.Context, q Querier, stmt string, args ...any) (int64, error) {
	tag, err := q.Exec(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute update: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryRows runs a SELECT and returns its rows in PostgreSQL text format.
func QueryRows(ctx context.Context, q Querier, stmt string, args ...any) (*Result, error) {
	// Asking for text results keeps dates, times and numerics exactly as
	// PostgreSQL prints them.
	qargs := append([]any{pgx.QueryResultFormats{pgx.TextFormatCode}}, args...)
	rows, err := q.Query(ctx, stmt, qargs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	res := &Result{Columns: make([]string, len(fields))}
	for i, f := range fields {
		res.Columns[i] = f.Name
	}

	for rows.Next() {
		raw := rows.RawValues()
		record := make([]string, len(raw))
		for i, v := range raw {
			if v == nil {
				record[i] = NullText
				continue
			}
			record[i] = string(v)
		}
		res.Rows = append(res.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return res, nil
}

// QueryCount runs a SELECT and returns how many rows it produced.
func QueryCount(ctx context.Context, q Querier, stmt string, args ...any) (int, error) {
	rows, err := q.Query(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read rows: %w", err)
	}
	return n, nil
}
