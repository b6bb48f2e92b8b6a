package store

// Typed scan helpers shared by sql repos. They wrap backend errors into
// the project error codes, so repos never inspect driver errors directly

import (
	"context"
	stderrs "errors"

	perr "devportal/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

// Querier is the read-only surface the scan helpers need. Both the
// Postgres RowQuerier and the Clickhouse seam satisfy it
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// rowCursor lets a scan function written against Row run at the current
// position of a Rows iteration
type rowCursor struct{ rows Rows }

func (c *rowCursor) Scan(dest ...any) error { return c.rows.Scan(dest...) }

// Scalar reads the first column of the first row into T.
// No rows at all maps to ErrorCodeNotFound
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, sql, args...).Scan(&v)
	switch {
	case err == nil:
		return v, nil
	case stderrs.Is(err, pgx.ErrNoRows):
		var zero T
		return zero, perr.ErrNotFound
	default:
		var zero T
		return zero, perr.FromPostgresf(err, "scalar query")
	}
}

// One maps exactly one row through scan. No rows maps to
// ErrorCodeNotFound, more than one row is a DB error
func One[T any](ctx context.Context, q Querier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, perr.FromPostgresf(err, "query")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, perr.FromPostgresf(err, "row iteration")
		}
		return zero, perr.ErrNotFound
	}
	item, err := scan(&rowCursor{rows: rows})
	if err != nil {
		return zero, err
	}
	if rows.Next() {
		return zero, perr.DBf("expected a single row")
	}
	if err := rows.Err(); err != nil {
		return zero, perr.FromPostgresf(err, "row iteration")
	}
	return item, nil
}

// Many maps every row through scan and returns the collected slice.
// An empty result is a nil slice, not an error
func Many[T any](ctx context.Context, q Querier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgresf(err, "query")
	}
	defer rows.Close()

	var out []T
	cur := &rowCursor{rows: rows}
	for rows.Next() {
		item, err := scan(cur)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgresf(err, "row iteration")
	}
	return out, nil
}
