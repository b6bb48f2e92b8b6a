package store

import (
	"context"
	"errors"

	"devportal/internal/platform/store/ch"
)

// chAdapter bridges *ch.CH to the Clickhouse seam
type chAdapter struct{ c *ch.CH }

var _ Clickhouse = (*chAdapter)(nil)

func newCHAdapter(c *ch.CH) Clickhouse { return &chAdapter{c: c} }

func (a *chAdapter) Insert(ctx context.Context, table string, rows [][]any) error {
	return a.c.Insert(ctx, table, rows)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r: r}, nil
}

func (a *chAdapter) Close() error { return a.c.Close() }

// Ping lets Guard verify the native connection
func (a *chAdapter) Ping(ctx context.Context) error {
	if a == nil || a.c == nil {
		return errors.New("ch: nil adapter")
	}
	return a.c.Ping(ctx)
}

// chRows narrows ch.Rows, whose Close returns an error, to store.Rows
type chRows struct{ r ch.Rows }

func (x chRows) Next() bool            { return x.r.Next() }
func (x chRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x chRows) Err() error            { return x.r.Err() }
func (x chRows) Close()                { _ = x.r.Close() }
func (x chRows) Columns() []string     { return x.r.Columns() }
