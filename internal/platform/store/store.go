// Package store provides a unified facade over the optional storage backends
package store

import (
	"context"
	"errors"
	"fmt"

	"devportal/internal/platform/logger"
)

// Store is the facade handed to modules
// the zero value is safe, every seam stays nil and no op
type Store struct {
	// Log feeds the subclients, zero means a no op zerolog logger
	Log logger.Logger

	// PG is the relational seam, nil when disabled
	PG TxRunner

	// CH is the columnar seam, nil when disabled
	CH Clickhouse
}

// Row is the single row scan contract
type Row interface {
	Scan(dest ...any) error
}

// Rows is the minimal result set iteration both backends can satisfy
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag inspects the result of a statement
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos bind against
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner adds transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam, rollup writes and usage reads go through it
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the backends cfg enables
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// a zero logger still logs, just nowhere
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		pgSeam, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = pgSeam
	}

	if cfg.CH.Enabled {
		chSeam, err := openCH(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.CH = chSeam
	}

	return s, nil
}

// Guard pings every opened seam and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}

	seams := []struct {
		name string
		v    any
	}{
		{"pg", s.PG},
		{"ch", s.CH},
	}

	var errs []error
	for _, seam := range seams {
		p, ok := seam.v.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", seam.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every opened backend, nil seams are skipped
func (s *Store) Close(ctx context.Context) error {
	var errs []error

	if s.CH != nil {
		if err := s.CH.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
