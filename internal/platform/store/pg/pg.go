// Package pg owns the pgxpool client behind the store facade
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config carries the pool settings the facade exposes
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int
}

// PG bundles the pool with the tracing knobs the sql adapter reads
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

// Option adjusts Open before the pool dials
type Option func(*openSettings)

type openSettings struct {
	tracer  QueryTracer
	poolMut func(*pgxpool.Config)
}

// WithTracer attaches a query tracer to the client
func WithTracer(t QueryTracer) Option {
	return func(o *openSettings) { o.tracer = t }
}

// WithPoolConfig exposes the parsed pgxpool config for tuning hooks
func WithPoolConfig(mut func(*pgxpool.Config)) Option {
	return func(o *openSettings) { o.poolMut = mut }
}

// newPool is a seam so tests can avoid a live dial
var newPool = pgxpool.NewWithConfig

// Open parses the URL and builds the pool
// MaxConns of zero or less keeps the pgx default
func Open(ctx context.Context, cfg Config, opts ...Option) (*PG, error) {
	var set openSettings
	for _, o := range opts {
		o(&set)
	}

	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if set.poolMut != nil {
		set.poolMut(pcfg)
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	return &PG{Pool: pool, Tracer: set.tracer, SlowMs: cfg.SlowMs}, nil
}

// Close releases the pool, safe on a nil client
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
