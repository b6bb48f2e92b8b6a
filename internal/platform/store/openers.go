package store

import (
	"context"
	"fmt"
	"time"

	chx "devportal/internal/platform/store/ch"
	"devportal/internal/platform/store/pg"
)

// boot defaults, PGConfig may override retries and the ping timeout
const (
	defaultConnectRetries = 6
	defaultPingTimeout    = 5 * time.Second
	backoffFloor          = 250 * time.Millisecond
	backoffCeil           = 4 * time.Second
)

// openPG dials postgres and waits for a healthy ping before wrapping the pool
// the raw pool pings so boot retries never land in the SQL trace
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var opts []pg.Option
	if cfg.PG.LogSQL {
		opts = append(opts, pg.WithTracer(pg.Tracer(s.Log)))
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, opts...)
	if err != nil {
		return nil, err
	}

	retries := cfg.PG.ConnectRetries
	if retries <= 0 {
		retries = defaultConnectRetries
	}
	pingTO := cfg.PG.PingTimeout
	if pingTO <= 0 {
		pingTO = defaultPingTimeout
	}

	var lastErr error
	backoff := backoffFloor
	for attempt := 0; ; attempt++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTO)
		lastErr = p.Pool.Ping(toCtx)
		cancel()

		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		if attempt >= retries {
			break
		}
		time.Sleep(backoff)
		if backoff *= 2; backoff > backoffCeil {
			backoff = backoffCeil
		}
	}

	p.Close()
	return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", retries+1, lastErr)
}

// openCH dials clickhouse, ch.Open pings once so there is no retry loop here
func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: cfg.AppName})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
