package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"devportal/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpenParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}); err == nil {
		t.Fatal("Open accepted a malformed URL")
	}
}

func TestOpenPoolError(t *testing.T) {
	// rewires a package seam, keep it off the parallel schedule
	testkit.Serial(t)

	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("no sockets left")
	})

	_, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/portal?sslmode=disable"})
	if err == nil {
		t.Fatal("Open swallowed the pool error")
	}
}

func TestOpenAppliesConfigAndOptions(t *testing.T) {
	testkit.Serial(t)

	fake := &pgxpool.Pool{} // zero value, never dialed and never closed
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		if pc.MaxConns != 7 {
			t.Fatalf("MaxConns = %d, want 7", pc.MaxConns)
		}
		if pc.MaxConnIdleTime != 42*time.Second {
			t.Fatalf("pool mutator not applied, MaxConnIdleTime = %v", pc.MaxConnIdleTime)
		}
		return fake, nil
	})

	tr := Tracer(testLogger())
	p, err := Open(context.Background(),
		Config{URL: "postgres://u:p@h:5432/portal?sslmode=disable", MaxConns: 7, SlowMs: 123},
		WithTracer(tr),
		WithPoolConfig(func(pc *pgxpool.Config) { pc.MaxConnIdleTime = 42 * time.Second }),
	)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Pool != fake {
		t.Fatal("Open returned a different pool")
	}
	if p.SlowMs != 123 {
		t.Fatalf("SlowMs = %d", p.SlowMs)
	}
	if p.Tracer != tr {
		t.Fatal("tracer option not applied")
	}
}

func TestCloseNilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()

	p = &PG{}
	p.Close()
	p.Close()
}
