package pg

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// WithTestDB opens a client against dsn and hands it to fn
// the client closes on test cleanup
func WithTestDB(t *testing.T, dsn string, poolMut func(*pgxpool.Config), fn func(p *PG)) {
	t.Helper()

	var opts []Option
	if poolMut != nil {
		opts = append(opts, WithPoolConfig(poolMut))
	}
	client, err := Open(context.Background(), Config{URL: dsn}, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(client.Close)
	fn(client)
}

// AcquireConn pins one connection so TEMP tables and session settings stick
func AcquireConn(t *testing.T, ctx context.Context, p *PG) *pgxpool.Conn {
	t.Helper()

	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	t.Cleanup(conn.Release)
	return conn
}
