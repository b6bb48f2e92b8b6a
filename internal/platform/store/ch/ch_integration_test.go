//go:build integration_ch
// +build integration_ch

package ch

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startClickhouse(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.8-alpine",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"CLICKHOUSE_USER":     "portal",
			"CLICKHOUSE_PASSWORD": "portal",
			"CLICKHOUSE_DB":       "portal",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("9000/tcp"),
			wait.ForLog("Ready for connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start clickhouse container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "9000/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("clickhouse://portal:portal@%s:%s/portal", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestInsertQuery_Integration(t *testing.T) {
	dsn, stop := startClickhouse(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	cl, err := Open(ctx, Config{URL: dsn, Role: "integration"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = cl.Close() }()

	if err := cl.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	ddl := `
		CREATE TABLE usage_daily (
			day          Date,
			service_name String,
			version      String,
			outcome      String,
			requests     UInt64,
			bytes        UInt64
		) ENGINE = SummingMergeTree((requests, bytes))
		ORDER BY (day, service_name, version, outcome)`
	if err := cl.Exec(ctx, ddl); err != nil {
		t.Fatalf("create table: %v", err)
	}

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	rows := [][]any{
		{day, "orders-api", "1.0", "serve", uint64(7), uint64(1024)},
		{day, "orders-api", "1.0", "reject", uint64(2), uint64(0)},
	}
	if err := cl.Insert(ctx, "usage_daily", rows); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	rs, err := cl.Query(ctx,
		"SELECT outcome, sum(requests) FROM usage_daily WHERE service_name = ? GROUP BY outcome ORDER BY outcome",
		"orders-api")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	defer func() { _ = rs.Close() }()

	got := map[string]uint64{}
	for rs.Next() {
		var outcome string
		var n uint64
		if err := rs.Scan(&outcome, &n); err != nil {
			t.Fatalf("Scan: %v", err)
		}
		got[outcome] = n
	}
	if err := rs.Err(); err != nil {
		t.Fatalf("rows err: %v", err)
	}
	if got["serve"] != 7 || got["reject"] != 2 {
		t.Fatalf("unexpected sums: %+v", got)
	}
}
