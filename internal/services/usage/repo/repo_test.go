package repo

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	perr "devportal/internal/platform/errors"
	"devportal/internal/platform/store"

	"github.com/jackc/pgx/v5"
)

// scriptRows plays back canned rows through the store.Rows contract
type scriptRows struct {
	cols   []string
	data   [][]any
	idx    int
	err    error
	closed bool
}

func newRows(cols []string, data ...[]any) *scriptRows {
	return &scriptRows{cols: cols, data: data, idx: -1}
}

func (r *scriptRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *scriptRows) Scan(dest ...any) error {
	row := r.data[r.idx]
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		target.Set(reflect.ValueOf(row[i]).Convert(target.Type()))
	}
	return nil
}

func (r *scriptRows) Err() error        { return r.err }
func (r *scriptRows) Close()            { r.closed = true }
func (r *scriptRows) Columns() []string { return r.cols }

type rowFn func(dest ...any) error

func (f rowFn) Scan(dest ...any) error { return f(dest...) }

type fakeTag struct{ n int64 }

func (t fakeTag) String() string      { return "EXEC" }
func (t fakeTag) RowsAffected() int64 { return t.n }

// fakePG records the last statement on each verb
type fakePG struct {
	execSQL  string
	execArgs []any
	execErr  error

	querySQL  string
	queryArgs []any
	queryRows *scriptRows
	queryErr  error

	rowScan rowFn
}

func (f *fakePG) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.execSQL, f.execArgs = sql, args
	return fakeTag{n: 1}, f.execErr
}

func (f *fakePG) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.querySQL, f.queryArgs = sql, args
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryRows, nil
}

func (f *fakePG) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	f.querySQL, f.queryArgs = sql, args
	return f.rowScan
}

// fakeCH records inserts and plays back canned query rows
type fakeCH struct {
	insertTable string
	insertRows  [][]any
	insertErr   error

	querySQL  string
	queryArgs []any
	queryRows *scriptRows
	queryErr  error
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.insertTable, f.insertRows = table, rows
	return f.insertErr
}

func (f *fakeCH) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	f.querySQL, f.queryArgs = sql, args
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryRows, nil
}

func (f *fakeCH) Close() error { return nil }

func bindStore(pg *fakePG, ch *fakeCH) Storage {
	if ch == nil {
		return NewHybrid(nil).Bind(pg)
	}
	return NewHybrid(ch).Bind(pg)
}

var midday = time.Date(2026, 8, 24, 15, 30, 0, 0, time.UTC) // repos must floor this to the UTC day

func TestHasWatermarkTranslatesNoRows(t *testing.T) {
	pg := &fakePG{rowScan: func(...any) error { return pgx.ErrNoRows }}
	s := bindStore(pg, &fakeCH{})

	rolled, err := s.HasWatermark(context.Background(), midday)
	if err != nil {
		t.Fatalf("no watermark must not error: %v", err)
	}
	if rolled {
		t.Fatal("absent watermark reported as rolled")
	}

	pg.rowScan = func(dest ...any) error {
		*(dest[0].(*int)) = 1
		return nil
	}
	if rolled, err = s.HasWatermark(context.Background(), midday); err != nil || !rolled {
		t.Fatalf("present watermark: rolled=%v err=%v", rolled, err)
	}
}

func TestHasWatermarkKeepsBackendErrors(t *testing.T) {
	pg := &fakePG{rowScan: func(...any) error { return errors.New("socket closed") }}
	s := bindStore(pg, &fakeCH{})

	if _, err := s.HasWatermark(context.Background(), midday); err == nil {
		t.Fatal("backend failure swallowed")
	}
}

func TestAggregateDayScopesOneUTCDay(t *testing.T) {
	rows := newRows(
		[]string{"service_name", "version", "outcome", "requests", "total_bytes"},
		[]any{"payments-api", "1.2.0", "served", int64(10), int64(2048)},
		[]any{"payments-api", "1.2.0", "rejected", int64(3), int64(0)},
	)
	pg := &fakePG{queryRows: rows}
	s := bindStore(pg, &fakeCH{})

	aggs, err := s.AggregateDay(context.Background(), midday)
	if err != nil {
		t.Fatalf("AggregateDay: %v", err)
	}

	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !pg.queryArgs[0].(time.Time).Equal(start) || !pg.queryArgs[1].(time.Time).Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("window args = %v", pg.queryArgs)
	}
	if len(aggs) != 2 || aggs[0].Requests != 10 || aggs[1].Outcome != "rejected" {
		t.Fatalf("aggregates = %+v", aggs)
	}
}

func TestInsertRollupBatchesIntoUsageDaily(t *testing.T) {
	ch := &fakeCH{}
	s := bindStore(&fakePG{}, ch)

	aggs := []DayAggregate{
		{ServiceName: "payments-api", Version: "1.2.0", Outcome: "served", Requests: 10, Bytes: 2048},
		{ServiceName: "billing-api", Version: "0.9.1", Outcome: "redirected", Requests: 4, Bytes: 0},
	}
	if err := s.InsertRollup(context.Background(), midday, aggs); err != nil {
		t.Fatalf("InsertRollup: %v", err)
	}
	if ch.insertTable != "usage_daily" {
		t.Fatalf("table = %q", ch.insertTable)
	}
	if len(ch.insertRows) != 2 {
		t.Fatalf("rows = %d", len(ch.insertRows))
	}

	floored := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	first := ch.insertRows[0]
	if !first[0].(time.Time).Equal(floored) || first[1] != "payments-api" || first[4] != uint64(10) {
		t.Fatalf("first row = %v", first)
	}
}

func TestInsertRollupSkipsEmptyBatch(t *testing.T) {
	ch := &fakeCH{}
	s := bindStore(&fakePG{}, ch)

	if err := s.InsertRollup(context.Background(), midday, nil); err != nil {
		t.Fatalf("empty batch must be a no op: %v", err)
	}
	if ch.insertTable != "" {
		t.Fatal("empty batch still reached clickhouse")
	}
}

func TestClickhousePathsFailClosedWithoutBackend(t *testing.T) {
	s := bindStore(&fakePG{}, nil)

	err := s.InsertRollup(context.Background(), midday, []DayAggregate{{ServiceName: "x"}})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("InsertRollup err = %v", err)
	}
	if _, err = s.Daily(context.Background(), "", midday); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("Daily err = %v", err)
	}
	if _, err = s.Totals(context.Background(), TotalsFilter{}); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("Totals err = %v", err)
	}
}

func TestMarkRolledWritesWatermark(t *testing.T) {
	pg := &fakePG{}
	s := bindStore(pg, &fakeCH{})

	if err := s.MarkRolled(context.Background(), midday, 42); err != nil {
		t.Fatalf("MarkRolled: %v", err)
	}
	if !strings.Contains(pg.execSQL, "ON CONFLICT (day) DO NOTHING") {
		t.Fatalf("watermark insert must be idempotent: %s", pg.execSQL)
	}
	if pg.execArgs[1] != 42 {
		t.Fatalf("args = %v", pg.execArgs)
	}
}

func TestDailyAppendsServiceFilter(t *testing.T) {
	ch := &fakeCH{queryRows: newRows(
		[]string{"day", "service_name", "version", "outcome", "requests", "bytes"},
		[]any{time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), "payments-api", "1.2.0", "served", uint64(7), uint64(512)},
	)}
	s := bindStore(&fakePG{}, ch)

	out, err := s.Daily(context.Background(), "payments-api", midday)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if !strings.Contains(ch.querySQL, "AND service_name = ?") {
		t.Fatalf("filter missing: %s", ch.querySQL)
	}
	if len(ch.queryArgs) != 2 || ch.queryArgs[1] != "payments-api" {
		t.Fatalf("args = %v", ch.queryArgs)
	}
	if out[0].Day != "2026-08-20" || out[0].Requests != 7 {
		t.Fatalf("row = %+v", out[0])
	}

	// without a service the filter and its arg disappear
	ch.queryRows = newRows(nil)
	if _, err := s.Daily(context.Background(), "", midday); err != nil {
		t.Fatalf("Daily unfiltered: %v", err)
	}
	if strings.Contains(ch.querySQL, "AND service_name") || len(ch.queryArgs) != 1 {
		t.Fatalf("unfiltered query leaked a filter: %s %v", ch.querySQL, ch.queryArgs)
	}
}

func TestTotalsExpandsINLists(t *testing.T) {
	ch := &fakeCH{queryRows: newRows(nil)}
	s := bindStore(&fakePG{}, ch)

	f := TotalsFilter{
		ServiceName: "payments-api",
		From:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		Versions:    []string{"1.2.0", "1.3.0"},
		Outcomes:    []string{"served"},
	}
	if _, err := s.Totals(context.Background(), f); err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if !strings.Contains(ch.querySQL, "version IN (?,?)") || !strings.Contains(ch.querySQL, "outcome IN (?)") {
		t.Fatalf("IN clauses: %s", ch.querySQL)
	}
	if len(ch.queryArgs) != 6 {
		t.Fatalf("args = %v", ch.queryArgs)
	}
	if !ch.queryArgs[0].(time.Time).Equal(f.From) || !ch.queryArgs[1].(time.Time).Equal(f.To) {
		t.Fatalf("window args = %v", ch.queryArgs[:2])
	}
	if !reflect.DeepEqual(ch.queryArgs[2:], []any{"payments-api", "1.2.0", "1.3.0", "served"}) {
		t.Fatalf("filter args = %v", ch.queryArgs[2:])
	}
}

func TestRecentFormatsTimestamps(t *testing.T) {
	at := time.Date(2026, 8, 24, 9, 15, 0, 0, time.UTC)
	pg := &fakePG{queryRows: newRows(
		nil,
		[]any{"evt-1", at, "payments-api", "1.2.0", "openapi.json", "served", "", "dev@example.com", "req-9", int64(2048)},
	)}
	s := bindStore(pg, &fakeCH{})

	out, err := s.Recent(context.Background(), "payments-api", 50)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if pg.queryArgs[0] != "payments-api" || pg.queryArgs[1] != 50 {
		t.Fatalf("args = %v", pg.queryArgs)
	}
	if out[0].OccurredAt != "2026-08-24T09:15:00Z" {
		t.Fatalf("OccurredAt = %q", out[0].OccurredAt)
	}
	if out[0].UserEmail != "dev@example.com" || out[0].Bytes != 2048 {
		t.Fatalf("row = %+v", out[0])
	}
}
