package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"devportal/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakePGXRow implements pgx.Row
type fakePGXRow struct {
	scan func(dest ...any) error
}

func (r *fakePGXRow) Scan(dest ...any) error {
	if r.scan != nil {
		return r.scan(dest...)
	}
	return nil
}

// fakePGXRows implements pgx.Rows over an in memory grid
type fakePGXRows struct {
	fields []pgconn.FieldDescription
	data   [][]any
	idx    int
	err    error
	closed bool
}

func newFakePGXRows(cols []string, data [][]any) *fakePGXRows {
	fds := make([]pgconn.FieldDescription, len(cols))
	for i, c := range cols {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return &fakePGXRows{fields: fds, data: data, idx: -1}
}

func (r *fakePGXRows) Conn() *pgx.Conn                              { return nil }
func (r *fakePGXRows) Close()                                       { r.closed = true }
func (r *fakePGXRows) Err() error                                   { return r.err }
func (r *fakePGXRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakePGXRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }
func (r *fakePGXRows) RawValues() [][]byte                          { return nil }

func (r *fakePGXRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakePGXRows) Values() ([]any, error) {
	if r.idx < 0 || r.idx >= len(r.data) {
		return nil, errors.New("out of range")
	}
	return r.data[r.idx], nil
}

// Scan copies the current row by reflection. Tests own both sides of
// the copy, so shape mistakes may panic instead of erroring politely
func (r *fakePGXRows) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if r.idx < 0 || r.idx >= len(r.data) {
		return errors.New("scan out of range")
	}
	row := r.data[r.idx]
	if len(row) != len(dest) {
		return errors.New("dest len mismatch")
	}
	for i, d := range dest {
		cell := reflect.ValueOf(row[i])
		target := reflect.ValueOf(d).Elem()
		target.Set(cell.Convert(target.Type()))
	}
	return nil
}

// fakeQuerier satisfies pgxQuerier, which is all traced needs
type fakeQuerier struct {
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.execFn != nil {
		return f.execFn(ctx, sql, args...)
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.queryFn != nil {
		return f.queryFn(ctx, sql, args...)
	}
	return newFakePGXRows([]string{"n"}, [][]any{{1}}), nil
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.queryRowFn != nil {
		return f.queryRowFn(ctx, sql, args...)
	}
	return &fakePGXRow{}
}

// recordTracer captures emitted events for assertions
type recordTracer struct {
	events []pg.QueryEvent
}

func (r *recordTracer) OnQuery(_ context.Context, ev pg.QueryEvent) {
	r.events = append(r.events, ev)
}

func TestTracedExecForwardsAndTags(t *testing.T) {
	t.Parallel()

	fq := &fakeQuerier{
		execFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			if sql != "UPDATE services SET tier=$1 WHERE id=$2" {
				return pgconn.CommandTag{}, errors.New("unexpected sql")
			}
			if len(args) != 2 || args[0] != "internal" || args[1] != 7 {
				return pgconn.CommandTag{}, errors.New("unexpected args")
			}
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}
	q := traced{q: fq}

	ct, err := q.Exec(context.Background(), "UPDATE services SET tier=$1 WHERE id=$2", "internal", 7)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if ct.String() != "UPDATE 1" || ct.RowsAffected() != 1 {
		t.Fatalf("tag = %q affected=%d", ct.String(), ct.RowsAffected())
	}
}

func TestTracedQueryWrapsRows(t *testing.T) {
	t.Parallel()

	fr := newFakePGXRows([]string{"name", "tier"}, [][]any{{"billing", "public"}, {"ledger", "internal"}})
	q := traced{q: &fakeQuerier{
		queryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return fr, nil },
	}}

	rs, err := q.Query(context.Background(), "SELECT name, tier FROM services")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if cols := rs.Columns(); len(cols) != 2 || cols[0] != "name" || cols[1] != "tier" {
		t.Fatalf("Columns = %#v", cols)
	}

	var names []string
	for rs.Next() {
		var name, tier string
		if err := rs.Scan(&name, &tier); err != nil {
			t.Fatalf("Scan: %v", err)
		}
		names = append(names, name)
	}
	if err := rs.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	rs.Close()
	if !fr.closed {
		t.Fatal("Close did not reach the pgx rows")
	}
	if !reflect.DeepEqual(names, []string{"billing", "ledger"}) {
		t.Fatalf("names = %v", names)
	}
}

// TestTracedQueryRowKeepsNoRows proves pgx.ErrNoRows survives the wrapper,
// Scalar depends on seeing it untouched
func TestTracedQueryRowKeepsNoRows(t *testing.T) {
	t.Parallel()

	q := traced{q: &fakeQuerier{
		queryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakePGXRow{scan: func(...any) error { return pgx.ErrNoRows }}
		},
	}}

	var n int
	err := q.QueryRow(context.Background(), "SELECT id FROM services WHERE name=$1", "ghost").Scan(&n)
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("err = %v, want pgx.ErrNoRows", err)
	}
}

func TestTracedEmitsToTracer(t *testing.T) {
	t.Parallel()

	rec := &recordTracer{}
	q := traced{q: &fakeQuerier{}, tracer: rec, slowUS: 0}

	if _, err := q.Exec(context.Background(), "DELETE FROM sessions WHERE expired"); err != nil {
		t.Fatalf("Exec: %v", err)
	}

	var n int
	scanErr := errors.New("scan blew up")
	q2 := traced{
		q: &fakeQuerier{queryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakePGXRow{scan: func(...any) error { return scanErr }}
		}},
		tracer: rec,
		slowUS: 0,
	}
	_ = q2.QueryRow(context.Background(), "SELECT 1").Scan(&n)

	if len(rec.events) != 2 {
		t.Fatalf("events = %d, want 2", len(rec.events))
	}
	if rec.events[0].SQL != "DELETE FROM sessions WHERE expired" || rec.events[0].Err != nil {
		t.Fatalf("exec event = %+v", rec.events[0])
	}
	// slowUS of zero marks everything slow
	if !rec.events[0].Slow {
		t.Fatal("exec event not marked slow at zero threshold")
	}
	if rec.events[1].Err == nil || !errors.Is(rec.events[1].Err, scanErr) {
		t.Fatalf("query row event should carry the scan error, got %+v", rec.events[1])
	}
}

func TestTracedwithoutTracerStaysQuiet(t *testing.T) {
	t.Parallel()

	q := traced{q: &fakeQuerier{}, slowUS: -1}
	if _, err := q.Exec(context.Background(), "SELECT 1"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	var n int
	if err := q.QueryRow(context.Background(), "SELECT 1").Scan(&n); err != nil {
		t.Fatalf("Scan: %v", err)
	}
}

func TestTracedPropagatesBackendErrors(t *testing.T) {
	t.Parallel()

	q := traced{q: &fakeQuerier{
		execFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("exec failed")
		},
		queryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return nil, errors.New("query failed")
		},
	}}

	if _, err := q.Exec(context.Background(), "x"); err == nil {
		t.Fatal("Exec error swallowed")
	}
	if _, err := q.Query(context.Background(), "x"); err == nil {
		t.Fatal("Query error swallowed")
	}
}

func TestRowsScanMismatchAndErr(t *testing.T) {
	t.Parallel()

	fr := newFakePGXRows([]string{"a", "b"}, [][]any{{1, "x"}})
	rs := pgRows{r: fr}
	if !rs.Next() {
		t.Fatal("Next = false")
	}
	var only int
	if err := rs.Scan(&only); err == nil {
		t.Fatal("dest len mismatch accepted")
	}

	broken := newFakePGXRows([]string{"n"}, nil)
	broken.err = errors.New("wire dropped")
	rs2 := pgRows{r: broken}
	if rs2.Next() {
		t.Fatal("Next = true on broken rows")
	}
	if err := rs2.Err(); err == nil || err.Error() != "wire dropped" {
		t.Fatalf("Err = %v", err)
	}
}

func TestCmdTag(t *testing.T) {
	t.Parallel()

	ct := cmdTag{t: pgconn.NewCommandTag("INSERT 0 3")}
	if ct.String() != "INSERT 0 3" {
		t.Fatalf("String = %q", ct.String())
	}
	if ct.RowsAffected() != 3 {
		t.Fatalf("RowsAffected = %d", ct.RowsAffected())
	}
}
