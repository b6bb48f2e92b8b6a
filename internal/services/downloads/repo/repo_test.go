package repo

import (
	"context"
	"errors"
	"strings"
	"testing"

	perr "devportal/internal/platform/errors"
	"devportal/internal/platform/store"

	"github.com/google/uuid"
)

type fakeTag struct{}

func (fakeTag) String() string      { return "INSERT 0 1" }
func (fakeTag) RowsAffected() int64 { return 1 }

// recorder captures the statement the audit repo runs
type recorder struct {
	sql  string
	args []any
	err  error
}

func (r *recorder) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	r.sql, r.args = sql, args
	return fakeTag{}, r.err
}

func (r *recorder) Query(context.Context, string, ...any) (store.Rows, error) {
	panic("audit repo never queries")
}

func (r *recorder) QueryRow(context.Context, string, ...any) store.Row {
	panic("audit repo never queries")
}

func TestInsertWritesOneAuditRow(t *testing.T) {
	rec := &recorder{}
	s := NewPG().Bind(rec)

	ev := Event{
		ServiceName: "payments-api",
		Version:     "1.2.0",
		ResourceKey: "openapi.json",
		Outcome:     "served",
		UserEmail:   "dev@example.com",
		RequestID:   "req-7",
		Bytes:       2048,
	}
	if err := s.Insert(context.Background(), ev); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !strings.Contains(rec.sql, "INSERT INTO download_events") {
		t.Fatalf("sql = %s", rec.sql)
	}
	// empty reason and email become NULL at the statement, not in Go
	if !strings.Contains(rec.sql, "NULLIF($5, '')") || !strings.Contains(rec.sql, "NULLIF($6, '')") {
		t.Fatalf("sql = %s", rec.sql)
	}
	want := []any{"payments-api", "1.2.0", "openapi.json", "served", "", "dev@example.com", "req-7", int64(2048)}
	if len(rec.args) != len(want) {
		t.Fatalf("args = %v", rec.args)
	}
	for i := range want {
		if rec.args[i] != want[i] {
			t.Fatalf("arg %d = %v want %v", i, rec.args[i], want[i])
		}
	}
}

func TestInsertBackfillsMissingRequestID(t *testing.T) {
	rec := &recorder{}
	s := NewPG().Bind(rec)

	if err := s.Insert(context.Background(), Event{ServiceName: "x", Outcome: "rejected"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	id, ok := rec.args[6].(string)
	if !ok || id == "" {
		t.Fatalf("request id arg = %v", rec.args[6])
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("fallback id %q is not a uuid: %v", id, err)
	}
}

func TestInsertClassifiesBackendErrors(t *testing.T) {
	rec := &recorder{err: errors.New("broken pipe")}
	s := NewPG().Bind(rec)

	err := s.Insert(context.Background(), Event{ServiceName: "x"})
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("err = %v", err)
	}
}
