// Package repo provides the usage storage repository implementation
package repo

import (
	"context"
	stderrs "errors"
	"strings"
	"time"

	"devportal/internal/modkit/repokit"
	perr "devportal/internal/platform/errors"
	"devportal/internal/platform/store"
	"devportal/internal/services/usage/domain"
)

// NewHybrid returns a binder that uses
// - Postgres for audit aggregation, watermarks and the recent listing
// - ClickHouse for rollup rows and usage reads
// ch may be nil; ClickHouse paths then fail with an unavailable error
func NewHybrid(ch store.Clickhouse) repokit.Binder[Storage] {
	return &hybridBinder{ch: ch}
}

type hybridBinder struct{ ch store.Clickhouse }

func (b *hybridBinder) Bind(q repokit.Queryer) Storage {
	return &hybridStore{pg: q, ch: b.ch}
}

type hybridStore struct {
	pg repokit.Queryer
	ch store.Clickhouse
}

// DayAggregate is one grouped slice of a day's audit rows
type DayAggregate struct {
	ServiceName string
	Version     string
	Outcome     string
	Requests    int64
	Bytes       int64
}

// TotalsFilter scopes the aggregate usage query
type TotalsFilter struct {
	ServiceName string
	From        time.Time
	To          time.Time
	Versions    []string
	Outcomes    []string
}

// Storage defines the usage repository over both backends
type Storage interface {
	HasWatermark(ctx context.Context, day time.Time) (bool, error)
	AggregateDay(ctx context.Context, day time.Time) ([]DayAggregate, error)
	InsertRollup(ctx context.Context, day time.Time, rows []DayAggregate) error
	MarkRolled(ctx context.Context, day time.Time, rows int) error

	Daily(ctx context.Context, serviceName string, since time.Time) ([]domain.DayRow, error)
	Totals(ctx context.Context, f TotalsFilter) ([]domain.TotalsRow, error)
	Recent(ctx context.Context, serviceName string, limit int) ([]domain.RecentEvent, error)
}

func (s *hybridStore) chGuard() error {
	if s.ch == nil {
		return perr.Unavailablef("clickhouse not configured")
	}
	return nil
}

// HasWatermark implements Storage
func (s *hybridStore) HasWatermark(ctx context.Context, day time.Time) (bool, error) {
	const sqlq = `SELECT 1 FROM rollup_watermarks WHERE day = $1`
	if _, err := store.Scalar[int](ctx, s.pg, sqlq, day.UTC()); err != nil {
		if stderrs.Is(err, perr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AggregateDay implements Storage; groups one UTC day of download_events
func (s *hybridStore) AggregateDay(ctx context.Context, day time.Time) ([]DayAggregate, error) {
	start := day.UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 1)

	const sqlq = `
        SELECT service_name, version, outcome::text,
               COUNT(*) AS requests, COALESCE(SUM(bytes), 0) AS total_bytes
          FROM download_events
         WHERE occurred_at >= $1 AND occurred_at < $2
         GROUP BY service_name, version, outcome
         ORDER BY service_name, version, outcome
    `
	return store.Many(ctx, s.pg, func(r store.Row) (DayAggregate, error) {
		var a DayAggregate
		err := r.Scan(&a.ServiceName, &a.Version, &a.Outcome, &a.Requests, &a.Bytes)
		return a, err
	}, sqlq, start, end)
}

// InsertRollup implements Storage; one native batch into usage_daily
func (s *hybridStore) InsertRollup(ctx context.Context, day time.Time, aggs []DayAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	if err := s.chGuard(); err != nil {
		return err
	}
	day = day.UTC().Truncate(24 * time.Hour)
	rows := make([][]any, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, []any{
			day, a.ServiceName, a.Version, a.Outcome, uint64(a.Requests), uint64(a.Bytes),
		})
	}
	if err := s.ch.Insert(ctx, "usage_daily", rows); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "insert usage_daily batch")
	}
	return nil
}

// MarkRolled implements Storage; a present day never rolls twice
func (s *hybridStore) MarkRolled(ctx context.Context, day time.Time, rowCount int) error {
	const sqlq = `
        INSERT INTO rollup_watermarks (day, rolled_at, row_count)
        VALUES ($1, now(), $2)
        ON CONFLICT (day) DO NOTHING
    `
	if _, err := s.pg.Exec(ctx, sqlq, day.UTC(), rowCount); err != nil {
		return perr.FromPostgresf(err, "mark day rolled")
	}
	return nil
}

// Daily implements Storage; per day rows from ClickHouse since the given day
func (s *hybridStore) Daily(ctx context.Context, serviceName string, since time.Time) ([]domain.DayRow, error) {
	if err := s.chGuard(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	args := []any{since.UTC().Truncate(24 * time.Hour)}
	sb.WriteString(`
        SELECT day, service_name, version, outcome, sum(requests), sum(bytes)
        FROM usage_daily
        WHERE day >= ?`)
	if serviceName != "" {
		sb.WriteString(" AND service_name = ?")
		args = append(args, serviceName)
	}
	sb.WriteString(`
        GROUP BY day, service_name, version, outcome
        ORDER BY day ASC, service_name ASC, version ASC, outcome ASC`)

	return store.Many(ctx, s.ch, func(r store.Row) (domain.DayRow, error) {
		var (
			day                      time.Time
			svcName, version, result string
			requests, totalBytes     uint64
		)
		if err := r.Scan(&day, &svcName, &version, &result, &requests, &totalBytes); err != nil {
			return domain.DayRow{}, err
		}
		return domain.DayRow{
			Day:         day.UTC().Format("2006-01-02"),
			ServiceName: svcName,
			Version:     version,
			Outcome:     result,
			Requests:    requests,
			Bytes:       totalBytes,
		}, nil
	}, sb.String(), args...)
}

// Totals implements Storage; aggregated rows from ClickHouse
func (s *hybridStore) Totals(ctx context.Context, f TotalsFilter) ([]domain.TotalsRow, error) {
	if err := s.chGuard(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	var args []any
	sb.WriteString(`
        SELECT service_name, version, outcome, sum(requests), sum(bytes)
        FROM usage_daily
        WHERE day >= ? AND day <= ? AND service_name = ?`)
	args = append(args, f.From.UTC().Truncate(24*time.Hour), f.To.UTC().Truncate(24*time.Hour), f.ServiceName)
	if len(f.Versions) > 0 {
		sb.WriteString(" AND version IN (")
		for i, v := range f.Versions {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('?')
			args = append(args, v)
		}
		sb.WriteString(")")
	}
	if len(f.Outcomes) > 0 {
		sb.WriteString(" AND outcome IN (")
		for i, o := range f.Outcomes {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('?')
			args = append(args, o)
		}
		sb.WriteString(")")
	}
	sb.WriteString(`
        GROUP BY service_name, version, outcome
        ORDER BY service_name ASC, version ASC, outcome ASC`)

	return store.Many(ctx, s.ch, func(r store.Row) (domain.TotalsRow, error) {
		var row domain.TotalsRow
		err := r.Scan(&row.ServiceName, &row.Version, &row.Outcome, &row.Requests, &row.Bytes)
		return row, err
	}, sb.String(), args...)
}

// Recent implements Storage; latest audit rows from Postgres
func (s *hybridStore) Recent(ctx context.Context, serviceName string, limit int) ([]domain.RecentEvent, error) {
	const sqlq = `
        SELECT id::text, occurred_at, service_name, version, resource_key,
               outcome::text, COALESCE(reason, '') AS reason,
               COALESCE(user_email, '') AS user_email, request_id, bytes
          FROM download_events
         WHERE ($1 = '' OR service_name = $1)
         ORDER BY occurred_at DESC, id DESC
         LIMIT $2
    `
	return store.Many(ctx, s.pg, func(r store.Row) (domain.RecentEvent, error) {
		var (
			ev domain.RecentEvent
			at time.Time
		)
		if err := r.Scan(
			&ev.ID, &at, &ev.ServiceName, &ev.Version, &ev.ResourceKey,
			&ev.Outcome, &ev.Reason, &ev.UserEmail, &ev.RequestID, &ev.Bytes,
		); err != nil {
			return ev, err
		}
		ev.OccurredAt = at.UTC().Format(time.RFC3339)
		return ev, nil
	}, sqlq, serviceName, limit)
}
