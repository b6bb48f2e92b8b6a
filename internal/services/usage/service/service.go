// Package service provides the usage query and rollup implementation
package service

import (
	"context"
	"time"

	"devportal/internal/modkit/repokit"
	perr "devportal/internal/platform/errors"
	"devportal/internal/platform/logger"
	"devportal/internal/platform/metrics"
	"devportal/internal/services/usage/domain"
	urepo "devportal/internal/services/usage/repo"
)

// Config controls the rollup worker
type Config struct {
	LookbackDays int
	Interval     time.Duration
}

// Service defines the combined usage contract
type Service interface {
	domain.QueryPort
	domain.RollupPort
}

// Svc implements the Service interface
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[urepo.Storage]
	repo   urepo.Storage
	cfg    Config
	met    metrics.Metrics

	now func() time.Time
}

// New creates a new usage service
func New(db repokit.TxRunner, binder repokit.Binder[urepo.Storage], cfg Config, met metrics.Metrics) *Svc {
	if db == nil {
		panic("usage.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("usage.Service requires a non nil Repo binder")
	}
	if met == nil {
		met = metrics.Noop{}
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 3
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &Svc{db: db, binder: binder, repo: binder.Bind(db), cfg: cfg, met: met, now: time.Now}
}

// Daily returns per day rollup rows for the trailing window
func (s *Svc) Daily(ctx context.Context, serviceName string, days int) ([]domain.DayRow, error) {
	if days <= 0 {
		days = 7
	}
	if days > 90 {
		days = 90
	}
	since := s.now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)
	return s.repo.Daily(ctx, serviceName, since)
}

// Totals runs the aggregate usage query
func (s *Svc) Totals(ctx context.Context, in domain.QueryInput) ([]domain.TotalsRow, error) {
	from, err := time.Parse("2006-01-02", in.From)
	if err != nil {
		return nil, perr.InvalidArgf("from: %v", err)
	}
	to, err := time.Parse("2006-01-02", in.To)
	if err != nil {
		return nil, perr.InvalidArgf("to: %v", err)
	}
	if to.Before(from) {
		return nil, perr.InvalidArgf("to precedes from")
	}
	return s.repo.Totals(ctx, urepo.TotalsFilter{
		ServiceName: in.ServiceName,
		From:        from,
		To:          to,
		Versions:    in.Versions,
		Outcomes:    in.Outcomes,
	})
}

// Recent lists the latest audit rows
func (s *Svc) Recent(ctx context.Context, serviceName string, limit int) ([]domain.RecentEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.repo.Recent(ctx, serviceName, limit)
}

// RollupDay rolls exactly one UTC day into usage_daily.
// A day already under a watermark reports rolled=false and does no work
func (s *Svc) RollupDay(ctx context.Context, day time.Time) (int, bool, error) {
	day = day.UTC().Truncate(24 * time.Hour)

	done, err := s.repo.HasWatermark(ctx, day)
	if err != nil {
		return 0, false, err
	}
	if done {
		return 0, false, nil
	}

	aggs, err := s.repo.AggregateDay(ctx, day)
	if err != nil {
		return 0, false, err
	}
	if err := s.repo.InsertRollup(ctx, day, aggs); err != nil {
		return 0, false, err
	}
	if err := s.repo.MarkRolled(ctx, day, len(aggs)); err != nil {
		return 0, false, err
	}

	s.met.AddRollupRows(float64(len(aggs)))
	return len(aggs), true, nil
}

// RollupRecent rolls the lookback window ending yesterday.
// Today is still accruing and never rolls
func (s *Svc) RollupRecent(ctx context.Context) error {
	log := logger.C(ctx).With().Str("mod", "usage").Logger()
	today := s.now().UTC().Truncate(24 * time.Hour)

	for i := s.cfg.LookbackDays; i >= 1; i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		day := today.AddDate(0, 0, -i)
		n, rolled, err := s.RollupDay(ctx, day)
		if err != nil {
			log.Error().Err(err).Time("day", day).Msg("usage: rollup day failed")
			continue
		}
		if rolled {
			log.Info().Time("day", day).Int("rows", n).Msg("usage: day rolled")
		}
	}
	return nil
}

// Run ticks RollupRecent until the context ends.
// The first pass runs before the first tick
func (s *Svc) Run(ctx context.Context) error {
	t := time.NewTicker(s.cfg.Interval)
	defer t.Stop()

	if err := s.RollupRecent(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := s.RollupRecent(ctx); err != nil {
				return err
			}
		}
	}
}
