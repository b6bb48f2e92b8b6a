package domain

import (
	"context"
	"time"
)

// QueryPort serves usage reads for the http surface
type QueryPort interface {
	Daily(ctx context.Context, serviceName string, days int) ([]DayRow, error)
	Totals(ctx context.Context, in QueryInput) ([]TotalsRow, error)
	Recent(ctx context.Context, serviceName string, limit int) ([]RecentEvent, error)
}

// RollupPort drives the daily usage rollup
type RollupPort interface {
	// RollupDay rolls exactly one UTC day, once. A day already covered by
	// a watermark reports rolled=false and does no work
	RollupDay(ctx context.Context, day time.Time) (rows int, rolled bool, err error)

	// RollupRecent rolls the lookback window ending yesterday
	RollupRecent(ctx context.Context) error

	// Run ticks RollupRecent until the context ends
	Run(ctx context.Context) error
}
