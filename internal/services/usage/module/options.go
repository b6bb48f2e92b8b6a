package module

import (
	"time"

	"devportal/internal/platform/config"
	"devportal/internal/platform/metrics"
)

// Options controls the usage rollup worker
type Options struct {
	LookbackDays int
	Interval     time.Duration

	// Metrics is injected by the composition root, nil disables instrumentation
	Metrics metrics.Metrics
}

// FromConfig reads ROLLUP_* values from process config/env
// LOOKBACK_DAYS (default 3) bounds how far back a pass re-checks
// watermarks; INTERVAL (default 1h) paces the resident worker loop
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ROLLUP_")
	return Options{
		LookbackDays: c.MayInt("LOOKBACK_DAYS", 3),
		Interval:     c.MayDuration("INTERVAL", time.Hour),
	}
}
