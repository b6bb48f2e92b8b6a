package module

import (
	"time"

	"devportal/internal/platform/config"
)

// Options controls the catalog upstream client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// FromConfig reads UPSTREAM_CATALOG_* values from process config/env
// BASE_URL is required; TIMEOUT (default 10s) bounds each request and
// RETRY_MAX (default 3) caps retries for idempotent GETs
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("UPSTREAM_CATALOG_")
	return Options{
		BaseURL:    c.MustString("BASE_URL"),
		Timeout:    c.MayDuration("TIMEOUT", 10*time.Second),
		MaxRetries: c.MayInt("RETRY_MAX", 3),
	}
}
