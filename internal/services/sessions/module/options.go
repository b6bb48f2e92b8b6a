package module

import (
	"time"

	"devportal/internal/platform/config"
	"devportal/internal/platform/metrics"
)

// Options holds configuration settings for the sessions module
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int

	// Metrics is injected by the composition root, nil disables instrumentation
	Metrics metrics.Metrics
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("UPSTREAM_IDENTITY_")
	return Options{
		BaseURL:    sf.MustString("BASE_URL"),
		Timeout:    sf.MayDuration("TIMEOUT", 5*time.Second),
		MaxRetries: sf.MayInt("RETRY_MAX", 2),
	}
}
