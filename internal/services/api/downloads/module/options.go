package module

import (
	"time"

	"devportal/internal/platform/config"
)

// Options controls the gate collaborators built from process config
type Options struct {
	CatalogBaseURL  string
	CatalogTimeout  time.Duration
	CatalogRetryMax int

	// StoreRoot is the directory resource files are served from
	StoreRoot string

	// LoginURL is where anonymous users are redirected for protected material
	LoginURL string
	// SessionCookie names the cookie carrying the portal session id
	SessionCookie string
}

// FromConfig reads UPSTREAM_CATALOG_*, RESOURCE_STORE_* and PORTAL_* values
// from process config/env. BASE_URL, ROOT and LOGIN_URL are required
func FromConfig(cfg config.Conf) Options {
	cat := cfg.Prefix("UPSTREAM_CATALOG_")
	portal := cfg.Prefix("PORTAL_")
	return Options{
		CatalogBaseURL:  cat.MustString("BASE_URL"),
		CatalogTimeout:  cat.MayDuration("TIMEOUT", 10*time.Second),
		CatalogRetryMax: cat.MayInt("RETRY_MAX", 3),
		StoreRoot:       cfg.Prefix("RESOURCE_STORE_").MustString("ROOT"),
		LoginURL:        portal.MustString("LOGIN_URL"),
		SessionCookie:   portal.MayString("SESSION_COOKIE", "PORTAL_SESSION"),
	}
}
