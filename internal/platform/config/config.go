// Package config reads typed configuration out of environment variables.
//
// A Conf is a namespaced window onto the environment. Prefixes nest by
// concatenation, so config.New().Prefix("CORE_API_").Prefix("PORTAL_")
// resolves keys under CORE_API_PORTAL_. Values are trimmed before use
// and a value that trims to nothing counts as absent
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"devportal/internal/platform/logger"
)

// Conf is a prefixed view over the process environment
type Conf struct{ prefix string }

// New returns the root view with no prefix
func New() Conf { return Conf{} }

// Prefix narrows the view by appending p to the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// get resolves key under the prefix and reports whether a usable value
// was present
func (c Conf) get(key string) (string, string, bool) {
	full := c.prefix + key
	v := strings.TrimSpace(os.Getenv(full))
	return full, v, v != ""
}

// MustString returns the value for key or panics when it is absent.
// Required settings fail at boot, not on first use
func (c Conf) MustString(key string) string {
	full, v, ok := c.get(key)
	if !ok {
		logger.Get().Panic().Str("key", full).Msg("missing required env")
	}
	return v
}

// MayString returns the value for key, or def when absent
func (c Conf) MayString(key, def string) string {
	if _, v, ok := c.get(key); ok {
		return v
	}
	return def
}

// MayInt returns the integer value for key. An absent key yields def,
// an unparsable one logs a warning and yields def rather than taking
// the process down
func (c Conf) MayInt(key string, def int) int {
	full, v, ok := c.get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Get().Warn().Str("key", full).Str("value", v).Int("default", def).Msg("invalid int; using default")
		return def
	}
	return n
}

// MayBool returns the boolean value for key, def when absent or unparsable
func (c Conf) MayBool(key string, def bool) bool {
	full, v, ok := c.get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Get().Warn().Str("key", full).Str("value", v).Bool("default", def).Msg("invalid bool; using default")
		return def
	}
	return b
}

// MayDuration returns the duration value for key in time.ParseDuration
// syntax, def when absent or unparsable
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	full, v, ok := c.get(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Get().Warn().Str("key", full).Str("value", v).Dur("default", def).Msg("invalid duration; using default")
		return def
	}
	return d
}
