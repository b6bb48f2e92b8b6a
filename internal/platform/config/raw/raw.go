// Package raw is the bootstrap env reader. The logger configures itself
// through this package, so it must never import the logger or the typed
// config layer above it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over the environment, mirroring the typed
// config.Conf but with silent defaults instead of logging
type Conf struct{ prefix string }

// New returns the root view
func New() Conf { return Conf{} }

// Prefix appends p to the view's prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Get returns the trimmed value for key, def when blank
func (c Conf) Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(c.prefix + key)); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1, true and yes in any case, anything else is false.
// A blank value yields def
func (c Conf) GetBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(c.prefix + key)))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

// GetInt parses a non negative integer, def when blank or malformed
func (c Conf) GetInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(c.prefix + key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
