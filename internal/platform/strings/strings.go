// Package strings carries the small string and slice guards shared by
// module wiring code
package strings

import std "strings"

// MustString panics when s is blank. The name tells the operator which
// value was missing, so wiring failures read like config errors
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix canonicalizes a mount prefix such as /apis or /usage.
// The result always carries exactly one leading slash and no trailing
// one. A prefix that trims down to the bare root panics, modules are
// never mounted at /
func MustPrefix(s string) string {
	trimmed := std.Trim(std.TrimSpace(s), " /")
	if trimmed == "" {
		panic("root path is required")
	}
	return "/" + trimmed
}

// IfEmpty substitutes def when in carries no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}
