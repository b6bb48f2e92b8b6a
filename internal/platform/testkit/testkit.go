// Package testkit holds the helpers the platform test suites share
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// swapGate serializes tests that rewire package level seams
var swapGate sync.Mutex

// Serial takes a process wide lock for the duration of the test.
// Tests that call Swap on shared seams take it first so parallel
// packages cannot observe each other's replacements
func Serial(t *testing.T) {
	t.Helper()
	swapGate.Lock()
	t.Cleanup(swapGate.Unlock)
}

// Swap replaces the value behind target until the test finishes,
// then puts the original back
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// MustContain fails the test when haystack lacks needle. The full
// haystack lands in a temp file so a long log dump stays readable
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	dump := filepath.Join(t.TempDir(), "haystack.txt")
	_ = os.WriteFile(dump, []byte(haystack), 0o600)
	t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, dump)
}
