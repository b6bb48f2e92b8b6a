package module

import (
	"sort"
	"sync"

	pstrings "devportal/internal/platform/strings"
)

// The registry collects port sets while main composes the process.
// Single writer at bootstrap, read only afterwards
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores ports under the module name, later calls overwrite.
// A blank name panics, the registry key doubles as the module identity
func Register(name string, ports any) {
	name = pstrings.MustString(name, "module name")
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches the port set registered under name as a T. An absent
// name and a mismatched type land on the same false, callers only care
// whether a usable T exists
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	defer mu.RUnlock()
	out, ok := reg[name].(T)
	return out, ok
}

// Names lists every registered module in stable order
func Names() []string {
	mu.RLock()
	out := make([]string, 0, len(reg))
	for name := range reg {
		out = append(out, name)
	}
	mu.RUnlock()
	sort.Strings(out)
	return out
}

// Reset clears the registry between tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
