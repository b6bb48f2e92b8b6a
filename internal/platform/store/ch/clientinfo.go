package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo labels the connection in system.processes
// role names the process, for example "portal-api" or "portal-rollup"
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()

	type product = struct{ Name, Version string }
	return clickhouse.ClientInfo{Products: []product{
		{Name: "devportal", Version: trim(tag)},
		{Name: "role", Version: trim(role)},
		{Name: "go", Version: trim(runtime.Version())},
		{Name: "commit", Version: trim(buildRevision())},
		{Name: "host", Version: trim(host)},
	}}
}

// buildRevision reads the short vcs sha stamped into the binary
func buildRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}

func trim(s string) string { return strings.TrimSpace(s) }
