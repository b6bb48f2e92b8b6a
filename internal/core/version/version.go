// Package version exposes the build identity stamped into the binary
package version

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is the payload behind the version endpoint
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info reports the stamped build identity. Release builds overwrite the
// three package variables through -ldflags -X, for example
// -X 'devportal/internal/core/version.version=v1.4.0'. A binary built
// without stamps reports itself as a dev build
func Info() BuildInfo {
	return BuildInfo{
		Service: "portal-api",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}
