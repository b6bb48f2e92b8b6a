package store

import "time"

// Config selects and tunes the optional backends
// a disabled backend leaves its seam nil on the opened Store
type Config struct {
	// AppName identifies the process to the backends, ch client info shows it
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig tunes postgres connectivity and query tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries bounds the boot ping loop, zero means 6
	ConnectRetries int

	// PingTimeout caps each boot ping, zero means 5s
	PingTimeout time.Duration
}

// CHConfig tunes clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
}
