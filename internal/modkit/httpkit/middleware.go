package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "devportal/internal/platform/net/http"
	"devportal/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware slice for the versioned
// api. Session resolution is not part of it, modules that want a caller
// identity compose Session on top. There is no blanket NoCache either,
// the downloads module manages conditional request headers itself
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		// cross-origin, compression, probes
		middleware.CORS(middleware.CORSOptions{AllowCredentials: true}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// Session wires the session middleware to the platform JSON writer
func Session(p middleware.SessionPort) func(http.Handler) http.Handler {
	return middleware.Session(p, phttp.JSON)
}
