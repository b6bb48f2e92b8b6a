// Package middleware holds the portal's http middlewares: thin chi
// wrappers plus the in house access log, recoverer and session resolver
package middleware

import (
	"net/http"
	"time"

	"devportal/internal/platform/logger"
	pnet "devportal/internal/platform/net"
)

// AccessLogOptions shapes the structured access log
type AccessLogOptions struct {
	// Slow raises lines for requests at or above this duration to warn
	// level, zero keeps everything at info
	Slow time.Duration
}

// statusWriter records the status and byte count that went to the client
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}

// AccessLog emits one structured line per request and seeds the logger
// context so handler-side child loggers carry the request id
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), "")
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, r.WithContext(ctx))

			elapsed := time.Since(start)
			log := logger.C(ctx)
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Int("bytes", sw.bytes).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}
