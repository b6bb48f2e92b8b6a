package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "devportal/internal/platform/errors"
	"devportal/internal/platform/logger"
	pnet "devportal/internal/platform/net"
)

// RecoverJSON turns a handler panic into the standard JSON 500 envelope
// and logs the stack with the request id. http.ErrAbortHandler is
// re-raised so the server keeps its abort semantics
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Interface("panic", v).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
