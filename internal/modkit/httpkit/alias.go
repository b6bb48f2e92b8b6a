// Package httpkit is the http surface modules build against. It
// re-exports the platform router seam and envelope adapters so module
// code never imports internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "devportal/internal/platform/net/http"
)

type (
	// Router is the platform mounting seam
	Router = phttp.Router

	// Handler is the platform handler shape
	Handler = phttp.Handler
)

// Call adapts a body-less handler onto the envelope writer. A returned
// Response passes through untouched so handlers can steer the status
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.From(fn(r))
	})
}
