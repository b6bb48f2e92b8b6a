package modkit

import (
	"net/http"

	"devportal/internal/modkit/httpkit"
	pstrings "devportal/internal/platform/strings"
)

// Built is the resolved option set a module copies its wiring from
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	// Subrouter and Register are never nil, Build fills identity defaults
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build folds opts into a Built, later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}

	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}

	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Mount scopes the module routes under the built prefix. Middleware runs
// in declared order, then the subrouter hook rewrites the router, then
// Register mounts the handlers. The prefix is canonicalized here, so a
// module built with "apis" still lands on /apis and an empty prefix
// panics instead of mounting at the root
func (b Built) Mount(rt httpkit.Router) {
	rt.Route(pstrings.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		b.Register(b.Subrouter(rr))
	})
}
