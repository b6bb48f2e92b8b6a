package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter adapts any chi.Router, mux or subrouter alike, to the
// Router seam. Subrouters from Route wrap the same type so nesting is
// uniform all the way down
type chiRouter struct{ r chi.Router }

// AdaptChi wraps a chi mux in the Router seam
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) Get(p string, h Handler) {
	c.r.Method(http.MethodGet, p, http.HandlerFunc(h))
}

func (c chiRouter) Post(p string, h Handler) {
	c.r.Method(http.MethodPost, p, http.HandlerFunc(h))
}

func (c chiRouter) Handle(p string, h http.Handler) { c.r.Handle(p, h) }

func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.r }
