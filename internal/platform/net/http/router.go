package http

import "net/http"

// Handler is the function shape every route is mounted with
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the mounting surface handed to modules. It carries only the
// verbs the portal serves, the api is read heavy and takes writes on a
// single query endpoint
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}
