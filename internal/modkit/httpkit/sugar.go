package httpkit

import (
	"net/http"

	phttp "devportal/internal/platform/net/http"
)

// Get mounts a body-less handler under GET with the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON mounts a JSON body handler under POST. The body binds and
// validates into T before h runs
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}
