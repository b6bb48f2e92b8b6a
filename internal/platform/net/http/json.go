package http

import (
	"net/http"

	"devportal/internal/platform/net/http/bind"
)

// JSONHandler adapts a body-taking JSON handler onto the envelope
// writer. Bind failures come back as enveloped validation errors
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return From(fn(r, in))
	})
}
