package middleware

import (
	"net/http"

	perrs "devportal/internal/platform/errors"
	pnet "devportal/internal/platform/net"
)

// SessionPort resolves a request's session credential to a user email
type SessionPort interface {
	// Resolve returns the email behind the request's session or an error
	Resolve(r *http.Request) (email string, err error)
}

// Session annotates the request context with the session user when one
// resolves. A missing or dead session passes through anonymous; only an
// identity transport failure stops the request
func Session(p SessionPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			email, err := p.Resolve(r)
			if err != nil {
				if perrs.IsCode(err, perrs.ErrorCodeSessionInvalid) {
					next.ServeHTTP(w, r)
					return
				}
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), email)))
		})
	}
}
