// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"context"
	"net/http"
	"strings"

	perrs "devportal/internal/platform/errors"
)

// ResolveFunc validates a session id and returns the user email behind it
// implementations return a session-invalid coded error for dead sessions
// and an unavailable coded error for transport failures
type ResolveFunc func(ctx context.Context, sessionID string) (email string, err error)

// Port implements middleware.SessionPort by reading the session cookie
// and delegating to a ResolveFunc
type Port struct {
	cookie  string
	resolve ResolveFunc
}

// NewPortFunc builds a Port from a cookie name and a resolver function
func NewPortFunc(cookie string, fn ResolveFunc) *Port {
	return &Port{cookie: cookie, resolve: fn}
}

// Resolve extracts the session id from the configured cookie and resolves it
// a missing or blank cookie maps to session-invalid so callers stay anonymous
// resolver errors pass through untouched, their codes carry the decision
func (p *Port) Resolve(r *http.Request) (string, error) {
	if p.cookie == "" {
		return "", perrs.SessionInvalidf("no session cookie configured")
	}
	c, err := r.Cookie(p.cookie)
	if err != nil {
		return "", perrs.SessionInvalidf("missing session cookie")
	}
	sid := strings.TrimSpace(c.Value)
	if sid == "" {
		return "", perrs.SessionInvalidf("empty session cookie")
	}

	if p.resolve == nil {
		return "", perrs.SessionInvalidf("no session resolver wired")
	}

	email, err := p.resolve(r.Context(), sid)
	if err != nil {
		return "", err
	}
	return email, nil
}
