package httpkit

import (
	"net/http"
	"strings"

	pnet "devportal/internal/platform/net"
)

// UserEmail returns the session-resolved caller email, empty for
// anonymous requests. Anonymous is a legitimate state, not an error
func UserEmail(r *http.Request) string {
	return pnet.UserEmail(r.Context())
}

// RequestID returns the correlation id the request id middleware put on
// the context
func RequestID(r *http.Request) string {
	return pnet.RequestID(r.Context())
}

// SessionID returns the raw session id carried by the named cookie.
// An absent or blank cookie yields the empty string
func SessionID(r *http.Request, cookie string) string {
	if cookie == "" {
		return ""
	}
	c, err := r.Cookie(cookie)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}
