// Package service contains the session validation workflow
package service

import (
	"context"
	"strings"

	"devportal/internal/adapters/identity"
	perr "devportal/internal/platform/errors"
	"devportal/internal/services/sessions/domain"
)

// Fetcher is the identity upstream surface the service needs
type Fetcher interface {
	FetchSession(ctx context.Context, sessionID string) (*identity.Session, error)
}

// Service defines the service contract for sessions
type Service interface{ domain.ValidatorPort }

// Svc implements the Service interface
type Svc struct {
	fetch Fetcher
}

// New creates a new sessions service
func New(fetch Fetcher) *Svc {
	if fetch == nil {
		panic("sessions.Service requires a non nil identity fetcher")
	}
	return &Svc{fetch: fetch}
}

// Validate resolves a presented session id to its identity
// a blank id is invalid immediately, no upstream call is made
func (s *Svc) Validate(ctx context.Context, sessionID string) (domain.Session, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return domain.Session{}, perr.SessionInvalidf("no session presented")
	}
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	sess, err := s.fetch.FetchSession(ctx, sid)
	if err != nil {
		// the adapter already typed it: session-invalid or unavailable
		return domain.Session{}, err
	}
	if sess.Email == "" {
		return domain.Session{}, perr.SessionInvalidf("session carries no identity")
	}
	return domain.Session{SessionID: sid, Email: sess.Email}, nil
}
