// Package domain holds the session validation contract
package domain

import "context"

// Session is a validated session identity
type Session struct {
	SessionID string
	Email     string
}

// ValidatorPort validates a presented session id
// a dead or absent session comes back as a session-invalid coded error,
// an identity transport failure as an unavailable coded error
type ValidatorPort interface {
	Validate(ctx context.Context, sessionID string) (Session, error)
}
