// Package repo provides the download audit repository implementation
package repo

import (
	"context"

	"devportal/internal/modkit/repokit"
	perr "devportal/internal/platform/errors"

	"github.com/google/uuid"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new audit repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Event is one audit row destined for download_events.
// Empty Reason or UserEmail are written as NULL
type Event struct {
	ServiceName string
	Version     string
	ResourceKey string
	Outcome     string
	Reason      string
	UserEmail   string
	RequestID   string
	Bytes       int64
}

// Storage defines the audit repository for the download gate
type Storage interface {
	Insert(ctx context.Context, ev Event) error
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, ev Event) error {
	if ev.RequestID == "" {
		// decisions made outside the http path still get a correlation id
		ev.RequestID = uuid.NewString()
	}
	const sqlq = `
        INSERT INTO download_events
            (service_name, version, resource_key, outcome, reason, user_email, request_id, bytes)
        VALUES ($1, $2, $3, $4::download_outcome_enum, NULLIF($5, ''), NULLIF($6, ''), $7, $8)
    `
	_, err := s.q.Exec(ctx, sqlq,
		ev.ServiceName, ev.Version, ev.ResourceKey, ev.Outcome,
		ev.Reason, ev.UserEmail, ev.RequestID, ev.Bytes,
	)
	return perr.FromPostgresf(err, "insert download event")
}

