// Package service implements the resource download gate
package service

import (
	"context"
	"net/url"

	catadapter "devportal/internal/adapters/catalog"
	"devportal/internal/adapters/resources"
	"devportal/internal/core/safekey"
	"devportal/internal/core/visibility"
	"devportal/internal/modkit/repokit"
	perr "devportal/internal/platform/errors"
	"devportal/internal/platform/logger"
	"devportal/internal/platform/metrics"

	"devportal/internal/services/downloads/domain"
	drepo "devportal/internal/services/downloads/repo"
	sessdom "devportal/internal/services/sessions/domain"
)

// Catalog fetches the extended definition the gate decides against
type Catalog interface {
	Definition(ctx context.Context, serviceName, email string) (*catadapter.Extended, error)
}

// Store fetches resource bytes beneath the resource root.
// It accepts only validated keys, never the raw request string
type Store interface {
	Fetch(ctx context.Context, serviceName, version string, key safekey.Key) (*resources.Resource, error)
}

// Config wires the gate collaborators
type Config struct {
	Catalog  Catalog
	Sessions sessdom.ValidatorPort
	Store    Store
	Metrics  metrics.Metrics
	LoginURL string
}

// Service defines the service contract for the download gate
type Service interface{ domain.GatePort }

// Svc implements the Service interface
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[drepo.Storage]
	audit  drepo.Storage

	catalog  Catalog
	sessions sessdom.ValidatorPort
	store    Store
	met      metrics.Metrics
	loginURL string
}

// New creates a new download gate service
func New(db repokit.TxRunner, binder repokit.Binder[drepo.Storage], cfg Config) *Svc {
	if db == nil {
		panic("downloads.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("downloads.Service requires a non nil audit binder")
	}
	if cfg.Catalog == nil {
		panic("downloads.Service requires a non nil Catalog")
	}
	if cfg.Sessions == nil {
		panic("downloads.Service requires a non nil session validator")
	}
	if cfg.Store == nil {
		panic("downloads.Service requires a non nil Store")
	}
	met := cfg.Metrics
	if met == nil {
		met = metrics.Noop{}
	}
	return &Svc{
		db:       db,
		binder:   binder,
		audit:    binder.Bind(db),
		catalog:  cfg.Catalog,
		sessions: cfg.Sessions,
		store:    cfg.Store,
		met:      met,
		loginURL: cfg.LoginURL,
	}
}

// Decide runs one download request through the gate and returns exactly one
// decision or one error. Rejections are decisions; transport failures and
// cancellation are errors. An audit row is recorded for every decision
func (s *Svc) Decide(ctx context.Context, req domain.Request) (domain.Decision, error) {
	// key validation happens before anything leaves the process
	key, kerr := safekey.Validate(req.ResourceKey)
	if kerr != nil {
		return s.finish(ctx, req, reject(domain.ReasonPathTraversal, "")), nil
	}

	// session pre-resolution so the catalog fetch can carry the caller's
	// email. The outcome is held, not acted on: a dead session downgrades
	// to anonymous, a transport failure is kept for the privacy branch
	var (
		email    string
		loggedIn bool
		sessErr  error
	)
	if req.SessionID != "" {
		if err := ctx.Err(); err != nil {
			return domain.Decision{}, err
		}
		sess, err := s.sessions.Validate(ctx, req.SessionID)
		switch {
		case err == nil:
			email = sess.Email
			loggedIn = true
		case perr.IsCode(err, perr.ErrorCodeSessionInvalid):
			// anonymous from here on
		default:
			sessErr = err
		}
	}

	if err := ctx.Err(); err != nil {
		return domain.Decision{}, err
	}
	def, err := s.catalog.Definition(ctx, req.ServiceName, email)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return s.finish(ctx, req, reject(domain.ReasonNotFound, email)), nil
		}
		return domain.Decision{}, err
	}

	ver := def.FindVersion(req.Version)
	if ver == nil || !ver.EndpointsEnabled {
		// a disabled version is indistinguishable from an absent one
		return s.finish(ctx, req, reject(domain.ReasonNotFound, email)), nil
	}

	vis := visibility.Resolve(ver.Availability())
	if !vis.Public() {
		switch {
		case sessErr != nil:
			// an identity outage must surface, never loop through login
			return domain.Decision{}, sessErr
		case !loggedIn:
			d := domain.Decision{Outcome: domain.OutcomeRedirect, RedirectURL: s.loginRedirect(req.RequestURL)}
			return s.finish(ctx, req, d), nil
		case !vis.Authorised:
			return s.finish(ctx, req, reject(domain.ReasonForbidden, email)), nil
		}
	}

	if err := ctx.Err(); err != nil {
		return domain.Decision{}, err
	}
	res, err := s.store.Fetch(ctx, req.ServiceName, req.Version, key)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return s.finish(ctx, req, reject(domain.ReasonNotFound, email)), nil
		}
		return domain.Decision{}, err
	}

	d := domain.Decision{
		Outcome:   domain.OutcomeServe,
		Payload:   &domain.Payload{Bytes: res.Bytes, ContentType: res.ContentType, Digest: res.Digest},
		UserEmail: email,
	}
	return s.finish(ctx, req, d), nil
}

func reject(reason domain.Reason, email string) domain.Decision {
	return domain.Decision{Outcome: domain.OutcomeReject, Reason: reason, UserEmail: email}
}

func (s *Svc) loginRedirect(requestURL string) string {
	return s.loginURL + "?returnTo=" + url.QueryEscape(requestURL)
}

// finish records the decision metric and the audit row then returns the
// decision unchanged. Audit failure is logged and never alters the outcome
func (s *Svc) finish(ctx context.Context, req domain.Request, d domain.Decision) domain.Decision {
	s.met.IncDecision(string(d.Outcome), string(d.Reason))

	ev := drepo.Event{
		ServiceName: req.ServiceName,
		Version:     req.Version,
		ResourceKey: req.ResourceKey,
		Outcome:     string(d.Outcome),
		Reason:      string(d.Reason),
		UserEmail:   d.UserEmail,
		RequestID:   req.RequestID,
	}
	if d.Payload != nil {
		ev.Bytes = int64(len(d.Payload.Bytes))
	}
	if err := s.audit.Insert(ctx, ev); err != nil {
		logger.Named("downloads").Warn().Err(err).
			Str("service", req.ServiceName).
			Str("version", req.Version).
			Str("outcome", string(d.Outcome)).
			Msg("audit insert failed")
	}
	return d
}
