// Package http serves the operational meta endpoints: liveness,
// readiness, build info and service identity
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"devportal/internal/core/version"
	"devportal/internal/modkit/httpkit"
)

// Pinger is the slice of a store adapter the readiness probe needs
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps carries what the handlers report on. A nil Pinger marks the
// backend as not configured and its check is skipped, never failed
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	PG Pinger
	CH Pinger

	// Modules lists the mounted modules, nil hides the field
	Modules func() []string
}

// probe outcomes as they appear on the wire
const (
	checkOK      = "ok"
	checkFail    = "fail"
	checkSkipped = "skipped"
)

const probeBudget = 2 * time.Second

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"portal-api"`
	Started string `json:"started" example:"2026-08-25T13:00:00Z"`
	Now     string `json:"now"     example:"2026-08-25T13:05:00Z"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Now:     stamp(time.Now()),
	}, nil
}

// ReadyCheck is one backend probe result
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness across all backends
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-08-25T13:05:00Z"`
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with per backend checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), probeBudget)
	defer cancel()

	// clickhouse is optional, a skipped check never degrades readiness
	checks := []ReadyCheck{
		probe(ctx, "pg", h.deps.PG),
		probe(ctx, "ch", h.deps.CH),
	}

	overall := checkOK
	for _, c := range checks {
		if c.Status == checkFail {
			overall = checkFail
			break
		}
	}

	return ReadyResponse{Status: overall, Checks: checks, Now: stamp(time.Now())}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// ServiceResponse identifies the running service
type ServiceResponse struct {
	Name    string   `json:"name"    example:"portal-api"`
	Started string   `json:"started" example:"2026-08-25T13:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules,omitempty" example:"apis,downloads,meta,usage"`
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service identity, uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	resp := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}
	if h.deps.Modules != nil {
		resp.Modules = h.deps.Modules()
	}
	return resp, nil
}

func probe(ctx stdctx.Context, name string, p Pinger) ReadyCheck {
	if p == nil {
		return ReadyCheck{Name: name, Status: checkSkipped}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: checkFail, Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: checkOK}
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }
