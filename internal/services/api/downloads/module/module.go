// Package module wires the gated resource download endpoint using modkit
package module

import (
	catadapter "devportal/internal/adapters/catalog"
	"devportal/internal/adapters/resources"
	modkit "devportal/internal/modkit"
	"devportal/internal/modkit/httpkit"
	"devportal/internal/platform/metrics"

	dlhttp "devportal/internal/services/api/downloads/http"
	drepo "devportal/internal/services/downloads/repo"
	dlsvc "devportal/internal/services/downloads/service"
	sessdom "devportal/internal/services/sessions/domain"
	sessmod "devportal/internal/services/sessions/module"
)

// Ports declares injected collaborators for this API module.
// Sessions is normally shared by the composition root so the gate and the
// session middleware agree on one identity upstream; when absent the module
// builds its own validator from UPSTREAM_IDENTITY_* config
type Ports struct {
	Sessions sessdom.ValidatorPort
	Metrics  metrics.Metrics
}

// Module serves the gated resource download endpoint
type Module struct {
	built modkit.Built
	ports any
	svc   dlsvc.Service
}

// New constructs a downloads module with the provided dependencies and options.
// The prefix carries the route params the gate consumes; the handler owns
// only the wildcard tail beneath it
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("downloads"),
		modkit.WithPrefix("/apis/{serviceName}/versions/{version}/resources"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Sessions == nil {
		sm := sessmod.New(deps, sessmod.FromConfig(deps.Cfg))
		injected.Sessions = sm.Ports().(sessmod.Ports).Validator
	}

	client := catadapter.NewClient(catadapter.Options{
		BaseURL:    cfg.CatalogBaseURL,
		Timeout:    cfg.CatalogTimeout,
		MaxRetries: cfg.CatalogRetryMax,
		Metrics:    injected.Metrics,
	})

	svc := dlsvc.New(deps.PG, drepo.NewPG(), dlsvc.Config{
		Catalog:  client,
		Sessions: injected.Sessions,
		Store:    resources.NewStore(cfg.StoreRoot),
		Metrics:  injected.Metrics,
		LoginURL: cfg.LoginURL,
	})

	m := &Module{built: b, svc: svc}
	m.ports = adaptGatePort{svc: svc}

	external := b.Register
	m.built.Register = func(r httpkit.Router) {
		dlhttp.Register(r, m.svc, dlhttp.Options{SessionCookie: cfg.SessionCookie})
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }
