// Package module wires catalog browsing into the API using modkit
package module

import (
	catadapter "devportal/internal/adapters/catalog"
	modkit "devportal/internal/modkit"
	"devportal/internal/modkit/httpkit"
	"devportal/internal/platform/metrics"

	apishttp "devportal/internal/services/api/apis/http"
	catalogsvc "devportal/internal/services/catalog/service"
)

// Ports declares optional injected collaborators for this API module
type Ports struct {
	Metrics metrics.Metrics
}

// Module serves the catalog browse endpoints
type Module struct {
	built modkit.Built
	ports any
	svc   catalogsvc.Service
}

// New constructs an apis module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("apis"), modkit.WithPrefix("/apis")}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	client := catadapter.NewClient(catadapter.Options{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		Metrics:    injected.Metrics,
	})
	svc := catalogsvc.New(client)

	m := &Module{built: b, svc: svc}
	m.ports = adaptBrowsePort{svc: svc}

	external := b.Register
	m.built.Register = func(r httpkit.Router) {
		apishttp.Register(r, m.svc)
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }
