// Package module wires usage queries into the API using modkit
package module

import (
	modkit "devportal/internal/modkit"
	"devportal/internal/modkit/httpkit"
	"devportal/internal/platform/metrics"

	usagehttp "devportal/internal/services/api/usage/http"
	urepo "devportal/internal/services/usage/repo"
	usagesvc "devportal/internal/services/usage/service"
)

// Ports declares optional injected collaborators for this API module
type Ports struct {
	Metrics metrics.Metrics
}

// Module serves the usage read endpoints
type Module struct {
	built modkit.Built
	ports any
	svc   usagesvc.Service
}

// New constructs a usage module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("usage"), modkit.WithPrefix("/usage")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	binder := urepo.NewHybrid(deps.CH)
	svc := usagesvc.New(deps.PG, binder, usagesvc.Config{}, injected.Metrics)

	m := &Module{built: b, svc: svc}
	m.ports = adaptQueryPort{svc: svc}

	external := b.Register
	m.built.Register = func(r httpkit.Router) {
		usagehttp.Register(r, m.svc)
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }
