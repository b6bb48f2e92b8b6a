// Package module wires the usage rollup worker service and exposes its ports
package module

import (
	"devportal/internal/modkit"
	"devportal/internal/modkit/httpkit"
	urepo "devportal/internal/services/usage/repo"
	"devportal/internal/services/usage/service"
)

// Module defines the usage worker module
type Module struct {
	ports Ports
}

// New constructs the usage worker module with its ports
func New(deps modkit.Deps, overrides Options) *Module {
	// Load defaults, then apply non-zero overrides
	opts := FromConfig(deps.Cfg)

	if overrides.LookbackDays != 0 {
		opts.LookbackDays = overrides.LookbackDays
	}
	if overrides.Interval != 0 {
		opts.Interval = overrides.Interval
	}
	if overrides.Metrics != nil {
		opts.Metrics = overrides.Metrics
	}

	binder := urepo.NewHybrid(deps.CH)
	svc := service.New(deps.PG, binder, service.Config{
		LookbackDays: opts.LookbackDays,
		Interval:     opts.Interval,
	}, opts.Metrics)

	return &Module{ports: Ports{
		Rollup: svc, // svc implements RollupPort
		Query:  svc, // svc also implements QueryPort
	}}
}

// Ports returns the module ports (Rollup, Query)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "usage" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
