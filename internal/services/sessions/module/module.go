// Package module implements the sessions service module
package module

import (
	"devportal/internal/adapters/identity"
	"devportal/internal/modkit"
	"devportal/internal/modkit/httpkit"
	"devportal/internal/services/sessions/domain"
	"devportal/internal/services/sessions/service"
)

// Ports exposed by the sessions module
type Ports struct {
	Validator domain.ValidatorPort
}

// Module implements the sessions service module
type Module struct {
	ports Ports
}

// New constructs a new sessions module
func New(deps modkit.Deps, opts Options) *Module {
	client := identity.NewClient(identity.Options{
		BaseURL:    opts.BaseURL,
		Timeout:    opts.Timeout,
		MaxRetries: opts.MaxRetries,
		Metrics:    opts.Metrics,
	})
	svc := service.New(client)

	return &Module{ports: Ports{Validator: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "sessions" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
