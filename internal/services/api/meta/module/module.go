// Package module mounts the meta endpoints as a modkit module
package module

import (
	"time"

	modkit "devportal/internal/modkit"
	"devportal/internal/modkit/httpkit"
	reg "devportal/internal/modkit/module"

	metahttp "devportal/internal/services/api/meta/http"
)

// Module reports service health, readiness and identity
type Module struct {
	built     modkit.Built
	startedAt time.Time
}

// New builds the meta module. Store seams that answer Ping become
// readiness checks, anything else is reported as skipped
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{built: b, startedAt: time.Now()}

	external := b.Register
	m.built.Register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: "portal-api",
			StartedAt:   m.startedAt,
			PG:          asPinger(deps.PG),
			CH:          asPinger(deps.CH),
			Modules:     reg.Names,
		})
		external(r)
	}
	return m
}

func asPinger(v any) metahttp.Pinger {
	p, _ := v.(metahttp.Pinger)
	return p
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
