package module

import (
	"context"

	"devportal/internal/services/downloads/domain"
	dlsvc "devportal/internal/services/downloads/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptGatePort adapts the downloads service to the domain port interface
type adaptGatePort struct{ svc dlsvc.Service }

// Decide implements the domain GatePort interface
func (a adaptGatePort) Decide(ctx context.Context, req domain.Request) (domain.Decision, error) {
	return a.svc.Decide(ctx, req)
}
