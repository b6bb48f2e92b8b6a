package module

import (
	"context"

	usagedom "devportal/internal/services/usage/domain"
	usagesvc "devportal/internal/services/usage/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptQueryPort adapts the usage service to the domain query port
type adaptQueryPort struct{ svc usagesvc.Service }

// Daily implements the domain QueryPort interface
func (a adaptQueryPort) Daily(ctx context.Context, serviceName string, days int) ([]usagedom.DayRow, error) {
	return a.svc.Daily(ctx, serviceName, days)
}

// Totals implements the domain QueryPort interface
func (a adaptQueryPort) Totals(ctx context.Context, in usagedom.QueryInput) ([]usagedom.TotalsRow, error) {
	return a.svc.Totals(ctx, in)
}

// Recent implements the domain QueryPort interface
func (a adaptQueryPort) Recent(ctx context.Context, serviceName string, limit int) ([]usagedom.RecentEvent, error) {
	return a.svc.Recent(ctx, serviceName, limit)
}
