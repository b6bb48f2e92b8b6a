package module

import (
	"context"

	catalogdom "devportal/internal/services/catalog/domain"
	catalogsvc "devportal/internal/services/catalog/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptBrowsePort adapts the catalog service to the domain port interface
type adaptBrowsePort struct{ svc catalogsvc.Service }

// List implements the domain BrowserPort interface
func (a adaptBrowsePort) List(ctx context.Context, email, query string) ([]catalogdom.APIDefinition, error) {
	return a.svc.List(ctx, email, query)
}

// Get implements the domain BrowserPort interface
func (a adaptBrowsePort) Get(ctx context.Context, serviceName, email string) (catalogdom.APIDefinition, error) {
	return a.svc.Get(ctx, serviceName, email)
}
