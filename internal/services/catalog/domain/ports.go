package domain

import "context"

// BrowserPort defines the service contract for catalog browsing
type BrowserPort interface {
	List(ctx context.Context, email, query string) ([]APIDefinition, error)
	Get(ctx context.Context, serviceName, email string) (APIDefinition, error)
}
