// Package service contains catalog browse workflows
package service

import (
	"context"
	"sort"

	catadapter "devportal/internal/adapters/catalog"
	"devportal/internal/core/fold"
	"devportal/internal/services/catalog/domain"
)

// Fetcher is the upstream surface the browse service reads from
type Fetcher interface {
	Definitions(ctx context.Context, email string) ([]catadapter.Extended, error)
	Definition(ctx context.Context, serviceName, email string) (*catadapter.Extended, error)
}

// Service defines the service contract for catalog browsing
type Service interface{ domain.BrowserPort }

// Svc implements the Service interface
type Svc struct {
	fetch  Fetcher
	folder *fold.Folder
}

// New creates a new catalog browse service
func New(fetch Fetcher) *Svc {
	if fetch == nil {
		panic("catalog.Service requires a non nil Fetcher")
	}
	return &Svc{fetch: fetch, folder: fold.New()}
}

// List returns catalog entries visible to email, filtered by query
//
// The query is matched case and width insensitively against the service
// name, display name, description and context of each entry. A blank
// query returns everything the upstream exposes for that caller
func (s *Svc) List(ctx context.Context, email, query string) ([]domain.APIDefinition, error) {
	defs, err := s.fetch.Definitions(ctx, email)
	if err != nil {
		return nil, err
	}
	out := make([]domain.APIDefinition, 0, len(defs))
	for _, d := range defs {
		if !s.matches(d, query) {
			continue
		}
		out = append(out, mapDefinition(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceName < out[j].ServiceName })
	return out, nil
}

// Get returns a single catalog entry by service name
func (s *Svc) Get(ctx context.Context, serviceName, email string) (domain.APIDefinition, error) {
	def, err := s.fetch.Definition(ctx, serviceName, email)
	if err != nil {
		return domain.APIDefinition{}, err
	}
	return mapDefinition(*def), nil
}

func (s *Svc) matches(d catadapter.Extended, query string) bool {
	if query == "" {
		return true
	}
	return s.folder.Match(d.ServiceName, query) ||
		s.folder.Match(d.Name, query) ||
		s.folder.Match(d.Description, query) ||
		s.folder.Match(d.Context, query)
}

func mapDefinition(d catadapter.Extended) domain.APIDefinition {
	vers := make([]domain.VersionSummary, 0, len(d.Versions))
	for _, v := range d.Versions {
		vers = append(vers, domain.VersionSummary{
			Version:          v.Version,
			Status:           v.Status,
			Access:           string(v.Availability().Type),
			EndpointsEnabled: v.EndpointsEnabled,
		})
	}
	return domain.APIDefinition{
		ServiceName: d.ServiceName,
		Name:        d.Name,
		Description: d.Description,
		Context:     d.Context,
		Versions:    vers,
	}
}
