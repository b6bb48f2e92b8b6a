// Package module holds the module contract and the bootstrap port registry
package module

import (
	phttp "devportal/internal/platform/net/http"
)

// Module is what the API composer mounts.
// It lives here, apart from modkit, so a module's ports package can
// reference the contract without importing its own assembler
type Module interface {
	// MountRoutes attaches the module routes to the router seam
	MountRoutes(r phttp.Router)

	// Ports exposes the collaborators other modules may pull
	Ports() any

	// Name identifies the module in the registry
	Name() string
}
