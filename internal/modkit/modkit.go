// Package modkit wires feature modules into the API process.
// A module owns its routes, its service and its repo bindings, modkit
// only carries the shared deps and the mount time options
package modkit

import (
	"devportal/internal/modkit/module"
	"devportal/internal/modkit/repokit"
	"devportal/internal/platform/config"
	"devportal/internal/platform/logger"
	"devportal/internal/platform/store"
)

// Module is the contract a feature module satisfies, see package module
type Module = module.Module

// Deps are the process wide dependencies every module receives.
// Seams for disabled backends stay nil, modules degrade on their own terms
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
