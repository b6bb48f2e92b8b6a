// Package api provides the HTTP API for the developer portal
package api

import (
	"context"

	"devportal/internal/modkit"
	"devportal/internal/modkit/httpkit"
	"devportal/internal/modkit/module"
	"devportal/internal/modkit/swaggerkit"

	"devportal/internal/platform/config"
	"devportal/internal/platform/logger"
	"devportal/internal/platform/metrics"
	phttp "devportal/internal/platform/net/http"
	"devportal/internal/platform/store"

	apismod "devportal/internal/services/api/apis/module"
	dlmod "devportal/internal/services/api/downloads/module"
	metamod "devportal/internal/services/api/meta/module"
	usagemod "devportal/internal/services/api/usage/module"

	// Sessions module (owns the Validator port)
	sessmod "devportal/internal/services/sessions/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// debug and ops surfaces are opt in per environment
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config, PG: opt.Store.PG, CH: opt.Store.CH}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	var met metrics.Metrics = metrics.Noop{}
	if opt.EnableMetrics {
		met = metrics.NewProm("devportal")
		r.Handle("/metrics", metrics.Handler())
	}

	// Construct the sessions module first and extract its Validator port.
	// The session middleware and the download gate share one validator so
	// both surfaces agree on what a live session is
	sessions := sessmod.New(deps, sessmod.FromConfig(deps.Cfg))
	validator := module.MustPortsOf[sessmod.Ports](sessions).Validator

	cookie := deps.Cfg.Prefix("PORTAL_").MayString("SESSION_COOKIE", "PORTAL_SESSION")
	sessionMw := httpkit.Session(httpkit.NewPortFunc(cookie, func(ctx context.Context, sid string) (string, error) {
		s, err := validator.Validate(ctx, sid)
		if err != nil {
			return "", err
		}
		return s.Email, nil
	}))

	mods := []module.Module{
		metamod.New(deps),

		// browse endpoints resolve catalog visibility against the caller
		// identity the middleware put in context
		apismod.New(
			deps,
			modkit.WithPorts(apismod.Ports{Metrics: met}),
			modkit.WithMiddlewares(sessionMw),
		),

		// the download gate runs its own session resolution inside the
		// decision, an identity outage must not block public material
		dlmod.New(
			deps,
			modkit.WithPorts(dlmod.Ports{Sessions: validator, Metrics: met}),
		),

		usagemod.New(
			deps,
			modkit.WithPorts(usagemod.Ports{Metrics: met}),
			modkit.WithMiddlewares(sessionMw),
		),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		// sessions has no routes but its ports stay discoverable
		module.Register(sessions.Name(), sessions.Ports())

		for _, m := range mods {
			// ports first so handlers can look up siblings while mounting
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
