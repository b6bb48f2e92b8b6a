// @title         Developer Portal API
// @version       0.1.0
// @description   Catalog browsing, gated resource downloads and usage rollups

package main

import (
	"context"

	"devportal/internal/modkit/repokit"
	"devportal/internal/platform/config"
	"devportal/internal/platform/logger"
	phttp "devportal/internal/platform/net/http"
	"devportal/internal/platform/store"

	"devportal/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*

	// bring up logging early, env settings win over the service default
	logOpt := logger.FromEnv()
	if logOpt.Service == "" {
		logOpt.Service = "portal-api"
	}
	logger.Init(logOpt)
	l := logger.Get()

	// clickhouse is optional, usage summaries degrade without it
	chURL := chCfg.MayString("DBURL", "")

	// open the platform store (postgres + optional CH adapter)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "portal-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled: chURL != "",
				URL:     chURL,
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// refuse to serve before every configured backend answers
	repokit.MustGuard(context.Background(), st)

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
