package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"time"

	"devportal/internal/modkit"
	"devportal/internal/modkit/module"
	"devportal/internal/modkit/repokit"
	"devportal/internal/platform/config"
	"devportal/internal/platform/logger"
	"devportal/internal/platform/store"

	usagemod "devportal/internal/services/usage/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	logOpt := logger.FromEnv()
	if logOpt.Service == "" {
		logOpt.Service = "portal-rollup"
	}
	logger.Init(logOpt)
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		AppName: "portal-rollup",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
		// the rollup writes usage_daily, clickhouse is not optional here
		CH: store.CHConfig{
			Enabled: true,
			URL:     chCfg.MustString("DBURL"),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// both backends must answer before any day rolls
	repokit.MustGuard(context.Background(), st)

	var (
		fOnce     = flag.Bool("once", false, "run a single rollup pass and exit")
		fDay      = flag.String("day", "", "roll exactly one UTC day YYYY-MM-DD and exit")
		fLookback = flag.Int("lookback", 0, "override lookback window in days")
		fInterval = flag.String("interval", "", "override loop interval, go duration")
	)
	flag.Parse()

	var day time.Time
	if *fDay != "" {
		t, err := time.Parse("2006-01-02", *fDay)
		if err != nil {
			l.Panic().Err(err).Msg("bad -day")
		}
		day = t
	}

	// Shared deps for modules
	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	// Surface flag overrides to the module's FromConfig
	if *fLookback > 0 {
		mustSetEnv("ROLLUP_LOOKBACK_DAYS", strconv.Itoa(*fLookback))
	}
	mustSetEnv("ROLLUP_INTERVAL", *fInterval)

	um := usagemod.New(deps, usagemod.Options{})
	module.Register(um.Name(), um.Ports())

	ctx := context.Background()
	ports, ok := module.PortsAs[usagemod.Ports](um.Name())
	if !ok {
		l.Panic().Str("module", um.Name()).Msg("module did not register rollup ports")
	}
	rollup := ports.Rollup

	switch {
	case *fDay != "":
		rows, rolled, err := rollup.RollupDay(ctx, day)
		if err != nil {
			l.Fatal().Err(err).Msg("rollup day failed")
		}
		if !rolled {
			l.Info().Str("day", *fDay).Msg("day already rolled, nothing to do")
			return
		}
		l.Info().Str("day", *fDay).Int("rows", rows).Msg("day rolled")

	case *fOnce:
		if err := rollup.RollupRecent(ctx); err != nil {
			l.Fatal().Err(err).Msg("rollup pass failed")
		}

	default:
		if err := rollup.Run(ctx); err != nil {
			l.Fatal().Err(err).Msg("rollup loop stopped")
		}
	}
}
