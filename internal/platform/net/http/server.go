package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"devportal/internal/platform/config"
	"devportal/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server wraps the stdlib http server around the portal's chi mux
type Server struct {
	addr  string
	mux   *chi.Mux
	srv   *stdhttp.Server
	drain time.Duration
}

// NewServer reads its listen address and timeouts from cfg. opts
// receive the chi mux so callers can mount routes and middleware early
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("API_PORT", ":4000")
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr:  addr,
		mux:   m,
		drain: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", time.Minute),
		},
	}
}

// Router returns the Router seam over the server's mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the configured listen address
func (s *Server) Addr() string { return s.addr }

// Run serves until the listener fails or ctx ends, then drains inflight
// requests within the shutdown grace
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if err == stdhttp.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("http draining")
		dctx, cancel := context.WithTimeout(context.Background(), s.drain)
		defer cancel()
		return s.srv.Shutdown(dctx)
	}
}

// Shutdown stops the server without waiting for ctx cancellation
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
