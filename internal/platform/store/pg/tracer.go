package pg

import (
	"context"
	"strings"

	"devportal/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent is one executed statement as seen by the sql adapter
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives query events when SQL logging is enabled
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer adapts a zerolog logger into a QueryTracer
// events log at info or above so LOG_SQL=true prints regardless of the root level
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &logTracer{log: ll}
}

type logTracer struct{ log logger.Logger }

func (t *logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := t.log.Info()
	if ev.Slow {
		evt = t.log.Warn()
	}
	evt.
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", flattenSQL(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// flattenSQL collapses whitespace so multi line statements log on one line
func flattenSQL(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
