// Package logger wraps zerolog behind the process-wide root logger and
// the request-scoped child helpers the rest of the codebase logs through
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"devportal/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type handed around the codebase. It aliases
// zerolog.Logger so call sites never import zerolog directly
type Logger = zerolog.Logger

// Options shapes the root logger built by Init
type Options struct {
	// Level and Format map LOG_LEVEL and LOG_FORMAT, the console
	// format wraps the writer in zerolog's ConsoleWriter
	Level  string
	Format string

	// Service and Component stamp every line when non empty
	Service   string
	Component string

	// Writer overrides stdout, tests point it at a buffer
	Writer io.Writer

	WithCaller  bool
	SampleEvery int
}

// FromEnv reads LOG_* settings through the raw reader. The raw package
// exists so this lookup cannot loop back into the logger
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(env.Get("LEVEL", "debug")),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	initOnce sync.Once
	rootLog  atomic.Pointer[zerolog.Logger]
	ready    atomic.Bool
)

// Init builds the root logger exactly once. Later calls are no-ops, so
// a main that wants non default options must call Init before anything
// logs
func Init(opt Options) {
	initOnce.Do(func() { rootLog.Store(build(opt)); ready.Store(true) })
}

// Get returns the root logger, initializing from the environment on
// first use
func Get() *Logger {
	if !ready.Load() {
		Init(FromEnv())
	}
	return rootLog.Load()
}

func build(opt Options) *zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stdout
	if opt.Writer != nil {
		out = opt.Writer
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lc := zerolog.New(out).Level(levelOf(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		lc = lc.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		lc = lc.Str("service", opt.Service)
	}
	if opt.Component != "" {
		lc = lc.Str("component", opt.Component)
	}

	l := lc.Logger()
	if opt.WithCaller {
		l = l.With().Caller().Logger()
	}
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return &l
}

// levelOf parses a level name through zerolog, unknown or empty names
// log at debug rather than failing boot
func levelOf(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" { // common spelling zerolog does not know
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxField struct{ name string }

var (
	ctxRequestID = ctxField{"request_id"}
	ctxUserEmail = ctxField{"user_email"}
)

// WithRequest stores the request id and caller email on ctx so child
// loggers built by C carry them on every line
func WithRequest(ctx context.Context, reqID, userEmail string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, ctxRequestID, reqID)
	}
	if userEmail != "" {
		ctx = context.WithValue(ctx, ctxUserEmail, userEmail)
	}
	return ctx
}

// C derives a child logger carrying whatever request fields ctx holds
func C(ctx context.Context) *Logger {
	lc := Get().With()
	if s, ok := ctx.Value(ctxRequestID).(string); ok && s != "" {
		lc = lc.Str("request_id", s)
	}
	if s, ok := ctx.Value(ctxUserEmail).(string); ok && s != "" {
		lc = lc.Str("user_email", s)
	}
	l := lc.Logger()
	return &l
}

// Named derives a child logger tagged with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
