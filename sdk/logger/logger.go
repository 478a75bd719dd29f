// Package logger wraps slog with env-driven configuration. Records logged
// with a request context carry that request's trace_id.
package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/jrazmi/zentask/sdk/environment"
	"github.com/jrazmi/zentask/sdk/telemetry"
)

type Logger struct {
	*slog.Logger
}

// Options is the env-facing logger configuration.
type Options struct {
	Level      string `env:"LOG_LEVEL" default:"INFO"`
	Output     string `env:"LOG_OUTPUT" default:"STDOUT"`
	Format     string `env:"LOG_FORMAT" default:"json" oneof:"json,text"`
	TimeFormat string `env:"LOG_TIME_FORMAT" default:"RFC3339"`
	AddSource  bool   `env:"LOG_ADD_SOURCE"`
}

type Option func(*Options, *settings)

type settings struct {
	output io.Writer
	attrs  []any
}

func WithLevel(level string) Option {
	return func(o *Options, _ *settings) {
		o.Level = level
	}
}

// WithOutput overrides the configured output, mostly for tests.
func WithOutput(w io.Writer) Option {
	return func(_ *Options, s *settings) {
		s.output = w
	}
}

// WithService tags every record with a service attribute.
func WithService(name string) Option {
	return func(_ *Options, s *settings) {
		s.attrs = append(s.attrs, slog.String("service", name))
	}
}

func NewFromEnv(prefix string, opts ...Option) (*Logger, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing logger config: %w", err)
	}
	return New(cfg, opts...), nil
}

// NewDiscard returns a logger that drops everything.
func NewDiscard() *Logger {
	return New(Options{}, WithOutput(io.Discard))
}

// NewStdLogger adapts logger for APIs that want a *log.Logger, such as
// http.Server.ErrorLog.
func NewStdLogger(logger *Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Handler(), level)
}

func New(cfg Options, opts ...Option) *Logger {
	var s settings
	for _, opt := range opts {
		opt(&cfg, &s)
	}
	if s.output == nil {
		s.output = parseOutput(cfg.Output)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   cfg.AddSource,
		ReplaceAttr: timeReplacer(cfg.TimeFormat),
	}

	var h slog.Handler
	if cfg.Format == "text" {
		h = slog.NewTextHandler(s.output, handlerOpts)
	} else {
		h = slog.NewJSONHandler(s.output, handlerOpts)
	}

	l := slog.New(traceHandler{h})
	if len(s.attrs) > 0 {
		l = l.With(s.attrs...)
	}
	return &Logger{Logger: l}
}

// traceHandler adds trace_id to records whose context carries one.
type traceHandler struct {
	slog.Handler
}

func (h traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := telemetry.TraceID(ctx); ok {
		r.AddAttrs(slog.String("trace_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return traceHandler{h.Handler.WithAttrs(attrs)}
}

func (h traceHandler) WithGroup(name string) slog.Handler {
	return traceHandler{h.Handler.WithGroup(name)}
}
