package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/jrazmi/zentask/sdk/environment"
)

// WebServer is an http.Server that knows how to shut itself down.
type WebServer struct {
	*http.Server
	Config ServerConfig
}

// ServerConfig is read from PORT, READ_TIMEOUT, and so on under the app prefix.
type ServerConfig struct {
	Port              string        `env:"PORT" default:":3000"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" default:"5s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" default:"2s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" default:"20s"`
}

type serverOptions struct {
	handler  http.Handler
	errorLog *log.Logger
	port     string
}

type ServerOption func(*serverOptions)

func WithHandler(handler http.Handler) ServerOption {
	return func(o *serverOptions) {
		o.handler = handler
	}
}

// WithErrorLog routes net/http's internal errors (TLS handshakes, panics
// outside middleware) to errorLog.
func WithErrorLog(errorLog *log.Logger) ServerOption {
	return func(o *serverOptions) {
		o.errorLog = errorLog
	}
}

// WithPort overrides PORT.
func WithPort(port string) ServerOption {
	return func(o *serverOptions) {
		o.port = port
	}
}

// NewServerFromEnv reads ServerConfig under prefix and applies opts.
func NewServerFromEnv(prefix string, opts ...ServerOption) (*WebServer, error) {
	var cfg ServerConfig
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing webserver config: %w", err)
	}
	return NewServer(cfg, opts...), nil
}

func NewServer(cfg ServerConfig, opts ...ServerOption) *WebServer {
	o := &serverOptions{port: cfg.Port}
	for _, opt := range opts {
		opt(o)
	}
	cfg.Port = o.port

	return &WebServer{
		Server: &http.Server{
			Addr:              cfg.Port,
			Handler:           o.handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          o.errorLog,
		},
		Config: cfg,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to ShutdownTimeout. A clean shutdown returns nil.
func (s *WebServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *WebServer) Serve(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.Server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
	}

	timeout := s.Config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		s.Close()
		return fmt.Errorf("could not stop server gracefully: %w", err)
	}
	return nil
}
