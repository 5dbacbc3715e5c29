package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/numtrace/internal/config"
	"github.com/san-kum/numtrace/internal/experiment"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server exposes the methods over HTTP with the JSON routes of the
// original web calculator.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *experiment.Registry
	handler  http.Handler
}

func New(cfg *config.Config, logger *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		registry: experiment.NewRegistry(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /calcular_euler", s.handleODE("euler"))
	mux.HandleFunc("POST /calcular_rk4", s.handleODE("rk4"))
	mux.HandleFunc("POST /calcular_runge_kutta", s.handleODE("rk4"))
	mux.HandleFunc("POST /calcular_newton", s.handleNewton)
	mux.HandleFunc("POST /get_derivative", s.handleDerivative)
	mux.HandleFunc("GET /api/methods", s.handleMethods)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /{$}", s.handlePage(""))
	for _, p := range pages {
		mux.HandleFunc("GET /"+p.Path, s.handlePage(p.Path))
	}

	s.handler = s.middleware(mux)
	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve handles connections on ln and shuts down gracefully when ctx ends.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// run executes one experiment under the per-request timeout.
func (s *Server) run(ctx context.Context, cfg experiment.Config) (*experiment.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Server.Timeout)
	defer cancel()

	exp := experiment.New(cfg)
	if err := exp.Setup(s.registry); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
