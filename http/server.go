// Package http serves the estimate form and JSON API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server is the HTTP front of the estimator.
type Server struct {
	server *http.Server
	config ServerConfig
	logger *zap.Logger
}

// ServerConfig holds listen and request limits.
type ServerConfig struct {
	Port           int
	Timeout        time.Duration
	MaxRequestSize int64
}

// DefaultServerConfig returns the settings used when config.yaml leaves them out.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:           8501,
		Timeout:        30 * time.Second,
		MaxRequestSize: 64 << 10,
	}
}

// NewHandler wraps the routes in the middleware chain.
func NewHandler(config ServerConfig, h *Handlers, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterHandlers(mux, h)

	chain := Chain(
		RecoveryMiddleware(logger),
		LoggerMiddleware(logger),
		SecurityHeadersMiddleware,
		TimeoutMiddleware(config.Timeout),
		RequestSizeMiddleware(config.MaxRequestSize),
	)
	return chain(mux)
}

// NewServer builds a server listening on config.Port.
func NewServer(config ServerConfig, h *Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      NewHandler(config, h, logger),
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout + 5*time.Second,
			IdleTimeout:  120 * time.Second,
		},
		config: config,
		logger: logger,
	}
}

// Start blocks serving requests until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop waits for in-flight requests, up to one request timeout, then closes.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// shutdownTimeout leaves room for a request that started just before Stop.
func (s *Server) shutdownTimeout() time.Duration {
	const minimum = 5 * time.Second
	if d := s.config.Timeout + time.Second; d > minimum {
		return d
	}
	return minimum
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}
