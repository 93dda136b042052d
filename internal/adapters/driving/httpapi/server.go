// Package httpapi exposes the conversation pipeline over HTTP.
//
// Endpoints:
//   - POST /chat    run one conversation turn
//   - GET  /healthz liveness and readiness probe
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/q-sparc/sparc-chat/internal/core/ports/driving"
	"github.com/q-sparc/sparc-chat/internal/logger"
)

// Default configuration values.
const (
	DefaultListenAddr      = ":8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 180 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds HTTP server configuration.
type Config struct {
	// ListenAddr is the address to bind (default: :8080).
	ListenAddr string

	// RequestsPerSecond throttles chat requests across all clients.
	// 0 disables throttling.
	RequestsPerSecond float64

	// ReadTimeout bounds request reading (default: 10s).
	ReadTimeout time.Duration

	// WriteTimeout bounds response writing. Generation can take minutes,
	// so this defaults high (180s).
	WriteTimeout time.Duration
}

// Server serves the chat API over HTTP.
type Server struct {
	chat    driving.ChatService
	limiter *rate.Limiter
	srv     *http.Server
}

// NewServer creates a server around the given chat service.
func NewServer(chat driving.ChatService, cfg Config) *Server {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		// Allow short bursts of twice the sustained rate.
		burst := int(cfg.RequestsPerSecond * 2)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	s := &Server{
		chat:    chat,
		limiter: limiter,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe blocks serving requests until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	logger.Info("HTTP API listening on %s", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, DefaultShutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
