// Package httpapi exposes the catalog service as a JSON API over HTTP.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AntonStoeckl/library-catalog-go/app/shell"
	"github.com/AntonStoeckl/library-catalog-go/app/shell/config"
)

const (
	logMsgServerStarting = "starting http server"
	logMsgServerStopping = "stopping http server"
	logAttrAddr          = "addr"
)

// ErrNilService is returned by NewServer when no service is supplied.
var ErrNilService = errors.New("service must not be nil")

// Server routes HTTP requests to a shell.Service.
type Server struct {
	service *shell.Service
	cfg     config.ServerConfig
	router  *chi.Mux
	logger  *slog.Logger
}

// Option defines a functional option for configuring Server.
type Option func(*Server)

// WithLogger sets the logger for request errors and server lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server for service using the timeouts from cfg.
func NewServer(service *shell.Service, cfg config.ServerConfig, options ...Option) (*Server, error) {
	if service == nil {
		return nil, ErrNilService
	}

	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, option := range options {
		option(s)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Handler returns the router, for use with httptest or a custom http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	if s.cfg.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/catalog", s.handleRender)

	s.router.Route("/books", func(r chi.Router) {
		r.Get("/", s.handleFindBooks)
		r.Post("/", s.handleAddBook)
		r.Delete("/{isbn}", s.handleRemoveBook)
	})

	s.router.Route("/readers", func(r chi.Router) {
		r.Get("/", s.handleFindReaders)
		r.Post("/", s.handleRegisterReader)
		r.Delete("/{cardNumber}", s.handleDeregisterReader)
	})

	s.router.Route("/loans", func(r chi.Router) {
		r.Get("/", s.handleLoans)
		r.Post("/", s.handleBorrow)
		r.Delete("/{isbn}", s.handleReturnBook)
	})
}

// ListenAndServe serves on cfg.Addr until ctx is done, then shuts down gracefully within cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	serveErr := make(chan error, 1)

	go func() {
		s.logger.Info(logMsgServerStarting, logAttrAddr, s.cfg.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err

	case <-ctx.Done():
		s.logger.Info(logMsgServerStopping, logAttrAddr, s.cfg.Addr)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout())
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}

		if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}

func (s *Server) shutdownTimeout() time.Duration {
	if s.cfg.ShutdownTimeout > 0 {
		return s.cfg.ShutdownTimeout
	}

	return 30 * time.Second
}
