// package server contains the router, middleware and HTTP handlers of the job board API
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jobboard/internal/services"
	"github.com/desertthunder/jobboard/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Route is a single method and path served by a [Handler].
type Route struct {
	Method     string
	Path       string
	Handler    http.HandlerFunc
	Middleware []Middleware
}

// Handler groups related routes so they can be registered together.
type Handler interface {
	Routes() []Route // Routes returns the routes this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                                       // Use adds middleware applied to every request
	Handle(method, path string, handler http.Handler, mw ...Middleware) // Handle registers a handler for the method and path
	Handler(handler Handler)                                            // Handler registers every route of a Handler
	ServeHTTP(w http.ResponseWriter, r *http.Request)                   // ServeHTTP implements http.Handler for the entire router
}

// Options wires a [Server].
type Options struct {
	Jobs          *services.JobService
	Applications  *services.ApplicationService
	Auth          *services.AuthService
	Notifications *services.NotificationService
	Logger        *log.Logger
	Version       string
	// MaxUploadSize is the resume size cap. Multipart bodies may exceed it by one MiB of form overhead.
	MaxUploadSize int64
	TrustProxy    bool
	CORSOrigins   []string
}

// Server is the job board API.
type Server struct {
	router *BasicRouter
	logger *log.Logger
}

// New builds the router with every route and middleware registered.
func New(opts Options) *Server {
	logger := shared.WithLogger(opts.Logger, "component", "http")

	router := NewBasicRouter()
	router.Use(
		CORS(opts.CORSOrigins),
		RequestLogger(logger),
		Recoverer(logger),
	)

	requireAdmin := RequireAdmin(opts.Auth)
	router.Handler(&publicHandler{
		jobs:          opts.Jobs,
		applications:  opts.Applications,
		auth:          opts.Auth,
		notifications: opts.Notifications,
		version:       opts.Version,
		maxUpload:     opts.MaxUploadSize,
		trustProxy:    opts.TrustProxy,
		logger:        logger,
	})
	router.Handler(&adminHandler{
		jobs:          opts.Jobs,
		applications:  opts.Applications,
		notifications: opts.Notifications,
		guard:         requireAdmin,
		logger:        logger,
	})

	return &Server{router: router, logger: logger}
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
