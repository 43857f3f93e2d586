// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It is the composition root for the chi router.
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/activity"
	"github.com/taibuivan/medora/internal/auth"
	"github.com/taibuivan/medora/internal/cart"
	"github.com/taibuivan/medora/internal/employee"
	"github.com/taibuivan/medora/internal/notification"
	"github.com/taibuivan/medora/internal/order"
	"github.com/taibuivan/medora/internal/platform/config"
	"github.com/taibuivan/medora/internal/platform/constants"
	"github.com/taibuivan/medora/internal/platform/metrics"
	"github.com/taibuivan/medora/internal/platform/middleware"
	"github.com/taibuivan/medora/internal/product"
	"github.com/taibuivan/medora/internal/task"
	"github.com/taibuivan/medora/internal/upload"
	"github.com/taibuivan/medora/internal/user"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	logger     *zap.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when Postgres and Redis answer.
	Readiness http.HandlerFunc

	Auth         *auth.Handler
	User         *user.Handler
	Employee     *employee.Handler
	Task         *task.Handler
	Notification *notification.Handler
	Activity     *activity.Handler
	Product      *product.Handler
	Cart         *cart.Handler
	Order        *order.Handler
	Upload       *upload.Handler
}

// Dependencies are the cross-cutting collaborators of the middleware chain.
type Dependencies struct {
	Verifier middleware.TokenVerifier
	Metrics  *metrics.Collector

	// UploadDir is served read-only at /uploads.
	UploadDir string
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. ctx bounds background middleware goroutines.
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger, deps Dependencies, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Outermost first: trace, observe, guard, then identity.
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg, cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.ConcurrencyLimit(cfg.MaxConcurrentRequests, constants.ConcurrencyQueueTimeout))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(deps.Verifier))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	r.Handle("/"+constants.UploadURLPrefix+"/*",
		http.StripPrefix("/"+constants.UploadURLPrefix+"/", http.FileServer(http.Dir(deps.UploadDir))))

	// # Application API
	// Task, notification and order handlers record activity behind their own role gates.
	r.Mount("/auth", h.Auth.Routes())
	r.Mount("/users", h.User.Routes())
	r.Mount("/employee", h.Employee.Routes())
	r.Mount("/task", h.Task.Routes())
	r.Mount("/notification", h.Notification.Routes())
	r.Mount("/activity", h.Activity.Routes())
	r.Mount("/products", h.Product.Routes())
	r.Mount("/cart", h.Cart.Routes())
	r.Mount("/orders", h.Order.Routes())
	r.Mount("/upload", h.Upload.Routes())

	return &Server{
		router: r,
		logger: logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ErrorLog:          zap.NewStdLog(logger),
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server_starting", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
