// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/tienda/internal/core/cart"
	"github.com/taibuivan/tienda/internal/core/product"
	"github.com/taibuivan/tienda/internal/platform/config"
	"github.com/taibuivan/tienda/internal/platform/constants"
	"github.com/taibuivan/tienda/internal/platform/middleware"
	"github.com/taibuivan/tienda/internal/users/account"
	"github.com/taibuivan/tienda/internal/users/auth"
	"github.com/taibuivan/tienda/pkg/slice"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 when all dependencies answer.
	Readiness http.HandlerFunc

	// Auth handles sessions: register, login, logout, password reset.
	Auth *auth.Handler

	// Product handles the public catalog and its admin mutations.
	Product *product.Handler

	// Cart handles carts and their lines.
	Cart *cart.Handler

	// Account handles user administration.
	Account *account.Handler

	// ProductSocket is the realtime catalog channel.
	ProductSocket http.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, limiter *middleware.RateLimiter, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(splitOrigins(cfg.AllowedOrigins), cfg.IsDevelopment()))
	if limiter != nil {
		r.Use(limiter.Middleware)
	}
	r.Use(middleware.Authenticate(verifier, cfg.IsProduction()))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// Long-lived; kept out of the request timeout below
	if h.ProductSocket != nil {
		r.Handle("/ws/products", h.ProductSocket)
	}

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Use(chimw.Timeout(constants.GlobalRequestTimeout))
		api.Use(chimw.CleanPath)

		api.Route("/sessions", h.Auth.RegisterRoutes)
		api.Route("/products", h.Product.RegisterRoutes)
		api.Route("/carts", h.Cart.RegisterRoutes)
		api.Route("/admin", h.Account.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the root router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

func splitOrigins(raw string) []string {
	origins := slice.Map(strings.Split(raw, ","), strings.TrimSpace)
	return slice.Filter(origins, func(origin string) bool { return origin != "" })
}
