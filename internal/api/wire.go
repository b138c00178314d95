// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tienda/internal/core/cart"
	"github.com/taibuivan/tienda/internal/core/product"
	"github.com/taibuivan/tienda/internal/platform/config"
	"github.com/taibuivan/tienda/internal/platform/realtime"
	"github.com/taibuivan/tienda/internal/users/account"
	"github.com/taibuivan/tienda/internal/users/auth"
)

// # Store Selection

// Stores is the persistence backend chosen at startup.
type Stores struct {
	Products    product.Repository
	Carts       cart.Repository
	Users       auth.UserRepository
	Accounts    account.AccountRepository
	ResetLedger auth.ResetLedger
}

// MemoryStores keeps everything in process memory.
func MemoryStores() Stores {
	products := product.NewMemoryRepository()
	users := auth.NewMemoryUserRepository()

	return Stores{
		Products:    products,
		Carts:       cart.NewMemoryRepository(products),
		Users:       users,
		Accounts:    users,
		ResetLedger: auth.NewMemoryResetLedger(),
	}
}

// PostgresStores persists everything in PostgreSQL. ledger may come from
// Redis; nil falls back to an in-process ledger.
func PostgresStores(pool *pgxpool.Pool, ledger auth.ResetLedger) Stores {
	if ledger == nil {
		ledger = auth.NewMemoryResetLedger()
	}

	return Stores{
		Products:    product.NewPostgresRepository(pool),
		Carts:       cart.NewPostgresRepository(pool),
		Users:       auth.NewUserRepository(pool),
		Accounts:    account.NewAccountRepository(pool),
		ResetLedger: ledger,
	}
}

// # Service Graph

// Dependencies are the collaborators shared by the domain services.
type Dependencies struct {
	Tokens   auth.TokenIssuer
	Hasher   auth.PasswordHasher
	Notifier auth.Notifier
	Options  auth.Options
	Logger   *slog.Logger
}

// Services holds every domain service plus the realtime hub they publish to.
type Services struct {
	Hub      *realtime.Hub
	Products *product.Service
	Carts    *cart.Service
	Auth     *auth.Service
	Accounts *account.Service
}

/*
NewServices builds the service graph on top of stores.

The cart service learns cart ownership from the auth service after both
exist, since auth already depends on carts for registration.
*/
func NewServices(cfg *config.Config, stores Stores, deps Dependencies) *Services {
	hub := realtime.NewHub(deps.Logger, originChecker(splitOrigins(cfg.AllowedOrigins), cfg.IsDevelopment()))

	products := product.NewService(stores.Products, hub, deps.Logger)
	carts := cart.NewService(stores.Carts, products, deps.Logger)
	authService := auth.NewService(stores.Users, carts, deps.Tokens, deps.Hasher, deps.Notifier, stores.ResetLedger, deps.Logger, deps.Options)
	carts.SetOwnerLookup(authService)

	product.NewSocketEvents(products, deps.Logger).Register(hub)

	return &Services{
		Hub:      hub,
		Products: products,
		Carts:    carts,
		Auth:     authService,
		Accounts: account.NewService(stores.Accounts, authService, deps.Logger),
	}
}

// Handlers builds the HTTP handler set for [NewServer].
func (services *Services) Handlers(cfg *config.Config, health HealthDependencies, logger *slog.Logger) Handlers {
	liveness, readiness := NewHealthHandlers(health, logger)

	return Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Auth:          auth.NewHandler(services.Auth, cfg.IsProduction()),
		Product:       product.NewHandler(services.Products),
		Cart:          cart.NewHandler(services.Carts),
		Account:       account.NewHandler(services.Accounts),
		ProductSocket: services.Hub,
	}
}

// originChecker accepts same-host requests, listed origins, and any origin in development.
func originChecker(origins []string, development bool) func(*http.Request) bool {
	return func(request *http.Request) bool {
		origin := request.Header.Get("Origin")
		if origin == "" || development {
			return true
		}
		return slices.Contains(origins, origin) || origin == "http://"+request.Host || origin == "https://"+request.Host
	}
}
