package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/georgemunganga/vendorhub-backend/internal/lock"
	"github.com/georgemunganga/vendorhub-backend/internal/logger"
	"github.com/georgemunganga/vendorhub-backend/internal/modules/auth"
	"github.com/georgemunganga/vendorhub-backend/internal/modules/consignment"
	"github.com/georgemunganga/vendorhub-backend/internal/modules/inventory"
	"github.com/georgemunganga/vendorhub-backend/internal/modules/ledger"
	"github.com/georgemunganga/vendorhub-backend/internal/modules/order"
	"github.com/georgemunganga/vendorhub-backend/internal/modules/vendors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Deps are the shared resources every module is built from.
type Deps struct {
	DB        *sql.DB
	Locker    lock.Locker
	Log       *zap.Logger
	JWTSecret string
	JWTTTL    time.Duration
}

// NewRouter wires every module onto one chi router.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logger.RequestLogger(d.Log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthz(d.DB))

	// ── Auth ────────────────────────────────────────────────
	authService := auth.NewService(auth.NewPostgresRepository(d.DB), d.JWTSecret, d.JWTTTL)
	auth.NewHandler(authService, d.Log).RegisterRoutes(r)
	guard := auth.NewMiddleware(authService, d.Log)

	// ── Modules ─────────────────────────────────────────────
	vendorsHandler := vendors.NewHandler(vendors.NewService(vendors.NewPostgresRepository(d.DB), d.Log), d.Log)
	ledgerHandler := ledger.NewHandler(ledger.NewService(ledger.NewPostgresRepository(d.DB), d.Locker, d.Log), d.Log)
	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(d.DB), order.DefaultCarriers(), d.Log), d.Log)
	inventoryHandler := inventory.NewHandler(inventory.NewService(inventory.NewPostgresRepository(d.DB), d.Log), d.Log)
	consignmentHandler := consignment.NewHandler(consignment.NewService(consignment.NewPostgresRepository(d.DB), d.Log), d.Log)

	r.Route("/api/v1/vendor", func(r chi.Router) {
		r.Use(guard.RequireVendor)
		vendorsHandler.RegisterVendorRoutes(r)
		ledgerHandler.RegisterVendorRoutes(r)
		orderHandler.RegisterVendorRoutes(r)
		inventoryHandler.RegisterVendorRoutes(r)
		consignmentHandler.RegisterVendorRoutes(r)
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(guard.RequireAdmin)
		vendorsHandler.RegisterAdminRoutes(r)
		ledgerHandler.RegisterAdminRoutes(r)
		orderHandler.RegisterAdminRoutes(r)
		consignmentHandler.RegisterAdminRoutes(r)
	})

	return r
}

func healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			httpx.Respond(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
