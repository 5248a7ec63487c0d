package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shopfleet/payouts/internal/ingestion"
	"github.com/shopfleet/payouts/internal/repository"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(
	orderRepo *repository.OrderRepo,
	configRepo *repository.ConfigRepo,
	payoutRepo *repository.PayoutRepo,
	importSvc *ingestion.Service,
) http.Handler {
	h := &Handlers{
		orderRepo:  orderRepo,
		configRepo: configRepo,
		payoutRepo: payoutRepo,
		importSvc:  importSvc,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Imports.
		r.Post("/imports/{kind}", h.Import)

		// Orders.
		r.Get("/orders", h.ListOrders)

		// Settings.
		r.Get("/settings/prices", h.ListPrices)
		r.Post("/settings/prices", h.UpsertPrices)
		r.Delete("/settings/prices", h.ResetPrices)
		r.Get("/settings/rates", h.ListRates)
		r.Post("/settings/rates", h.UpsertRates)
		r.Delete("/settings/rates", h.ResetRates)
		r.Get("/settings/gaps", h.GetGaps)
		r.Get("/settings/export", h.ExportSettings)
		r.Get("/settings/template/{kind}", h.GetTemplate)

		// Payouts.
		r.Post("/payouts/calculate", h.CalculatePayout)
		r.Get("/payouts", h.ListPayouts)
		r.Get("/payouts/{id}", h.GetPayout)
		r.Get("/payouts/{id}/export", h.ExportPayout)

		// Dashboard.
		r.Get("/dashboard", h.GetDashboard)
	})

	return r
}
