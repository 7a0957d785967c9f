// Package web is the HTTP adapter for the dashboard SPA. It translates
// requests into ApplicationService calls and results into JSON, HTML
// fragments, or file downloads; no business logic lives here.
package web

import (
	"net/http"

	"dairydesk/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
// allowedOrigins is the comma-separated CORS allow-list (empty disables CORS).
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB; no endpoint takes large bodies

	r.Get("/api/health", h.health)

	// Reports
	r.Get("/api/reports/brandwise", h.brandWiseReport)
	r.Get("/api/reports/brandwise/html", h.brandWiseReportHTML)
	r.Get("/api/reports/runs", h.reportRuns)

	// Master data (proxied from the remote order service)
	r.Get("/api/customers", h.listCustomers)
	r.Get("/api/products", h.listProducts)

	// Order building
	r.Post("/api/carts", h.createCart)
	r.Get("/api/carts/{id}", h.getCart)
	r.Put("/api/carts/{id}/lines", h.setCartLine)
	r.Post("/api/carts/{id}/reorder", h.reorderCart)
	r.Post("/api/carts/{id}/submit", h.submitCart)

	// Delivery routes
	r.Get("/api/routes", h.listRoutes)
	r.Post("/api/routes", h.createRoute)
	r.Get("/api/routes/{id}", h.getRoute)
	r.Post("/api/routes/{id}/customers", h.assignRouteCustomer)
	r.Delete("/api/routes/{id}/customers/{customerID}", h.removeRouteCustomer)

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
