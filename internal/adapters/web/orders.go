package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"dairydesk/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ── Master data ──────────────────────────────────────────────────────────────

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "UPSTREAM_ERROR", http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "UPSTREAM_ERROR", http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

// ── Order building ───────────────────────────────────────────────────────────

func (h *Handler) createCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID int `json:"customer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, "invalid JSON body", "INVALID_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.CreateCart(r.Context(), body.CustomerID)
	if err != nil {
		writeCartError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(result)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetCart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) setCartLine(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID int             `json:"product_id"`
		Quantity  decimal.Decimal `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, "invalid JSON body", "INVALID_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.SetCartLine(r.Context(), app.SetCartLineRequest{
		CartID:    chi.URLParam(r, "id"),
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
	})
	if err != nil {
		writeCartError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) reorderCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderNumber string `json:"order_number"`
	}
	// An empty body means "reorder the most recent order".
	_ = json.NewDecoder(r.Body).Decode(&body)

	result, err := h.svc.ReorderFromHistory(r.Context(), app.ReorderRequest{
		CartID:      chi.URLParam(r, "id"),
		OrderNumber: body.OrderNumber,
	})
	if err != nil {
		writeCartError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) submitCart(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SubmitCart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeCartError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// writeCartError picks a status for cart workflow failures: unknown carts
// and customers are the caller's problem, remote submission failures are
// the upstream's.
func writeCartError(w http.ResponseWriter, r *http.Request, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		writeError(w, r, msg, "NOT_FOUND", http.StatusNotFound)
	case strings.Contains(msg, "submission failed"):
		writeError(w, r, msg, "UPSTREAM_ERROR", http.StatusBadGateway)
	default:
		writeError(w, r, msg, "INVALID_REQUEST", http.StatusBadRequest)
	}
}
