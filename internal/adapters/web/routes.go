package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"dairydesk/internal/app"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listRoutes(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListRoutes(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) createRoute(w http.ResponseWriter, r *http.Request) {
	var req app.CreateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "INVALID_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.CreateRoute(r.Context(), req)
	if err != nil {
		writeError(w, r, err.Error(), "INVALID_REQUEST", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(result)
}

func (h *Handler) getRoute(w http.ResponseWriter, r *http.Request) {
	routeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "route id must be numeric", "INVALID_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.GetRoute(r.Context(), routeID)
	if err != nil {
		writeRouteError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) assignRouteCustomer(w http.ResponseWriter, r *http.Request) {
	routeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "route id must be numeric", "INVALID_REQUEST", http.StatusBadRequest)
		return
	}

	var body struct {
		CustomerID int `json:"customer_id"`
		DropOrder  int `json:"drop_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, "invalid JSON body", "INVALID_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.AssignCustomerToRoute(r.Context(), app.AssignCustomerRequest{
		RouteID:    routeID,
		CustomerID: body.CustomerID,
		DropOrder:  body.DropOrder,
	})
	if err != nil {
		writeRouteError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) removeRouteCustomer(w http.ResponseWriter, r *http.Request) {
	routeID, err1 := strconv.Atoi(chi.URLParam(r, "id"))
	customerID, err2 := strconv.Atoi(chi.URLParam(r, "customerID"))
	if err1 != nil || err2 != nil {
		writeError(w, r, "route and customer ids must be numeric", "INVALID_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.RemoveCustomerFromRoute(r.Context(), routeID, customerID)
	if err != nil {
		writeRouteError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func writeRouteError(w http.ResponseWriter, r *http.Request, err error) {
	msg := err.Error()
	if strings.Contains(msg, "not found") || strings.Contains(msg, "is not on route") {
		writeError(w, r, msg, "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeError(w, r, msg, "INTERNAL_ERROR", http.StatusInternalServerError)
}
