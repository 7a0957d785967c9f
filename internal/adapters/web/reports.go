package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"dairydesk/internal/app"
	"dairydesk/internal/export"
)

// brandWiseReport generates the consolidated report for the requested
// window. format=xlsx streams an Excel download; the default is JSON.
// An empty report is a normal 200 with zero totals, never an error.
func (h *Handler) brandWiseReport(w http.ResponseWriter, r *http.Request) {
	req := reportRequestFromQuery(r)

	result, err := h.svc.GenerateBrandWiseReport(r.Context(), req)
	if err != nil {
		writeReportError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		filename := fmt.Sprintf("brandwise-%s-%s.xlsx", req.FromDate, req.ToDate)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := export.WriteExcel(w, exportMeta(result), result.Report); err != nil {
			// Headers are gone; all we can do is log via the middleware path.
			writeError(w, r, "excel rendering failed", "EXPORT_ERROR", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, result)
}

// brandWiseReportHTML renders the report as the dashboard's table fragment.
func (h *Handler) brandWiseReportHTML(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GenerateBrandWiseReport(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		writeReportError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.WriteHTML(w, exportMeta(result), result.Report); err != nil {
		writeError(w, r, "html rendering failed", "EXPORT_ERROR", http.StatusInternalServerError)
	}
}

func (h *Handler) reportRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	result, err := h.svc.ListReportRuns(r.Context(), limit)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func reportRequestFromQuery(r *http.Request) app.BrandWiseReportRequest {
	q := r.URL.Query()
	return app.BrandWiseReportRequest{
		FromDate:  q.Get("from"),
		ToDate:    q.Get("to"),
		OrderType: q.Get("order_type"),
		Brand:     q.Get("brand"),
	}
}

func writeReportError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrReportSuperseded):
		// A newer report already delivered; this response must not be shown.
		writeError(w, r, err.Error(), "REPORT_SUPERSEDED", http.StatusConflict)
	case errors.Is(err, app.ErrInvalidRequest):
		writeError(w, r, err.Error(), "INVALID_REQUEST", http.StatusBadRequest)
	default:
		writeError(w, r, err.Error(), "UPSTREAM_ERROR", http.StatusBadGateway)
	}
}

func exportMeta(result *app.BrandWiseReportResult) export.Meta {
	return export.Meta{
		FromDate:    result.Meta.FromDate,
		ToDate:      result.Meta.ToDate,
		OrderType:   result.Meta.OrderType,
		Brand:       result.Meta.Brand,
		OrderCount:  result.Meta.OrderCount,
		GeneratedAt: result.Meta.GeneratedAt,
	}
}
