package app

import (
	"time"

	"dairydesk/internal/core"
)

// ReportMeta describes one report run: the filters that drove it and when
// it was generated. Export renderers print it above the table.
type ReportMeta struct {
	RunID       string    `json:"run_id"`
	FromDate    string    `json:"from_date"`
	ToDate      string    `json:"to_date"`
	OrderType   string    `json:"order_type,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	OrderCount  int       `json:"order_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// BrandWiseReportResult is returned by GenerateBrandWiseReport.
type BrandWiseReportResult struct {
	Meta   ReportMeta          `json:"meta"`
	Report *core.ProductReport `json:"report"`
}

// CustomerListResult is returned by ListCustomers.
type CustomerListResult struct {
	Customers []core.Customer `json:"customers"`
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// CartResult is returned by every cart operation.
type CartResult struct {
	Cart *core.Cart `json:"cart"`
}

// RouteListResult is returned by ListRoutes.
type RouteListResult struct {
	Routes []core.Route `json:"routes"`
}

// RouteResult is returned by route detail operations.
type RouteResult struct {
	Route *core.Route `json:"route"`
}

// ReportRunListResult is returned by ListReportRuns.
type ReportRunListResult struct {
	Runs []core.ReportRun `json:"runs"`
}
