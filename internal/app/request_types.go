package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidRequest marks caller mistakes so the HTTP adapter can answer
// 400 instead of 502.
var ErrInvalidRequest = errors.New("invalid request")

// BrandWiseReportRequest selects the order window for one report run.
// OrderType and Brand are optional filters passed through to the remote
// order query.
type BrandWiseReportRequest struct {
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
	OrderType string `json:"order_type,omitempty"`
	Brand     string `json:"brand,omitempty"`
}

// Validate checks the date range. Both bounds are required; the dashboard
// never asks for an unbounded report.
func (r *BrandWiseReportRequest) Validate() error {
	from, err := time.Parse("2006-01-02", r.FromDate)
	if err != nil {
		return fmt.Errorf("%w: from_date %q must be YYYY-MM-DD", ErrInvalidRequest, r.FromDate)
	}
	to, err := time.Parse("2006-01-02", r.ToDate)
	if err != nil {
		return fmt.Errorf("%w: to_date %q must be YYYY-MM-DD", ErrInvalidRequest, r.ToDate)
	}
	if to.Before(from) {
		return fmt.Errorf("%w: to_date %s is before from_date %s", ErrInvalidRequest, r.ToDate, r.FromDate)
	}
	return nil
}

// SetCartLineRequest sets one product's quantity in a cart. Quantity zero
// removes the line.
type SetCartLineRequest struct {
	CartID    string          `json:"cart_id"`
	ProductID int             `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ReorderRequest merges a historical order into a cart. An empty
// OrderNumber means "the customer's most recent order".
type ReorderRequest struct {
	CartID      string `json:"cart_id"`
	OrderNumber string `json:"order_number,omitempty"`
}

// AssignCustomerRequest puts a customer on a route. DropOrder 0 appends at
// the end of the drop sequence.
type AssignCustomerRequest struct {
	RouteID    int `json:"route_id"`
	CustomerID int `json:"customer_id"`
	DropOrder  int `json:"drop_order,omitempty"`
}

// CreateRouteRequest creates a delivery route.
type CreateRouteRequest struct {
	Name          string `json:"name"`
	DriverName    string `json:"driver_name,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
}
