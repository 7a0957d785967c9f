package app

import (
	"context"

	"dairydesk/internal/core"
	"dairydesk/internal/orderapi"
)

// OrderAPI is the slice of the remote order-service client the application
// layer depends on. *orderapi.Client satisfies it; tests substitute fakes.
type OrderAPI interface {
	FetchOrders(ctx context.Context, q orderapi.OrdersQuery) ([]core.Order, error)
	FetchCustomers(ctx context.Context) ([]core.Customer, error)
	FetchProducts(ctx context.Context) ([]core.Product, error)
	FetchOrderHistory(ctx context.Context, customerID, limit int) ([]orderapi.HistoricalOrder, error)
	SubmitOrder(ctx context.Context, draft orderapi.OrderDraft) (*core.OrderConfirmation, error)
}

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic; implementations contain no
// HTTP or display concerns.
type ApplicationService interface {
	// GenerateBrandWiseReport fetches orders for the requested window and
	// consolidates them into the brand-wise product report. Each call takes
	// a report generation; when a newer request finishes first, the older
	// result is discarded and ErrReportSuperseded is returned so a stale
	// response can never overwrite a fresher one.
	GenerateBrandWiseReport(ctx context.Context, req BrandWiseReportRequest) (*BrandWiseReportResult, error)

	// ListReportRuns returns the newest archived report runs.
	ListReportRuns(ctx context.Context, limit int) (*ReportRunListResult, error)

	// ListCustomers returns the customer master list from the remote service.
	ListCustomers(ctx context.Context) (*CustomerListResult, error)

	// ListProducts returns the product catalogue from the remote service.
	ListProducts(ctx context.Context) (*ProductListResult, error)

	// CreateCart opens an order-building cart for a customer.
	CreateCart(ctx context.Context, customerID int) (*CartResult, error)

	// GetCart returns a cart by ID.
	GetCart(ctx context.Context, cartID string) (*CartResult, error)

	// SetCartLine sets one product's quantity in a cart (zero removes).
	SetCartLine(ctx context.Context, req SetCartLineRequest) (*CartResult, error)

	// ReorderFromHistory merges one of the customer's past orders into the
	// cart: existing lines accumulate quantity, new lines append.
	ReorderFromHistory(ctx context.Context, req ReorderRequest) (*CartResult, error)

	// SubmitCart submits the cart to the remote service and reconciles the
	// local estimate against the server-confirmed total.
	SubmitCart(ctx context.Context, cartID string) (*CartResult, error)

	// CreateRoute creates a delivery route.
	CreateRoute(ctx context.Context, req CreateRouteRequest) (*RouteResult, error)

	// ListRoutes returns all delivery routes with stop counts.
	ListRoutes(ctx context.Context) (*RouteListResult, error)

	// GetRoute returns one route with its stops in drop order.
	GetRoute(ctx context.Context, routeID int) (*RouteResult, error)

	// AssignCustomerToRoute puts a customer on a route, caching the
	// customer's display name from the remote master data.
	AssignCustomerToRoute(ctx context.Context, req AssignCustomerRequest) (*RouteResult, error)

	// RemoveCustomerFromRoute takes a customer off a route.
	RemoveCustomerFromRoute(ctx context.Context, routeID, customerID int) (*RouteResult, error)
}
