package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"dairydesk/internal/core"
	"dairydesk/internal/orderapi"

	"github.com/google/uuid"
)

// ErrReportSuperseded is returned when a report request finished after a
// newer request had already delivered its result. The caller should drop
// the stale result; the fresher report is already on screen.
var ErrReportSuperseded = errors.New("report superseded by a newer request")

type service struct {
	api       OrderAPI
	routes    core.RouteService
	reportLog core.ReportLogService
	carts     *cartStore

	// reportIssued hands out a generation per report request;
	// reportDelivered tracks the newest generation whose result was kept.
	reportIssued    atomic.Uint64
	reportDelivered atomic.Uint64
}

// NewService constructs the ApplicationService. reportLog may be nil when
// running without a database (report archiving is then skipped).
func NewService(ctx context.Context, api OrderAPI, routes core.RouteService, reportLog core.ReportLogService) ApplicationService {
	s := &service{
		api:       api,
		routes:    routes,
		reportLog: reportLog,
		carts:     newCartStore(),
	}
	s.carts.startPurge(ctx)
	return s
}

// ── Reports ──────────────────────────────────────────────────────────────────

func (s *service) GenerateBrandWiseReport(ctx context.Context, req BrandWiseReportRequest) (*BrandWiseReportResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	gen := s.reportIssued.Add(1)
	start := time.Now()

	orders, err := s.api.FetchOrders(ctx, orderapi.OrdersQuery{
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		OrderType: req.OrderType,
		Brand:     req.Brand,
	})
	if err != nil {
		return nil, fmt.Errorf("order fetch failed: %w", err)
	}

	report := core.BuildProductReport(orders)

	// Keep only the newest generation: if a later request already delivered,
	// this result is stale and must not reach the caller.
	for {
		delivered := s.reportDelivered.Load()
		if gen <= delivered {
			return nil, ErrReportSuperseded
		}
		if s.reportDelivered.CompareAndSwap(delivered, gen) {
			break
		}
	}

	meta := ReportMeta{
		RunID:       uuid.NewString(),
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		OrderType:   req.OrderType,
		Brand:       req.Brand,
		OrderCount:  report.OrderCount,
		GeneratedAt: time.Now(),
	}

	// Archiving is best effort: a full report with a missing audit row beats
	// no report.
	if s.reportLog != nil {
		run := core.ReportRun{
			RunID:        meta.RunID,
			FromDate:     req.FromDate,
			ToDate:       req.ToDate,
			OrderType:    req.OrderType,
			Brand:        req.Brand,
			OrderCount:   report.OrderCount,
			ProductCount: len(report.Products),
			TotalCrates:  report.Grand.Crates,
			TotalLiters:  report.Grand.Liters,
			TotalPackets: report.Grand.Packets,
			Duration:     time.Since(start),
		}
		if err := s.reportLog.RecordRun(ctx, run); err != nil {
			log.Printf("report archive: %v", err)
		}
	}

	return &BrandWiseReportResult{Meta: meta, Report: report}, nil
}

func (s *service) ListReportRuns(ctx context.Context, limit int) (*ReportRunListResult, error) {
	if s.reportLog == nil {
		return &ReportRunListResult{}, nil
	}
	runs, err := s.reportLog.RecentRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &ReportRunListResult{Runs: runs}, nil
}

// ── Master data ──────────────────────────────────────────────────────────────

func (s *service) ListCustomers(ctx context.Context) (*CustomerListResult, error) {
	customers, err := s.api.FetchCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Customers: customers}, nil
}

func (s *service) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.api.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

// ── Order building ───────────────────────────────────────────────────────────

func (s *service) CreateCart(ctx context.Context, customerID int) (*CartResult, error) {
	customers, err := s.api.FetchCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range customers {
		if c.ID == customerID {
			cart := core.NewCart(c)
			s.carts.put(cart)
			return &CartResult{Cart: cart}, nil
		}
	}
	return nil, fmt.Errorf("customer %d not found", customerID)
}

func (s *service) GetCart(_ context.Context, cartID string) (*CartResult, error) {
	cart, err := s.carts.with(cartID, func(*core.Cart) error { return nil })
	if err != nil {
		return nil, err
	}
	return &CartResult{Cart: cart}, nil
}

func (s *service) SetCartLine(ctx context.Context, req SetCartLineRequest) (*CartResult, error) {
	products, err := s.api.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	var product *core.Product
	for i := range products {
		if products[i].ID == req.ProductID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return nil, fmt.Errorf("product %d not found in catalogue", req.ProductID)
	}

	cart, err := s.carts.with(req.CartID, func(c *core.Cart) error {
		return c.SetLine(*product, req.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return &CartResult{Cart: cart}, nil
}

func (s *service) ReorderFromHistory(ctx context.Context, req ReorderRequest) (*CartResult, error) {
	cart, err := s.carts.with(req.CartID, func(*core.Cart) error { return nil })
	if err != nil {
		return nil, err
	}

	history, err := s.api.FetchOrderHistory(ctx, cart.CustomerID, 10)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("customer %d has no order history to reorder from", cart.CustomerID)
	}

	source := history[0] // newest first
	if req.OrderNumber != "" {
		found := false
		for _, h := range history {
			if h.OrderNumber == req.OrderNumber {
				source = h
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("order %s not found in recent history of customer %d", req.OrderNumber, cart.CustomerID)
		}
	}

	cart, err = s.carts.with(req.CartID, func(c *core.Cart) error {
		return c.MergeReorder(source.Lines)
	})
	if err != nil {
		return nil, err
	}
	return &CartResult{Cart: cart}, nil
}

func (s *service) SubmitCart(ctx context.Context, cartID string) (*CartResult, error) {
	// The whole submit runs under the store lock: a double-click cannot race
	// two submissions of the same cart past the OPEN-status check.
	cart, err := s.carts.with(cartID, func(c *core.Cart) error {
		if c.Status != core.CartOpen {
			return fmt.Errorf("cart %s already submitted as order %s", c.ID, c.OrderNumber)
		}
		if len(c.Lines) == 0 {
			return fmt.Errorf("cart %s is empty", c.ID)
		}

		draft := orderapi.OrderDraft{CustomerID: c.CustomerID}
		for _, l := range c.Lines {
			draft.Lines = append(draft.Lines, orderapi.DraftLine{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
			})
		}

		conf, err := s.api.SubmitOrder(ctx, draft)
		if err != nil {
			return fmt.Errorf("order submission failed: %w", err)
		}
		return c.ApplyConfirmation(*conf)
	})
	if err != nil {
		return nil, err
	}
	return &CartResult{Cart: cart}, nil
}

// ── Routes ───────────────────────────────────────────────────────────────────

func (s *service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*RouteResult, error) {
	route, err := s.routes.CreateRoute(ctx, req.Name, req.DriverName, req.VehicleNumber)
	if err != nil {
		return nil, err
	}
	return &RouteResult{Route: route}, nil
}

func (s *service) ListRoutes(ctx context.Context) (*RouteListResult, error) {
	routes, err := s.routes.GetRoutes(ctx)
	if err != nil {
		return nil, err
	}
	return &RouteListResult{Routes: routes}, nil
}

func (s *service) GetRoute(ctx context.Context, routeID int) (*RouteResult, error) {
	route, err := s.routes.GetRoute(ctx, routeID)
	if err != nil {
		return nil, err
	}
	return &RouteResult{Route: route}, nil
}

func (s *service) AssignCustomerToRoute(ctx context.Context, req AssignCustomerRequest) (*RouteResult, error) {
	customers, err := s.api.FetchCustomers(ctx)
	if err != nil {
		return nil, err
	}
	name := ""
	for _, c := range customers {
		if c.ID == req.CustomerID {
			name = c.Name
			break
		}
	}
	if name == "" {
		return nil, fmt.Errorf("customer %d not found", req.CustomerID)
	}

	if _, err := s.routes.AssignCustomer(ctx, req.RouteID, req.CustomerID, name, req.DropOrder); err != nil {
		return nil, err
	}
	return s.GetRoute(ctx, req.RouteID)
}

func (s *service) RemoveCustomerFromRoute(ctx context.Context, routeID, customerID int) (*RouteResult, error) {
	if err := s.routes.RemoveCustomer(ctx, routeID, customerID); err != nil {
		return nil, err
	}
	return s.GetRoute(ctx, routeID)
}
