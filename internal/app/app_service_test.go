package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"dairydesk/internal/app"
	"dairydesk/internal/core"
	"dairydesk/internal/orderapi"

	"github.com/shopspring/decimal"
)

// fakeOrderAPI scripts the remote order service for tests.
type fakeOrderAPI struct {
	orders       []core.Order
	fetchErr     error
	fetchHook    func() // runs inside FetchOrders, before returning
	customers    []core.Customer
	products     []core.Product
	history      []orderapi.HistoricalOrder
	confirmation *core.OrderConfirmation
	submitted    []orderapi.OrderDraft
}

func (f *fakeOrderAPI) FetchOrders(context.Context, orderapi.OrdersQuery) ([]core.Order, error) {
	if f.fetchHook != nil {
		f.fetchHook()
	}
	return f.orders, f.fetchErr
}

func (f *fakeOrderAPI) FetchCustomers(context.Context) ([]core.Customer, error) {
	return f.customers, nil
}

func (f *fakeOrderAPI) FetchProducts(context.Context) ([]core.Product, error) {
	return f.products, nil
}

func (f *fakeOrderAPI) FetchOrderHistory(context.Context, int, int) ([]orderapi.HistoricalOrder, error) {
	return f.history, nil
}

func (f *fakeOrderAPI) SubmitOrder(_ context.Context, draft orderapi.OrderDraft) (*core.OrderConfirmation, error) {
	f.submitted = append(f.submitted, draft)
	if f.confirmation == nil {
		return nil, fmt.Errorf("no confirmation scripted")
	}
	return f.confirmation, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService(api app.OrderAPI) app.ApplicationService {
	return app.NewService(context.Background(), api, nil, nil)
}

func TestGenerateBrandWiseReport(t *testing.T) {
	api := &fakeOrderAPI{orders: []core.Order{
		{Products: []core.OrderLine{{ProductName: "Toned Milk 500ML", Quantity: dec("12"), Category: "Milk"}}},
		{Products: []core.OrderLine{{ProductName: "Toned Milk 500ML", Quantity: dec("6"), Category: "Milk"}}},
	}}
	svc := newTestService(api)

	result, err := svc.GenerateBrandWiseReport(context.Background(), app.BrandWiseReportRequest{
		FromDate: "2026-08-01", ToDate: "2026-08-31",
	})
	if err != nil {
		t.Fatalf("GenerateBrandWiseReport: %v", err)
	}

	if result.Meta.RunID == "" {
		t.Error("expected a run ID")
	}
	if result.Meta.OrderCount != 2 {
		t.Errorf("OrderCount = %d, want 2", result.Meta.OrderCount)
	}
	if len(result.Report.Products) != 1 {
		t.Fatalf("expected 1 consolidated product, got %d", len(result.Report.Products))
	}
	if !result.Report.Grand.Liters.Equal(dec("9")) {
		t.Errorf("grand liters = %s, want 9", result.Report.Grand.Liters)
	}
}

func TestGenerateBrandWiseReport_InvalidRange(t *testing.T) {
	svc := newTestService(&fakeOrderAPI{})
	cases := []app.BrandWiseReportRequest{
		{FromDate: "", ToDate: "2026-08-31"},
		{FromDate: "2026-08-01", ToDate: "31-08-2026"},
		{FromDate: "2026-08-31", ToDate: "2026-08-01"},
	}
	for _, req := range cases {
		if _, err := svc.GenerateBrandWiseReport(context.Background(), req); err == nil {
			t.Errorf("expected validation error for %+v", req)
		}
	}
}

func TestGenerateBrandWiseReport_StaleResultDiscarded(t *testing.T) {
	// The first request's fetch stalls until a second request has fully
	// delivered. The first must then come back ErrReportSuperseded instead
	// of overwriting the newer result.
	firstFetchEntered := make(chan struct{})
	releaseFirst := make(chan struct{})

	calls := 0
	api := &fakeOrderAPI{}
	api.fetchHook = func() {
		calls++
		if calls == 1 {
			close(firstFetchEntered)
			<-releaseFirst
		}
	}
	svc := newTestService(api)

	req := app.BrandWiseReportRequest{FromDate: "2026-08-01", ToDate: "2026-08-31"}
	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.GenerateBrandWiseReport(context.Background(), req)
		firstDone <- err
	}()

	<-firstFetchEntered
	if _, err := svc.GenerateBrandWiseReport(context.Background(), req); err != nil {
		t.Fatalf("second request: %v", err)
	}
	close(releaseFirst)

	if err := <-firstDone; !errors.Is(err, app.ErrReportSuperseded) {
		t.Fatalf("first request error = %v, want ErrReportSuperseded", err)
	}
}

func TestCartWorkflow(t *testing.T) {
	milk := core.Product{ID: 1, Name: "Toned Milk 500ML", UnitPrice: dec("27.50")}
	api := &fakeOrderAPI{
		customers: []core.Customer{{ID: 7, Name: "Sharma General Store"}},
		products:  []core.Product{milk},
		history: []orderapi.HistoricalOrder{{
			OrderNumber: "ORD-1",
			Lines:       []core.CartLine{{ProductID: 1, ProductName: milk.Name, UnitPrice: dec("26"), Quantity: dec("5")}},
		}},
		confirmation: &core.OrderConfirmation{OrderNumber: "ORD-2", OrderTotal: dec("433.12")},
	}
	svc := newTestService(api)
	ctx := context.Background()

	created, err := svc.CreateCart(ctx, 7)
	if err != nil {
		t.Fatalf("CreateCart: %v", err)
	}
	cartID := created.Cart.ID

	if _, err := svc.CreateCart(ctx, 999); err == nil {
		t.Error("expected error for unknown customer")
	}

	if _, err := svc.SetCartLine(ctx, app.SetCartLineRequest{CartID: cartID, ProductID: 1, Quantity: dec("10")}); err != nil {
		t.Fatalf("SetCartLine: %v", err)
	}
	if _, err := svc.SetCartLine(ctx, app.SetCartLineRequest{CartID: cartID, ProductID: 42, Quantity: dec("1")}); err == nil {
		t.Error("expected error for product not in catalogue")
	}

	merged, err := svc.ReorderFromHistory(ctx, app.ReorderRequest{CartID: cartID})
	if err != nil {
		t.Fatalf("ReorderFromHistory: %v", err)
	}
	if !merged.Cart.Lines[0].Quantity.Equal(dec("15")) {
		t.Errorf("merged quantity = %s, want 15", merged.Cart.Lines[0].Quantity)
	}

	submitted, err := svc.SubmitCart(ctx, cartID)
	if err != nil {
		t.Fatalf("SubmitCart: %v", err)
	}
	if submitted.Cart.Status != core.CartSubmitted {
		t.Errorf("status = %s, want SUBMITTED", submitted.Cart.Status)
	}
	if submitted.Cart.OrderNumber != "ORD-2" {
		t.Errorf("order number = %q, want ORD-2", submitted.Cart.OrderNumber)
	}
	// 15 × 27.50 = 412.50 locally; server said 433.12; reconciliation keeps
	// the server figure and flags the adjustment.
	if !submitted.Cart.ConfirmedTotal.Equal(dec("433.12")) || !submitted.Cart.TotalsAdjusted {
		t.Errorf("reconciliation: total=%s adjusted=%v", submitted.Cart.ConfirmedTotal, submitted.Cart.TotalsAdjusted)
	}

	if len(api.submitted) != 1 || api.submitted[0].CustomerID != 7 {
		t.Fatalf("submitted drafts = %+v", api.submitted)
	}

	if _, err := svc.SubmitCart(ctx, cartID); err == nil {
		t.Error("expected error resubmitting a submitted cart")
	}
}

func TestReorderFromHistory_SpecificOrder(t *testing.T) {
	api := &fakeOrderAPI{
		customers: []core.Customer{{ID: 7, Name: "Sharma General Store"}},
		history: []orderapi.HistoricalOrder{
			{OrderNumber: "ORD-9", Lines: []core.CartLine{{ProductID: 2, ProductName: "Curd 400GM", Quantity: dec("3")}}},
			{OrderNumber: "ORD-8", Lines: []core.CartLine{{ProductID: 1, ProductName: "Toned Milk 500ML", Quantity: dec("6")}}},
		},
	}
	svc := newTestService(api)
	ctx := context.Background()

	created, err := svc.CreateCart(ctx, 7)
	if err != nil {
		t.Fatalf("CreateCart: %v", err)
	}

	result, err := svc.ReorderFromHistory(ctx, app.ReorderRequest{CartID: created.Cart.ID, OrderNumber: "ORD-8"})
	if err != nil {
		t.Fatalf("ReorderFromHistory: %v", err)
	}
	if len(result.Cart.Lines) != 1 || result.Cart.Lines[0].ProductID != 1 {
		t.Errorf("expected the ORD-8 milk line, got %+v", result.Cart.Lines)
	}

	if _, err := svc.ReorderFromHistory(ctx, app.ReorderRequest{CartID: created.Cart.ID, OrderNumber: "ORD-404"}); err == nil {
		t.Error("expected error for unknown order number")
	}
}

func TestGenerateBrandWiseReport_FetchFailure(t *testing.T) {
	api := &fakeOrderAPI{fetchErr: fmt.Errorf("connection refused")}
	svc := newTestService(api)
	if _, err := svc.GenerateBrandWiseReport(context.Background(), app.BrandWiseReportRequest{
		FromDate: "2026-08-01", ToDate: "2026-08-31",
	}); err == nil {
		t.Fatal("expected fetch error to surface")
	}
}
