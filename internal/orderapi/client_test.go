package orderapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dairydesk/internal/orderapi"

	"github.com/shopspring/decimal"
)

func TestClient_FetchOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("path = %q, want /orders", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("from") != "2026-08-01" || q.Get("to") != "2026-08-31" {
			t.Errorf("date params = %q..%q", q.Get("from"), q.Get("to"))
		}
		if q.Get("brand") != "Nandini" {
			t.Errorf("brand = %q, want Nandini", q.Get("brand"))
		}
		// One order uses product_name, the other the legacy name key.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"products": [{"product_name": "Toned Milk 500ML", "quantity": 24, "category": "Milk"}]},
			{"products": [{"name": "Curd 400GM", "quantity": 6, "brand": "Nandini"}]}
		]`))
	}))
	defer srv.Close()

	client := orderapi.NewClient(srv.URL, time.Second)
	orders, err := client.FetchOrders(context.Background(), orderapi.OrdersQuery{
		FromDate: "2026-08-01", ToDate: "2026-08-31", Brand: "Nandini",
	})
	if err != nil {
		t.Fatalf("FetchOrders: %v", err)
	}

	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if got := orders[0].Products[0].ProductName; got != "Toned Milk 500ML" {
		t.Errorf("product_name key: got %q", got)
	}
	if got := orders[1].Products[0].ProductName; got != "Curd 400GM" {
		t.Errorf("legacy name key: got %q", got)
	}
	if !orders[0].Products[0].Quantity.Equal(decimal.NewFromInt(24)) {
		t.Errorf("quantity = %s, want 24", orders[0].Products[0].Quantity)
	}
}

func TestClient_FetchOrders_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream database unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := orderapi.NewClient(srv.URL, time.Second)
	if _, err := client.FetchOrders(context.Background(), orderapi.OrdersQuery{}); err == nil {
		t.Fatal("expected error from non-200 response")
	}
}

func TestClient_FetchOrders_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := orderapi.NewClient(srv.URL, time.Second)
	if _, err := client.FetchOrders(ctx, orderapi.OrdersQuery{}); err == nil {
		t.Fatal("expected context deadline error")
	}
}

func TestClient_SubmitOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var draft orderapi.OrderDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Fatalf("decode draft: %v", err)
		}
		if draft.CustomerID != 7 || len(draft.Lines) != 1 {
			t.Errorf("draft = %+v", draft)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"order_number": "ORD-2026-00042", "order_total": "288.75"}`))
	}))
	defer srv.Close()

	client := orderapi.NewClient(srv.URL, time.Second)
	conf, err := client.SubmitOrder(context.Background(), orderapi.OrderDraft{
		CustomerID: 7,
		Lines:      []orderapi.DraftLine{{ProductID: 1, Quantity: decimal.NewFromInt(10)}},
	})
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if conf.OrderNumber != "ORD-2026-00042" {
		t.Errorf("order number = %q", conf.OrderNumber)
	}
	want, _ := decimal.NewFromString("288.75")
	if !conf.OrderTotal.Equal(want) {
		t.Errorf("order total = %s, want 288.75", conf.OrderTotal)
	}
}

func TestClient_FetchOrderHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customers/7/orders" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "3" {
			t.Errorf("limit = %q, want 3", r.URL.Query().Get("limit"))
		}
		_, _ = w.Write([]byte(`[{"order_number": "ORD-1", "order_date": "2026-08-20",
			"lines": [{"product_id": 1, "product_name": "Toned Milk 500ML", "unit_price": "27.50", "quantity": 10}]}]`))
	}))
	defer srv.Close()

	client := orderapi.NewClient(srv.URL, time.Second)
	history, err := client.FetchOrderHistory(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("FetchOrderHistory: %v", err)
	}
	if len(history) != 1 || len(history[0].Lines) != 1 {
		t.Fatalf("history = %+v", history)
	}
	if history[0].Lines[0].ProductID != 1 {
		t.Errorf("line product = %d, want 1", history[0].Lines[0].ProductID)
	}
}
