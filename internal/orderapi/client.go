// Package orderapi is the client for the remote order-query service: the
// opaque REST API that owns orders, customers, products, pricing, GST, and
// credit checks. DairyDesk only reads from it and submits drafts to it.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dairydesk/internal/core"

	"github.com/shopspring/decimal"
)

// Client talks to the remote order service. It performs no retries: a failed
// fetch surfaces to the caller, who reports it and renders an empty report.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL (no trailing slash
// required). A zero timeout falls back to 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// OrdersQuery selects the orders feeding a report: a date range plus
// optional order-type and brand filters. Dates are YYYY-MM-DD.
type OrdersQuery struct {
	FromDate  string
	ToDate    string
	OrderType string
	Brand     string
}

// wireLine tolerates both field spellings the service emits for the product
// name: older endpoints send "name", newer ones "product_name".
type wireLine struct {
	ProductName string          `json:"product_name"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
}

type wireOrder struct {
	Products []wireLine `json:"products"`
}

// FetchOrders returns the raw orders matching the query, shaped for the
// report builder.
func (c *Client) FetchOrders(ctx context.Context, q OrdersQuery) ([]core.Order, error) {
	params := url.Values{}
	params.Set("from", q.FromDate)
	params.Set("to", q.ToDate)
	if q.OrderType != "" {
		params.Set("order_type", q.OrderType)
	}
	if q.Brand != "" {
		params.Set("brand", q.Brand)
	}

	var raw []wireOrder
	if err := c.get(ctx, "/orders?"+params.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	orders := make([]core.Order, 0, len(raw))
	for _, wo := range raw {
		var o core.Order
		for _, wl := range wo.Products {
			name := wl.ProductName
			if name == "" {
				name = wl.Name
			}
			o.Products = append(o.Products, core.OrderLine{
				ProductName: name,
				Quantity:    wl.Quantity,
				Category:    wl.Category,
				Brand:       wl.Brand,
			})
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// FetchCustomers returns the customer master list.
func (c *Client) FetchCustomers(ctx context.Context) ([]core.Customer, error) {
	var customers []core.Customer
	if err := c.get(ctx, "/customers", &customers); err != nil {
		return nil, fmt.Errorf("fetch customers: %w", err)
	}
	return customers, nil
}

// FetchProducts returns the product catalogue.
func (c *Client) FetchProducts(ctx context.Context) ([]core.Product, error) {
	var products []core.Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

// HistoricalOrder is a past order of one customer, shaped for the
// reorder-from-history merge.
type HistoricalOrder struct {
	OrderNumber string          `json:"order_number"`
	OrderDate   string          `json:"order_date"`
	Lines       []core.CartLine `json:"lines"`
}

// FetchOrderHistory returns the customer's most recent orders, newest first.
func (c *Client) FetchOrderHistory(ctx context.Context, customerID, limit int) ([]HistoricalOrder, error) {
	if limit <= 0 {
		limit = 5
	}
	var history []HistoricalOrder
	path := "/customers/" + strconv.Itoa(customerID) + "/orders?limit=" + strconv.Itoa(limit)
	if err := c.get(ctx, path, &history); err != nil {
		return nil, fmt.Errorf("fetch order history for customer %d: %w", customerID, err)
	}
	return history, nil
}

// OrderDraft is the submission payload: the server reprices every line, so
// only product identities and quantities travel.
type OrderDraft struct {
	CustomerID int         `json:"customer_id"`
	OrderType  string      `json:"order_type,omitempty"`
	Lines      []DraftLine `json:"lines"`
}

type DraftLine struct {
	ProductID int             `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// SubmitOrder posts a draft and returns the server-confirmed order number
// and total.
func (c *Client) SubmitOrder(ctx context.Context, draft OrderDraft) (*core.OrderConfirmation, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode order draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("submit order: %s", responseError(resp))
	}

	var conf core.OrderConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		return nil, fmt.Errorf("decode order confirmation: %w", err)
	}
	return &conf, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s", responseError(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// responseError summarizes a non-2xx response, keeping at most a short
// prefix of the body for the log line.
func responseError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Sprintf("remote service returned %s", resp.Status)
	}
	return fmt.Sprintf("remote service returned %s: %s", resp.Status, msg)
}
