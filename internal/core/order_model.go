package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is master data served by the remote order service. Credit limit
// and outstanding balance are informational here; enforcement happens
// server-side at submission.
type Customer struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	RouteName   string          `json:"route_name,omitempty"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// Product is a catalogue entry from the remote order service. UnitPrice is
// the list price used for local estimates; the server recomputes pricing
// (including GST) at submission.
type Product struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand,omitempty"`
	Category  string          `json:"category,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CartStatus is the lifecycle state of a locally held cart.
type CartStatus string

const (
	CartOpen      CartStatus = "OPEN"
	CartSubmitted CartStatus = "SUBMITTED"
)

// CartLine is one product in a cart. LineTotal is a local estimate from the
// catalogue unit price.
type CartLine struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderConfirmation is the remote service's response to a submitted order:
// the authoritative order number and total after server-side pricing, GST,
// and credit checks.
type OrderConfirmation struct {
	OrderNumber string          `json:"order_number"`
	OrderTotal  decimal.Decimal `json:"order_total"`
	SubmittedAt time.Time       `json:"submitted_at"`
}
