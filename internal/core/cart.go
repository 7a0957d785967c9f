package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is an order being built on behalf of one customer. It is purely
// local state: every total on it is an estimate from catalogue prices until
// ApplyConfirmation replaces the estimate with the server-confirmed figure.
//
// Line identity keys on product ID and insertion order is preserved, so the
// dashboard's row numbering stays stable while quantities change.
type Cart struct {
	ID             string          `json:"id"`
	CustomerID     int             `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	Status         CartStatus      `json:"status"`
	Lines          []CartLine      `json:"lines"`
	EstimatedTotal decimal.Decimal `json:"estimated_total"`

	// Populated by ApplyConfirmation after submission.
	OrderNumber    string          `json:"order_number,omitempty"`
	ConfirmedTotal decimal.Decimal `json:"confirmed_total"`
	TotalsAdjusted bool            `json:"totals_adjusted"`

	CreatedAt time.Time `json:"created_at"`

	index map[int]int // product ID → position in Lines
}

// NewCart opens an empty cart for the given customer.
func NewCart(customer Customer) *Cart {
	return &Cart{
		ID:           uuid.NewString(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Status:       CartOpen,
		CreatedAt:    time.Now(),
		index:        make(map[int]int),
	}
}

// SetLine sets the quantity for a product, appending a new line for a
// product not yet in the cart and removing the line when quantity is zero.
func (c *Cart) SetLine(product Product, quantity decimal.Decimal) error {
	if c.Status != CartOpen {
		return fmt.Errorf("cart %s is %s and can no longer be edited", c.ID, c.Status)
	}
	if quantity.IsNegative() {
		return fmt.Errorf("quantity for %s must not be negative", product.Name)
	}

	if quantity.IsZero() {
		c.removeLine(product.ID)
		c.recalculate()
		return nil
	}

	if i, ok := c.index[product.ID]; ok {
		c.Lines[i].Quantity = quantity
		c.Lines[i].UnitPrice = product.UnitPrice
	} else {
		c.index[product.ID] = len(c.Lines)
		c.Lines = append(c.Lines, CartLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.UnitPrice,
			Quantity:    quantity,
		})
	}
	c.recalculate()
	return nil
}

// MergeReorder folds a historical order's lines into the cart: products
// already in the cart accumulate the historical quantity, products the cart
// has not seen are appended in the historical line order. Prices always come
// from the current line being merged, not the historical one, when the cart
// already carries the product.
func (c *Cart) MergeReorder(history []CartLine) error {
	if c.Status != CartOpen {
		return fmt.Errorf("cart %s is %s and can no longer be edited", c.ID, c.Status)
	}

	for _, h := range history {
		if i, ok := c.index[h.ProductID]; ok {
			c.Lines[i].Quantity = c.Lines[i].Quantity.Add(h.Quantity)
			continue
		}
		c.index[h.ProductID] = len(c.Lines)
		c.Lines = append(c.Lines, CartLine{
			ProductID:   h.ProductID,
			ProductName: h.ProductName,
			UnitPrice:   h.UnitPrice,
			Quantity:    h.Quantity,
		})
	}
	c.recalculate()
	return nil
}

// ApplyConfirmation reconciles the cart with the server's response to a
// submitted order. The confirmed total always wins; TotalsAdjusted records
// whether the local estimate disagreed so the dashboard can surface it.
func (c *Cart) ApplyConfirmation(conf OrderConfirmation) error {
	if c.Status != CartOpen {
		return fmt.Errorf("cart %s already submitted as order %s", c.ID, c.OrderNumber)
	}
	if len(c.Lines) == 0 {
		return fmt.Errorf("cart %s has no lines to confirm", c.ID)
	}

	c.Status = CartSubmitted
	c.OrderNumber = conf.OrderNumber
	c.ConfirmedTotal = conf.OrderTotal
	c.TotalsAdjusted = !conf.OrderTotal.Equal(c.EstimatedTotal)
	return nil
}

func (c *Cart) removeLine(productID int) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.Lines); j++ {
		c.index[c.Lines[j].ProductID] = j
	}
}

func (c *Cart) recalculate() {
	total := decimal.Zero
	for i := range c.Lines {
		c.Lines[i].LineTotal = c.Lines[i].UnitPrice.Mul(c.Lines[i].Quantity)
		total = total.Add(c.Lines[i].LineTotal)
	}
	c.EstimatedTotal = total
}
