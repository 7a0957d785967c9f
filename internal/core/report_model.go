package core

import "github.com/shopspring/decimal"

// CanonicalUnit is the unit a product's packaging size is expressed in after
// normalization. Volume products aggregate in liters, weight products in
// kilograms; products with no recognizable unit aggregate as raw counts.
type CanonicalUnit string

const (
	UnitMilliliter CanonicalUnit = "ml"
	UnitGram       CanonicalUnit = "gm"
	UnitLiter      CanonicalUnit = "ltr"
	UnitKilogram   CanonicalUnit = "kg"
	UnitCount      CanonicalUnit = "unit"
)

// unitsPerCrate is the business constant for crate math: one crate holds 12
// base-unit quantities (liters or kilograms). There is no configuration
// surface for this; loading plans across the fleet assume it.
const unitsPerCrate = 12

// OrderLine is one product line inside one order as delivered by the remote
// order-query service. ProductName is the sole consolidation key.
type OrderLine struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
}

// Order is one order's product lines. Header fields (customer, totals,
// status) belong to the remote service and are not needed by the report.
type Order struct {
	Products []OrderLine `json:"products"`
}

// ParsedUnit is the quantity/unit pair extracted from a product name.
// When no unit pattern matches, Quantity is 1 and Unit is UnitCount.
type ParsedUnit struct {
	Quantity decimal.Decimal
	Unit     CanonicalUnit
}

// ConsolidatedProduct is the running total for one distinct product name
// across every order in the report window.
//
// Category and Brand come from the first line seen for the name and are never
// revisited: two lines sharing a name but disagreeing on category silently
// keep the first one. That is upstream data quality, not something the
// report corrects.
type ConsolidatedProduct struct {
	Name                  string          `json:"name"`
	Category              string          `json:"category"`
	Brand                 string          `json:"brand"`
	TotalQuantity         decimal.Decimal `json:"total_quantity"`
	TotalBaseUnitQuantity decimal.Decimal `json:"total_base_unit_quantity"`
	TotalCrates           decimal.Decimal `json:"total_crates"`
	TotalPackets          decimal.Decimal `json:"total_packets"`
}

// CategoryTotals sums crates, base-unit quantity, and packets over a bucket
// of consolidated products. The base-unit field is labeled Liters because
// that is what the dashboard prints, even when weight-denominated products
// contribute kilograms to it. The two are summed without reconciliation.
type CategoryTotals struct {
	Crates  decimal.Decimal `json:"crates"`
	Liters  decimal.Decimal `json:"liters"`
	Packets decimal.Decimal `json:"packets"`
}

// ProductReport is the consolidated brand-wise report: every distinct
// product in first-appearance order, milk and curd bucket totals, and the
// grand total over the whole product list.
//
// A product whose name or category mentions both milk and curd is counted in
// both buckets; the grand total counts it exactly once.
type ProductReport struct {
	Products   []ConsolidatedProduct `json:"products"`
	Milk       CategoryTotals        `json:"milk_totals"`
	Curd       CategoryTotals        `json:"curd_totals"`
	Grand      CategoryTotals        `json:"grand_totals"`
	OrderCount int                   `json:"order_count"`
}
