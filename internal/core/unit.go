package core

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// unitPattern captures the first number-plus-unit token in a product name,
// e.g. "Toned Milk 500ML" or "Paneer 200 GM". The match is unanchored and
// first-match-only: "2x500ML Pack of 6" captures 500ML (the leading 2 is
// not directly followed by a unit token), and a stray code preceding a
// unit-like substring can misparse. Both are inherited from the upstream
// catalogue conventions and left as-is.
var unitPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(ML|LTR|KG|GRMS|GM|G)`)

// ParseUnit extracts the packaging quantity and canonical unit from a
// product name. A name with no recognizable unit token parses as one count
// unit; that fallback is normal, not an error.
func ParseUnit(productName string) ParsedUnit {
	m := unitPattern.FindStringSubmatch(productName)
	if m == nil {
		return ParsedUnit{Quantity: decimal.NewFromInt(1), Unit: UnitCount}
	}
	qty, err := decimal.NewFromString(m[1])
	if err != nil {
		return ParsedUnit{Quantity: decimal.NewFromInt(1), Unit: UnitCount}
	}
	return ParsedUnit{Quantity: qty, Unit: normalizeUnit(m[2])}
}

// normalizeUnit maps a raw matched unit token to its canonical unit.
func normalizeUnit(raw string) CanonicalUnit {
	switch strings.ToLower(raw) {
	case "grms", "g", "gm":
		return UnitGram
	case "ltr":
		return UnitLiter
	case "kg":
		return UnitKilogram
	case "ml":
		return UnitMilliliter
	default:
		return UnitCount
	}
}

var thousand = decimal.NewFromInt(1000)

// BaseUnitQuantity converts a parsed packaging size and an ordered line
// quantity into the base measure: liters for volume units, kilograms for
// weight units, the raw line count for unit-type products.
func BaseUnitQuantity(p ParsedUnit, lineQuantity decimal.Decimal) decimal.Decimal {
	switch p.Unit {
	case UnitMilliliter, UnitGram:
		return p.Quantity.Mul(lineQuantity).Div(thousand)
	case UnitLiter, UnitKilogram:
		return p.Quantity.Mul(lineQuantity)
	default:
		return lineQuantity
	}
}

var crateDivisor = decimal.NewFromInt(unitsPerCrate)

// CratesFor derives the crate count for one line's base-unit quantity.
// Crates are floored per line, before consolidation: two half-crate lines of
// the same product stay at zero crates rather than combining into one.
func CratesFor(baseUnitQuantity decimal.Decimal) decimal.Decimal {
	return baseUnitQuantity.Div(crateDivisor).Floor()
}
