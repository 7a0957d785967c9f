package core_test

import (
	"testing"

	"dairydesk/internal/core"

	"github.com/shopspring/decimal"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		wantQty  string
		wantUnit core.CanonicalUnit
	}{
		{"volume ml", "Toned Milk 500ML", "500", core.UnitMilliliter},
		{"weight gm", "Paneer 200GM", "200", core.UnitGram},
		{"weight grms", "Ghee 250 GRMS", "250", core.UnitGram},
		{"weight bare g", "Butter 100G", "100", core.UnitGram},
		{"liter", "Full Cream Milk 1LTR", "1", core.UnitLiter},
		{"kilogram", "Curd 5KG Bucket", "5", core.UnitKilogram},
		{"decimal size", "Cream 1.5LTR", "1.5", core.UnitLiter},
		{"whitespace before unit", "Lassi 200 ml", "200", core.UnitMilliliter},
		{"no unit token", "Generic Item", "1", core.UnitCount},
		{"number without unit", "Bread 400", "1", core.UnitCount},
		// Only the first number-plus-unit token counts; the trailing
		// "Pack of 6" never contributes.
		{"first match wins", "2x500ML Pack of 6", "500", core.UnitMilliliter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ParseUnit(tt.product)
			want, _ := decimal.NewFromString(tt.wantQty)
			if !got.Quantity.Equal(want) {
				t.Errorf("ParseUnit(%q) quantity = %s, want %s", tt.product, got.Quantity, want)
			}
			if got.Unit != tt.wantUnit {
				t.Errorf("ParseUnit(%q) unit = %s, want %s", tt.product, got.Unit, tt.wantUnit)
			}
		})
	}
}

func TestBaseUnitQuantity(t *testing.T) {
	tests := []struct {
		name    string
		parsed  core.ParsedUnit
		lineQty int64
		want    string
	}{
		{"ml to liters", core.ParsedUnit{Quantity: decimal.NewFromInt(500), Unit: core.UnitMilliliter}, 12, "6"},
		{"gm to kilograms", core.ParsedUnit{Quantity: decimal.NewFromInt(200), Unit: core.UnitGram}, 5, "1"},
		{"liters pass through", core.ParsedUnit{Quantity: decimal.NewFromInt(1), Unit: core.UnitLiter}, 7, "7"},
		{"kg pass through", core.ParsedUnit{Quantity: decimal.NewFromInt(5), Unit: core.UnitKilogram}, 2, "10"},
		{"count ignores parsed size", core.ParsedUnit{Quantity: decimal.NewFromInt(1), Unit: core.UnitCount}, 9, "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.BaseUnitQuantity(tt.parsed, decimal.NewFromInt(tt.lineQty))
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("BaseUnitQuantity = %s, want %s", got, want)
			}
		})
	}
}

func TestCratesFor(t *testing.T) {
	tests := []struct {
		base string
		want int64
	}{
		{"6", 0},
		{"11.99", 0},
		{"12", 1},
		{"25", 2},
		{"0", 0},
	}

	for _, tt := range tests {
		base, _ := decimal.NewFromString(tt.base)
		if got := core.CratesFor(base); !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("CratesFor(%s) = %s, want %d", tt.base, got, tt.want)
		}
	}
}
