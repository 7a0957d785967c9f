package core

import "strings"

// BuildProductReport consolidates every product line across the given orders
// into the brand-wise report.
//
// Consolidation keys on the exact product name (case-sensitive, untrimmed)
// and preserves first-appearance order so display row numbers stay stable.
// An empty order list (or orders whose lines all fail to parse) produces an
// empty product list with zero totals; callers treat that as a normal
// "no products" outcome.
func BuildProductReport(orders []Order) *ProductReport {
	report := &ProductReport{OrderCount: len(orders)}
	index := make(map[string]int)

	for _, order := range orders {
		for _, line := range order.Products {
			parsed := ParseUnit(line.ProductName)
			base := BaseUnitQuantity(parsed, line.Quantity)
			crates := CratesFor(base)

			i, ok := index[line.ProductName]
			if !ok {
				report.Products = append(report.Products, ConsolidatedProduct{
					Name:     line.ProductName,
					Category: orUnknown(line.Category),
					Brand:    orUnknown(line.Brand),
				})
				i = len(report.Products) - 1
				index[line.ProductName] = i
			}

			p := &report.Products[i]
			p.TotalQuantity = p.TotalQuantity.Add(line.Quantity)
			p.TotalBaseUnitQuantity = p.TotalBaseUnitQuantity.Add(base)
			p.TotalCrates = p.TotalCrates.Add(crates)
			p.TotalPackets = p.TotalPackets.Add(line.Quantity)
		}
	}

	for _, p := range report.Products {
		report.Grand = report.Grand.add(p)
		if matchesBucket(p, "milk") {
			report.Milk = report.Milk.add(p)
		}
		if matchesBucket(p, "curd") {
			report.Curd = report.Curd.add(p)
		}
	}
	return report
}

// matchesBucket reports whether a product belongs to a category bucket:
// a case-insensitive substring match on category or name. A product can
// match both buckets and is then counted in both, which mirrors how the
// dashboard has always totaled combo products and is kept deliberately.
func matchesBucket(p ConsolidatedProduct, keyword string) bool {
	return strings.Contains(strings.ToLower(p.Category), keyword) ||
		strings.Contains(strings.ToLower(p.Name), keyword)
}

func (t CategoryTotals) add(p ConsolidatedProduct) CategoryTotals {
	return CategoryTotals{
		Crates:  t.Crates.Add(p.TotalCrates),
		Liters:  t.Liters.Add(p.TotalBaseUnitQuantity),
		Packets: t.Packets.Add(p.TotalPackets),
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
