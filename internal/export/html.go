package export

import (
	"fmt"
	"html/template"
	"io"

	"dairydesk/internal/core"
)

// reportTable is the dashboard's report fragment: one row per consolidated
// product in first-appearance order, then the three totals rows.
var reportTable = template.Must(template.New("reportTable").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<div class="brandwise-report">
<p class="report-meta">Period {{.Meta.FromDate}} to {{.Meta.ToDate}} &middot; Orders: {{.Meta.OrderCount}}</p>
{{if not .Report.Products}}<p class="report-empty">No products found for the selected period.</p>{{else}}
<table class="report-table">
<thead><tr><th>#</th><th>Product</th><th>Category</th><th>Brand</th><th>Qty</th><th>Base Qty</th><th>Crates</th><th>Packets</th></tr></thead>
<tbody>
{{range $i, $p := .Report.Products}}<tr><td>{{inc $i}}</td><td>{{$p.Name}}</td><td>{{$p.Category}}</td><td>{{$p.Brand}}</td><td>{{$p.TotalQuantity}}</td><td>{{$p.TotalBaseUnitQuantity}}</td><td>{{$p.TotalCrates}}</td><td>{{$p.TotalPackets}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr class="totals"><td colspan="5">Milk Total</td><td>{{.Report.Milk.Liters}}</td><td>{{.Report.Milk.Crates}}</td><td>{{.Report.Milk.Packets}}</td></tr>
<tr class="totals"><td colspan="5">Curd Total</td><td>{{.Report.Curd.Liters}}</td><td>{{.Report.Curd.Crates}}</td><td>{{.Report.Curd.Packets}}</td></tr>
<tr class="totals"><td colspan="5">Grand Total</td><td>{{.Report.Grand.Liters}}</td><td>{{.Report.Grand.Crates}}</td><td>{{.Report.Grand.Packets}}</td></tr>
</tfoot>
</table>
{{end}}</div>
`))

type tableData struct {
	Meta   Meta
	Report *core.ProductReport
}

// WriteHTML writes the report as an HTML table fragment to w.
func WriteHTML(w io.Writer, meta Meta, report *core.ProductReport) error {
	if err := reportTable.Execute(w, tableData{Meta: meta, Report: report}); err != nil {
		return fmt.Errorf("render report table: %w", err)
	}
	return nil
}
