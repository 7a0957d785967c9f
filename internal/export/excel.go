// Package export renders a generated product report for download: an Excel
// workbook for the back office and an HTML table fragment for the dashboard.
// Both renderers only present; nothing here recomputes totals.
package export

import (
	"fmt"
	"io"
	"time"

	"dairydesk/internal/core"

	"github.com/xuri/excelize/v2"
)

// Meta is the report header common to both renderers.
type Meta struct {
	FromDate    string
	ToDate      string
	OrderType   string
	Brand       string
	OrderCount  int
	GeneratedAt time.Time
}

const sheetName = "Brand Wise Report"

// WriteExcel writes the report as an .xlsx workbook to w.
func WriteExcel(w io.Writer, meta Meta, report *core.ProductReport) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("workbook style: %w", err)
	}

	// Header block: filters and order count.
	setCell(f, 1, 1, "Brand Wise Consolidated Report")
	_ = f.SetCellStyle(sheetName, "A1", "A1", bold)
	setCell(f, 1, 2, fmt.Sprintf("Period: %s to %s", meta.FromDate, meta.ToDate))
	setCell(f, 1, 3, fmt.Sprintf("Order Type: %s    Brand: %s", orAll(meta.OrderType), orAll(meta.Brand)))
	setCell(f, 1, 4, fmt.Sprintf("Orders: %d    Generated: %s", meta.OrderCount, meta.GeneratedAt.Format("2006-01-02 15:04")))

	// Column headers.
	headers := []string{"#", "Product", "Category", "Brand", "Qty", "Base Qty (Ltr/Kg)", "Crates", "Packets"}
	const headerRow = 6
	for col, h := range headers {
		setCell(f, col+1, headerRow, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	_ = f.SetCellStyle(sheetName, first, last, bold)

	row := headerRow + 1
	for i, p := range report.Products {
		setCell(f, 1, row, i+1)
		setCell(f, 2, row, p.Name)
		setCell(f, 3, row, p.Category)
		setCell(f, 4, row, p.Brand)
		setCell(f, 5, row, p.TotalQuantity.String())
		setCell(f, 6, row, p.TotalBaseUnitQuantity.String())
		setCell(f, 7, row, p.TotalCrates.String())
		setCell(f, 8, row, p.TotalPackets.String())
		row++
	}

	row++
	totals := []struct {
		label string
		t     core.CategoryTotals
	}{
		{"Milk Total", report.Milk},
		{"Curd Total", report.Curd},
		{"Grand Total", report.Grand},
	}
	for _, tr := range totals {
		setCell(f, 2, row, tr.label)
		setCell(f, 6, row, tr.t.Liters.String())
		setCell(f, 7, row, tr.t.Crates.String())
		setCell(f, 8, row, tr.t.Packets.String())
		cell, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellStyle(sheetName, cell, cell, bold)
		row++
	}

	_ = f.SetColWidth(sheetName, "B", "B", 32)
	_ = f.SetColWidth(sheetName, "C", "D", 16)
	_ = f.SetColWidth(sheetName, "E", "H", 14)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	_ = f.SetCellValue(sheetName, cell, value)
}

func orAll(s string) string {
	if s == "" {
		return "All"
	}
	return s
}
