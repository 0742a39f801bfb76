package io

import (
	"fmt"
	"io"

	"github.com/paveg/salesinsight/internal/analysis"
	"github.com/xuri/excelize/v2"
)

// XLSXFile is the spreadsheet export written into the output directory.
const XLSXFile = "sales_analysis.xlsx"

// Sheet names of the spreadsheet export, in workbook order.
var XLSXSheets = []string{
	"KPIs", "Products", "Regions", "Monthly", "Quarterly",
	"Seasonality", "Segments", "Channels", "Categories", "Recommendations",
}

// XLSXWriter writes one worksheet per analysis view. Undefined values are
// left as empty cells.
type XLSXWriter struct {
	ColumnWidth float64
}

// NewXLSXWriter returns an XLSXWriter with readable default column widths.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{ColumnWidth: 18}
}

type sheet struct {
	header []any
	rows   [][]any
}

func ratioCell(r analysis.Ratio) any {
	if !r.Defined() {
		return nil
	}
	return r.Value
}

func nullCell(n analysis.NullFloat) any {
	if !n.Valid {
		return nil
	}
	return n.Float64
}

func sheets(report *analysis.Report) map[string]sheet {
	out := make(map[string]sheet, len(XLSXSheets))

	kpis := sheet{header: []any{"KPI", "Value"}}
	for _, f := range report.KPIs.Fields() {
		var v any
		if f.Defined {
			v = f.Value
		}
		kpis.rows = append(kpis.rows, []any{f.Label, v})
	}
	out["KPIs"] = kpis

	products := sheet{header: []any{"Product", "Revenue", "Units", "Orders"}}
	for _, p := range report.Products.Ranked() {
		products.rows = append(products.rows, []any{p.Product, p.Revenue, p.Units, p.Orders})
	}
	out["Products"] = products

	regions := sheet{header: []any{"Region", "Revenue", "Orders", "Units", "AOV", "Market Share %"}}
	for _, r := range report.Regions.Ranked() {
		regions.rows = append(regions.rows, []any{r.Region, r.Revenue, r.Orders, r.Units, ratioCell(r.AOV), ratioCell(r.MarketShare)})
	}
	out["Regions"] = regions

	monthly := sheet{header: []any{"Year", "Month", "Month Name", "Revenue", "Orders"}}
	for _, m := range report.Temporal.Monthly() {
		monthly.rows = append(monthly.rows, []any{m.Year, int(m.Month), m.MonthName, m.Revenue, m.Orders})
	}
	out["Monthly"] = monthly

	quarterly := sheet{header: []any{"Year", "Quarter", "Revenue", "Orders"}}
	for _, q := range report.Temporal.Quarterly() {
		quarterly.rows = append(quarterly.rows, []any{q.Year, fmt.Sprintf("Q%d", q.Quarter), q.Revenue, q.Orders})
	}
	out["Quarterly"] = quarterly

	season := sheet{header: []any{"Month", "Mean Revenue", "Rows"}}
	for _, m := range report.Temporal.Seasonality() {
		season.rows = append(season.rows, []any{m.Name, nullCell(m.Mean), m.Rows})
	}
	out["Seasonality"] = season

	revenue := func(name string, rows []analysis.RevenueRow) sheet {
		s := sheet{header: []any{name, "Revenue"}}
		for _, r := range rows {
			s.rows = append(s.rows, []any{r.Key, r.Revenue})
		}
		return s
	}
	out["Segments"] = revenue("Customer Segment", report.Segments.Segments())
	out["Channels"] = revenue("Sales Channel", report.Segments.Channels())

	categories := sheet{header: []any{"Category", "Revenue", "Orders", "Units"}}
	for _, c := range report.Segments.Categories() {
		categories.rows = append(categories.rows, []any{c.Category, c.Revenue, c.Orders, c.Units})
	}
	out["Categories"] = categories

	recs := sheet{header: []any{"Recommendation"}}
	for _, r := range report.Recommendations {
		recs.rows = append(recs.rows, []any{r})
	}
	out["Recommendations"] = recs

	return out
}

// WriteReport implements ReportWriter.
func (w *XLSXWriter) WriteReport(dst io.Writer, report *analysis.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	data := sheets(report)
	for i, name := range XLSXSheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}

		s := data[name]
		if err := f.SetSheetRow(name, "A1", &s.header); err != nil {
			return fmt.Errorf("writing %s header: %w", name, err)
		}
		if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
			return fmt.Errorf("styling %s header: %w", name, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("writing %s row %d: %w", name, r+1, err)
			}
		}

		last, err := excelize.ColumnNumberToName(len(s.header))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, "A", last, w.ColumnWidth); err != nil {
			return fmt.Errorf("sizing %s columns: %w", name, err)
		}
	}

	if err := f.Write(dst); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
