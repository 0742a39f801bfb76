package io

import (
	"encoding/json"
	"io"
	"time"

	"github.com/paveg/salesinsight/internal/analysis"
	"github.com/paveg/salesinsight/internal/dataset"
)

// JSONFile is the analysis document written into the output directory.
const JSONFile = "sales_analysis.json"

// JSONWriter writes the full analysis as one indented JSON document.
// Undefined ratios and absent months are encoded as null.
type JSONWriter struct {
	Indent string
}

// NewJSONWriter returns a JSONWriter indenting with two spaces.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{Indent: "  "}
}

type qualityDocument struct {
	Rows       int            `json:"rows"`
	Columns    int            `json:"columns"`
	MinDate    string         `json:"min_date"`
	MaxDate    string         `json:"max_date"`
	Missing    map[string]int `json:"missing"`
	Duplicates int            `json:"duplicates"`
}

type kpiDocument struct {
	TotalRevenue     float64        `json:"total_revenue"`
	TotalOrders      int            `json:"total_orders"`
	AvgOrderValue    analysis.Ratio `json:"avg_order_value"`
	TotalUnits       int64          `json:"total_units"`
	AvgUnitsPerOrder analysis.Ratio `json:"avg_units_per_order"`
	UniqueProducts   int            `json:"unique_products"`
	AvgUnitPrice     analysis.Ratio `json:"avg_unit_price"`
	RevenuePerUnit   analysis.Ratio `json:"revenue_per_unit"`
}

type dailyDocument struct {
	Date   string `json:"date"`
	Orders int    `json:"orders"`
}

type reportDocument struct {
	Quality         qualityDocument        `json:"quality"`
	KPIs            kpiDocument            `json:"kpis"`
	Products        []analysis.ProductRow  `json:"products"`
	Regions         []analysis.RegionRow   `json:"regions"`
	Monthly         []analysis.MonthRow    `json:"monthly"`
	Quarterly       []analysis.QuarterRow  `json:"quarterly"`
	Seasonality     []analysis.MonthMean   `json:"seasonality"`
	Daily           []dailyDocument        `json:"daily"`
	Segments        []analysis.RevenueRow  `json:"segments"`
	Channels        []analysis.RevenueRow  `json:"channels"`
	Categories      []analysis.CategoryRow `json:"categories"`
	Recommendations []string               `json:"recommendations"`
}

func newQualityDocument(q dataset.Quality) qualityDocument {
	doc := qualityDocument{
		Rows:       q.Rows,
		Columns:    q.Columns,
		MinDate:    q.MinDate.Format(time.DateOnly),
		MaxDate:    q.MaxDate.Format(time.DateOnly),
		Missing:    make(map[string]int, len(q.Missing)),
		Duplicates: q.Duplicates,
	}
	for _, m := range q.Missing {
		doc.Missing[m.Column] = m.Count
	}
	return doc
}

// WriteReport implements ReportWriter.
func (w *JSONWriter) WriteReport(dst io.Writer, report *analysis.Report) error {
	k := report.KPIs
	season := report.Temporal.Seasonality()
	doc := reportDocument{
		Quality: newQualityDocument(report.Quality),
		KPIs: kpiDocument{
			TotalRevenue:     k.TotalRevenue,
			TotalOrders:      k.TotalOrders,
			AvgOrderValue:    k.AvgOrderValue,
			TotalUnits:       k.TotalUnits,
			AvgUnitsPerOrder: k.AvgUnitsPerOrder,
			UniqueProducts:   k.UniqueProducts,
			AvgUnitPrice:     k.AvgUnitPrice,
			RevenuePerUnit:   k.RevenuePerUnit,
		},
		Products:        report.Products.Ranked(),
		Regions:         report.Regions.Ranked(),
		Monthly:         report.Temporal.Monthly(),
		Quarterly:       report.Temporal.Quarterly(),
		Seasonality:     season[:],
		Segments:        report.Segments.Segments(),
		Channels:        report.Segments.Channels(),
		Categories:      report.Segments.Categories(),
		Recommendations: report.Recommendations,
	}
	for _, d := range report.Temporal.Daily() {
		doc.Daily = append(doc.Daily, dailyDocument{Date: d.Date.Format(time.DateOnly), Orders: d.Orders})
	}

	enc := json.NewEncoder(dst)
	enc.SetIndent("", w.Indent)
	return enc.Encode(doc)
}
