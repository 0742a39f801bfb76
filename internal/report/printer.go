// Package report writes the console audit trail of an analysis run.
//
// The output depends only on the analysed data: it never contains timestamps,
// run identifiers or file paths, so two runs over the same input print the
// same bytes.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/paveg/salesinsight/internal/analysis"
	"github.com/paveg/salesinsight/internal/dataset"
)

const ruleWidth = 70

// Printer renders report sections to a writer. The first write error is kept
// and every later call becomes a no-op.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

// Report prints every section of r in order, followed by the footer.
func (p *Printer) Report(r *analysis.Report) error {
	p.Analysis(r)
	p.Complete()
	return p.err
}

// Analysis prints every section of r without the closing footer.
func (p *Printer) Analysis(r *analysis.Report) error {
	p.Banner()
	p.Quality(r.Quality)
	p.KPIs(r.KPIs)
	p.Products(r.Products, r.TopN)
	p.Regions(r.Regions)
	p.Temporal(r.Temporal)
	p.Insights(r.Segments)
	p.Recommendations(r.Recommendations)
	return p.err
}

// Banner prints the report title.
func (p *Printer) Banner() {
	p.rule()
	p.println("RETAIL SALES ANALYSIS - BUSINESS INTELLIGENCE REPORT")
	p.rule()
}

// Quality prints the load summary and the data quality check.
func (p *Printer) Quality(q dataset.Quality) {
	p.println("")
	p.println("Dataset loaded successfully!")
	p.printf("   Shape: %s rows x %d columns\n", analysis.Count(q.Rows), q.Columns)
	p.printf("   Date Range: %s to %s\n", q.MinDate.Format(time.DateOnly), q.MaxDate.Format(time.DateOnly))

	p.section("DATA QUALITY CHECK")
	if missing := q.MissingColumns(); len(missing) > 0 {
		p.println("")
		p.println("Missing values found:")
		p.table(func(tw io.Writer) {
			for _, m := range missing {
				fmt.Fprintf(tw, "   %s\t%d\n", m.Column, m.Count)
			}
		})
	} else {
		p.println("")
		p.println("No missing values detected")
	}
	p.printf("Duplicates: %d records\n", q.Duplicates)
}

// KPIs prints the headline indicators.
func (p *Printer) KPIs(k analysis.KPIs) {
	p.section("KEY PERFORMANCE INDICATORS (KPIs)")
	p.println("")
	p.printf("Total Revenue: %s\n", analysis.Money(k.TotalRevenue))
	p.printf("Total Orders: %s\n", analysis.Count(k.TotalOrders))
	p.printf("Average Order Value: %s\n", analysis.MoneyRatio(k.AvgOrderValue))
	p.printf("Total Units Sold: %s\n", analysis.Count(k.TotalUnits))
	p.printf("Average Units per Order: %s\n", k.AvgUnitsPerOrder.Format("%.2f"))
	p.printf("Unique Products: %d\n", k.UniqueProducts)
	p.printf("Average Unit Price: %s\n", k.AvgUnitPrice.Format("$%.2f"))
	p.printf("Revenue per Unit: %s\n", k.RevenuePerUnit.Format("$%.2f"))
}

// Products prints the top n products by revenue.
func (p *Printer) Products(v *analysis.ProductView, n int) {
	p.section("TOP PRODUCTS ANALYSIS")
	p.println("")
	p.printf("Top %d Products by Revenue:\n", n)
	p.table(func(tw io.Writer) {
		fmt.Fprintln(tw, "Product\tRevenue\tUnits\tOrders")
		for _, r := range v.Top(n) {
			fmt.Fprintf(tw, "%s\t%.2f\t%d\t%d\n", r.Product, r.Revenue, r.Units, r.Orders)
		}
	})
}

// Regions prints the regional performance table.
func (p *Printer) Regions(v *analysis.RegionView) {
	p.section("REGIONAL PERFORMANCE ANALYSIS")
	p.println("")
	p.println("Regional Performance Metrics:")
	p.table(func(tw io.Writer) {
		fmt.Fprintln(tw, "Region\tRevenue\tOrders\tUnits\tAOV\tMarket_Share")
		for _, r := range v.Ranked() {
			fmt.Fprintf(tw, "%s\t%.2f\t%d\t%d\t%s\t%s\n",
				r.Region, r.Revenue, r.Orders, r.Units, r.AOV.Format("%.2f"), r.MarketShare.Format("%.2f"))
		}
	})
}

// Temporal prints the trailing twelve months and the quarterly table.
func (p *Printer) Temporal(v *analysis.TemporalView) {
	p.section("SEASONALITY & TRENDS ANALYSIS")
	p.println("")
	p.println("Monthly Revenue Trends (Last 12 Months):")
	p.table(func(tw io.Writer) {
		fmt.Fprintln(tw, "Year\tMonth\tRevenue\tOrders")
		for _, m := range v.LastMonths(12) {
			fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\n", m.Year, m.MonthName, m.Revenue, m.Orders)
		}
	})

	p.println("")
	p.println("Quarterly Performance:")
	p.table(func(tw io.Writer) {
		fmt.Fprintln(tw, "Year\tQuarter\tRevenue\tOrders")
		for _, q := range v.Quarterly() {
			fmt.Fprintf(tw, "%d\tQ%d\t%.2f\t%d\n", q.Year, q.Quarter, q.Revenue, q.Orders)
		}
	})

	peak, trough := "undefined", "undefined"
	if m, err := v.Peak(); err == nil {
		peak = m.Name
	}
	if m, err := v.Trough(); err == nil {
		trough = m.Name
	}
	p.println("")
	p.printf("Peak month: %s, lowest month: %s\n", peak, trough)
}

// Insights prints the segment, channel and category breakdowns.
func (p *Printer) Insights(v *analysis.SegmentView) {
	p.section("ADDITIONAL BUSINESS INSIGHTS")

	revenueTable := func(title, column string, rows []analysis.RevenueRow) {
		p.println("")
		p.println(title)
		p.table(func(tw io.Writer) {
			fmt.Fprintf(tw, "%s\tRevenue\n", column)
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%.2f\n", r.Key, r.Revenue)
			}
		})
	}
	revenueTable("Revenue by Customer Segment:", "Customer_Segment", v.Segments())
	revenueTable("Revenue by Sales Channel:", "Sales_Channel", v.Channels())

	p.println("")
	p.println("Category Performance:")
	p.table(func(tw io.Writer) {
		fmt.Fprintln(tw, "Category\tRevenue\tOrders\tUnits")
		for _, c := range v.Categories() {
			fmt.Fprintf(tw, "%s\t%.2f\t%d\t%d\n", c.Category, c.Revenue, c.Orders, c.Units)
		}
	})
}

// Recommendations prints the strategic recommendations.
func (p *Printer) Recommendations(recs []string) {
	p.section("BUSINESS RECOMMENDATIONS")
	p.println("")
	p.println("Strategic Recommendations:")
	p.println("")
	for _, rec := range recs {
		p.println(rec)
		p.println("")
	}
}

// Complete prints the closing footer.
func (p *Printer) Complete() {
	p.section("ANALYSIS COMPLETE!")
	p.println("")
	p.println("Check the visualizations and outputs folders for results!")
	p.println("")
	p.rule()
}

func (p *Printer) section(title string) {
	p.println("")
	p.rule()
	p.println(title)
	p.rule()
}

func (p *Printer) rule() {
	p.println(strings.Repeat("=", ruleWidth))
}

func (p *Printer) table(rows func(tw io.Writer)) {
	if p.err != nil {
		return
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	rows(tw)
	p.err = tw.Flush()
}

func (p *Printer) println(s string) {
	p.printf("%s\n", s)
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
