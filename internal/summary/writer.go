// Package summary writes the one-page executive summary PDF.
package summary

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/paveg/salesinsight/internal/analysis"
)

// FileName is the summary file written into the output directory.
const FileName = "Sales_Analysis_Summary.pdf"

// Page geometry in points on a US Letter page.
const (
	pageWidth   = 612.0
	pageHeight  = 792.0
	marginLeft  = 50.0
	indent      = 60.0
	wrapColumns = 90

	bannerName = "kpi-banner"
)

// Writer renders the summary PDF into Dir.
type Writer struct {
	Dir string

	// Now stamps the generation date; it defaults to time.Now.
	Now func() time.Time
}

// NewWriter returns a Writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Now: time.Now}
}

// Write renders rep and returns the path of the PDF.
func (w *Writer) Write(rep *analysis.Report) (string, error) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	generated := now()

	banner, err := RenderBanner(rep.KPIs)
	if err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Retail Sales Analysis - Executive Summary", true)
	pdf.SetCreator("salesinsight", true)
	pdf.SetCreationDate(generated)
	pdf.SetModificationDate(generated)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(marginLeft, 50, "Retail Sales Analysis - Executive Summary")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(marginLeft, 70, "Generated: "+generated.Format("January 02, 2006"))

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(bannerName, opts, bytes.NewReader(banner))
	bannerW := pageWidth - 2*marginLeft
	pdf.ImageOptions(bannerName, marginLeft, 82, bannerW, bannerW*BannerHeight/BannerWidth, false, opts, 0, "")

	y := 82 + bannerW*BannerHeight/BannerWidth + 28
	heading := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(marginLeft, y, title)
	}

	heading("Key Performance Indicators")
	y += 25
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		"Total Revenue: " + analysis.Money(rep.KPIs.TotalRevenue),
		"Total Orders: " + analysis.Count(rep.KPIs.TotalOrders),
		"Average Order Value: " + analysis.MoneyRatio(rep.KPIs.AvgOrderValue),
		"Total Units Sold: " + analysis.Count(rep.KPIs.TotalUnits),
	} {
		pdf.Text(indent, y, tr("- "+line))
		y += 15
	}

	y += 15
	heading("Top 5 Products by Revenue")
	y += 20
	pdf.SetFont("Helvetica", "", 9)
	for i, p := range rep.Products.Top(5) {
		pdf.Text(indent, y, tr(fmt.Sprintf("%d. %s: %s", i+1, p.Product, analysis.WholeMoney(p.Revenue))))
		y += 12
	}

	y += 15
	heading("Top Regions by Revenue")
	y += 20
	pdf.SetFont("Helvetica", "", 9)
	for i, r := range rep.Regions.Top(3) {
		pdf.Text(indent, y, tr(fmt.Sprintf("%d. %s: %s (%s)", i+1, r.Region, analysis.WholeMoney(r.Revenue), r.MarketShare.Format("%.1f%%"))))
		y += 12
	}

	y += 15
	heading("Strategic Recommendations")
	y += 20
	pdf.SetFont("Helvetica", "", 8)
	for _, rec := range rep.Recommendations[:min(3, len(rep.Recommendations))] {
		for _, line := range Wrap(rec, wrapColumns) {
			pdf.Text(indent, y, tr(line))
			y += 10
		}
		y += 2
	}

	y += 10
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Text(marginLeft, y, "Detailed visualizations available in the 'visualizations' folder")

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(marginLeft, pageHeight-30, "Retail Sales Analysis | Business Intelligence Report")

	path := filepath.Join(w.Dir, FileName)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", err
	}
	return path, nil
}

// Wrap breaks text into lines shorter than width columns. Continuation lines
// are indented by three spaces. A single word longer than width gets a line
// of its own.
func Wrap(text string, width int) []string {
	var (
		lines []string
		line  strings.Builder
	)
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) >= width {
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString("   ")
		} else if line.Len() > 0 && strings.TrimSpace(line.String()) != "" {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if strings.TrimSpace(line.String()) != "" {
		lines = append(lines, line.String())
	}
	return lines
}
