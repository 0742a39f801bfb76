// Package chart renders the four 2x2 analysis figures as PNG files using
// gonum.org/v1/plot.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paveg/salesinsight/internal/analysis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure file names, in the order the pipeline writes them.
const (
	ProductsFile = "top_products_analysis.png"
	RegionsFile  = "regional_analysis.png"
	TemporalFile = "seasonality_trends.png"
	InsightsFile = "additional_insights.png"
)

const (
	// DefaultDPI is the resolution of published figures.
	DefaultDPI = 300

	figureWidth  = 16 * vg.Inch
	figureHeight = 12 * vg.Inch
	titleBand    = 0.6 * vg.Inch
)

// Renderer writes figures into Dir.
type Renderer struct {
	Dir  string
	DPI  int
	TopN int
}

// NewRenderer returns a Renderer at DefaultDPI.
func NewRenderer(dir string, topN int) *Renderer {
	return &Renderer{Dir: dir, DPI: DefaultDPI, TopN: topN}
}

// Products draws top products by revenue and units, category share and the
// revenue-versus-units scatter.
func (r *Renderer) Products(rep *analysis.Report) (string, error) {
	top := rep.Products.Top(r.TopN)
	names := make([]string, len(top))
	revenue := make([]float64, len(top))
	for i, row := range top {
		names[i], revenue[i] = row.Product, row.Revenue
	}
	revenuePanel, err := barPanel(newPanel(fmt.Sprintf("Top %d Products by Revenue", r.TopN), "Revenue ($)", ""),
		names, revenue, steelBlue, true, "$%.0f")
	if err != nil {
		return "", err
	}

	byUnits := rep.Products.TopByUnits(r.TopN)
	unitNames := make([]string, len(byUnits))
	units := make([]float64, len(byUnits))
	for i, row := range byUnits {
		unitNames[i], units[i] = row.Product, float64(row.Units)
	}
	unitsPanel, err := barPanel(newPanel(fmt.Sprintf("Top %d Products by Units Sold", r.TopN), "Units", ""),
		unitNames, units, coral, true, "%.0f")
	if err != nil {
		return "", err
	}

	cats := rep.Segments.Categories()
	catNames := make([]string, len(cats))
	catRevenue := make([]float64, len(cats))
	for i, c := range cats {
		catNames[i], catRevenue[i] = c.Category, c.Revenue
	}
	pie := piePanel(newPanel("Revenue Share by Category", "", ""), catNames, catRevenue)

	pts := rep.Products.Scatter()
	xys := make(plotter.XYs, len(pts))
	labels := make([]string, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		labels[i] = pt.Label
	}
	scatter, err := scatterPanel(newPanel("Product Performance: Revenue vs Units", "Units Sold", "Revenue ($)"), xys, labels)
	if err != nil {
		return "", err
	}

	return r.save(ProductsFile, "Top Products Analysis", [2][2]*plot.Plot{
		{revenuePanel, unitsPanel},
		{pie, scatter},
	})
}

// Regions draws regional revenue, market share, AOV and order counts.
func (r *Renderer) Regions(rep *analysis.Report) (string, error) {
	rows := rep.Regions.Ranked()
	names := make([]string, len(rows))
	revenue := make([]float64, len(rows))
	aov := make([]float64, len(rows))
	orders := make([]float64, len(rows))
	for i, row := range rows {
		names[i], revenue[i], orders[i] = row.Region, row.Revenue, float64(row.Orders)
		if row.AOV.Defined() {
			aov[i] = row.AOV.Value
		}
	}

	revenuePanel, err := barPanel(newPanel("Revenue by Region", "", "Revenue ($)"), names, revenue, steelBlue, false, "$%.0f")
	if err != nil {
		return "", err
	}
	aovPanel, err := barPanel(newPanel("Average Order Value by Region", "", "AOV ($)"), names, aov, seaGreen, false, "$%.2f")
	if err != nil {
		return "", err
	}
	ordersPanel, err := barPanel(newPanel("Order Count by Region", "", "Orders"), names, orders, slate, false, "%.0f")
	if err != nil {
		return "", err
	}
	share := piePanel(newPanel("Market Share by Region", "", ""), names, revenue)

	return r.save(RegionsFile, "Regional Performance Analysis", [2][2]*plot.Plot{
		{revenuePanel, share},
		{aovPanel, ordersPanel},
	})
}

// Temporal draws the monthly trend, seasonality, quarterly comparison and
// daily orders.
func (r *Renderer) Temporal(rep *analysis.Report) (string, error) {
	monthly := rep.Temporal.Monthly()
	xys := make(plotter.XYs, len(monthly))
	ticks := make([]string, len(monthly))
	for i, m := range monthly {
		xys[i] = plotter.XY{X: float64(i), Y: m.Revenue}
		ticks[i] = m.Label()
	}
	trend, err := linePanel(newPanel("Monthly Revenue Trend", "", "Revenue ($)"), xys, steelBlue)
	if err != nil {
		return "", err
	}
	if len(ticks) > 0 {
		trend.NominalX(ticks...)
	}

	// Absent months are drawn as zero-height bars labelled n/a.
	season := rep.Temporal.Seasonality()
	monthNames := make([]string, len(season))
	means := make([]float64, len(season))
	for i, m := range season {
		monthNames[i] = m.Name[:3]
		if m.Mean.Valid {
			means[i] = m.Mean.Float64
		}
	}
	seasonPanel, err := barPanel(newPanel("Average Revenue by Month (Seasonality)", "", "Mean Revenue ($)"),
		monthNames, means, coral, false, "")
	if err != nil {
		return "", err
	}
	if err := labelSeasonality(seasonPanel, season); err != nil {
		return "", err
	}

	pivot := rep.Temporal.Pivot()
	quarters := make([]string, len(pivot.Quarters))
	for i, q := range pivot.Quarters {
		quarters[i] = "Q" + strconv.Itoa(q)
	}
	years := make([]string, len(pivot.Years))
	series := make([][]float64, len(pivot.Years))
	for yi, y := range pivot.Years {
		years[yi] = strconv.Itoa(y)
		series[yi] = make([]float64, len(pivot.Quarters))
		for qi := range pivot.Quarters {
			if cell := pivot.Cells[qi][yi]; cell.Valid {
				series[yi][qi] = cell.Float64
			}
		}
	}
	quarterly, err := groupedBars(newPanel("Quarterly Revenue Comparison", "", "Revenue ($)"), quarters, years, series)
	if err != nil {
		return "", err
	}

	daily := rep.Temporal.Daily()
	dxys := make(plotter.XYs, len(daily))
	for i, d := range daily {
		dxys[i] = plotter.XY{X: float64(d.Date.Unix()), Y: float64(d.Orders)}
	}
	dailyPanel, err := linePanel(newPanel("Daily Order Volume", "", "Orders"), dxys, seaGreen)
	if err != nil {
		return "", err
	}
	dailyPanel.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	return r.save(TemporalFile, "Seasonality & Trends Analysis", [2][2]*plot.Plot{
		{trend, seasonPanel},
		{quarterly, dailyPanel},
	})
}

func labelSeasonality(p *plot.Plot, season [12]analysis.MonthMean) error {
	xys := make([]plotter.XY, len(season))
	text := make([]string, len(season))
	for i, m := range season {
		xys[i] = plotter.XY{X: float64(i), Y: m.Mean.Float64}
		text[i] = "n/a"
		if m.Mean.Valid {
			text[i] = fmt.Sprintf("$%.0f", m.Mean.Float64)
		}
	}
	lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return err
	}
	p.Add(lbls)
	return nil
}

// Insights draws segment revenue, channel share, category revenue and the
// price-versus-quantity scatter.
func (r *Renderer) Insights(rep *analysis.Report) (string, error) {
	split := func(rows []analysis.RevenueRow) ([]string, []float64) {
		names := make([]string, len(rows))
		values := make([]float64, len(rows))
		for i, row := range rows {
			names[i], values[i] = row.Key, row.Revenue
		}
		return names, values
	}

	segNames, segRevenue := split(rep.Segments.Segments())
	segments, err := barPanel(newPanel("Revenue by Customer Segment", "", "Revenue ($)"), segNames, segRevenue, steelBlue, false, "$%.0f")
	if err != nil {
		return "", err
	}

	chNames, chRevenue := split(rep.Segments.Channels())
	channels := piePanel(newPanel("Revenue Share by Sales Channel", "", ""), chNames, chRevenue)

	cats := rep.Segments.Categories()
	catNames := make([]string, len(cats))
	catRevenue := make([]float64, len(cats))
	for i, c := range cats {
		catNames[i], catRevenue[i] = c.Category, c.Revenue
	}
	categories, err := barPanel(newPanel("Revenue by Category", "Revenue ($)", ""), catNames, catRevenue, seaGreen, true, "$%.0f")
	if err != nil {
		return "", err
	}

	pts := rep.Segments.PriceQuantity()
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.UnitPrice, Y: float64(pt.Quantity)}
	}
	priceQty, err := scatterPanel(newPanel("Unit Price vs Quantity", "Unit Price ($)", "Quantity"), xys, nil)
	if err != nil {
		return "", err
	}

	return r.save(InsightsFile, "Additional Business Insights", [2][2]*plot.Plot{
		{segments, channels},
		{categories, priceQty},
	})
}

// save lays out panels on a titled 2x2 grid and writes the PNG.
func (r *Renderer) save(name, title string, panels [2][2]*plot.Plot) (string, error) {
	img := vgimg.NewWith(vgimg.UseWH(figureWidth, figureHeight), vgimg.UseDPI(r.DPI))
	dc := draw.New(img)

	sty := plot.New().Title.TextStyle
	sty.Font.Size = vg.Points(20)
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter
	dc.FillText(sty, vg.Point{X: dc.Center().X, Y: dc.Max.Y - titleBand/2}, title)

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Inch / 2,
		PadY:      vg.Inch / 2,
		PadTop:    titleBand,
		PadBottom: vg.Inch / 4,
		PadLeft:   vg.Inch / 4,
		PadRight:  vg.Inch / 4,
	}
	grid := [][]*plot.Plot{panels[0][:], panels[1][:]}
	canvases := plot.Align(grid, tiles, dc)
	for i := range grid {
		for j := range grid[i] {
			grid[i][j].Draw(canvases[i][j])
		}
	}

	path := filepath.Join(r.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}
