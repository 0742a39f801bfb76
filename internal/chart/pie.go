package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// wedgeSteps is the number of polygon segments used for a full circle.
const wedgeSteps = 180

// Pie is a plot.Plotter that draws labelled percentage wedges centred in the
// data area. Non-positive values are skipped.
type Pie struct {
	Values []float64
	Labels []string
	Colors []color.Color

	// Radius is a fraction of half the shorter side of the data area.
	Radius float64
}

// NewPie returns a pie of values labelled with labels.
func NewPie(values []float64, labels []string) *Pie {
	return &Pie{Values: values, Labels: labels, Radius: 0.8}
}

func (p *Pie) total() float64 {
	total := 0.0
	for _, v := range p.Values {
		if v > 0 {
			total += v
		}
	}
	return total
}

func (p *Pie) color(i int) color.Color {
	if i < len(p.Colors) {
		return p.Colors[i]
	}
	return plotutil.Color(i)
}

// Plot implements plot.Plotter.
func (p *Pie) Plot(c draw.Canvas, plt *plot.Plot) {
	total := p.total()
	if total == 0 {
		return
	}

	center := c.Center()
	r := p.Radius * float64(min(c.Max.X-c.Min.X, c.Max.Y-c.Min.Y)) / 2

	sty := plt.X.Tick.Label
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter

	// Wedges start at twelve o'clock and run counter-clockwise.
	start := math.Pi / 2
	for i, v := range p.Values {
		if v <= 0 {
			continue
		}
		sweep := 2 * math.Pi * v / total
		steps := max(2, int(float64(wedgeSteps)*v/total))

		pts := make([]vg.Point, 0, steps+2)
		pts = append(pts, center)
		for s := 0; s <= steps; s++ {
			a := start + sweep*float64(s)/float64(steps)
			pts = append(pts, polar(center, r, a))
		}
		c.FillPolygon(p.color(i), pts)

		mid := start + sweep/2
		c.FillText(sty, polar(center, r*0.65, mid), fmt.Sprintf("%.1f%%", 100*v/total))
		if i < len(p.Labels) {
			c.FillText(sty, polar(center, r*1.15, mid), p.Labels[i])
		}
		start += sweep
	}
}

func polar(center vg.Point, r, angle float64) vg.Point {
	return vg.Point{
		X: center.X + vg.Length(r*math.Cos(angle)),
		Y: center.Y + vg.Length(r*math.Sin(angle)),
	}
}
