package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var (
	steelBlue = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	coral     = color.RGBA{R: 255, G: 127, B: 80, A: 255}
	seaGreen  = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	slate     = color.RGBA{R: 112, G: 128, B: 144, A: 255}
)

const barWidth = vg.Points(18)

func newPanel(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// emptyPanel marks a panel whose view has no rows.
func emptyPanel(p *plot.Plot) *plot.Plot {
	p.Title.Text += " (no data)"
	p.HideAxes()
	return p
}

// barPanel draws one bar per label. Horizontal bars list the first label at
// the top.
func barPanel(p *plot.Plot, labels []string, values []float64, fill color.Color, horizontal bool, format string) (*plot.Plot, error) {
	if len(values) == 0 {
		return emptyPanel(p), nil
	}

	vals := make(plotter.Values, len(values))
	names := make([]string, len(labels))
	if horizontal {
		for i := range values {
			vals[len(values)-1-i] = values[i]
			names[len(labels)-1-i] = labels[i]
		}
	} else {
		copy(vals, values)
		copy(names, labels)
	}

	bars, err := plotter.NewBarChart(vals, barWidth)
	if err != nil {
		return nil, err
	}
	bars.Color = fill
	bars.LineStyle.Width = vg.Length(0)
	bars.Horizontal = horizontal
	p.Add(bars)

	if format != "" {
		xys := make([]plotter.XY, len(vals))
		text := make([]string, len(vals))
		for i, v := range vals {
			if horizontal {
				xys[i] = plotter.XY{X: v, Y: float64(i)}
			} else {
				xys[i] = plotter.XY{X: float64(i), Y: v}
			}
			text[i] = fmt.Sprintf(format, v)
		}
		lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
		if err != nil {
			return nil, err
		}
		p.Add(lbls)
	}

	if horizontal {
		p.NominalY(names...)
	} else {
		p.NominalX(names...)
	}
	return p, nil
}

func piePanel(p *plot.Plot, labels []string, values []float64) *plot.Plot {
	if len(values) == 0 {
		return emptyPanel(p)
	}
	p.HideAxes()
	p.Add(NewPie(values, labels))
	return p
}

func scatterPanel(p *plot.Plot, xys plotter.XYs, labels []string) (*plot.Plot, error) {
	if len(xys) == 0 {
		return emptyPanel(p), nil
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = coral
	sc.GlyphStyle.Radius = vg.Points(4)
	p.Add(plotter.NewGrid(), sc)

	if len(labels) == len(xys) {
		lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, err
		}
		p.Add(lbls)
	}
	return p, nil
}

func linePanel(p *plot.Plot, xys plotter.XYs, stroke color.Color) (*plot.Plot, error) {
	if len(xys) == 0 {
		return emptyPanel(p), nil
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.Color = stroke
	line.Width = vg.Points(2)
	points.GlyphStyle.Color = stroke
	p.Add(plotter.NewGrid(), line, points)
	return p, nil
}

// groupedBars draws one bar series per group, side by side at each label.
func groupedBars(p *plot.Plot, labels, groups []string, series [][]float64) (*plot.Plot, error) {
	if len(labels) == 0 || len(groups) == 0 {
		return emptyPanel(p), nil
	}
	width := barWidth
	for i, values := range series {
		bars, err := plotter.NewBarChart(plotter.Values(values), width)
		if err != nil {
			return nil, err
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = vg.Length(float64(i)-float64(len(series)-1)/2) * width
		p.Add(bars)
		p.Legend.Add(groups[i], bars)
	}
	p.Legend.Top = true
	p.NominalX(labels...)
	return p, nil
}
