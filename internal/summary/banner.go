package summary

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/paveg/salesinsight/internal/analysis"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Banner pixel size. It is drawn at 2x the size it occupies on the page.
const (
	BannerWidth  = 1024
	BannerHeight = 128
)

var (
	bannerTop    = color.RGBA{R: 31, G: 78, B: 121, A: 255}
	bannerBottom = color.RGBA{R: 46, G: 117, B: 182, A: 255}
	tileFill     = color.RGBA{R: 255, G: 255, B: 255, A: 40}
)

func loadFontFace(ttf []byte, size float64) (font.Face, error) {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

// RenderBanner draws the KPI header strip: four tiles with the headline
// revenue, orders, AOV and units. It returns PNG bytes.
func RenderBanner(k analysis.KPIs) ([]byte, error) {
	valueFace, err := loadFontFace(gobold.TTF, 34)
	if err != nil {
		return nil, err
	}
	labelFace, err := loadFontFace(goregular.TTF, 18)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(BannerWidth, BannerHeight)

	grad := gg.NewLinearGradient(0, 0, 0, BannerHeight)
	grad.AddColorStop(0, bannerTop)
	grad.AddColorStop(1, bannerBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, BannerWidth, BannerHeight)
	dc.Fill()

	tiles := []struct{ label, value string }{
		{"Total Revenue", analysis.Money(k.TotalRevenue)},
		{"Total Orders", analysis.Count(k.TotalOrders)},
		{"Avg Order Value", analysis.MoneyRatio(k.AvgOrderValue)},
		{"Units Sold", analysis.Count(k.TotalUnits)},
	}

	const pad = 12.0
	tileW := (BannerWidth - pad*float64(len(tiles)+1)) / float64(len(tiles))
	for i, tile := range tiles {
		x := pad + float64(i)*(tileW+pad)
		dc.SetColor(tileFill)
		dc.DrawRoundedRectangle(x, pad, tileW, BannerHeight-2*pad, 10)
		dc.Fill()

		cx := x + tileW/2
		dc.SetColor(color.White)
		dc.SetFontFace(valueFace)
		dc.DrawStringAnchored(tile.value, cx, BannerHeight*0.42, 0.5, 0.5)
		dc.SetFontFace(labelFace)
		dc.DrawStringAnchored(tile.label, cx, BannerHeight*0.74, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
