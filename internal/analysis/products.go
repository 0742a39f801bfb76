package analysis

import (
	"cmp"

	"github.com/paveg/salesinsight/internal/dataset"
)

// ProductRow is the aggregate of one product.
type ProductRow struct {
	Product string  `json:"product"`
	Revenue float64 `json:"revenue"`
	Units   int64   `json:"units"`
	Orders  int     `json:"orders"`
}

// Point is a labelled scatter point.
type Point struct {
	Label string
	X, Y  float64
}

// ProductView ranks products by revenue and by units.
type ProductView struct {
	ranked  []ProductRow
	byUnits []ProductRow
}

// AggregateProducts groups ds by product.
func AggregateProducts(ds *dataset.Dataset) *ProductView {
	view := GroupBy(ds, keyOf(dataset.ColProduct))
	toRows := func(groups []Group[string]) []ProductRow {
		rows := make([]ProductRow, len(groups))
		for i, g := range groups {
			rows[i] = ProductRow{Product: g.Key, Revenue: g.Revenue, Units: g.Units, Orders: g.Orders}
		}
		return rows
	}
	return &ProductView{
		ranked: toRows(view.ByRevenue()),
		byUnits: toRows(view.SortedBy(func(a, b Group[string]) int {
			return cmp.Compare(b.Units, a.Units)
		})),
	}
}

// Len returns the number of products.
func (p *ProductView) Len() int {
	return len(p.ranked)
}

// Ranked returns every product ordered by revenue, highest first.
func (p *ProductView) Ranked() []ProductRow {
	return prefix(p.ranked, len(p.ranked))
}

// Top returns the first n rows of Ranked.
func (p *ProductView) Top(n int) []ProductRow {
	return prefix(p.ranked, n)
}

// TopByUnits returns the n best sellers by units.
func (p *ProductView) TopByUnits(n int) []ProductRow {
	return prefix(p.byUnits, n)
}

// Scatter returns one (units, revenue) point per product in revenue order.
func (p *ProductView) Scatter() []Point {
	pts := make([]Point, len(p.ranked))
	for i, r := range p.ranked {
		pts[i] = Point{Label: r.Product, X: float64(r.Units), Y: r.Revenue}
	}
	return pts
}

// prefix copies at most n leading elements of s. A non-positive n yields an
// empty, non-nil slice.
func prefix[T any](s []T, n int) []T {
	n = max(0, min(n, len(s)))
	out := make([]T, n)
	copy(out, s)
	return out
}
