package analysis

import (
	"github.com/paveg/salesinsight/internal/dataset"
)

// RevenueRow is the revenue of one key of a dimension.
type RevenueRow struct {
	Key     string  `json:"key"`
	Revenue float64 `json:"revenue"`
}

// CategoryRow is the aggregate of one product category.
type CategoryRow struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	Units    int64   `json:"units"`
}

// PricePoint is one transaction plotted as price against quantity.
type PricePoint struct {
	UnitPrice float64 `json:"unit_price"`
	Quantity  int64   `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// SegmentView holds the customer segment, sales channel and category breakdowns.
type SegmentView struct {
	segments   []RevenueRow
	channels   []RevenueRow
	categories []CategoryRow
	points     []PricePoint
}

// AggregateSegments groups ds by segment, channel and category.
func AggregateSegments(ds *dataset.Dataset) *SegmentView {
	s := &SegmentView{
		segments: revenueRows(GroupBy(ds, keyOf(dataset.ColSegment))),
		channels: revenueRows(GroupBy(ds, keyOf(dataset.ColChannel))),
	}

	for _, g := range GroupBy(ds, keyOf(dataset.ColCategory)).ByRevenue() {
		s.categories = append(s.categories, CategoryRow{
			Category: g.Key,
			Revenue:  g.Revenue,
			Orders:   g.Orders,
			Units:    g.Units,
		})
	}

	for _, tx := range ds.All() {
		if !tx.Has(dataset.ColUnitPrice) || !tx.Has(dataset.ColQuantity) {
			continue
		}
		p := PricePoint{UnitPrice: tx.UnitPrice, Quantity: tx.Quantity}
		if tx.Has(dataset.ColRevenue) {
			p.Revenue = tx.Revenue
		}
		s.points = append(s.points, p)
	}
	return s
}

func revenueRows(v *View[string]) []RevenueRow {
	groups := v.ByRevenue()
	rows := make([]RevenueRow, len(groups))
	for i, g := range groups {
		rows[i] = RevenueRow{Key: g.Key, Revenue: g.Revenue}
	}
	return rows
}

// Segments returns customer segments ordered by revenue, highest first.
func (s *SegmentView) Segments() []RevenueRow {
	return prefix(s.segments, len(s.segments))
}

// Channels returns sales channels ordered by revenue, highest first.
func (s *SegmentView) Channels() []RevenueRow {
	return prefix(s.channels, len(s.channels))
}

// Categories returns product categories ordered by revenue, highest first.
func (s *SegmentView) Categories() []CategoryRow {
	return prefix(s.categories, len(s.categories))
}

// PriceQuantity returns a point for every row with both price and quantity.
func (s *SegmentView) PriceQuantity() []PricePoint {
	return prefix(s.points, len(s.points))
}
