package analysis

import (
	"math"
	"slices"

	"github.com/paveg/salesinsight/internal/dataset"
)

const opRegions = "AggregateRegions"

// RegionRow is the aggregate of one region.
type RegionRow struct {
	Region      string  `json:"region"`
	Revenue     float64 `json:"revenue"`
	Orders      int     `json:"orders"`
	Units       int64   `json:"units"`
	AOV         Ratio   `json:"aov"`
	MarketShare Ratio   `json:"market_share"` // percent, two decimals, summing to 100.00
}

// RegionView ranks regions by revenue.
type RegionView struct {
	rows  []RegionRow
	total float64
}

// AggregateRegions groups ds by region and derives AOV and market share.
func AggregateRegions(ds *dataset.Dataset) *RegionView {
	view := GroupBy(ds, keyOf(dataset.ColRegion))
	total := view.TotalRevenue()

	groups := view.ByRevenue()
	revenues := make([]float64, len(groups))
	for i, g := range groups {
		revenues[i] = g.Revenue
	}
	shares := apportionShares(revenues, total)

	rows := make([]RegionRow, len(groups))
	for i, g := range groups {
		share := divide(opRegions, "market_share", g.Revenue*100, total)
		if share.Defined() {
			share.Value = shares[i]
		}
		rows[i] = RegionRow{
			Region:      g.Key,
			Revenue:     g.Revenue,
			Orders:      g.Orders,
			Units:       g.Units,
			AOV:         divide(opRegions, "aov", g.Revenue, float64(g.Orders)),
			MarketShare: share,
		}
	}
	return &RegionView{rows: rows, total: total}
}

// apportionShares converts revenues into percentages with two decimals using
// largest-remainder rounding, so the result always sums to exactly 100.00.
// Hundredths left over after truncation go to the largest remainders; ties
// go to the earlier entry.
func apportionShares(revenues []float64, total float64) []float64 {
	shares := make([]float64, len(revenues))
	if total == 0 || len(revenues) == 0 {
		return shares
	}

	units := make([]int64, len(revenues))
	remainders := make([]float64, len(revenues))
	var assigned int64
	for i, r := range revenues {
		raw := r * 10000 / total
		floor := math.Floor(raw + 1e-9)
		units[i] = int64(floor)
		remainders[i] = raw - floor
		assigned += units[i]
	}

	order := make([]int, len(revenues))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case remainders[a] > remainders[b]:
			return -1
		case remainders[a] < remainders[b]:
			return 1
		}
		return 0
	})

	left := min(max(10000-assigned, 0), int64(len(revenues)))
	for _, i := range order[:left] {
		units[i]++
	}
	for i, u := range units {
		shares[i] = float64(u) / 100
	}
	return shares
}

// Len returns the number of regions.
func (r *RegionView) Len() int {
	return len(r.rows)
}

// Ranked returns every region ordered by revenue, highest first.
func (r *RegionView) Ranked() []RegionRow {
	return prefix(r.rows, len(r.rows))
}

// Top returns the first n rows of Ranked.
func (r *RegionView) Top(n int) []RegionRow {
	return prefix(r.rows, n)
}

// TotalRevenue is the revenue across all regions.
func (r *RegionView) TotalRevenue() float64 {
	return r.total
}
