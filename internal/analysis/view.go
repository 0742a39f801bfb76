package analysis

import (
	"cmp"
	"slices"

	"github.com/paveg/salesinsight/internal/dataset"
)

// Group holds the summed metrics of one key of a View.
type Group[K comparable] struct {
	Key     K
	Revenue float64 // sum over rows with a revenue value
	Units   int64   // sum over rows with a quantity value
	Orders  int     // rows with an order identifier
	Rows    int     // all rows in the group

	revenueRows int
}

// MeanRevenue is the average revenue of the rows that carry one.
func (g Group[K]) MeanRevenue() NullFloat {
	if g.revenueRows == 0 {
		return NullFloat{}
	}
	return NullFloat{Float64: g.Revenue / float64(g.revenueRows), Valid: true}
}

// View is an insertion-ordered mapping from a grouping key to its Group.
type View[K comparable] struct {
	groups []Group[K]
	index  map[K]int
}

// GroupBy makes one pass over ds and groups rows by key.
func GroupBy[K comparable](ds *dataset.Dataset, key func(dataset.Transaction) K) *View[K] {
	v := &View[K]{index: make(map[K]int)}
	for _, tx := range ds.All() {
		k := key(tx)
		i, ok := v.index[k]
		if !ok {
			i = len(v.groups)
			v.index[k] = i
			v.groups = append(v.groups, Group[K]{Key: k})
		}
		g := &v.groups[i]
		g.Rows++
		if tx.Has(dataset.ColRevenue) {
			g.Revenue += tx.Revenue
			g.revenueRows++
		}
		if tx.Has(dataset.ColQuantity) {
			g.Units += tx.Quantity
		}
		if tx.Has(dataset.ColOrderID) {
			g.Orders++
		}
	}
	return v
}

// Len returns the number of distinct keys.
func (v *View[K]) Len() int {
	return len(v.groups)
}

// Groups returns the groups in first-appearance order.
func (v *View[K]) Groups() []Group[K] {
	return slices.Clone(v.groups)
}

// Lookup returns the group for k.
func (v *View[K]) Lookup(k K) (Group[K], bool) {
	i, ok := v.index[k]
	if !ok {
		return Group[K]{}, false
	}
	return v.groups[i], true
}

// SortedBy returns the groups stable-sorted by cmpFn, so equal groups keep
// first-appearance order.
func (v *View[K]) SortedBy(cmpFn func(a, b Group[K]) int) []Group[K] {
	out := v.Groups()
	slices.SortStableFunc(out, cmpFn)
	return out
}

// ByRevenue returns the groups ranked by revenue, highest first.
func (v *View[K]) ByRevenue() []Group[K] {
	return v.SortedBy(func(a, b Group[K]) int { return cmp.Compare(b.Revenue, a.Revenue) })
}

// TotalRevenue sums revenue across all groups.
func (v *View[K]) TotalRevenue() float64 {
	total := 0.0
	for _, g := range v.groups {
		total += g.Revenue
	}
	return total
}

// keyOf returns a grouping function for a string column.
func keyOf(c dataset.Column) func(dataset.Transaction) string {
	return func(tx dataset.Transaction) string { return tx.Key(c) }
}
