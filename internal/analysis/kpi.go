package analysis

import (
	"github.com/paveg/salesinsight/internal/dataset"
	"github.com/paveg/salesinsight/internal/errors"
)

const opKPI = "CalculateKPIs"

// KPIs are the headline scalars of a report.
type KPIs struct {
	TotalRevenue     float64
	TotalOrders      int
	AvgOrderValue    Ratio
	TotalUnits       int64
	AvgUnitsPerOrder Ratio
	UniqueProducts   int
	AvgUnitPrice     Ratio
	RevenuePerUnit   Ratio
}

// KPIField is one named KPI, flattened for tabular output.
type KPIField struct {
	Name    string
	Label   string
	Value   float64
	Defined bool
}

// CalculateKPIs computes the eight headline KPIs in a single pass.
func CalculateKPIs(ds *dataset.Dataset) KPIs {
	var (
		revenue, price           float64
		units                    int64
		revenueN, unitsN, priceN int
	)
	products := make(map[string]struct{})

	for _, tx := range ds.All() {
		if tx.Has(dataset.ColRevenue) {
			revenue += tx.Revenue
			revenueN++
		}
		if tx.Has(dataset.ColQuantity) {
			units += tx.Quantity
			unitsN++
		}
		if tx.Has(dataset.ColUnitPrice) {
			price += tx.UnitPrice
			priceN++
		}
		products[tx.Key(dataset.ColProduct)] = struct{}{}
	}

	k := KPIs{
		TotalRevenue:     revenue,
		TotalOrders:      ds.Len(),
		AvgOrderValue:    mean(opKPI, "avg_order_value", revenue, revenueN),
		TotalUnits:       units,
		AvgUnitsPerOrder: mean(opKPI, "avg_units_per_order", units, unitsN),
		UniqueProducts:   len(products),
		AvgUnitPrice:     mean(opKPI, "avg_unit_price", price, priceN),
	}
	if v, err := RevenuePerUnit(revenue, units); err != nil {
		k.RevenuePerUnit = Ratio{Err: err}
	} else {
		k.RevenuePerUnit = Ratio{Value: v}
	}
	return k
}

// RevenuePerUnit divides revenue by units. It fails with an error matching
// errors.ErrUndefined when totalUnits is zero.
func RevenuePerUnit(totalRevenue float64, totalUnits int64) (float64, error) {
	if totalUnits == 0 {
		return 0, errors.NewUndefinedError(opKPI, "revenue_per_unit", "total units is zero")
	}
	r := divide(opKPI, "revenue_per_unit", totalRevenue, float64(totalUnits))
	return r.Value, r.Err
}

// Degenerate returns the error of every undefined KPI, in field order.
func (k KPIs) Degenerate() []error {
	var errs []error
	for _, r := range []Ratio{k.AvgOrderValue, k.AvgUnitsPerOrder, k.AvgUnitPrice, k.RevenuePerUnit} {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// Fields flattens the KPIs in display order.
func (k KPIs) Fields() []KPIField {
	ratio := func(name, label string, r Ratio) KPIField {
		return KPIField{Name: name, Label: label, Value: r.Value, Defined: r.Defined()}
	}
	return []KPIField{
		{Name: "total_revenue", Label: "Total Revenue", Value: k.TotalRevenue, Defined: true},
		{Name: "total_orders", Label: "Total Orders", Value: float64(k.TotalOrders), Defined: true},
		ratio("avg_order_value", "Average Order Value", k.AvgOrderValue),
		{Name: "total_units", Label: "Total Units Sold", Value: float64(k.TotalUnits), Defined: true},
		ratio("avg_units_per_order", "Average Units per Order", k.AvgUnitsPerOrder),
		{Name: "unique_products", Label: "Unique Products", Value: float64(k.UniqueProducts), Defined: true},
		ratio("avg_unit_price", "Average Unit Price", k.AvgUnitPrice),
		ratio("revenue_per_unit", "Revenue per Unit", k.RevenuePerUnit),
	}
}
