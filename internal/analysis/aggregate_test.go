package analysis_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/paveg/salesinsight/internal/analysis"
	"github.com/paveg/salesinsight/internal/dataset"
	"github.com/paveg/salesinsight/internal/errors"
	"github.com/paveg/salesinsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBy(t *testing.T) {
	ds := testutil.SampleDataset(t)
	view := analysis.GroupBy(ds, func(tx dataset.Transaction) string { return tx.Product })

	assert.Equal(t, 5, view.Len())
	keys := make([]string, 0, view.Len())
	for _, g := range view.Groups() {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"Laptop", "Mouse", "Monitor", "Desk", "Keyboard"}, keys)

	g, ok := view.Lookup("Laptop")
	require.True(t, ok)
	assert.Equal(t, 2, g.Rows)
	assert.InDelta(t, 1200.0, g.MeanRevenue().Float64, 1e-9)

	_, ok = view.Lookup("Tablet")
	assert.False(t, ok)
	assert.InDelta(t, 4750.0, view.TotalRevenue(), 1e-9)
}

func TestAggregateProducts(t *testing.T) {
	products := analysis.AggregateProducts(testutil.SampleDataset(t))

	t.Run("ranked by revenue", func(t *testing.T) {
		assert.Equal(t, []analysis.ProductRow{
			{Product: "Laptop", Revenue: 2400, Units: 3, Orders: 2},
			{Product: "Monitor", Revenue: 1500, Units: 6, Orders: 2},
			{Product: "Desk", Revenue: 400, Units: 1, Orders: 1},
			{Product: "Mouse", Revenue: 300, Units: 15, Orders: 2},
			{Product: "Keyboard", Revenue: 150, Units: 3, Orders: 1},
		}, products.Ranked())
	})

	t.Run("units ranking keeps first appearance on ties", func(t *testing.T) {
		var names []string
		for _, r := range products.TopByUnits(10) {
			names = append(names, r.Product)
		}
		assert.Equal(t, []string{"Mouse", "Monitor", "Laptop", "Keyboard", "Desk"}, names)
	})

	t.Run("top n is a prefix", func(t *testing.T) {
		ranked := products.Ranked()
		for n := -1; n <= 7; n++ {
			top := products.Top(n)
			want := max(0, min(n, len(ranked)))
			require.Len(t, top, want)
			assert.Equal(t, ranked[:want], top)
		}
	})

	t.Run("scatter", func(t *testing.T) {
		pts := products.Scatter()
		require.Len(t, pts, 5)
		assert.Equal(t, analysis.Point{Label: "Laptop", X: 3, Y: 2400}, pts[0])
	})

	t.Run("revenue tie keeps first appearance", func(t *testing.T) {
		a := singleTransaction()
		b := singleTransaction()
		b.OrderID, b.Product = "O-2", "B"
		c := singleTransaction()
		c.OrderID, c.Product = "O-3", "C"
		c.Revenue = 50
		ranked := analysis.AggregateProducts(testutil.NewDataset(t, []dataset.Transaction{c, a, b})).Ranked()

		require.Len(t, ranked, 3)
		assert.Equal(t, "A", ranked[0].Product)
		assert.Equal(t, "B", ranked[1].Product)
		assert.Equal(t, "C", ranked[2].Product)
	})
}

func TestAggregateRegions(t *testing.T) {
	regions := analysis.AggregateRegions(testutil.SampleDataset(t))

	rows := regions.Ranked()
	require.Len(t, rows, 4)

	expected := []struct {
		region  string
		revenue float64
		orders  int
		units   int64
		aov     float64
		share   float64
	}{
		{"East", 2800, 3, 16, 933.333333, 58.95},
		{"West", 900, 2, 6, 450, 18.95},
		{"North", 650, 2, 5, 325, 13.68},
		{"South", 400, 1, 1, 400, 8.42},
	}
	total := 0.0
	for i, want := range expected {
		got := rows[i]
		assert.Equal(t, want.region, got.Region)
		assert.InDelta(t, want.revenue, got.Revenue, 1e-9)
		assert.Equal(t, want.orders, got.Orders)
		assert.Equal(t, want.units, got.Units)
		assert.InDelta(t, want.aov, got.AOV.Value, 1e-6)
		assert.InDelta(t, want.share, got.MarketShare.Value, 1e-9)
		total += got.MarketShare.Value
	}
	assert.InDelta(t, 100.0, total, 0.01)
	assert.InDelta(t, 4750.0, regions.TotalRevenue(), 1e-9)
	assert.Len(t, regions.Top(2), 2)

	t.Run("single transaction has full share", func(t *testing.T) {
		rows := analysis.AggregateRegions(testutil.NewDataset(t, []dataset.Transaction{singleTransaction()})).Ranked()
		require.Len(t, rows, 1)
		assert.InDelta(t, 100.0, rows[0].MarketShare.Value, 1e-9)
		assert.InDelta(t, 100.0, rows[0].AOV.Value, 1e-9)
	})

	t.Run("equal regions shares sum to exactly one hundred", func(t *testing.T) {
		var txs []dataset.Transaction
		for i, region := range []string{"R1", "R2", "R3", "R4", "R5", "R6", "R7"} {
			tx := singleTransaction()
			tx.OrderID = fmt.Sprintf("O-%d", i+1)
			tx.Region = region
			txs = append(txs, tx)
		}
		rows := analysis.AggregateRegions(testutil.NewDataset(t, txs)).Ranked()
		require.Len(t, rows, 7)

		want := []float64{14.29, 14.29, 14.29, 14.29, 14.28, 14.28, 14.28}
		sum := 0.0
		for i, row := range rows {
			assert.Equal(t, fmt.Sprintf("R%d", i+1), row.Region)
			assert.InDelta(t, want[i], row.MarketShare.Value, 1e-9)
			sum += row.MarketShare.Value
		}
		assert.InDelta(t, 100.0, sum, 1e-9)
	})

	t.Run("zero revenue leaves share undefined", func(t *testing.T) {
		tx := singleTransaction()
		tx.Revenue = 0
		rows := analysis.AggregateRegions(testutil.NewDataset(t, []dataset.Transaction{tx})).Ranked()
		require.Len(t, rows, 1)
		assert.ErrorIs(t, rows[0].MarketShare.Err, errors.ErrUndefined)
	})

	t.Run("missing order ids leave aov undefined", func(t *testing.T) {
		tx := singleTransaction()
		tx.Missing = dataset.ColOrderID
		rows := analysis.AggregateRegions(testutil.NewDataset(t, []dataset.Transaction{tx})).Ranked()
		require.Len(t, rows, 1)
		assert.Equal(t, 0, rows[0].Orders)
		assert.ErrorIs(t, rows[0].AOV.Err, errors.ErrUndefined)
	})

	t.Run("empty region goes to the unknown bucket", func(t *testing.T) {
		a := singleTransaction()
		b := singleTransaction()
		b.OrderID, b.Region = "O-2", ""
		b.Missing = dataset.ColRegion
		rows := analysis.AggregateRegions(testutil.NewDataset(t, []dataset.Transaction{a, b})).Ranked()
		require.Len(t, rows, 2)
		assert.Equal(t, dataset.UnknownKey, rows[1].Region)
		assert.InDelta(t, 50.0, rows[1].MarketShare.Value, 1e-9)
	})
}

func TestAggregateTemporal(t *testing.T) {
	temporal := analysis.AggregateTemporal(testutil.SampleDataset(t))

	t.Run("monthly is chronological", func(t *testing.T) {
		monthly := temporal.Monthly()
		require.Len(t, monthly, 7)
		labels := make([]string, len(monthly))
		for i, m := range monthly {
			labels[i] = m.Label()
		}
		assert.Equal(t, []string{"2025-01", "2025-02", "2025-04", "2025-07", "2026-01", "2026-02", "2026-04"}, labels)
		assert.InDelta(t, 1700.0, monthly[0].Revenue, 1e-9)
		assert.Equal(t, 2, monthly[0].Orders)
		assert.Equal(t, "January", monthly[0].MonthName)
	})

	t.Run("last months", func(t *testing.T) {
		last := temporal.LastMonths(2)
		require.Len(t, last, 2)
		assert.Equal(t, "2026-02", last[0].Label())
		assert.Len(t, temporal.LastMonths(12), 7)
		assert.Empty(t, temporal.LastMonths(0))
	})

	t.Run("quarterly", func(t *testing.T) {
		assert.Equal(t, []analysis.QuarterRow{
			{Year: 2025, Quarter: 1, Revenue: 2500, Orders: 3},
			{Year: 2025, Quarter: 2, Revenue: 500, Orders: 1},
			{Year: 2025, Quarter: 3, Revenue: 200, Orders: 1},
			{Year: 2026, Quarter: 1, Revenue: 1400, Orders: 2},
			{Year: 2026, Quarter: 2, Revenue: 150, Orders: 1},
		}, temporal.Quarterly())
	})

	t.Run("pivot", func(t *testing.T) {
		p := temporal.Pivot()
		assert.Equal(t, []int{1, 2, 3}, p.Quarters)
		assert.Equal(t, []int{2025, 2026}, p.Years)
		assert.Equal(t, analysis.NullFloat{Float64: 2500, Valid: true}, p.Value(1, 2025))
		assert.Equal(t, analysis.NullFloat{Float64: 150, Valid: true}, p.Value(2, 2026))
		assert.False(t, p.Value(3, 2026).Valid)
		assert.False(t, p.Value(4, 2025).Valid)
	})

	t.Run("seasonality", func(t *testing.T) {
		season := temporal.Seasonality()
		assert.Equal(t, time.January, season[0].Month)
		assert.InDelta(t, 700.0, season[0].Mean.Float64, 1e-9)
		assert.InDelta(t, 900.0, season[1].Mean.Float64, 1e-9)
		assert.False(t, season[2].Mean.Valid)
		assert.InDelta(t, 325.0, season[3].Mean.Float64, 1e-9)
		assert.InDelta(t, 200.0, season[6].Mean.Float64, 1e-9)
		assert.False(t, season[11].Mean.Valid)

		var names []string
		for _, m := range temporal.Present() {
			names = append(names, m.Name)
			assert.False(t, math.IsNaN(m.Mean.Float64))
		}
		assert.Equal(t, []string{"January", "February", "April", "July"}, names)
	})

	t.Run("peak and trough", func(t *testing.T) {
		peak, err := temporal.Peak()
		require.NoError(t, err)
		assert.Equal(t, time.February, peak.Month)

		trough, err := temporal.Trough()
		require.NoError(t, err)
		assert.Equal(t, time.July, trough.Month)
	})

	t.Run("peak ties go to the earliest month", func(t *testing.T) {
		a := singleTransaction()
		b := singleTransaction()
		b.OrderID = "O-2"
		b.Date = testutil.MustDate("2025-01-10")
		temporal := analysis.AggregateTemporal(testutil.NewDataset(t, []dataset.Transaction{a, b}))

		peak, err := temporal.Peak()
		require.NoError(t, err)
		assert.Equal(t, time.January, peak.Month)
		trough, err := temporal.Trough()
		require.NoError(t, err)
		assert.Equal(t, time.January, trough.Month)
	})

	t.Run("no revenue leaves peak undefined", func(t *testing.T) {
		tx := singleTransaction()
		tx.Missing = dataset.ColRevenue
		temporal := analysis.AggregateTemporal(testutil.NewDataset(t, []dataset.Transaction{tx}))

		_, err := temporal.Peak()
		assert.ErrorIs(t, err, errors.ErrUndefined)
		_, err = temporal.Trough()
		assert.ErrorIs(t, err, errors.ErrUndefined)
		assert.Empty(t, temporal.Present())
	})

	t.Run("daily", func(t *testing.T) {
		daily := temporal.Daily()
		require.Len(t, daily, 8)
		assert.Equal(t, testutil.MustDate("2025-01-15"), daily[0].Date)
		for i, d := range daily {
			assert.Equal(t, 1, d.Orders)
			if i > 0 {
				assert.True(t, daily[i-1].Date.Before(d.Date))
			}
		}
	})
}

func TestAggregateSegments(t *testing.T) {
	segments := analysis.AggregateSegments(testutil.SampleDataset(t))

	assert.Equal(t, []analysis.RevenueRow{
		{Key: "Enterprise", Revenue: 3400},
		{Key: "SMB", Revenue: 900},
		{Key: "Individual", Revenue: 450},
	}, segments.Segments())
	assert.Equal(t, []analysis.RevenueRow{
		{Key: "Online", Revenue: 3050},
		{Key: "Retail", Revenue: 1300},
		{Key: "Wholesale", Revenue: 400},
	}, segments.Channels())
	assert.Equal(t, []analysis.CategoryRow{
		{Category: "Electronics", Revenue: 3900, Orders: 4, Units: 9},
		{Category: "Accessories", Revenue: 450, Orders: 3, Units: 18},
		{Category: "Furniture", Revenue: 400, Orders: 1, Units: 1},
	}, segments.Categories())

	pts := segments.PriceQuantity()
	require.Len(t, pts, 8)
	assert.Equal(t, analysis.PricePoint{UnitPrice: 800, Quantity: 2, Revenue: 1600}, pts[0])

	t.Run("rows without price are not plotted", func(t *testing.T) {
		tx := singleTransaction()
		tx.Missing = dataset.ColUnitPrice
		segments := analysis.AggregateSegments(testutil.NewDataset(t, []dataset.Transaction{tx}))
		assert.Empty(t, segments.PriceQuantity())
	})
}
