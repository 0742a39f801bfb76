package dataset_test

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/salesinsight/internal/dataset"
	"github.com/paveg/salesinsight/internal/errors"
	"github.com/paveg/salesinsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalendar(t *testing.T) {
	tests := []struct {
		date     string
		expected dataset.Calendar
	}{
		{"2026-01-15", dataset.Calendar{Year: 2026, Quarter: 1, Month: time.January, MonthName: "January", Week: 3}},
		{"2025-04-01", dataset.Calendar{Year: 2025, Quarter: 2, Month: time.April, MonthName: "April", Week: 14}},
		{"2025-09-30", dataset.Calendar{Year: 2025, Quarter: 3, Month: time.September, MonthName: "September", Week: 40}},
		// ISO week 1 of 2027 starts on 2027-01-04, so Jan 1 belongs to week 53 of 2026.
		{"2027-01-01", dataset.Calendar{Year: 2027, Quarter: 1, Month: time.January, MonthName: "January", Week: 53}},
		{"2025-12-31", dataset.Calendar{Year: 2025, Quarter: 4, Month: time.December, MonthName: "December", Week: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.expected, dataset.NewCalendar(testutil.MustDate(tt.date)))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("enriches records once", func(t *testing.T) {
		ds := testutil.SampleDataset(t)

		require.Equal(t, 8, ds.Len())
		first := ds.At(0)
		assert.Equal(t, 2025, first.Calendar.Year)
		assert.Equal(t, time.January, first.Calendar.Month)
		assert.Equal(t, 1, first.Calendar.Quarter)
	})

	t.Run("copies input records", func(t *testing.T) {
		records := testutil.SampleTransactions()
		ds := testutil.NewDataset(t, records)

		records[0].Revenue = -1
		assert.InDelta(t, 1600.0, ds.At(0).Revenue, 1e-9)

		copied := ds.Records()
		copied[0].Product = "changed"
		assert.Equal(t, "Laptop", ds.At(0).Product)
	})

	t.Run("computes date range", func(t *testing.T) {
		ds := testutil.SampleDataset(t)

		lo, hi := ds.DateRange()
		assert.Equal(t, testutil.MustDate("2025-01-15"), lo)
		assert.Equal(t, testutil.MustDate("2026-04-30"), hi)
		assert.Equal(t, 8, ds.Quality().Rows)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := dataset.New(nil, dataset.Quality{})
		assert.ErrorIs(t, err, errors.ErrEmptyDataset)
	})

	t.Run("iterates in source order", func(t *testing.T) {
		ds := testutil.SampleDataset(t)

		var ids []string
		for _, tx := range ds.All() {
			ids = append(ids, tx.OrderID)
			if len(ids) == 3 {
				break
			}
		}
		assert.Equal(t, []string{"O-1001", "O-1002", "O-1003"}, ids)
	})
}

func TestTransactionKey(t *testing.T) {
	tx := dataset.Transaction{Product: "Laptop", Region: "", Missing: dataset.ColRegion}

	assert.Equal(t, "Laptop", tx.Key(dataset.ColProduct))
	assert.Equal(t, dataset.UnknownKey, tx.Key(dataset.ColRegion))
	assert.True(t, tx.Has(dataset.ColProduct))
	assert.False(t, tx.Has(dataset.ColRegion))
}

func TestAssess(t *testing.T) {
	header := []string{"Order_ID", "Region", "Revenue"}
	rows := [][]string{
		{"1", "East", "10"},
		{"2", "", "20"},
		{"1", "East", "10"},
		{"3", " ", ""},
		{"1", "East", "10"},
		{"4"},
	}

	q := dataset.Assess(header, rows)

	assert.Equal(t, 3, q.Columns)
	assert.Equal(t, []dataset.MissingCount{
		{Column: "Order_ID", Count: 0},
		{Column: "Region", Count: 3},
		{Column: "Revenue", Count: 2},
	}, q.Missing)
	assert.Equal(t, 5, q.MissingTotal())
	assert.Len(t, q.MissingColumns(), 2)
	assert.Equal(t, 2, q.Duplicates)
}

func TestCountDuplicates(t *testing.T) {
	t.Run("no duplicates", func(t *testing.T) {
		assert.Zero(t, dataset.CountDuplicates([][]string{{"a", "b"}, {"a", "c"}, {"ab", ""}}))
	})

	t.Run("cell boundaries are significant", func(t *testing.T) {
		assert.Zero(t, dataset.CountDuplicates([][]string{{"ab", "c"}, {"a", "bc"}}))
	})

	t.Run("counts every repeat after the first", func(t *testing.T) {
		rows := [][]string{{"x"}, {"x"}, {"x"}, {"y"}, {"y"}}
		assert.Equal(t, 3, dataset.CountDuplicates(rows))
	})
}

func TestRecord(t *testing.T) {
	records := testutil.SampleTransactions()
	records[1].Region = ""
	records[1].Missing = dataset.ColRegion | dataset.ColRevenue
	ds := testutil.NewDataset(t, records)

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec := ds.Record(mem)
	defer rec.Release()

	assert.Equal(t, int64(8), rec.NumRows())
	assert.Equal(t, int64(15), rec.NumCols())
	assert.True(t, rec.Schema().Equal(dataset.Schema))

	region := rec.Column(4).(*array.String)
	assert.Equal(t, "East", region.Value(0))
	assert.True(t, region.IsNull(1))

	revenue := rec.Column(9).(*array.Float64)
	assert.InDelta(t, 1600.0, revenue.Value(0), 1e-9)
	assert.True(t, revenue.IsNull(1))

	months := rec.Column(13).(*array.String)
	assert.Equal(t, "April", months.Value(7))
}
