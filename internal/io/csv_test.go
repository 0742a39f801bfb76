package io_test

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paveg/salesinsight/internal/dataset"
	"github.com/paveg/salesinsight/internal/errors"
	sio "github.com/paveg/salesinsight/internal/io"
	"github.com/paveg/salesinsight/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, content string) (*dataset.Dataset, error) {
	t.Helper()
	return sio.NewTransactionReader(strings.NewReader(content), sio.DefaultCSVOptions()).Read()
}

func TestTransactionReaderRead(t *testing.T) {
	t.Run("sample file", func(t *testing.T) {
		ds, err := read(t, testutil.SampleCSV())
		require.NoError(t, err)

		assert.Equal(t, 8, ds.Len())
		assert.Equal(t, testutil.SampleTransactions()[0].OrderID, ds.At(0).OrderID)
		assert.Equal(t, testutil.MustDate("2025-01-15"), ds.At(0).Date)
		assert.Equal(t, int64(2), ds.At(0).Quantity)
		assert.InDelta(t, 1600.0, ds.At(0).Revenue, 1e-9)

		q := ds.Quality()
		assert.Equal(t, 8, q.Rows)
		assert.Equal(t, 10, q.Columns)
		assert.Zero(t, q.MissingTotal())
		assert.Zero(t, q.Duplicates)
	})

	t.Run("extra columns and byte order mark", func(t *testing.T) {
		content := "\ufeff" + strings.Replace(testutil.SampleCSV(), "\n", ",Notes\n", 1)
		ds, err := read(t, content)
		require.NoError(t, err)
		assert.Equal(t, 8, ds.Len())
		assert.Equal(t, "Laptop", ds.At(0).Product)
	})

	t.Run("alternate date layouts", func(t *testing.T) {
		content := testutil.Header + "\n" +
			"O-1,2025/03/04,A,C,East,SMB,Online,1,10,10\n" +
			"O-2,03/05/2025,A,C,East,SMB,Online,1,10,10\n" +
			"O-3,2025-03-06 14:30:00,A,C,East,SMB,Online,1,10,10\n"
		ds, err := read(t, content)
		require.NoError(t, err)
		assert.Equal(t, testutil.MustDate("2025-03-04"), ds.At(0).Date)
		assert.Equal(t, testutil.MustDate("2025-03-05"), ds.At(1).Date)
		assert.Equal(t, testutil.MustDate("2025-03-06"), ds.At(2).Date)
	})

	t.Run("missing values", func(t *testing.T) {
		content := testutil.Header + "\n" +
			"O-1,2025-03-04,A,,NA,SMB,Online,,10,\n" +
			",2025-03-05,B,C,East,null,Online,2,N/A,20\n"
		ds, err := read(t, content)
		require.NoError(t, err)

		first := ds.At(0)
		assert.False(t, first.Has(dataset.ColCategory))
		assert.False(t, first.Has(dataset.ColRegion))
		assert.False(t, first.Has(dataset.ColQuantity))
		assert.False(t, first.Has(dataset.ColRevenue))
		assert.Equal(t, dataset.UnknownKey, first.Key(dataset.ColRegion))

		second := ds.At(1)
		assert.False(t, second.Has(dataset.ColOrderID))
		assert.False(t, second.Has(dataset.ColSegment))
		assert.False(t, second.Has(dataset.ColUnitPrice))

		assert.Equal(t, 7, ds.Quality().MissingTotal())
	})

	t.Run("integral float quantity", func(t *testing.T) {
		ds, err := read(t, testutil.Header+"\nO-1,2025-03-04,A,C,East,SMB,Online,3.0,10,30\n")
		require.NoError(t, err)
		assert.Equal(t, int64(3), ds.At(0).Quantity)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		opts := sio.DefaultCSVOptions()
		opts.Delimiter = ';'
		content := strings.ReplaceAll(testutil.SampleCSV(), ",", ";")
		ds, err := sio.NewTransactionReader(strings.NewReader(content), opts).Read()
		require.NoError(t, err)
		assert.Equal(t, 8, ds.Len())
	})

	t.Run("duplicates are counted", func(t *testing.T) {
		row := "O-1,2025-03-04,A,C,East,SMB,Online,1,10,10\n"
		ds, err := read(t, testutil.Header+"\n"+row+row+row)
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Quality().Duplicates)
	})
}

func TestTransactionReaderErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		target   error
		contains []string
	}{
		{
			name:    "empty file",
			content: "",
			target:  errors.ErrEmptyDataset,
		},
		{
			name:    "header only",
			content: testutil.Header + "\n",
			target:  errors.ErrEmptyDataset,
		},
		{
			name:     "unparseable date",
			content:  testutil.Header + "\nO-1,2025-03-04,A,C,East,SMB,Online,1,10,10\nO-2,not-a-date,A,C,East,SMB,Online,1,10,10\n",
			contains: []string{"line 3", "not-a-date", "Date"},
		},
		{
			name:     "empty date",
			content:  testutil.Header + "\nO-1,,A,C,East,SMB,Online,1,10,10\n",
			contains: []string{"line 2", "Date"},
		},
		{
			name:     "unparseable revenue",
			content:  testutil.Header + "\nO-1,2025-03-04,A,C,East,SMB,Online,1,10,ten\n",
			contains: []string{"line 2", "Revenue", `"ten"`},
		},
		{
			name:     "fractional quantity",
			content:  testutil.Header + "\nO-1,2025-03-04,A,C,East,SMB,Online,1.5,10,15\n",
			contains: []string{"Quantity", `"1.5"`},
		},
		{
			name:     "infinite price",
			content:  testutil.Header + "\nO-1,2025-03-04,A,C,East,SMB,Online,1,Inf,10\n",
			contains: []string{"Unit_Price"},
		},
		{
			name:     "nan revenue",
			content:  testutil.Header + "\nO-1,2025-03-04,A,C,East,SMB,Online,1,50,NAN\n",
			contains: []string{"line 2", "Revenue", `"NAN"`},
		},
		{
			name:     "signed nan price",
			content:  testutil.Header + "\nO-1,2025-03-04,A,C,East,SMB,Online,1,-nan,50\n",
			contains: []string{"line 2", "Unit_Price", `"-nan"`},
		},
		{
			name:     "missing column",
			content:  strings.Replace(testutil.Header, "Revenue", "revenue", 1) + "\nO-1,2025-03-04,A,C,East,SMB,Online,1,10,10\n",
			contains: []string{"Revenue", "did you mean 'revenue'?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := read(t, tt.content)
			require.Error(t, err)
			assert.Nil(t, ds)

			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			var ae *errors.AnalysisError
			require.True(t, stderrors.As(err, &ae))
			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Run("reads from disk", func(t *testing.T) {
		path := testutil.WriteFile(t, t.TempDir(), "sales.csv", testutil.SampleCSV())
		ds, err := sio.ReadFile(path, sio.DefaultCSVOptions())
		require.NoError(t, err)
		assert.Equal(t, 8, ds.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := sio.ReadFile(filepath.Join(t.TempDir(), "absent.csv"), sio.DefaultCSVOptions())
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrMissingInput)
	})
}

func TestHeader(t *testing.T) {
	h := sio.Header{"Order_ID", "Date"}
	assert.True(t, h.HasColumn("Date"))
	assert.False(t, h.HasColumn("date"))
	assert.Equal(t, 1, h.Index("Date"))
	assert.Equal(t, -1, h.Index("Revenue"))
	assert.Equal(t, []string{"Order_ID", "Date"}, h.Columns())
}
