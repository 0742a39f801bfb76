// Package testutil provides shared fixtures for the sales analysis tests:
// a small, hand-checked transaction set, its CSV rendering and helpers that
// write fixtures to a temporary directory.
//
// The sample set has eight orders across five products, four regions and
// seven months in 2025-2026. Its totals are:
//   - revenue 4750, units 28, orders 8
//   - top product Laptop (2400), top region East (2800, 58.95% share)
//   - seasonal peak February (mean 900), trough July (mean 200)
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/paveg/salesinsight/internal/dataset"
	"github.com/stretchr/testify/require"
)

// Header is the canonical header row of the sample CSV.
const Header = "Order_ID,Date,Product,Category,Region,Customer_Segment,Sales_Channel,Quantity,Unit_Price,Revenue"

// SampleOption configures the sample transaction set.
type SampleOption func(*sampleConfig)

type sampleConfig struct {
	repeat int
}

// WithRepeat repeats the eight sample orders n times with distinct order IDs.
func WithRepeat(n int) SampleOption {
	return func(cfg *sampleConfig) {
		cfg.repeat = n
	}
}

var sampleRows = []struct {
	date                                        string
	product, category, region, segment, channel string
	qty                                         int64
	price, revenue                              float64
}{
	{"2025-01-15", "Laptop", "Electronics", "East", "Enterprise", "Online", 2, 800, 1600},
	{"2025-01-20", "Mouse", "Accessories", "West", "Individual", "Retail", 5, 20, 100},
	{"2025-02-03", "Laptop", "Electronics", "West", "Enterprise", "Online", 1, 800, 800},
	{"2025-04-11", "Monitor", "Electronics", "North", "SMB", "Online", 2, 250, 500},
	{"2025-07-04", "Mouse", "Accessories", "East", "Individual", "Retail", 10, 20, 200},
	{"2026-01-09", "Desk", "Furniture", "South", "SMB", "Wholesale", 1, 400, 400},
	{"2026-02-14", "Monitor", "Electronics", "East", "Enterprise", "Retail", 4, 250, 1000},
	{"2026-04-30", "Keyboard", "Accessories", "North", "Individual", "Online", 3, 50, 150},
}

// SampleTransactions returns the sample orders as un-enriched transactions.
func SampleTransactions(opts ...SampleOption) []dataset.Transaction {
	cfg := &sampleConfig{repeat: 1}
	for _, opt := range opts {
		opt(cfg)
	}

	out := make([]dataset.Transaction, 0, len(sampleRows)*cfg.repeat)
	for rep := range cfg.repeat {
		for i, r := range sampleRows {
			out = append(out, dataset.Transaction{
				OrderID:   fmt.Sprintf("O-%d", 1001+rep*len(sampleRows)+i),
				Date:      MustDate(r.date),
				Product:   r.product,
				Category:  r.category,
				Region:    r.region,
				Segment:   r.segment,
				Channel:   r.channel,
				Quantity:  r.qty,
				UnitPrice: r.price,
				Revenue:   r.revenue,
			})
		}
	}
	return out
}

// SampleCSV renders the sample orders as CSV text with the canonical header.
func SampleCSV(opts ...SampleOption) string {
	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString("\n")
	for _, t := range SampleTransactions(opts...) {
		sb.WriteString(strings.Join([]string{
			t.OrderID,
			t.Date.Format(time.DateOnly),
			t.Product,
			t.Category,
			t.Region,
			t.Segment,
			t.Channel,
			strconv.FormatInt(t.Quantity, 10),
			strconv.FormatFloat(t.UnitPrice, 'f', -1, 64),
			strconv.FormatFloat(t.Revenue, 'f', -1, 64),
		}, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

// NewDataset builds an enriched dataset from records, failing the test on error.
func NewDataset(tb testing.TB, records []dataset.Transaction) *dataset.Dataset {
	tb.Helper()

	ds, err := dataset.New(records, dataset.Quality{Columns: len(dataset.Columns), Header: dataset.ColumnNames()})
	require.NoError(tb, err)
	return ds
}

// SampleDataset returns the enriched sample dataset.
func SampleDataset(tb testing.TB, opts ...SampleOption) *dataset.Dataset {
	tb.Helper()
	return NewDataset(tb, SampleTransactions(opts...))
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// MustDate parses a YYYY-MM-DD date in UTC and panics on error.
func MustDate(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}
