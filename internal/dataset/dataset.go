package dataset

import (
	"iter"
	"time"

	"github.com/paveg/salesinsight/internal/errors"
)

// Dataset is an ordered, enriched and read-only set of transactions.
type Dataset struct {
	records []Transaction
	quality Quality
}

// New enriches records with calendar fields and returns the dataset. The
// input slice is copied; later changes to it do not affect the dataset.
func New(records []Transaction, quality Quality) (*Dataset, error) {
	if len(records) == 0 {
		return nil, errors.ErrEmptyDataset
	}

	enriched := make([]Transaction, len(records))
	for i, r := range records {
		r.Calendar = NewCalendar(r.Date)
		enriched[i] = r
	}

	quality.Rows = len(enriched)
	quality.MinDate, quality.MaxDate = dateRange(enriched)
	return &Dataset{records: enriched, quality: quality}, nil
}

// Len returns the number of transactions.
func (d *Dataset) Len() int {
	return len(d.records)
}

// At returns the i-th transaction.
func (d *Dataset) At(i int) Transaction {
	return d.records[i]
}

// All iterates the transactions in source order.
func (d *Dataset) All() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, r := range d.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Records returns a copy of the transactions.
func (d *Dataset) Records() []Transaction {
	out := make([]Transaction, len(d.records))
	copy(out, d.records)
	return out
}

// Quality returns the data-quality report computed at load time.
func (d *Dataset) Quality() Quality {
	return d.quality.clone()
}

// DateRange returns the earliest and latest transaction dates.
func (d *Dataset) DateRange() (time.Time, time.Time) {
	return d.quality.MinDate, d.quality.MaxDate
}

func dateRange(records []Transaction) (time.Time, time.Time) {
	lo, hi := records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(lo) {
			lo = r.Date
		}
		if r.Date.After(hi) {
			hi = r.Date
		}
	}
	return lo, hi
}
