package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/paveg/salesinsight/internal/dataset"
	"github.com/paveg/salesinsight/internal/errors"
)

const opTemporal = "AggregateTemporal"

// MonthRow is the aggregate of one calendar month of one year.
type MonthRow struct {
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	MonthName string     `json:"month_name"`
	Revenue   float64    `json:"revenue"`
	Orders    int        `json:"orders"`
}

// Label renders the month as YYYY-MM.
func (m MonthRow) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// QuarterRow is the aggregate of one quarter of one year.
type QuarterRow struct {
	Year    int     `json:"year"`
	Quarter int     `json:"quarter"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// MonthMean is the mean revenue of a calendar month across all years.
type MonthMean struct {
	Month time.Month `json:"month"`
	Name  string     `json:"name"`
	Mean  NullFloat  `json:"mean_revenue"`
	Rows  int        `json:"rows"`
}

// DailyCount is the number of orders placed on one date.
type DailyCount struct {
	Date   time.Time `json:"date"`
	Orders int       `json:"orders"`
}

// QuarterPivot is quarterly revenue laid out as quarter rows by year columns.
type QuarterPivot struct {
	Quarters []int
	Years    []int
	Cells    [][]NullFloat // Cells[quarter index][year index]
}

// Value returns the cell for quarter q of year y.
func (p QuarterPivot) Value(q, y int) NullFloat {
	qi := slices.Index(p.Quarters, q)
	yi := slices.Index(p.Years, y)
	if qi < 0 || yi < 0 {
		return NullFloat{}
	}
	return p.Cells[qi][yi]
}

// TemporalView holds the time-based breakdowns of a dataset.
type TemporalView struct {
	monthly     []MonthRow
	quarterly   []QuarterRow
	seasonality [12]MonthMean
	daily       []DailyCount
}

type yearMonth struct {
	year  int
	month time.Month
}

type yearQuarter struct {
	year, quarter int
}

// AggregateTemporal groups ds by month, quarter, calendar month and date.
func AggregateTemporal(ds *dataset.Dataset) *TemporalView {
	t := &TemporalView{}

	months := GroupBy(ds, func(tx dataset.Transaction) yearMonth {
		return yearMonth{tx.Calendar.Year, tx.Calendar.Month}
	}).SortedBy(func(a, b Group[yearMonth]) int {
		return cmp.Or(cmp.Compare(a.Key.year, b.Key.year), cmp.Compare(a.Key.month, b.Key.month))
	})
	t.monthly = make([]MonthRow, len(months))
	for i, g := range months {
		t.monthly[i] = MonthRow{
			Year:      g.Key.year,
			Month:     g.Key.month,
			MonthName: g.Key.month.String(),
			Revenue:   g.Revenue,
			Orders:    g.Orders,
		}
	}

	quarters := GroupBy(ds, func(tx dataset.Transaction) yearQuarter {
		return yearQuarter{tx.Calendar.Year, tx.Calendar.Quarter}
	}).SortedBy(func(a, b Group[yearQuarter]) int {
		return cmp.Or(cmp.Compare(a.Key.year, b.Key.year), cmp.Compare(a.Key.quarter, b.Key.quarter))
	})
	t.quarterly = make([]QuarterRow, len(quarters))
	for i, g := range quarters {
		t.quarterly[i] = QuarterRow{Year: g.Key.year, Quarter: g.Key.quarter, Revenue: g.Revenue, Orders: g.Orders}
	}

	season := GroupBy(ds, func(tx dataset.Transaction) time.Month { return tx.Calendar.Month })
	for i := range t.seasonality {
		m := time.Month(i + 1)
		t.seasonality[i] = MonthMean{Month: m, Name: m.String()}
		if g, ok := season.Lookup(m); ok {
			t.seasonality[i].Mean = g.MeanRevenue()
			t.seasonality[i].Rows = g.Rows
		}
	}

	days := GroupBy(ds, func(tx dataset.Transaction) time.Time { return tx.Date }).
		SortedBy(func(a, b Group[time.Time]) int { return a.Key.Compare(b.Key) })
	t.daily = make([]DailyCount, len(days))
	for i, g := range days {
		t.daily[i] = DailyCount{Date: g.Key, Orders: g.Orders}
	}
	return t
}

// Monthly returns every month with sales, chronologically.
func (t *TemporalView) Monthly() []MonthRow {
	return slices.Clone(t.monthly)
}

// LastMonths returns the trailing n rows of Monthly.
func (t *TemporalView) LastMonths(n int) []MonthRow {
	n = max(0, min(n, len(t.monthly)))
	return slices.Clone(t.monthly[len(t.monthly)-n:])
}

// Quarterly returns every quarter with sales, chronologically.
func (t *TemporalView) Quarterly() []QuarterRow {
	return slices.Clone(t.quarterly)
}

// Pivot lays out Quarterly with quarters as rows and years as columns.
func (t *TemporalView) Pivot() QuarterPivot {
	var p QuarterPivot
	for _, q := range t.quarterly {
		if !slices.Contains(p.Years, q.Year) {
			p.Years = append(p.Years, q.Year)
		}
		if !slices.Contains(p.Quarters, q.Quarter) {
			p.Quarters = append(p.Quarters, q.Quarter)
		}
	}
	slices.Sort(p.Years)
	slices.Sort(p.Quarters)

	p.Cells = make([][]NullFloat, len(p.Quarters))
	for i := range p.Cells {
		p.Cells[i] = make([]NullFloat, len(p.Years))
	}
	for _, q := range t.quarterly {
		qi := slices.Index(p.Quarters, q.Quarter)
		yi := slices.Index(p.Years, q.Year)
		p.Cells[qi][yi] = NullFloat{Float64: q.Revenue, Valid: true}
	}
	return p
}

// Seasonality returns the mean revenue of each calendar month, January first.
func (t *TemporalView) Seasonality() [12]MonthMean {
	return t.seasonality
}

// Present returns the calendar months that have a defined mean.
func (t *TemporalView) Present() []MonthMean {
	var out []MonthMean
	for _, m := range t.seasonality {
		if m.Mean.Valid {
			out = append(out, m)
		}
	}
	return out
}

// Daily returns the order count of each date with sales, ascending.
func (t *TemporalView) Daily() []DailyCount {
	return slices.Clone(t.daily)
}

// Peak returns the calendar month with the highest mean revenue.
func (t *TemporalView) Peak() (MonthMean, error) {
	return t.extreme("peak_month", func(a, b float64) bool { return a > b })
}

// Trough returns the calendar month with the lowest mean revenue.
func (t *TemporalView) Trough() (MonthMean, error) {
	return t.extreme("trough_month", func(a, b float64) bool { return a < b })
}

// extreme scans in calendar order and only replaces on a strict improvement,
// so the earliest month wins a tie.
func (t *TemporalView) extreme(metric string, better func(a, b float64) bool) (MonthMean, error) {
	var (
		best  MonthMean
		found bool
	)
	for _, m := range t.seasonality {
		if !m.Mean.Valid {
			continue
		}
		if !found || better(m.Mean.Float64, best.Mean.Float64) {
			best, found = m, true
		}
	}
	if !found {
		return MonthMean{}, errors.NewUndefinedError(opTemporal, metric, "no month has revenue")
	}
	return best, nil
}
