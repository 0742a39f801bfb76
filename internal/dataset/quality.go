package dataset

import (
	"slices"
	"strings"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
)

// MissingCount is the number of empty cells found in one source column.
type MissingCount struct {
	Column string
	Count  int
}

// Quality summarizes the shape and completeness of a loaded file.
type Quality struct {
	Rows       int
	Columns    int
	Header     []string
	MinDate    time.Time
	MaxDate    time.Time
	Missing    []MissingCount // one entry per header column, in header order
	Duplicates int
}

// MissingTotal returns the number of empty cells across all columns.
func (q Quality) MissingTotal() int {
	total := 0
	for _, m := range q.Missing {
		total += m.Count
	}
	return total
}

// MissingColumns returns only the columns with at least one empty cell.
func (q Quality) MissingColumns() []MissingCount {
	var out []MissingCount
	for _, m := range q.Missing {
		if m.Count > 0 {
			out = append(out, m)
		}
	}
	return out
}

func (q Quality) clone() Quality {
	q.Header = slices.Clone(q.Header)
	q.Missing = slices.Clone(q.Missing)
	return q
}

// Assess computes missing-cell counts and the duplicate-row count over the raw
// source rows. Rows and date range are filled in by New.
func Assess(header []string, rows [][]string) Quality {
	missing := make([]MissingCount, len(header))
	for i, name := range header {
		missing[i].Column = name
	}
	for _, row := range rows {
		for i := range header {
			if i >= len(row) || IsMissing(row[i]) {
				missing[i].Count++
			}
		}
	}

	return Quality{
		Columns:    len(header),
		Header:     slices.Clone(header),
		Missing:    missing,
		Duplicates: CountDuplicates(rows),
	}
}

// naTokens are the cell values treated as missing.
var naTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "NULL": {}, "null": {}, "None": {},
}

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(cell string) bool {
	_, ok := naTokens[strings.TrimSpace(cell)]
	return ok
}

// CountDuplicates returns the number of rows identical to an earlier row.
// Rows are bucketed by xxhash and compared cell by cell within a bucket.
func CountDuplicates(rows [][]string) int {
	buckets := make(map[uint64][]int, len(rows))
	duplicates := 0

	for i, row := range rows {
		h := hashRow(row)
		seen := false
		for _, j := range buckets[h] {
			if slices.Equal(rows[j], row) {
				seen = true
				break
			}
		}
		if seen {
			duplicates++
			continue
		}
		buckets[h] = append(buckets[h], i)
	}
	return duplicates
}

func hashRow(row []string) uint64 {
	d := xxhash.New()
	for _, cell := range row {
		_, _ = d.WriteString(cell)
		_, _ = d.Write([]byte{0x1f})
	}
	return d.Sum64()
}
