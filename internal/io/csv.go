package io

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/paveg/salesinsight/internal/dataset"
	"github.com/paveg/salesinsight/internal/errors"
	"github.com/paveg/salesinsight/internal/validation"
)

const utf8BOM = "\ufeff"

// Header is the trimmed header row of a transaction file.
type Header []string

// HasColumn reports whether name is present in the header
func (h Header) HasColumn(name string) bool {
	return slices.Contains(h, name)
}

// Columns returns the header names
func (h Header) Columns() []string {
	return h
}

// Index returns the position of name, or -1
func (h Header) Index(name string) int {
	return slices.Index(h, name)
}

// ReadFile opens path and reads it with a TransactionReader. An absent file
// is reported as errors.ErrMissingInput.
func ReadFile(path string, options CSVOptions) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewMissingInputError(path)
		}
		return nil, errors.NewLoadError("Open", 0, "cannot open input file", err)
	}
	defer f.Close()

	return NewTransactionReader(f, options).Read()
}

// Read reads the transaction file and returns the enriched dataset. Any row
// with an unparseable date or number fails the whole read.
func (r *TransactionReader) Read() (*dataset.Dataset, error) {
	csvReader := csv.NewReader(r.reader)
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment
	csvReader.TrimLeadingSpace = r.options.SkipInitialSpace
	csvReader.FieldsPerRecord = -1

	first, err := csvReader.Read()
	if err == io.EOF {
		return nil, errors.ErrEmptyDataset
	}
	if err != nil {
		return nil, errors.NewLoadError("ReadHeader", 1, "reading header", err)
	}

	header := make(Header, len(first))
	for i, name := range first {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
	}
	if err := validation.ValidateColumns(header, "ReadHeader", dataset.ColumnNames()...); err != nil {
		return nil, err
	}

	idx := make(map[dataset.Column]int, len(dataset.Columns))
	for _, c := range dataset.Columns {
		idx[c] = header.Index(c.String())
	}

	var (
		rows    [][]string
		records []dataset.Transaction
	)
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewLoadError("ReadRow", 0, "malformed CSV", err)
		}
		line, _ := csvReader.FieldPos(0)

		tx, err := r.parseRow(row, idx, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		records = append(records, tx)
	}

	return dataset.New(records, dataset.Assess(header, rows))
}

func (r *TransactionReader) parseRow(row []string, idx map[dataset.Column]int, line int) (dataset.Transaction, error) {
	var tx dataset.Transaction

	cell := func(c dataset.Column) (string, bool) {
		i := idx[c]
		if i >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[i])
		return v, !dataset.IsMissing(v)
	}
	text := func(c dataset.Column, dst *string) {
		v, ok := cell(c)
		if !ok {
			tx.Missing |= c
			return
		}
		*dst = v
	}

	raw, _ := cell(dataset.ColDate)
	date, err := parseDate(raw, r.options.DateLayouts)
	if err != nil {
		return tx, errors.NewDateParseError(line, raw, err)
	}
	tx.Date = date

	text(dataset.ColOrderID, &tx.OrderID)
	text(dataset.ColProduct, &tx.Product)
	text(dataset.ColCategory, &tx.Category)
	text(dataset.ColRegion, &tx.Region)
	text(dataset.ColSegment, &tx.Segment)
	text(dataset.ColChannel, &tx.Channel)

	if v, ok := cell(dataset.ColQuantity); ok {
		q, err := parseQuantity(v)
		if err != nil {
			return tx, numberError(line, dataset.ColQuantity, v, err)
		}
		tx.Quantity = q
	} else {
		tx.Missing |= dataset.ColQuantity
	}

	for _, f := range []struct {
		col dataset.Column
		dst *float64
	}{
		{dataset.ColUnitPrice, &tx.UnitPrice},
		{dataset.ColRevenue, &tx.Revenue},
	} {
		v, ok := cell(f.col)
		if !ok {
			tx.Missing |= f.col
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			if err == nil {
				err = fmt.Errorf("non-finite value")
			}
			return tx, numberError(line, f.col, v, err)
		}
		*f.dst = n
	}

	return tx, nil
}

// parseDate returns the calendar date of value under the first matching
// layout, normalized to midnight UTC.
func parseDate(value string, layouts []string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout of %q matched", layouts)
}

// parseQuantity accepts integers and integral floats such as "3.0".
func parseQuantity(value string) (int64, error) {
	if q, err := strconv.ParseInt(value, 10, 64); err == nil {
		return q, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("quantity must be a whole number")
	}
	return int64(f), nil
}

func numberError(line int, c dataset.Column, value string, cause error) *errors.AnalysisError {
	return &errors.AnalysisError{
		Op:      "ParseNumber",
		Column:  c.String(),
		Line:    line,
		Message: fmt.Sprintf("cannot parse %q", value),
		Cause:   cause,
	}
}
