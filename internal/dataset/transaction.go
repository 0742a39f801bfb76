// Package dataset holds the typed, immutable representation of a loaded
// transaction file. Calendar fields are derived once when the dataset is
// built and never recomputed, so every aggregation over a Dataset sees the
// same enrichment.
package dataset

import (
	"time"
)

// Column identifies one of the source fields. Values are bit flags so that a
// Transaction can record which cells were empty in a single word.
type Column uint16

const (
	ColOrderID Column = 1 << iota
	ColDate
	ColProduct
	ColCategory
	ColRegion
	ColSegment
	ColChannel
	ColQuantity
	ColUnitPrice
	ColRevenue
)

// UnknownKey is the grouping key used for records whose key cell is empty.
const UnknownKey = "(unknown)"

// Columns lists the required source fields in canonical header order.
var Columns = []Column{
	ColOrderID, ColDate, ColProduct, ColCategory, ColRegion,
	ColSegment, ColChannel, ColQuantity, ColUnitPrice, ColRevenue,
}

var columnNames = map[Column]string{
	ColOrderID:   "Order_ID",
	ColDate:      "Date",
	ColProduct:   "Product",
	ColCategory:  "Category",
	ColRegion:    "Region",
	ColSegment:   "Customer_Segment",
	ColChannel:   "Sales_Channel",
	ColQuantity:  "Quantity",
	ColUnitPrice: "Unit_Price",
	ColRevenue:   "Revenue",
}

// String returns the header name of the column.
func (c Column) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return "unknown"
}

// ColumnNames returns the required header names in canonical order.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.String()
	}
	return names
}

// Calendar carries the date-derived fields used for temporal grouping.
type Calendar struct {
	Year      int
	Quarter   int
	Month     time.Month
	MonthName string
	Week      int // ISO 8601 week number
}

// NewCalendar derives the calendar fields of d.
func NewCalendar(d time.Time) Calendar {
	_, week := d.ISOWeek()
	return Calendar{
		Year:      d.Year(),
		Quarter:   (int(d.Month())-1)/3 + 1,
		Month:     d.Month(),
		MonthName: d.Month().String(),
		Week:      week,
	}
}

// Transaction is one row of the source file.
type Transaction struct {
	OrderID   string
	Date      time.Time
	Product   string
	Category  string
	Region    string
	Segment   string
	Channel   string
	Quantity  int64
	UnitPrice float64
	// Revenue is taken as stored; it is never reconciled against Quantity*UnitPrice.
	Revenue float64

	Calendar Calendar
	Missing  Column
}

// Has reports whether the cell for c was present in the source.
func (t Transaction) Has(c Column) bool {
	return t.Missing&c == 0
}

// Key returns the grouping key for a string column, substituting UnknownKey
// when the cell was empty.
func (t Transaction) Key(c Column) string {
	if !t.Has(c) {
		return UnknownKey
	}
	switch c {
	case ColOrderID:
		return t.OrderID
	case ColProduct:
		return t.Product
	case ColCategory:
		return t.Category
	case ColRegion:
		return t.Region
	case ColSegment:
		return t.Segment
	case ColChannel:
		return t.Channel
	default:
		return UnknownKey
	}
}
