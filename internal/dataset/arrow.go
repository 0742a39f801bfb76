package dataset

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Schema is the Arrow schema of the enriched dataset. Source fields are
// nullable; calendar fields are always present.
var Schema = arrow.NewSchema([]arrow.Field{
	{Name: "order_id", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "date", Type: arrow.FixedWidthTypes.Date32},
	{Name: "product", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "category", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "region", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "customer_segment", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "sales_channel", Type: arrow.BinaryTypes.String, Nullable: true},
	{Name: "quantity", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
	{Name: "unit_price", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	{Name: "revenue", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	{Name: "year", Type: arrow.PrimitiveTypes.Int32},
	{Name: "quarter", Type: arrow.PrimitiveTypes.Int32},
	{Name: "month", Type: arrow.PrimitiveTypes.Int32},
	{Name: "month_name", Type: arrow.BinaryTypes.String},
	{Name: "week", Type: arrow.PrimitiveTypes.Int32},
}, nil)

// Record builds an Arrow record of the enriched dataset. The caller owns the
// record and must Release it.
func (d *Dataset) Record(mem memory.Allocator) arrow.Record {
	b := array.NewRecordBuilder(mem, Schema)
	defer b.Release()

	strs := func(i int) *array.StringBuilder { return b.Field(i).(*array.StringBuilder) }
	i32s := func(i int) *array.Int32Builder { return b.Field(i).(*array.Int32Builder) }
	dates := b.Field(1).(*array.Date32Builder)
	qty := b.Field(7).(*array.Int64Builder)
	price := b.Field(8).(*array.Float64Builder)
	revenue := b.Field(9).(*array.Float64Builder)

	appendString := func(sb *array.StringBuilder, t Transaction, c Column, v string) {
		if t.Has(c) {
			sb.Append(v)
		} else {
			sb.AppendNull()
		}
	}

	for _, t := range d.records {
		appendString(strs(0), t, ColOrderID, t.OrderID)
		dates.Append(arrow.Date32FromTime(t.Date))
		appendString(strs(2), t, ColProduct, t.Product)
		appendString(strs(3), t, ColCategory, t.Category)
		appendString(strs(4), t, ColRegion, t.Region)
		appendString(strs(5), t, ColSegment, t.Segment)
		appendString(strs(6), t, ColChannel, t.Channel)

		if t.Has(ColQuantity) {
			qty.Append(t.Quantity)
		} else {
			qty.AppendNull()
		}
		if t.Has(ColUnitPrice) {
			price.Append(t.UnitPrice)
		} else {
			price.AppendNull()
		}
		if t.Has(ColRevenue) {
			revenue.Append(t.Revenue)
		} else {
			revenue.AppendNull()
		}

		i32s(10).Append(int32(t.Calendar.Year))    //nolint:gosec // calendar years fit in int32
		i32s(11).Append(int32(t.Calendar.Quarter)) //nolint:gosec // 1..4
		i32s(12).Append(int32(t.Calendar.Month))   //nolint:gosec // 1..12
		strs(13).Append(t.Calendar.MonthName)
		i32s(14).Append(int32(t.Calendar.Week)) //nolint:gosec // 1..53
	}

	return b.NewRecord()
}
