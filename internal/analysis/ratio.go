package analysis

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/paveg/salesinsight/internal/errors"
	"golang.org/x/exp/constraints"
)

// Ratio is a derived value that may be undefined. When Err is non-nil the
// value is meaningless and Err matches errors.ErrUndefined.
type Ratio struct {
	Value float64
	Err   error
}

// Defined reports whether the ratio has a value.
func (r Ratio) Defined() bool {
	return r.Err == nil
}

// Format renders the value with format, or "undefined".
func (r Ratio) Format(format string) string {
	if !r.Defined() {
		return "undefined"
	}
	return fmt.Sprintf(format, r.Value)
}

// MarshalJSON encodes an undefined ratio as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// NullFloat is an optional number, used where absence must not read as zero.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// MarshalJSON encodes an invalid value as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

func divide(op, metric string, num, den float64) Ratio {
	if den == 0 {
		return Ratio{Err: errors.NewUndefinedError(op, metric, "denominator is zero")}
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Ratio{Err: errors.NewUndefinedError(op, metric, "result is not finite")}
	}
	return Ratio{Value: v}
}

func mean[T constraints.Integer | constraints.Float](op, metric string, total T, n int) Ratio {
	if n == 0 {
		return Ratio{Err: errors.NewUndefinedError(op, metric, "no values to average")}
	}
	return divide(op, metric, float64(total), float64(n))
}
