package analysis

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money formats v as dollars with thousands separators and two decimals.
func Money(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

// WholeMoney formats v as dollars rounded to whole units.
func WholeMoney(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.0f", -v)
	}
	return printer.Sprintf("$%.0f", v)
}

// Count formats n with thousands separators.
func Count[T ~int | ~int64](n T) string {
	return printer.Sprintf("%d", int64(n))
}

// MoneyRatio formats a defined ratio as Money, or "undefined".
func MoneyRatio(r Ratio) string {
	if !r.Defined() {
		return "undefined"
	}
	return Money(r.Value)
}
