package export

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const centPlaces = 2

var printer = message.NewPrinter(language.English)

// Cents rounds v to the nearest cent, half away from zero, on its shortest
// decimal representation.
func Cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(centPlaces)
}

// Amount formats v as a plain two-decimal number, e.g. "1798.65".
func Amount(v float64) string {
	return Cents(v).StringFixed(centPlaces)
}

// Currency formats v for display, e.g. "$300,000.00".
func Currency(v float64) string {
	return printer.Sprintf("$%.2f", Cents(v).InexactFloat64())
}
