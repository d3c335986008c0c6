// Package currency renders amounts for chat replies using CLDR
// locale data, so "50000" comes back as "Rp50.000" for Indonesian
// users and "$50,000" elsewhere.
package currency

import (
	"fmt"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Formatter struct {
	unit    xcurrency.Unit
	printer *message.Printer
}

// NewFormatter builds a formatter for a 3-letter ISO 4217 currency
// code and a BCP 47 locale tag such as "id" or "en-US".
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency code %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatter{
		unit:    unit,
		printer: message.NewPrinter(tag),
	}, nil
}

// Format renders an amount with the currency symbol and locale digit
// grouping. Whole amounts print without a fraction.
func (f *Formatter) Format(d decimal.Decimal) string {
	v, _ := d.Float64()
	return f.printer.Sprintf("%v%v",
		xcurrency.Symbol(f.unit),
		number.Decimal(v, number.MaxFractionDigits(2)),
	)
}
