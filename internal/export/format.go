package export

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatAmount renders an amount with Indonesian digit grouping, prefixed by
// the currency symbol when one is known. IDR amounts are rounded to whole
// rupiah.
func FormatAmount(amount float64, currency string) string {
	currency = strings.ToUpper(currency)

	digits := 2
	if currency == "" || currency == "IDR" {
		digits = 0
	}

	s := printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(digits), number.MinFractionDigits(digits)))

	switch currency {
	case "", "IDR":
		return "Rp " + s
	default:
		return currency + " " + s
	}
}

// FormatSigned is FormatAmount with an explicit + or - in front.
func FormatSigned(amount float64, currency string) string {
	if amount < 0 {
		return "-" + FormatAmount(-amount, currency)
	}

	return "+" + FormatAmount(amount, currency)
}
