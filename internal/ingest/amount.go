package ingest

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user-typed amount into a positive number.
// Accepted forms: "50000", "50.000", "50.000,50", "50,000.50", "12,5",
// optionally prefixed with "Rp". Grouping and decimal separators are
// inferred from their position.
func ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(strings.TrimPrefix(clean, "Rp"), "rp")
	clean = strings.NewReplacer(" ", "", "_", "", "\u00a0", "").Replace(clean)

	if clean == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(normalizeSeparators(clean))
	if err != nil {
		return 0, ErrInvalidAmount
	}

	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}

	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) || f <= 0 {
		return 0, ErrInvalidAmount
	}

	return f, nil
}

// normalizeSeparators rewrites s so "." is the only decimal separator and
// grouping separators are gone.
func normalizeSeparators(s string) string {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case dots > 0 && commas > 0:
		// Whichever separator comes last is the decimal one.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}

		return strings.ReplaceAll(s, ",", "")
	case commas == 1 && len(s)-strings.Index(s, ",")-1 != 3:
		return strings.ReplaceAll(s, ",", ".")
	case commas > 0:
		return strings.ReplaceAll(s, ",", "")
	case dots == 1 && len(s)-strings.Index(s, ".")-1 == 3:
		// "50.000" is fifty thousand, the local grouping convention.
		return strings.ReplaceAll(s, ".", "")
	case dots > 1:
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}
