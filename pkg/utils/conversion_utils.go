package utils

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the YYYY-MM-DD layout used by query parameters and daily buckets.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatPrice renders an amount with thousands separators and no decimals, the way prices are shown on tickets.
func FormatPrice(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()

	var out []byte
	for i := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, digits[i])
	}
	if neg {
		return "-$" + string(out)
	}
	return "$" + string(out)
}
