// Package money formats exact minor-unit amounts for display. Amounts are
// carried as int64 minor units everywhere; no floating point is involved.
package money

import (
	"fmt"
	"strings"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Format renders a minor-unit amount, e.g. Format(1599, "USD") == "$15.99".
func Format(minor int64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	value := fmt.Sprintf("%d.%02d", minor/100, minor%100)
	if symbol, ok := symbols[currency]; ok {
		return sign + symbol + value
	}
	if currency == "" {
		return sign + value
	}
	return fmt.Sprintf("%s%s %s", sign, currency, value)
}
