// internal/models/currency.go
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCurrency converts a carrier-supplied money string ("1234.56",
// "$1,234.56", "1234") to integer cents. Carriers disagree on formatting;
// everything funnels through here before arithmetic.
func ParseCurrency(s string) (Currency, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '$', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount %q", s)
	}

	whole, frac, hasFrac := strings.Cut(cleaned, ".")
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	cents := dollars * 100

	if hasFrac {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("malformed amount %q", s)
		}
		if dollars < 0 {
			cents -= f
		} else {
			cents += f
		}
	}

	return Currency(cents), nil
}

// DollarsToCurrency converts a float dollar amount from a JSON wire shape
// to cents, rounding to the nearest cent.
func DollarsToCurrency(v float64) Currency {
	if v < 0 {
		return Currency(v*100 - 0.5)
	}
	return Currency(v*100 + 0.5)
}
