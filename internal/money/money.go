// Package money converts between user-entered amounts and the integer cents
// stored in the database. Parsing goes through decimal so "19.99" never picks
// up binary float error; rounding happens only when formatting for display.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCents converts an amount string like "125.50" or "$1,200" to cents.
func ParseCents(s string) (int64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// Format renders cents with a currency symbol, e.g. Format(150050, "$") =
// "$1500.50".
func Format(cents int64, symbol string) string {
	return symbol + decimal.New(cents, -2).StringFixed(2)
}
