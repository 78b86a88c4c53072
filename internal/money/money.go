// Package money converts between the store's comma-decimal currency text
// and exact decimal values.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBR parses locale-formatted currency text ("12,50", "1.234,56",
// "R$ 3,00"). An unparsable or empty cell yields an invalid NullDecimal,
// never zero: downstream must be able to tell "missing" from "free".
func ParseBR(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" {
		return decimal.NullDecimal{}
	}
	if strings.Contains(s, ",") {
		// periods are thousands separators once a comma is present
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// FormatBR renders a value in the store's convention: two decimal places,
// comma separator, no thousands grouping.
func FormatBR(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
