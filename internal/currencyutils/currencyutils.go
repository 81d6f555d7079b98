// Package currencyutils converts the locale-formatted amounts printed on DIRF statements
// ("1.234,56") to decimal values and back.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeAmount rewrites a "N.NNN,NN" token as a standard decimal string:
// every '.' thousands separator is removed, then ',' becomes '.'.
func NormalizeAmount(amountStr string) string {
	amountStr = strings.TrimSpace(amountStr)
	amountStr = strings.ReplaceAll(amountStr, ".", "")
	return strings.ReplaceAll(amountStr, ",", ".")
}

// ParseAmount parses a locale-formatted amount into a decimal value.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	normalized := NormalizeAmount(amountStr)
	if normalized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// FormatAmount renders an amount with two decimal places and no thousands separators.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatBRL renders an amount the way the statement prints it, e.g. "1.234.567,89".
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
