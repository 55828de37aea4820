// Package services implements the quotation document engine: the totals
// calculator, the output-agnostic document plan builder, and the spreadsheet
// and print renderers that emit one shared plan into two media.
package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// round2 applies the engine's rounding policy: 2 decimal places, half away
// from zero. Every monetary step rounds through this before it is used by a
// later step, matching the ROUND(...,2) calls the spreadsheet formulas emit.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

var oneHundred = decimal.NewFromInt(100)

// percentOf returns round(base * percent / 100, 2).
func percentOf(base, percent decimal.Decimal) decimal.Decimal {
	return round2(base.Mul(percent).Div(oneHundred))
}

// FormatMoney formats a monetary amount as "$1,234.50" with western
// thousands grouping and exactly 2 decimal places. Negative amounts keep the
// sign in front: "-$116.00".
func FormatMoney(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	raw := amount.Abs().StringFixed(2)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every 3 digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// formatQty renders a quantity without decimals when it is whole, otherwise
// with its natural precision (e.g. "3" and "2.5").
func formatQty(qty decimal.Decimal) string {
	if qty.IsInteger() {
		return qty.StringFixed(0)
	}
	return qty.String()
}
