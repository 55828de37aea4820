package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Totals is the flat result of the totals calculator, plus the per-line
// totals used in its first step (the plan builder needs those).
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableBase    decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Lines          []decimal.Decimal // round(qty*unitPrice, 2) per item, in item order
}

// ComputeTotals turns line items plus discount/tax/shipping parameters into
// monetary aggregates. The step order is fixed for reproducibility:
//
//  1. per line: round(qty * unitPrice, 2); rounding is never deferred
//  2. subtotal = round(sum of line totals, 2)
//  3. discountAmount = round(value, 2) for a fixed discount,
//     round(subtotal * value/100, 2) for a percentage
//  4. taxableBase = round(subtotal - discountAmount, 2); may go negative,
//     the engine does not clamp
//  5. taxAmount = round(taxableBase * taxRatePercent/100, 2)
//  6. total = round(taxableBase + taxAmount + shipping, 2)
//
// An empty item list yields all-zero totals. The function is pure and safe
// to call concurrently on disjoint inputs.
func ComputeTotals(items []LineItem, disc Discount, taxRatePercent, shipping decimal.Decimal) (Totals, error) {
	switch disc.Type {
	case DiscountFixed, DiscountPercent:
	default:
		return Totals{}, &ValidationError{
			Field:  "discount_type",
			Reason: fmt.Sprintf("unrecognized discount type %q", disc.Type),
		}
	}

	for i, item := range items {
		if item.Qty.IsNegative() {
			return Totals{}, &ValidationError{
				Field:  fmt.Sprintf("items[%d].qty", i),
				Reason: "quantity must not be negative",
			}
		}
		if item.UnitPrice.IsNegative() {
			return Totals{}, &ValidationError{
				Field:  fmt.Sprintf("items[%d].unit_price", i),
				Reason: "unit price must not be negative",
			}
		}
	}

	if len(items) == 0 {
		return Totals{}, nil
	}

	lines := make([]decimal.Decimal, len(items))
	var sum decimal.Decimal
	for i, item := range items {
		lines[i] = round2(item.Qty.Mul(item.UnitPrice))
		sum = sum.Add(lines[i])
	}
	subtotal := round2(sum)

	var discountAmount decimal.Decimal
	if disc.Type == DiscountPercent {
		discountAmount = percentOf(subtotal, disc.Value)
	} else {
		discountAmount = round2(disc.Value)
	}

	taxableBase := round2(subtotal.Sub(discountAmount))
	taxAmount := percentOf(taxableBase, taxRatePercent)
	total := round2(taxableBase.Add(taxAmount).Add(shipping))

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableBase:    taxableBase,
		TaxAmount:      taxAmount,
		Total:          total,
		Lines:          lines,
	}, nil
}
