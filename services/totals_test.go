package services

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(qty, price string) LineItem {
	return LineItem{Qty: dec(qty), Description: "test item", UnitPrice: dec(price)}
}

func fixedDiscount(v string) Discount {
	return Discount{Type: DiscountFixed, Value: dec(v)}
}

func percentDiscount(v string) Discount {
	return Discount{Type: DiscountPercent, Value: dec(v)}
}

func assertDecimal(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []LineItem
		disc     Discount
		taxRate  string
		shipping string
		subtotal string
		discount string
		base     string
		tax      string
		total    string
	}{
		{
			name:     "percentage discount with tax",
			items:    []LineItem{item("2", "100"), item("1", "50")},
			disc:     percentDiscount("10"),
			taxRate:  "16",
			shipping: "0",
			subtotal: "250", discount: "25", base: "225", tax: "36", total: "261",
		},
		{
			name:     "fixed discount",
			items:    []LineItem{item("2", "100"), item("1", "50")},
			disc:     fixedDiscount("50"),
			taxRate:  "16",
			shipping: "0",
			subtotal: "250", discount: "50", base: "200", tax: "32", total: "232",
		},
		{
			name:     "no discount no tax",
			items:    []LineItem{item("3", "33.33")},
			disc:     fixedDiscount("0"),
			taxRate:  "0",
			shipping: "0",
			subtotal: "99.99", discount: "0", base: "99.99", tax: "0", total: "99.99",
		},
		{
			name:     "shipping added after tax",
			items:    []LineItem{item("1", "100")},
			disc:     fixedDiscount("0"),
			taxRate:  "16",
			shipping: "150",
			subtotal: "100", discount: "0", base: "100", tax: "16", total: "266",
		},
		{
			name:     "discount exceeding subtotal goes negative",
			items:    []LineItem{item("1", "100")},
			disc:     fixedDiscount("200"),
			taxRate:  "16",
			shipping: "0",
			subtotal: "100", discount: "200", base: "-100", tax: "-16", total: "-116",
		},
		{
			name:     "per line rounding before summation",
			items:    []LineItem{item("3", "0.333"), item("3", "0.333")},
			disc:     fixedDiscount("0"),
			taxRate:  "0",
			shipping: "0",
			// each line rounds 0.999 to 1.00 before the sum
			subtotal: "2", discount: "0", base: "2", tax: "0", total: "2",
		},
		{
			name:     "half rounds away from zero",
			items:    []LineItem{item("1", "2.675")},
			disc:     fixedDiscount("0"),
			taxRate:  "0",
			shipping: "0",
			subtotal: "2.68", discount: "0", base: "2.68", tax: "0", total: "2.68",
		},
		{
			name:     "zero priced courtesy line",
			items:    []LineItem{item("2", "8500"), item("1", "0")},
			disc:     fixedDiscount("0"),
			taxRate:  "16",
			shipping: "0",
			subtotal: "17000", discount: "0", base: "17000", tax: "2720", total: "19720",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotals(tt.items, tt.disc, dec(tt.taxRate), dec(tt.shipping))
			if err != nil {
				t.Fatalf("ComputeTotals() error = %v", err)
			}
			assertDecimal(t, "Subtotal", got.Subtotal, dec(tt.subtotal))
			assertDecimal(t, "DiscountAmount", got.DiscountAmount, dec(tt.discount))
			assertDecimal(t, "TaxableBase", got.TaxableBase, dec(tt.base))
			assertDecimal(t, "TaxAmount", got.TaxAmount, dec(tt.tax))
			assertDecimal(t, "Total", got.Total, dec(tt.total))
		})
	}
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	got, err := ComputeTotals(nil, fixedDiscount("0"), dec("16"), dec("0"))
	if err != nil {
		t.Fatalf("ComputeTotals() error = %v", err)
	}
	for name, v := range map[string]decimal.Decimal{
		"Subtotal": got.Subtotal, "DiscountAmount": got.DiscountAmount,
		"TaxableBase": got.TaxableBase, "TaxAmount": got.TaxAmount, "Total": got.Total,
	} {
		if !v.IsZero() {
			t.Errorf("%s = %s, want 0", name, v)
		}
	}
	if len(got.Lines) != 0 {
		t.Errorf("Lines length = %d, want 0", len(got.Lines))
	}
}

func TestComputeTotals_LinesMatchSubtotal(t *testing.T) {
	items := []LineItem{item("2", "8500"), item("2", "2500"), item("1", "0"), item("7", "99.99")}
	got, err := ComputeTotals(items, fixedDiscount("0"), dec("16"), dec("0"))
	if err != nil {
		t.Fatalf("ComputeTotals() error = %v", err)
	}
	if len(got.Lines) != len(items) {
		t.Fatalf("Lines length = %d, want %d", len(got.Lines), len(items))
	}
	var sum decimal.Decimal
	for _, l := range got.Lines {
		sum = sum.Add(l)
	}
	assertDecimal(t, "sum of lines", sum, got.Subtotal)
}

func TestComputeTotals_Validation(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		disc  Discount
		field string
	}{
		{"negative qty", []LineItem{item("-1", "100")}, fixedDiscount("0"), "items[0].qty"},
		{"negative price", []LineItem{item("1", "100"), item("1", "-5")}, fixedDiscount("0"), "items[1].unit_price"},
		{"unknown discount type", []LineItem{item("1", "100")}, Discount{Type: "coupon"}, "discount_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotals(tt.items, tt.disc, dec("16"), dec("0"))
			if err == nil {
				t.Fatal("ComputeTotals() expected error, got nil")
			}
			if !IsValidationError(err) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention field %q", err, tt.field)
			}
		})
	}
}
