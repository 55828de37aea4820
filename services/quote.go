package services

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CompanyProfile holds the issuing company's letterhead data. It is treated
// as immutable for the duration of one render.
type CompanyProfile struct {
	Name        string
	Address     string
	Phone       string
	Email       string
	SocialLinks string
	TaxID       string
	LogoPath    string // optional; renderers degrade gracefully when missing
}

// Client is the quotation's addressee. A quotation references a client, it
// does not own it.
type Client struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// LineItem is one priced row of a quotation. LineTotal is always
// round(Qty*UnitPrice, 2), computed per item before any aggregation.
type LineItem struct {
	Group       string // empty means ungrouped
	Qty         decimal.Decimal
	Unit        string // e.g. "pza", "srv"
	Description string
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// DiscountType tags the two historical discount shapes as one canonical
// variant.
type DiscountType string

const (
	DiscountFixed   DiscountType = "fixed"
	DiscountPercent DiscountType = "percent"
)

// Discount is the quotation-level discount policy.
type Discount struct {
	Type  DiscountType
	Value decimal.Decimal
}

// ParseDiscountType validates a raw discount type against the closed set.
func ParseDiscountType(s string) (DiscountType, error) {
	switch DiscountType(s) {
	case DiscountFixed, DiscountPercent:
		return DiscountType(s), nil
	}
	return "", &ValidationError{Field: "discount_type", Reason: "must be \"fixed\" or \"percent\", got " + strconv.Quote(s)}
}

// Status is the quotation lifecycle state.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusSent      Status = "Sent"
	StatusAccepted  Status = "Accepted"
	StatusCancelled Status = "Cancelled"
)

// ParseStatus validates a raw status value against the closed set. Every
// transition goes through this; there is no partial match or correction.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusSent, StatusAccepted, StatusCancelled:
		return Status(s), nil
	}
	return "", &ValidationError{Field: "status", Reason: "must be one of Draft, Sent, Accepted, Cancelled, got " + strconv.Quote(s)}
}

// PaymentStatus is derived from amount paid vs total; it is never set
// directly.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPaid    PaymentStatus = "Paid"
)

// DerivePaymentStatus maps an amount paid onto Pending/Partial/Paid.
// Paid when amountPaid >= total.
func DerivePaymentStatus(amountPaid, total decimal.Decimal) PaymentStatus {
	// Covered-in-full is checked first so a quotation whose total went
	// negative (over-subtotal discount) still settles as Paid.
	if amountPaid.GreaterThanOrEqual(total) {
		return PaymentPaid
	}
	if amountPaid.Sign() > 0 {
		return PaymentPartial
	}
	return PaymentPending
}

// ClampAmountPaid caps the stored amount paid at the quotation total, so a
// stored amount never exceeds it.
func ClampAmountPaid(amountPaid, total decimal.Decimal) decimal.Decimal {
	if amountPaid.GreaterThan(total) {
		return total
	}
	return amountPaid
}

// Quotation is the aggregate the engine renders. It exclusively owns its
// Items (stored order is significant: grouping and padding depend on it) and
// references its client and company by identity only.
type Quotation struct {
	Number         string // e.g. "COT-00001"
	Date           time.Time
	Items          []LineItem
	Discount       Discount
	TaxRatePercent decimal.Decimal
	Shipping       decimal.Decimal
	Status         Status
	Notes          string
	AmountPaid     decimal.Decimal
	PaymentStatus  PaymentStatus
}
