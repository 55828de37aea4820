package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RowKind discriminates the three row shapes of the item table.
type RowKind int

const (
	RowItem RowKind = iota
	RowGroupSeparator
	RowFiller
)

// TableRow is one emitted row of the item table. Items keep their stored
// order; separators and fillers are purely presentational.
type TableRow struct {
	Kind      RowKind
	Item      *LineItem // set for RowItem
	LineIndex int       // index into Totals.Lines, for RowItem
	Group     string    // separator label, for RowGroupSeparator
}

// ItemTable is the planned item section. HeaderRow, FirstRow and LastRow are
// absolute 1-based spreadsheet grid rows; the spreadsheet renderer uses
// FirstRow..LastRow verbatim as its aggregation range, filler rows included.
type ItemTable struct {
	Columns   []ColumnSpec
	Rows      []TableRow
	HeaderRow int
	FirstRow  int
	LastRow   int // inclusive
}

// TotalKind identifies a totals-block line so each renderer knows which
// algebra step it represents.
type TotalKind int

const (
	TotalSubtotal TotalKind = iota
	TotalDiscount
	TotalTaxableBase
	TotalTax
	TotalShipping
	TotalGrand
)

// TotalLine is one row of the totals block with its precomputed amount.
type TotalLine struct {
	Kind   TotalKind
	Label  string
	Amount decimal.Decimal
}

// DocumentPlan is the output-agnostic, ordered description of everything a
// quotation renders into: company header, title block, client block, item
// table, totals block, notes and footer. Both renderers consume one plan;
// neither re-derives layout.
type DocumentPlan struct {
	Variant TemplateVariant

	Company CompanyProfile
	Number  string
	Date    time.Time
	Status  Status
	Client  Client

	Table      ItemTable
	TotalLines []TotalLine
	Notes      string
	FooterText string

	// Inputs the spreadsheet renderer needs to reproduce the calculator's
	// algebra as live formulas.
	Discount       Discount
	TaxRatePercent decimal.Decimal
	Shipping       decimal.Decimal
}

// The fixed pre-table grid layout of the spreadsheet medium. The plan
// builder and the spreadsheet renderer both count on it; the renderer
// cross-checks at runtime and fails with a ConsistencyError on drift.
//
//	row 1  company name (merged)
//	row 2  company contact line (merged)
//	row 3  blank
//	row 4  document title banner (merged)
//	row 5  blank
//	row 6  number / date
//	row 7  client name / phone
//	row 8  client email / status
//	row 9  blank
//	row 10 item-table header
const tableHeaderGridRow = 10

// BuildPlan turns a quotation plus its company and client into a document
// plan, computing totals along the way. Items are never reordered: a
// group-separator row is inserted before an item whenever its non-empty
// group label differs from the previous item's label, and blank filler rows
// pad the section up to the variant's minimum row count.
func BuildPlan(q Quotation, company CompanyProfile, client Client, variant TemplateVariant) (*DocumentPlan, Totals, error) {
	if err := variant.Validate(); err != nil {
		return nil, Totals{}, err
	}

	totals, err := ComputeTotals(q.Items, q.Discount, q.TaxRatePercent, q.Shipping)
	if err != nil {
		return nil, Totals{}, err
	}

	rows := buildTableRows(q.Items, variant)

	table := ItemTable{
		Columns:   variant.Columns,
		Rows:      rows,
		HeaderRow: tableHeaderGridRow,
		FirstRow:  tableHeaderGridRow + 1,
		LastRow:   tableHeaderGridRow + len(rows),
	}

	plan := &DocumentPlan{
		Variant:        variant,
		Company:        company,
		Number:         q.Number,
		Date:           q.Date,
		Status:         q.Status,
		Client:         client,
		Table:          table,
		TotalLines:     buildTotalLines(q, totals, variant),
		Notes:          q.Notes,
		FooterText:     footerText(company),
		Discount:       q.Discount,
		TaxRatePercent: q.TaxRatePercent,
		Shipping:       q.Shipping,
	}
	return plan, totals, nil
}

// buildTableRows scans items in stored order, inserting separators at group
// boundaries and fillers up to the variant minimum.
func buildTableRows(items []LineItem, variant TemplateVariant) []TableRow {
	rows := make([]TableRow, 0, max(len(items), variant.MinTableRows))

	prevGroup := ""
	for i := range items {
		item := &items[i]
		if variant.ShowGroups && item.Group != "" && item.Group != prevGroup {
			rows = append(rows, TableRow{Kind: RowGroupSeparator, Group: item.Group})
		}
		prevGroup = item.Group
		rows = append(rows, TableRow{Kind: RowItem, Item: item, LineIndex: i})
	}

	for len(rows) < variant.MinTableRows {
		rows = append(rows, TableRow{Kind: RowFiller})
	}
	return rows
}

// buildTotalLines assembles the totals block. Discount and shipping rows
// appear when the variant asks for them or when their value is nonzero, so
// the rendered algebra always covers every nonzero step of the calculator.
func buildTotalLines(q Quotation, totals Totals, variant TemplateVariant) []TotalLine {
	lines := []TotalLine{
		{Kind: TotalSubtotal, Label: "Subtotal:", Amount: totals.Subtotal},
	}

	if variant.ShowDiscount || !totals.DiscountAmount.IsZero() {
		lines = append(lines,
			TotalLine{Kind: TotalDiscount, Label: discountLabel(q.Discount), Amount: totals.DiscountAmount},
			TotalLine{Kind: TotalTaxableBase, Label: "Base:", Amount: totals.TaxableBase},
		)
	}

	lines = append(lines, TotalLine{
		Kind:   TotalTax,
		Label:  fmt.Sprintf("IVA (%s%%):", q.TaxRatePercent.String()),
		Amount: totals.TaxAmount,
	})

	if variant.ShowShipping || !q.Shipping.IsZero() {
		lines = append(lines, TotalLine{Kind: TotalShipping, Label: "Envío:", Amount: q.Shipping})
	}

	return append(lines, TotalLine{Kind: TotalGrand, Label: "TOTAL:", Amount: totals.Total})
}

func discountLabel(d Discount) string {
	if d.Type == DiscountPercent {
		return fmt.Sprintf("Descuento (%s%%):", d.Value.String())
	}
	return "Descuento ($):"
}

func footerText(company CompanyProfile) string {
	if company.Name == "" {
		return "Quedo a sus órdenes"
	}
	return company.Name + " | Quedo a sus órdenes"
}

// lineTaxed returns the per-line with-tax amount shown by layouts that carry
// a ColLineTaxed column: round(lineTotal * (1 + taxRate/100), 2).
func (p *DocumentPlan) lineTaxed(lineTotal decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(p.TaxRatePercent.Div(oneHundred))
	return round2(lineTotal.Mul(factor))
}

// contactLine joins the company's contact fields into the single
// letterhead line both media show under the company name.
func (p *DocumentPlan) contactLine() string {
	parts := make([]string, 0, 5)
	if p.Company.Address != "" {
		parts = append(parts, p.Company.Address)
	}
	if p.Company.Phone != "" {
		parts = append(parts, "Tel: "+p.Company.Phone)
	}
	if p.Company.Email != "" {
		parts = append(parts, "Email: "+p.Company.Email)
	}
	if p.Company.SocialLinks != "" {
		parts = append(parts, p.Company.SocialLinks)
	}
	if p.Company.TaxID != "" {
		parts = append(parts, "RFC: "+p.Company.TaxID)
	}
	return joinNonEmpty(parts, " | ")
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	result := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if result != "" {
			result += sep
		}
		result += p
	}
	return result
}
