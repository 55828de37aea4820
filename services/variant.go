package services

import "fmt"

// ColumnKey identifies what a table column carries, independent of its label.
type ColumnKey string

const (
	ColQty       ColumnKey = "qty"
	ColUnit      ColumnKey = "unit"
	ColDesc      ColumnKey = "description"
	ColUnitPrice ColumnKey = "unit_price"
	ColLineTotal ColumnKey = "line_total"
	// ColLineTaxed carries the line total with tax applied on top,
	// round(lineTotal * (1 + taxRate/100), 2). Only the Pro-Forma layout
	// shows it.
	ColLineTaxed ColumnKey = "line_taxed"
)

// ColumnSpec describes one item-table column for both media: Width is the
// spreadsheet column width in characters, PrintCols the maroto grid span
// (all columns of a variant must sum to 12).
type ColumnSpec struct {
	Key       ColumnKey
	Label     string
	Width     float64
	PrintCols int
}

// TemplateVariant supplies the layout parameters of one visual layout:
// columns, colors, minimum data-row count and which optional blocks are
// shown. It is configuration, not behavior; renderers honor it verbatim.
type TemplateVariant struct {
	Name       string
	SheetTitle string // spreadsheet tab name
	DocTitle   string // banner text, e.g. "COTIZACIÓN" or "PRO-FORMA"
	Columns    []ColumnSpec

	// MinTableRows pads the item section (items + separators) with blank
	// filler rows up to this count. Padding is aesthetic only and never
	// alters totals.
	MinTableRows int

	// ShowGroups enables group-separator rows. ShowDiscount and
	// ShowShipping force those totals rows even when zero; a nonzero
	// discount or shipping is always rendered regardless, so the two media
	// can never disagree with the calculator.
	ShowGroups   bool
	ShowDiscount bool
	ShowShipping bool

	HeaderColor    string // "#RRGGBB", item-table header fill
	AccentColor    string // titles, grand-total fill
	FillColor      string // group separators, banner fill
	CurrencyFormat string // spreadsheet number format for money cells
}

const currencyFormat = `"$"#,##0.00`

// CompactVariant is the minimal historical layout: four columns, no
// grouping, no discount or shipping rows unless the quotation carries them.
func CompactVariant() TemplateVariant {
	return TemplateVariant{
		Name:       "compact",
		SheetTitle: "Cotización",
		DocTitle:   "COTIZACIÓN",
		Columns: []ColumnSpec{
			{Key: ColQty, Label: "Cantidad", Width: 12, PrintCols: 2},
			{Key: ColDesc, Label: "Descripción", Width: 50, PrintCols: 5},
			{Key: ColUnitPrice, Label: "Precio Unitario", Width: 15, PrintCols: 2},
			{Key: ColLineTotal, Label: "Total", Width: 15, PrintCols: 3},
		},
		MinTableRows:   5,
		HeaderColor:    "#3498DB",
		AccentColor:    "#2C3E50",
		FillColor:      "#ECF0F1",
		CurrencyFormat: currencyFormat,
	}
}

// StandardVariant is the ledger layout with a unit column and explicit
// discount and shipping rows.
func StandardVariant() TemplateVariant {
	return TemplateVariant{
		Name:       "standard",
		SheetTitle: "Cotización",
		DocTitle:   "COTIZACIÓN",
		Columns: []ColumnSpec{
			{Key: ColQty, Label: "Cant.", Width: 12, PrintCols: 1},
			{Key: ColUnit, Label: "Unidad", Width: 10, PrintCols: 2},
			{Key: ColDesc, Label: "Descripción", Width: 50, PrintCols: 5},
			{Key: ColUnitPrice, Label: "P.U.", Width: 15, PrintCols: 2},
			{Key: ColLineTotal, Label: "Total", Width: 15, PrintCols: 2},
		},
		MinTableRows:   10,
		ShowDiscount:   true,
		ShowShipping:   true,
		HeaderColor:    "#333333",
		AccentColor:    "#2C3E50",
		FillColor:      "#D3D3D3",
		CurrencyFormat: currencyFormat,
	}
}

// ProFormaVariant is the corporate Pro-Forma layout: grouped items, a
// with-tax column in front, and a 25-row body.
func ProFormaVariant() TemplateVariant {
	return TemplateVariant{
		Name:       "proforma",
		SheetTitle: "Pro-Forma",
		DocTitle:   "PRO-FORMA",
		Columns: []ColumnSpec{
			{Key: ColLineTaxed, Label: "IVA", Width: 14, PrintCols: 2},
			{Key: ColQty, Label: "CANT.", Width: 8, PrintCols: 1},
			{Key: ColDesc, Label: "DESCRIPCIÓN", Width: 42, PrintCols: 5},
			{Key: ColUnitPrice, Label: "P. UNITARIO", Width: 16, PrintCols: 2},
			{Key: ColLineTotal, Label: "TOTAL", Width: 18, PrintCols: 2},
		},
		MinTableRows:   25,
		ShowGroups:     true,
		ShowDiscount:   true,
		ShowShipping:   true,
		HeaderColor:    "#08568D",
		AccentColor:    "#08568D",
		FillColor:      "#F3F3F3",
		CurrencyFormat: currencyFormat,
	}
}

// VariantByName resolves a variant name to its built-in definition.
func VariantByName(name string) (TemplateVariant, error) {
	switch name {
	case "", "standard":
		return StandardVariant(), nil
	case "compact":
		return CompactVariant(), nil
	case "proforma":
		return ProFormaVariant(), nil
	}
	return TemplateVariant{}, &ValidationError{
		Field:  "variant",
		Reason: fmt.Sprintf("unknown template variant %q", name),
	}
}

// Validate checks that the variant carries every layout field the renderers
// need. An incomplete variant is rejected before any plan is built.
func (v TemplateVariant) Validate() error {
	if v.Name == "" {
		return &ValidationError{Field: "variant.name", Reason: "must not be empty"}
	}
	if v.DocTitle == "" {
		return &ValidationError{Field: "variant.doc_title", Reason: "must not be empty"}
	}
	if v.MinTableRows <= 0 {
		return &ValidationError{Field: "variant.min_table_rows", Reason: "must be positive"}
	}
	if v.HeaderColor == "" || v.AccentColor == "" || v.FillColor == "" {
		return &ValidationError{Field: "variant.colors", Reason: "header, accent and fill colors are required"}
	}
	if v.CurrencyFormat == "" {
		return &ValidationError{Field: "variant.currency_format", Reason: "must not be empty"}
	}

	required := map[ColumnKey]bool{ColQty: false, ColDesc: false, ColUnitPrice: false, ColLineTotal: false}
	printCols := 0
	for i, c := range v.Columns {
		if c.Label == "" {
			return &ValidationError{
				Field:  fmt.Sprintf("variant.columns[%d].label", i),
				Reason: "must not be empty",
			}
		}
		if c.Width <= 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("variant.columns[%d].width", i),
				Reason: "must be positive",
			}
		}
		if _, known := required[c.Key]; known {
			required[c.Key] = true
		}
		printCols += c.PrintCols
	}
	for key, seen := range required {
		if !seen {
			return &ValidationError{
				Field:  "variant.columns",
				Reason: fmt.Sprintf("missing required column %q", key),
			}
		}
	}
	if printCols != 12 {
		return &ValidationError{
			Field:  "variant.columns",
			Reason: fmt.Sprintf("print column spans must sum to 12, got %d", printCols),
		}
	}
	if v.columnIndex(ColLineTotal) == 0 {
		return &ValidationError{
			Field:  "variant.columns",
			Reason: "line_total must not be the first column; totals labels are placed left of it",
		}
	}
	return nil
}

// columnIndex returns the position of the column with the given key, or -1.
func (v TemplateVariant) columnIndex(key ColumnKey) int {
	for i, c := range v.Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}
