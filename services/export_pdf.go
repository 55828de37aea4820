package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// RenderPrint lays the plan out as a paginated print document and returns
// the raw PDF bytes. All money values are precomputed; the page carries no
// formulas, so discrepancies with the calculator are impossible by
// construction.
func RenderPrint(plan *DocumentPlan, totals Totals) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPrintLetterhead(m, plan)
	addPrintTitle(m, plan)
	addPrintClient(m, plan)
	addPrintTableHeader(m, plan)

	for _, r := range plan.Table.Rows {
		switch r.Kind {
		case RowGroupSeparator:
			addPrintGroupRow(m, plan, r.Group)
		case RowFiller:
			addPrintFillerRow(m, plan)
		case RowItem:
			addPrintItemRow(m, plan, r.Item, totals.Lines[r.LineIndex])
		}
	}

	addPrintTotals(m, plan)
	addPrintNotes(m, plan)
	addPrintFooter(m, plan)

	doc, err := m.Generate()
	if err != nil {
		return nil, &RenderError{Op: "print", Err: fmt.Errorf("generate document: %w", err)}
	}
	return doc.GetBytes(), nil
}

// addPrintLetterhead adds the logo (when the asset exists on disk), company
// name and contact line.
func addPrintLetterhead(m core.Maroto, plan *DocumentPlan) {
	accent := hexColor(plan.Variant.AccentColor)

	nameCol := col.New(9).Add(
		text.New(plan.Company.Name, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: accent,
			Top:   2,
		}),
	)

	if _, err := os.Stat(plan.Company.LogoPath); plan.Company.LogoPath != "" && err == nil {
		m.AddRows(
			row.New(16).Add(
				col.New(3).Add(
					image.NewFromFile(plan.Company.LogoPath, props.Rect{
						Center:  true,
						Percent: 90,
					}),
				),
				nameCol,
			),
		)
	} else {
		m.AddRows(row.New(12).Add(nameCol))
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(plan.contactLine(), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 110, Green: 110, Blue: 110},
				}),
			),
		),
	)
	m.AddRows(row.New(3))
}

// addPrintTitle adds the document title banner with the number, date and
// status on the right.
func addPrintTitle(m core.Maroto, plan *DocumentPlan) {
	banner := &props.Cell{BackgroundColor: hexColor(plan.Variant.FillColor)}
	accent := hexColor(plan.Variant.AccentColor)

	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(plan.Variant.DocTitle, props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: accent,
					Top:   2,
					Left:  2,
				}),
			).WithStyle(banner),
			col.New(6).Add(
				text.New(fmt.Sprintf("%s  |  %s  |  %s",
					plan.Number, plan.Date.Format("02/01/2006"), plan.Status), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: accent,
					Top:   3,
					Right: 2,
				}),
			).WithStyle(banner),
		),
	)
	m.AddRows(row.New(3))
}

// addPrintClient adds the client block.
func addPrintClient(m core.Maroto, plan *DocumentPlan) {
	label := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	value := props.Text{Size: 8, Align: align.Left}

	line := func(k, v string) core.Row {
		return row.New(5).Add(
			col.New(2).Add(text.New(k, label)),
			col.New(10).Add(text.New(v, value)),
		)
	}

	m.AddRows(line("Cliente:", plan.Client.Name))
	if contact := joinNonEmpty([]string{plan.Client.Phone, plan.Client.Email}, "  |  "); contact != "" {
		m.AddRows(line("Contacto:", contact))
	}
	if plan.Client.Address != "" {
		m.AddRows(line("Dirección:", plan.Client.Address))
	}
	m.AddRows(row.New(3))
}

// addPrintTableHeader adds the item-table column headers using each
// column's print span.
func addPrintTableHeader(m core.Maroto, plan *DocumentPlan) {
	headerCell := &props.Cell{BackgroundColor: hexColor(plan.Variant.HeaderColor)}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
		Top:   1,
	}

	cols := make([]core.Col, 0, len(plan.Table.Columns))
	for _, spec := range plan.Table.Columns {
		cols = append(cols, col.New(spec.PrintCols).
			Add(text.New(spec.Label, headerText)).
			WithStyle(headerCell))
	}
	m.AddRows(row.New(7).Add(cols...))
}

// addPrintItemRow adds one priced line using the variant's column layout.
func addPrintItemRow(m core.Maroto, plan *DocumentPlan, item *LineItem, lineTotal decimal.Decimal) {
	cellStyle := gridCell()
	baseText := props.Text{Size: 8, Align: align.Center, Top: 1}
	leftText := baseText
	leftText.Align = align.Left
	leftText.Left = 1
	rightText := baseText
	rightText.Align = align.Right
	rightText.Right = 1

	cols := make([]core.Col, 0, len(plan.Table.Columns))
	for _, spec := range plan.Table.Columns {
		var val string
		txt := baseText
		switch spec.Key {
		case ColQty:
			val = formatQty(item.Qty)
		case ColUnit:
			val = item.Unit
		case ColDesc:
			val = item.Description
			txt = leftText
		case ColUnitPrice:
			val = FormatMoney(item.UnitPrice)
			txt = rightText
		case ColLineTotal:
			val = FormatMoney(lineTotal)
			txt = rightText
		case ColLineTaxed:
			val = FormatMoney(plan.lineTaxed(lineTotal))
			txt = rightText
		}
		cols = append(cols, col.New(spec.PrintCols).
			Add(text.New(val, txt)).
			WithStyle(cellStyle))
	}
	m.AddRows(row.New(6).Add(cols...))
}

// addPrintGroupRow adds a full-width group separator.
func addPrintGroupRow(m core.Maroto, plan *DocumentPlan, group string) {
	sep := gridCell()
	sep.BackgroundColor = hexColor(plan.Variant.FillColor)

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(group, props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: hexColor(plan.Variant.AccentColor),
					Top:   1,
				}),
			).WithStyle(sep),
		),
	)
}

// addPrintFillerRow adds an empty bordered row so short documents keep the
// layout's full table silhouette.
func addPrintFillerRow(m core.Maroto, plan *DocumentPlan) {
	cellStyle := gridCell()
	cols := make([]core.Col, 0, len(plan.Table.Columns))
	for _, spec := range plan.Table.Columns {
		cols = append(cols, col.New(spec.PrintCols).WithStyle(cellStyle))
	}
	m.AddRows(row.New(6).Add(cols...))
}

// addPrintTotals adds the totals block. The grand total row gets the accent
// background with white text.
func addPrintTotals(m core.Maroto, plan *DocumentPlan) {
	m.AddRows(row.New(3))

	labelText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 1, Right: 2}
	valueText := props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1}

	for _, line := range plan.TotalLines {
		lt, vt := labelText, valueText
		var style *props.Cell
		if line.Kind == TotalGrand {
			white := &props.Color{Red: 255, Green: 255, Blue: 255}
			lt.Color, vt.Color = white, white
			lt.Size, vt.Size = 10, 10
			vt.Style = fontstyle.Bold
			style = &props.Cell{BackgroundColor: hexColor(plan.Variant.AccentColor)}
		}

		labelCol := col.New(9).Add(text.New(line.Label, lt))
		valueCol := col.New(3).Add(text.New(FormatMoney(line.Amount), vt))
		if style != nil {
			labelCol = labelCol.WithStyle(style)
			valueCol = valueCol.WithStyle(style)
		}
		m.AddRows(row.New(7).Add(labelCol, valueCol))
	}
}

// addPrintNotes adds the notes block when the quotation carries one.
func addPrintNotes(m core.Maroto, plan *DocumentPlan) {
	if plan.Notes == "" {
		return
	}
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(
				text.New("Notas:", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New(plan.Notes, props.Text{Size: 8, Align: align.Left}),
			),
		),
	)
}

// addPrintFooter adds the closing line.
func addPrintFooter(m core.Maroto, plan *DocumentPlan) {
	m.AddRows(row.New(5))
	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(
				text.New(plan.FooterText, props.Text{
					Size:  7,
					Align: align.Center,
					Color: &props.Color{Red: 140, Green: 140, Blue: 140},
				}),
			),
		),
	)
}

// gridCell returns the bordered cell style the item table uses.
func gridCell() *props.Cell {
	return &props.Cell{
		BorderType:      border.Full,
		BorderColor:     &props.Color{Red: 180, Green: 180, Blue: 180},
		BorderThickness: 0.2,
	}
}

// hexColor converts a "#RRGGBB" string to a maroto color. Malformed input
// falls back to black.
func hexColor(hex string) *props.Color {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return &props.Color{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return &props.Color{}
	}
	return &props.Color{
		Red:   int(v >> 16),
		Green: int(v >> 8 & 0xFF),
		Blue:  int(v & 0xFF),
	}
}
