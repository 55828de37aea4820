package services

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

// gridCursor is the explicit, monotonically advancing row cursor the
// spreadsheet renderer threads through its section emitters. Keeping it a
// value passed around (instead of ambient state) keeps the renderer
// reentrant.
type gridCursor struct {
	row int
}

func (c *gridCursor) next() int {
	r := c.row
	c.row++
	return r
}

func (c *gridCursor) skip(n int) {
	c.row += n
}

// excelStyles holds the style IDs built once per workbook.
type excelStyles struct {
	title      int
	subtitle   int
	banner     int
	label      int
	header     int
	cellText   int
	cellCenter int
	cellMoney  int
	groupSep   int
	filler     int
	totalLabel int
	totalMoney int
	grandLabel int
	grandMoney int
	footer     int
}

// RenderSpreadsheet emits the plan as a spreadsheet and returns the file
// bytes. Per-line totals and every derived totals-block aggregate are
// written as live formulas mirroring the calculator's algebra, so a
// spreadsheet application evaluating the artifact reproduces ComputeTotals'
// numbers without the calculation being embedded twice. It returns a
// ConsistencyError when the rows it actually writes diverge from the span
// recorded in the plan.
func RenderSpreadsheet(plan *DocumentPlan, totals Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := plan.Variant.SheetTitle
	if sheet == "" {
		sheet = "Cotización"
	}
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, &RenderError{Op: "spreadsheet", Err: fmt.Errorf("set sheet name: %w", err)}
	}

	cols := make([]string, len(plan.Table.Columns))
	for i, spec := range plan.Table.Columns {
		cols[i] = colLetter(i)
		if err := f.SetColWidth(sheet, cols[i], cols[i], spec.Width); err != nil {
			return nil, &RenderError{Op: "spreadsheet", Err: fmt.Errorf("set col width %s: %w", cols[i], err)}
		}
	}
	lastCol := cols[len(cols)-1]

	styles, err := buildExcelStyles(f, plan.Variant)
	if err != nil {
		return nil, &RenderError{Op: "spreadsheet", Err: err}
	}

	cur := &gridCursor{row: 1}

	writeLetterhead(f, sheet, plan, styles, cur, lastCol)
	writeTitleAndClient(f, sheet, plan, styles, cur, lastCol)

	if err := writeItemTable(f, sheet, plan, totals, styles, cur, cols); err != nil {
		return nil, err
	}

	writeTotalsBlock(f, sheet, plan, styles, cur, cols)
	writeNotesAndFooter(f, sheet, plan, styles, cur, lastCol)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, &RenderError{Op: "spreadsheet", Err: fmt.Errorf("write workbook: %w", err)}
	}
	return buf.Bytes(), nil
}

// writeLetterhead emits company name, contact line, a blank row, the
// document title banner and another blank row (grid rows 1-5).
func writeLetterhead(f *excelize.File, sheet string, plan *DocumentPlan, st excelStyles, cur *gridCursor, lastCol string) {
	if plan.Company.LogoPath != "" {
		if _, err := os.Stat(plan.Company.LogoPath); err == nil {
			if err := f.AddPicture(sheet, "A1", plan.Company.LogoPath, nil); err != nil {
				log.Printf("render_spreadsheet: logo skipped: %v", err)
			}
		} else {
			log.Printf("render_spreadsheet: logo asset missing, skipped: %v", err)
		}
	}

	r := cur.next()
	mergeRow(f, sheet, r, lastCol)
	f.SetCellValue(sheet, cell("A", r), sanitizeCell(plan.Company.Name))
	f.SetCellStyle(sheet, cell("A", r), cell(lastCol, r), st.title)

	r = cur.next()
	mergeRow(f, sheet, r, lastCol)
	f.SetCellValue(sheet, cell("A", r), sanitizeCell(plan.contactLine()))
	f.SetCellStyle(sheet, cell("A", r), cell(lastCol, r), st.subtitle)

	cur.skip(1)

	r = cur.next()
	mergeRow(f, sheet, r, lastCol)
	f.SetCellValue(sheet, cell("A", r), plan.Variant.DocTitle)
	f.SetCellStyle(sheet, cell("A", r), cell(lastCol, r), st.banner)

	cur.skip(1)
}

// writeTitleAndClient emits the number/date and client rows (grid rows 6-8)
// followed by a blank row.
func writeTitleAndClient(f *excelize.File, sheet string, plan *DocumentPlan, st excelStyles, cur *gridCursor, lastCol string) {
	pairs := [][4]string{
		{"Cotización No:", plan.Number, "Fecha:", plan.Date.Format("02/01/2006")},
		{"Cliente:", plan.Client.Name, "Teléfono:", plan.Client.Phone},
		{"Email:", plan.Client.Email, "Estatus:", string(plan.Status)},
	}
	for _, p := range pairs {
		r := cur.next()
		f.SetCellValue(sheet, cell("A", r), p[0])
		f.SetCellStyle(sheet, cell("A", r), cell("A", r), st.label)
		f.SetCellValue(sheet, cell("B", r), sanitizeCell(p[1]))
		f.SetCellValue(sheet, cell("C", r), p[2])
		f.SetCellStyle(sheet, cell("C", r), cell("C", r), st.label)
		f.SetCellValue(sheet, cell("D", r), sanitizeCell(p[3]))
	}
	cur.skip(1)
}

// writeItemTable emits the column header and every planned table row, with
// the per-row money columns as formulas. The calculator's numbers are also
// written as cached cell values so viewers that never recalculate still
// display them. The cursor must land exactly on the plan's recorded header
// row and leave the table exactly at its recorded last row; anything else is
// a ConsistencyError.
func writeItemTable(f *excelize.File, sheet string, plan *DocumentPlan, totals Totals, st excelStyles, cur *gridCursor, cols []string) error {
	if cur.row != plan.Table.HeaderRow {
		return &ConsistencyError{Detail: fmt.Sprintf(
			"item-table header at grid row %d, plan recorded %d", cur.row, plan.Table.HeaderRow)}
	}

	lastCol := cols[len(cols)-1]
	r := cur.next()
	for i, spec := range plan.Table.Columns {
		f.SetCellValue(sheet, cell(cols[i], r), spec.Label)
	}
	f.SetCellStyle(sheet, cell("A", r), cell(lastCol, r), st.header)

	qtyCol := cols[plan.Variant.columnIndex(ColQty)]
	priceCol := cols[plan.Variant.columnIndex(ColUnitPrice)]
	totalCol := cols[plan.Variant.columnIndex(ColLineTotal)]

	for _, row := range plan.Table.Rows {
		r = cur.next()
		switch row.Kind {
		case RowGroupSeparator:
			mergeRow(f, sheet, r, lastCol)
			f.SetCellValue(sheet, cell("A", r), sanitizeCell(row.Group))
			f.SetCellStyle(sheet, cell("A", r), cell(lastCol, r), st.groupSep)

		case RowFiller:
			f.SetCellStyle(sheet, cell("A", r), cell(lastCol, r), st.filler)

		case RowItem:
			for i, spec := range plan.Table.Columns {
				c := cell(cols[i], r)
				switch spec.Key {
				case ColQty:
					f.SetCellValue(sheet, c, row.Item.Qty.InexactFloat64())
					f.SetCellStyle(sheet, c, c, st.cellCenter)
				case ColUnit:
					f.SetCellValue(sheet, c, sanitizeCell(row.Item.Unit))
					f.SetCellStyle(sheet, c, c, st.cellCenter)
				case ColDesc:
					f.SetCellValue(sheet, c, sanitizeCell(row.Item.Description))
					f.SetCellStyle(sheet, c, c, st.cellText)
				case ColUnitPrice:
					f.SetCellValue(sheet, c, row.Item.UnitPrice.InexactFloat64())
					f.SetCellStyle(sheet, c, c, st.cellMoney)
				case ColLineTotal:
					// Live formula: this row's qty times unit price,
					// rounded exactly as the calculator rounds.
					f.SetCellValue(sheet, c, totals.Lines[row.LineIndex].InexactFloat64())
					f.SetCellFormula(sheet, c, fmt.Sprintf("ROUND(%s%d*%s%d,2)", qtyCol, r, priceCol, r))
					f.SetCellStyle(sheet, c, c, st.cellMoney)
				case ColLineTaxed:
					f.SetCellValue(sheet, c, plan.lineTaxed(totals.Lines[row.LineIndex]).InexactFloat64())
					f.SetCellFormula(sheet, c, fmt.Sprintf("ROUND(%s%d*(1+%s/100),2)",
						totalCol, r, plan.TaxRatePercent.String()))
					f.SetCellStyle(sheet, c, c, st.cellMoney)
				}
			}
		}
	}

	if written := cur.row - 1; written != plan.Table.LastRow {
		return &ConsistencyError{Detail: fmt.Sprintf(
			"item-table rows end at grid row %d, plan recorded %d", written, plan.Table.LastRow)}
	}
	return nil
}

// writeTotalsBlock emits the totals rows. Every derived aggregate is a
// formula over previously written cells: the subtotal sums exactly the
// FirstRow..LastRow span recorded by the plan, and each later step
// references the cells of the steps before it. The plan's precomputed
// amounts go in as cached values.
func writeTotalsBlock(f *excelize.File, sheet string, plan *DocumentPlan, st excelStyles, cur *gridCursor, cols []string) {
	cur.skip(1)

	totalCol := cols[plan.Variant.columnIndex(ColLineTotal)]
	valueIdx := plan.Variant.columnIndex(ColLineTotal)
	valueCol := cols[valueIdx]
	// Labels go one column left of the values. A layout that puts the line
	// total in the first column has no left neighbor, so fall back to A.
	labelCol := cols[0]
	if valueIdx > 0 {
		labelCol = cols[valueIdx-1]
	}

	refs := make(map[TotalKind]string, len(plan.TotalLines))

	for _, line := range plan.TotalLines {
		r := cur.next()
		labelCell := cell(labelCol, r)
		valueCell := cell(valueCol, r)
		refs[line.Kind] = valueCell

		labelStyle, valueStyle := st.totalLabel, st.totalMoney
		if line.Kind == TotalGrand {
			labelStyle, valueStyle = st.grandLabel, st.grandMoney
		}
		f.SetCellValue(sheet, labelCell, line.Label)
		f.SetCellStyle(sheet, labelCell, labelCell, labelStyle)
		f.SetCellStyle(sheet, valueCell, valueCell, valueStyle)
		f.SetCellValue(sheet, valueCell, line.Amount.InexactFloat64())

		switch line.Kind {
		case TotalSubtotal:
			f.SetCellFormula(sheet, valueCell, fmt.Sprintf("ROUND(SUM(%s%d:%s%d),2)",
				totalCol, plan.Table.FirstRow, totalCol, plan.Table.LastRow))
		case TotalDiscount:
			if plan.Discount.Type == DiscountPercent {
				f.SetCellFormula(sheet, valueCell, fmt.Sprintf("ROUND(%s*%s/100,2)",
					refs[TotalSubtotal], plan.Discount.Value.String()))
			} else {
				f.SetCellFormula(sheet, valueCell, fmt.Sprintf("ROUND(%s,2)", plan.Discount.Value.String()))
			}
		case TotalTaxableBase:
			f.SetCellFormula(sheet, valueCell, fmt.Sprintf("ROUND(%s-%s,2)",
				refs[TotalSubtotal], refs[TotalDiscount]))
		case TotalTax:
			f.SetCellFormula(sheet, valueCell, fmt.Sprintf("ROUND(%s*%s/100,2)",
				baseRef(refs), plan.TaxRatePercent.String()))
		case TotalShipping:
			// Shipping is an input, not a derived value, so no formula.
		case TotalGrand:
			formula := fmt.Sprintf("ROUND(%s+%s", baseRef(refs), refs[TotalTax])
			if ship, ok := refs[TotalShipping]; ok {
				formula += "+" + ship
			}
			f.SetCellFormula(sheet, valueCell, formula+",2)")
		}
	}
}

// baseRef picks the cell the tax step starts from: the taxable base when a
// discount row exists, otherwise the subtotal directly.
func baseRef(refs map[TotalKind]string) string {
	if ref, ok := refs[TotalTaxableBase]; ok {
		return ref
	}
	return refs[TotalSubtotal]
}

// writeNotesAndFooter emits the notes/terms block (when present) and the
// footer line.
func writeNotesAndFooter(f *excelize.File, sheet string, plan *DocumentPlan, st excelStyles, cur *gridCursor, lastCol string) {
	cur.skip(1)

	if plan.Notes != "" {
		r := cur.next()
		mergeRow(f, sheet, r, lastCol)
		f.SetCellValue(sheet, cell("A", r), "Notas:")
		f.SetCellStyle(sheet, cell("A", r), cell(lastCol, r), st.label)

		r = cur.next()
		mergeRow(f, sheet, r, lastCol)
		f.SetCellValue(sheet, cell("A", r), sanitizeCell(plan.Notes))
		cur.skip(1)
	}

	r := cur.next()
	mergeRow(f, sheet, r, lastCol)
	f.SetCellValue(sheet, cell("A", r), plan.FooterText)
	f.SetCellStyle(sheet, cell("A", r), cell(lastCol, r), st.footer)
}

func buildExcelStyles(f *excelize.File, v TemplateVariant) (excelStyles, error) {
	var st excelStyles
	var err error

	newStyle := func(s *excelize.Style) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = f.NewStyle(s)
		return id
	}

	st.title = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 18, Color: v.AccentColor},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	st.subtitle = newStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: "#7F8C8D"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	st.banner = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: v.AccentColor},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{v.FillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	st.label = newStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})
	st.header = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{v.HeaderColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	st.cellText = newStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	st.cellCenter = newStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	st.cellMoney = newStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		Border:       thinBorders(),
		CustomNumFmt: &v.CurrencyFormat,
	})
	st.groupSep = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: v.AccentColor},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{v.FillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	st.filler = newStyle(&excelize.Style{
		Border: thinBorders(),
	})
	st.totalLabel = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	st.totalMoney = newStyle(&excelize.Style{
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		CustomNumFmt: &v.CurrencyFormat,
	})
	st.grandLabel = newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: v.AccentColor},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	st.grandMoney = newStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 12, Color: v.AccentColor},
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		CustomNumFmt: &v.CurrencyFormat,
	})
	st.footer = newStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 8, Color: "#95A5A6"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	return st, err
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func colLetter(i int) string {
	name, _ := excelize.ColumnNumberToName(i + 1)
	return name
}

func mergeRow(f *excelize.File, sheet string, row int, lastCol string) {
	f.MergeCell(sheet, cell("A", row), cell(lastCol, row))
}

// sanitizeCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. A spreadsheet application interprets
// cells starting with =, +, -, @, \t or \r as formulas.
func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin black borders for all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
