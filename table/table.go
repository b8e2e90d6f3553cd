package table

import (
	"github.com/go-pdf/fpdf"
)

// Column describes one table column.
type Column struct {
	Width    float64    // 0 shares the remaining width with other auto columns
	MinWidth float64    // bounds for auto columns; 0 means none
	MaxWidth float64
	Align    string     // default alignment of the column's cells
	Style    *CellStyle // applied to every body cell, e.g. a bold label column
}

// Table collects rows and draws them at the PDF cursor.
type Table struct {
	pdf        *fpdf.Fpdf
	columns    []Column
	rows       []*Row
	headerRows int
	style      Style
	translate  func(string) string
	x, y       float64 // 0 means the current cursor position
	tableWidth float64 // 0 means the width between the page margins
}

// New returns an empty table drawing on pdf with 3pt padding.
func New(pdf *fpdf.Fpdf) *Table {
	return &Table{
		pdf: pdf,
		style: Style{
			Padding: Pad(3),
		},
		translate: func(s string) string { return s },
	}
}

// SetColumns replaces the column definitions.
func (t *Table) SetColumns(cols ...Column) *Table {
	t.columns = cols
	return t
}

// SetColumnWidths defines plain columns by width; 0 is an auto column.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	t.columns = make([]Column, len(widths))
	for i, w := range widths {
		t.columns[i] = Column{Width: w}
	}
	return t
}

// SetStyle replaces the table-wide style.
func (t *Table) SetStyle(s Style) *Table {
	t.style = s
	return t
}

// SetTranslator sets the function applied to cell text before it is measured
// and drawn. Core fonts need cp1252 input.
func (t *Table) SetTranslator(fn func(string) string) *Table {
	if fn != nil {
		t.translate = fn
	}
	return t
}

// SetPosition fixes the top-left corner of the table.
func (t *Table) SetPosition(x, y float64) *Table {
	t.x = x
	t.y = y
	return t
}

// SetWidth fixes the total width shared by auto columns.
func (t *Table) SetWidth(w float64) *Table {
	t.tableWidth = w
	return t
}

// Rows returns the body and header rows in render order.
func (t *Table) Rows() []*Row { return t.rows }

// AddRow appends a body row.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow adds a header row after any existing header rows. Header rows
// are repeated at the top of each new page.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{header: true}
	t.rows = append(t.rows, nil)
	copy(t.rows[t.headerRows+1:], t.rows[t.headerRows:])
	t.rows[t.headerRows] = r
	t.headerRows++
	return r
}

// Render draws the table to the PDF document and leaves the cursor below it.
func (t *Table) Render() error {
	if t.pdf.Err() {
		return t.pdf.Error()
	}

	widths := t.calculateWidths()
	if len(widths) == 0 {
		return nil
	}

	startX := t.x
	if startX == 0 {
		startX = t.pdf.GetX()
	}
	if t.y != 0 {
		t.pdf.SetY(t.y)
	}

	headers := t.rows[:t.headerRows]
	for _, r := range headers {
		t.renderRow(r, widths, startX, -1)
	}

	_, pageH := t.pdf.GetPageSize()
	_, _, _, bMargin := t.pdf.GetMargins()
	for i, r := range t.rows[t.headerRows:] {
		if t.pdf.GetY()+t.calculateRowHeight(r, widths) > pageH-bMargin {
			t.pdf.AddPage()
			t.pdf.SetX(startX)
			for _, hr := range headers {
				t.renderRow(hr, widths, startX, -1)
			}
		}
		t.renderRow(r, widths, startX, i)
	}

	return t.pdf.Error()
}

// calculateWidths resolves auto columns against the available width.
func (t *Table) calculateWidths() []float64 {
	totalWidth := t.tableWidth
	if totalWidth == 0 {
		pageW, _ := t.pdf.GetPageSize()
		lMargin, _, rMargin, _ := t.pdf.GetMargins()
		totalWidth = pageW - lMargin - rMargin
	}

	if len(t.columns) == 0 {
		if len(t.rows) == 0 || len(t.rows[0].cells) == 0 {
			return nil
		}
		t.columns = make([]Column, len(t.rows[0].cells))
	}

	widths := make([]float64, len(t.columns))
	fixedTotal := 0.0
	autoCount := 0
	for i, col := range t.columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixedTotal += col.Width
		} else {
			autoCount++
		}
	}
	if autoCount == 0 {
		return widths
	}

	autoWidth := max(totalWidth-fixedTotal, 0) / float64(autoCount)
	for i, col := range t.columns {
		if col.Width > 0 {
			continue
		}
		w := autoWidth
		if col.MinWidth > 0 && w < col.MinWidth {
			w = col.MinWidth
		}
		if col.MaxWidth > 0 && w > col.MaxWidth {
			w = col.MaxWidth
		}
		widths[i] = w
	}
	return widths
}

// cellWidth returns the width of the cell at column i including its colspan.
func cellWidth(cell *Cell, i int, widths []float64) float64 {
	w := widths[i]
	for j := 1; j < cell.span && i+j < len(widths); j++ {
		w += widths[i+j]
	}
	return w
}

// lineHeight is the height of one wrapped text line in the current font.
func (t *Table) lineHeight() float64 {
	factor := t.style.LineHeight
	if factor <= 0 {
		factor = 1.4
	}
	_, size := t.pdf.GetFontSize()
	return size * factor
}

// calculateRowHeight is the height of the row's tallest wrapped cell.
func (t *Table) calculateRowHeight(r *Row, widths []float64) float64 {
	padding := t.style.Padding
	maxH := r.minH

	for i, cell := range r.cells {
		if i >= len(widths) {
			break
		}
		contentW := max(cellWidth(cell, i, widths)-padding.Left-padding.Right, 1)

		t.applyFont(t.resolveCellStyle(cell, r, i, 0, r.header))
		lines := t.pdf.SplitLines([]byte(t.translate(cell.text)), contentW)
		h := float64(max(len(lines), 1))*t.lineHeight() + padding.Top + padding.Bottom

		maxH = max(maxH, h)
	}
	return maxH
}

// defaultFont is used when neither the table nor the cell names a font.
var defaultFont = Font{Family: "Helvetica", Size: 10}

// applyFont switches to the style's font, or the default font.
func (t *Table) applyFont(style CellStyle) {
	f := defaultFont
	if style.Font != nil {
		f = *style.Font
	}
	t.pdf.SetFont(f.Family, f.Style, f.Size)
}

// renderRow draws one row at the cursor. bodyIdx is -1 for header rows.
func (t *Table) renderRow(r *Row, widths []float64, startX float64, bodyIdx int) {
	rowH := t.calculateRowHeight(r, widths)
	padding := t.style.Padding
	y := t.pdf.GetY()
	x := startX

	for i, cell := range r.cells {
		if i >= len(widths) {
			break
		}
		cellW := cellWidth(cell, i, widths)
		style := t.resolveCellStyle(cell, r, i, bodyIdx, r.header)

		if style.Fill != nil {
			t.pdf.SetFillColor(style.Fill.R, style.Fill.G, style.Fill.B)
			t.pdf.Rect(x, y, cellW, rowH, "F")
		}
		if !t.style.NoBorder {
			t.drawBorder(x, y, cellW, rowH)
		}

		if style.Ink != nil {
			t.pdf.SetTextColor(style.Ink.R, style.Ink.G, style.Ink.B)
		}
		t.applyFont(style)

		align := "L"
		if style.Align != "" {
			align = style.Align
		} else if i < len(t.columns) && t.columns[i].Align != "" {
			align = t.columns[i].Align
		}

		t.pdf.SetXY(x+padding.Left, y+padding.Top)
		t.pdf.MultiCell(cellW-padding.Left-padding.Right, t.lineHeight(), t.translate(cell.text), "", align, false)
		t.pdf.SetTextColor(0, 0, 0)

		x += cellW
	}

	t.pdf.SetDrawColor(0, 0, 0)
	t.pdf.SetFillColor(255, 255, 255)
	t.applyFont(CellStyle{Font: t.style.Font})
	t.pdf.SetXY(startX, y+rowH)
}

func (t *Table) drawBorder(x, y, w, h float64) {
	width := t.pdf.GetLineWidth()
	if b := t.style.Border; b != nil {
		t.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
		if b.Width > 0 {
			t.pdf.SetLineWidth(b.Width)
		}
	}
	t.pdf.Rect(x, y, w, h, "D")
	t.pdf.SetLineWidth(width)
}

// resolveCellStyle applies the cascade for one cell.
func (t *Table) resolveCellStyle(cell *Cell, row *Row, col, bodyIdx int, isHeader bool) CellStyle {
	var result CellStyle

	if t.style.Font != nil {
		result.Font = t.style.Font
	}

	if isHeader {
		if t.style.Header != nil {
			mergeStyle(&result, t.style.Header)
		}
	} else {
		if col < len(t.columns) && t.columns[col].Style != nil {
			mergeStyle(&result, t.columns[col].Style)
		}
		if t.style.Stripes != nil && bodyIdx >= 0 {
			if bodyIdx%2 == 0 {
				mergeStyle(&result, &t.style.Stripes.Even)
			} else {
				mergeStyle(&result, &t.style.Stripes.Odd)
			}
		}
	}

	if row.style != nil {
		mergeStyle(&result, row.style)
	}
	if cell.style != nil {
		mergeStyle(&result, cell.style)
	}
	return result
}

// mergeStyle copies the set fields of src over dst.
func mergeStyle(dst, src *CellStyle) {
	if src.Fill != nil {
		dst.Fill = src.Fill
	}
	if src.Ink != nil {
		dst.Ink = src.Ink
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
}
