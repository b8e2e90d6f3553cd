package table

import "fmt"

// Cell is one text cell. A cell may span several columns.
type Cell struct {
	text  string
	span  int
	style *CellStyle
}

// Text returns the cell text as given, before translation.
func (c *Cell) Text() string { return c.text }

// SetColspan makes the cell span n columns. Values below 1 are ignored.
func (c *Cell) SetColspan(n int) *Cell {
	if n > 0 {
		c.span = n
	}
	return c
}

// SetStyle overrides the table, column and row styles for this cell.
func (c *Cell) SetStyle(s CellStyle) *Cell {
	c.style = &s
	return c
}

// SetAlign overrides only the alignment.
func (c *Cell) SetAlign(align string) *Cell {
	if c.style == nil {
		c.style = &CellStyle{}
	}
	c.style.Align = align
	return c
}

// Row is a list of cells drawn side by side; its height is that of its
// tallest cell, or its minimum height when larger.
type Row struct {
	cells  []*Cell
	style  *CellStyle
	header bool
	minH   float64
}

// Cells returns the cells of the row.
func (r *Row) Cells() []*Cell { return r.cells }

// AddCell appends a cell.
func (r *Row) AddCell(text string) *Cell {
	c := &Cell{text: text, span: 1}
	r.cells = append(r.cells, c)
	return c
}

// AddCellf appends a formatted cell.
func (r *Row) AddCellf(format string, args ...any) *Cell {
	return r.AddCell(fmt.Sprintf(format, args...))
}

// AddPair appends a label cell and a value cell. An empty value is replaced
// by placeholder.
func (r *Row) AddPair(label, value, placeholder string) *Row {
	r.AddCell(label)
	if value == "" {
		value = placeholder
	}
	r.AddCell(value)
	return r
}

// SetStyle applies s to every cell of the row.
func (r *Row) SetStyle(s CellStyle) *Row {
	r.style = &s
	return r
}

// SetMinHeight reserves at least h points for the row, as for a blank
// signing space.
func (r *Row) SetMinHeight(h float64) *Row {
	r.minH = h
	return r
}
