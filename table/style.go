// Package table lays out bordered text tables on an fpdf page: label/value
// grids, signature blocks and any other fixed-column layout, with wrapped
// cells, repeating headers and automatic page breaks.
//
// Styles cascade from the table to the column, the stripe, the row and
// finally the cell; the last non-empty setting wins.
package table

// Color is an RGB triple with channels in 0..255.
type Color struct {
	R, G, B int
}

// Gray returns the gray level v.
func Gray(v int) Color { return Color{v, v, v} }

// Font selects a font family, style ("", "B", "I", "BI") and size in
// points.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Bold returns f with the bold style.
func (f Font) Bold() *Font {
	f.Style = "B"
	return &f
}

// Padding is the space between a cell border and its text.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Pad returns v on every side.
func Pad(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// Border is the line drawn around each cell.
type Border struct {
	Width float64
	Color Color
}

// CellStyle is the part of a style that can change per cell.
type CellStyle struct {
	Fill  *Color
	Ink   *Color
	Font  *Font
	Align string // "L", "C", "R" or "J"
}

// Stripes colors body rows alternately, starting with Even.
type Stripes struct {
	Even CellStyle
	Odd  CellStyle
}

// Style is the table-wide style.
type Style struct {
	Border     *Border // nil draws thin black borders
	NoBorder   bool
	Stripes    *Stripes
	Header     *CellStyle
	Padding    Padding
	Font       *Font
	LineHeight float64 // multiple of the font size, default 1.4
}
