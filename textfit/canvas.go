// Package textfit draws short strings onto a single overlay page so that
// they land at fixed form coordinates without running off the page.
//
// Coordinates follow PDF convention: points, origin at the bottom-left.
// Every draw call takes its own font size, so a call never depends on
// state left behind by a previous one.
package textfit

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/layout"
)

const (
	// DefaultSize is the font size used when a caller passes 0.
	DefaultSize = 9.0
	// PageInset keeps text this far from the left and right page edges.
	PageInset = 2.0
	// CheckboxMargin keeps checkbox marks this far from every page edge.
	CheckboxMargin = 10.0
	// MaxPlainRunes caps plain text fields.
	MaxPlainRunes = 50
	// KeepRunes is what survives when no fitted size is small enough.
	KeepRunes = 30
	// Mark is the glyph drawn in checked boxes.
	Mark = "X"
)

// FitSizes is the default shrink sequence for fitted text.
var FitSizes = []float64{9, 8, 7, 6}

// Placement records one string drawn on the canvas, in page coordinates.
type Placement struct {
	Field string  `json:"field"`
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Width float64 `json:"width"`
}

// Right returns the x coordinate where the drawn text ends.
func (p Placement) Right() float64 { return p.X + p.Width }

// Canvas is a one-page overlay document the size of a template page.
type Canvas struct {
	pdf        *fpdf.Fpdf
	font       Font
	tr         Translator
	width      float64
	height     float64
	placements []Placement
	out        []byte
}

// NewCanvas creates a transparent page of width x height points. When the
// TrueType file of font cannot be loaded the core font is used instead.
func NewCanvas(width, height float64, font Font) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("textfit: invalid page size %.2fx%.2f", width, height)
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	if !font.Core() {
		pdf.AddUTF8Font(font.Family, "", font.Path)
		if pdf.Err() {
			pdf.ClearError()
			font = Font{Family: CoreFamily}
		}
	}
	if font.Family == "" {
		font.Family = CoreFamily
	}
	pdf.AddPage()
	pdf.SetFont(font.Family, "", DefaultSize)
	if pdf.Err() {
		return nil, fmt.Errorf("textfit: creating canvas: %w", pdf.Error())
	}

	return &Canvas{
		pdf:    pdf,
		font:   font,
		tr:     TranslatorFor(font),
		width:  width,
		height: height,
	}, nil
}

// Size returns the page dimensions.
func (c *Canvas) Size() (width, height float64) { return c.width, c.height }

// Font returns the font actually in use.
func (c *Canvas) Font() Font { return c.font }

// Placements returns every string drawn so far, in drawing order.
func (c *Canvas) Placements() []Placement {
	return append([]Placement(nil), c.placements...)
}

// Measure returns the width of text at size.
func (c *Canvas) Measure(text string, size float64) float64 {
	c.pdf.SetFont(c.font.Family, "", size)
	return c.pdf.GetStringWidth(c.tr(text))
}

// clampRight shifts x left so that text of width w ends before the right
// inset, without crossing the left inset.
func (c *Canvas) clampRight(x, w float64) float64 {
	if overflow := x + w - (c.width - PageInset); overflow > 0 {
		x = math.Max(PageInset, x-overflow)
	}
	return x
}

func (c *Canvas) draw(field, text string, x, y, size, w float64) (Placement, error) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return Placement{}, fmt.Errorf("%w: %s: invalid anchor (%v, %v)", formfill.ErrFieldRender, field, x, y)
	}
	c.pdf.SetFont(c.font.Family, "", size)
	c.pdf.Text(x, c.height-y, c.tr(text))
	if c.pdf.Err() {
		err := fmt.Errorf("%w: %s: %v", formfill.ErrFieldRender, field, c.pdf.Error())
		c.pdf.ClearError()
		return Placement{}, err
	}
	p := Placement{Field: field, Text: text, X: x, Y: y, Size: size, Width: w}
	c.placements = append(c.placements, p)
	return p, nil
}

// DrawText draws a plain field: trimmed, upper-cased and cut to
// MaxPlainRunes. Empty text draws nothing and reports false.
func (c *Canvas) DrawText(field string, at layout.Point, text string, size float64) (Placement, bool, error) {
	return c.DrawTextN(field, at, text, size, MaxPlainRunes)
}

// DrawTextN is DrawText with a caller-chosen rune limit.
func (c *Canvas) DrawTextN(field string, at layout.Point, text string, size float64, maxRunes int) (Placement, bool, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return Placement{}, false, nil
	}
	if size <= 0 {
		size = DefaultSize
	}
	if maxRunes > 0 && utf8.RuneCountInString(text) > maxRunes {
		text = string([]rune(text)[:maxRunes])
	}
	w := c.Measure(text, size)
	p, err := c.draw(field, text, c.clampRight(at.X, w), at.Y, size, w)
	return p, err == nil, err
}

// DrawShrunk draws a long plain field, cut to maxRunes, starting at size
// and stepping down through the smaller FitSizes until it ends before the
// right inset. Only when the smallest size still overflows is the text
// shifted left.
func (c *Canvas) DrawShrunk(field string, at layout.Point, text string, size float64, maxRunes int) (Placement, bool, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return Placement{}, false, nil
	}
	if size <= 0 {
		size = DefaultSize
	}
	if maxRunes > 0 && utf8.RuneCountInString(text) > maxRunes {
		text = string([]rune(text)[:maxRunes])
	}

	limit := c.width - PageInset - at.X
	w := c.Measure(text, size)
	for _, s := range FitSizes {
		if w <= limit {
			break
		}
		if s < size {
			size, w = s, c.Measure(text, s)
		}
	}
	p, err := c.draw(field, text, c.clampRight(at.X, w), at.Y, size, w)
	return p, err == nil, err
}

// DrawFitted draws text at the largest size in sizes whose width does not
// exceed maxWidth. When none fits, only the last KeepRunes runes are drawn
// at the smallest size. sizes defaults to FitSizes.
func (c *Canvas) DrawFitted(field string, at layout.Point, text string, maxWidth float64, sizes ...float64) (Placement, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Placement{}, false, nil
	}
	if len(sizes) == 0 {
		sizes = FitSizes
	}

	size, w, ok := 0.0, 0.0, false
	for _, s := range sizes {
		w = c.Measure(text, s)
		if w <= maxWidth {
			size, ok = s, true
			break
		}
	}
	if !ok {
		size = sizes[len(sizes)-1]
		if r := []rune(text); len(r) > KeepRunes {
			text = string(r[len(r)-KeepRunes:])
		}
		w = c.Measure(text, size)
	}

	p, err := c.draw(field, text, c.clampRight(at.X, w), at.Y, size, w)
	return p, err == nil, err
}

// DrawCheck draws Mark near at, kept CheckboxMargin away from the edges.
func (c *Canvas) DrawCheck(field string, at layout.Point, size float64) (Placement, error) {
	if size <= 0 {
		size = DefaultSize
	}
	x := math.Max(CheckboxMargin, math.Min(at.X, c.width-CheckboxMargin))
	y := math.Max(CheckboxMargin, math.Min(at.Y, c.height-CheckboxMargin))
	return c.draw(field, Mark, x, y, size, c.Measure(Mark, size))
}

// GroupPart is one member of a field group.
type GroupPart struct {
	Field string
	At    layout.Point
	Text  string
}

// DrawGroup draws the non-empty parts left to right. Each part starts at
// least minGap after the previous one ends; when the last part would cross
// the right inset, all parts shift left by the same amount so the gaps
// are preserved.
func (c *Canvas) DrawGroup(parts []GroupPart, size, minGap float64) ([]Placement, error) {
	if size <= 0 {
		size = DefaultSize
	}

	type slot struct {
		part GroupPart
		x, w float64
	}
	var slots []slot
	for _, p := range parts {
		p.Text = strings.ToUpper(strings.TrimSpace(p.Text))
		if p.Text == "" {
			continue
		}
		x := p.At.X
		if n := len(slots); n > 0 {
			prev := slots[n-1]
			x = math.Max(x, prev.x+prev.w+minGap)
		}
		slots = append(slots, slot{part: p, x: x, w: c.Measure(p.Text, size)})
	}
	if len(slots) == 0 {
		return nil, nil
	}

	last := slots[len(slots)-1]
	if overflow := last.x + last.w - (c.width - PageInset); overflow > 0 {
		for i := range slots {
			slots[i].x -= overflow
		}
	}

	out := make([]Placement, 0, len(slots))
	for _, s := range slots {
		p, err := c.draw(s.part.Field, s.part.Text, s.x, s.part.At.Y, size, s.w)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Bytes finalizes the page and returns the PDF document. Later calls
// return the same bytes.
func (c *Canvas) Bytes() ([]byte, error) {
	if c.out != nil {
		return c.out, nil
	}
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("textfit: writing overlay: %w", err)
	}
	c.out = buf.Bytes()
	return c.out, nil
}
