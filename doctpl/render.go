package doctpl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/boombuler/barcode/qr"
	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/barcode"

	"github.com/lvillar/formfill/table"
	"github.com/lvillar/formfill/textfit"
)

const (
	labelWidth = 144 // 2in
	valueWidth = 288 // 4in
	signLine   = "_________________________"
)

var headingSizes = []float64{16, 12, 11}

type renderer struct {
	pdf      *fpdf.Fpdf
	tr       textfit.Translator
	font     Font
	contentW float64
}

// RenderFile renders doc to filename, creating parent directories.
func RenderFile(filename string, doc *Document) error {
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("doctpl: creating directory: %w", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("doctpl: writing %s: %w", filename, err)
	}
	return nil
}

// Render renders doc as a PDF written to w.
func Render(w io.Writer, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("doctpl: nil document")
	}
	r := newRenderer(doc)

	for i, b := range doc.Blocks {
		if err := r.block(b); err != nil {
			return fmt.Errorf("doctpl: block %d: %w", i+1, err)
		}
		if r.pdf.Err() {
			return fmt.Errorf("doctpl: block %d: %w", i+1, r.pdf.Error())
		}
	}

	if r.pdf.Err() {
		return fmt.Errorf("doctpl: %w", r.pdf.Error())
	}
	return r.pdf.Output(w)
}

func newRenderer(doc *Document) *renderer {
	pdf := fpdf.New("P", "pt", "Letter", "")

	m := Margin{Top: 72, Right: 72, Bottom: 72, Left: 72}
	if doc.Margin != nil {
		m = *doc.Margin
	}
	pdf.SetMargins(m.Left, m.Top, m.Right)
	pdf.SetAutoPageBreak(true, m.Bottom)

	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	if doc.Author != "" {
		pdf.SetAuthor(doc.Author, true)
	}
	if doc.Subject != "" {
		pdf.SetSubject(doc.Subject, true)
	}

	font := Font{Family: textfit.CoreFamily, Size: 10}
	if doc.Font != nil {
		if doc.Font.Family != "" {
			font.Family = doc.Font.Family
		}
		if doc.Font.Size > 0 {
			font.Size = doc.Font.Size
		}
		font.Style = doc.Font.Style
	}

	face := textfit.ResolveFont([]string{doc.FontFile})
	if !face.Core() {
		pdf.AddUTF8Font(face.Family, "", face.Path)
		pdf.AddUTF8Font(face.Family, "B", face.Path)
		if pdf.Err() {
			pdf.ClearError()
			face = textfit.Font{Family: textfit.CoreFamily}
		} else {
			font.Family = face.Family
		}
	}

	pageW, _ := pdf.GetPageSize()
	r := &renderer{
		pdf:      pdf,
		tr:       textfit.TranslatorFor(face),
		font:     font,
		contentW: pageW - m.Left - m.Right,
	}

	if doc.Footer != nil {
		ftr := *doc.Footer
		pdf.SetFooterFunc(func() { r.footer(ftr) })
	}
	pdf.AddPage()
	r.reset()
	return r
}

func (r *renderer) reset() {
	r.pdf.SetFont(r.font.Family, r.font.Style, r.font.Size)
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *renderer) lineHeight(size float64) float64 { return size * 1.4 }

func (r *renderer) block(b Block) error {
	switch b.Type {
	case Heading:
		r.heading(b)
	case Paragraph:
		r.paragraph(b.Text, b.Align)
	case Fields:
		return r.fields(b.Fields)
	case Clauses:
		r.clauses(b.Clauses)
	case Signatures:
		return r.signatures(b.Signatures)
	case Spacer:
		h := b.Height
		if h <= 0 {
			h = 12
		}
		r.pdf.Ln(h)
	case Rule:
		r.rule()
	case Barcode:
		return r.barcode(b.Code, b.Align)
	default:
		return fmt.Errorf("unknown block type %q", b.Type)
	}
	return nil
}

func align(a, def string) string {
	if a == "" {
		return def
	}
	return strings.ToUpper(a)
}

func (r *renderer) heading(b Block) {
	level := min(max(b.Level, 1), len(headingSizes))
	size := headingSizes[level-1]
	def := "L"
	if level == 1 {
		def = "C"
	}

	r.pdf.SetFont(r.font.Family, "B", size)
	r.pdf.Ln(size * 0.3)
	r.pdf.MultiCell(r.contentW, r.lineHeight(size), r.tr(b.Text), "", align(b.Align, def), false)
	r.pdf.Ln(size * 0.4)
	r.reset()
}

func (r *renderer) paragraph(text, a string) {
	r.pdf.MultiCell(r.contentW, r.lineHeight(r.font.Size), r.tr(text), "", align(a, "J"), false)
	r.pdf.Ln(r.font.Size * 0.6)
}

var labelFill = table.Gray(235)

func (r *renderer) tableFont() table.Font {
	return table.Font{Family: r.font.Family, Size: r.font.Size}
}

func (r *renderer) newTable() *table.Table {
	t := table.New(r.pdf)
	t.SetTranslator(r.tr)
	t.SetPosition(r.pdf.GetX(), 0)
	return t
}

func (r *renderer) fields(fields []Field) error {
	font := r.tableFont()
	t := r.newTable()
	t.SetColumns(
		table.Column{Width: labelWidth, Style: &table.CellStyle{Font: font.Bold(), Fill: &labelFill}},
		table.Column{Width: valueWidth},
	)
	t.SetStyle(table.Style{
		Border:  &table.Border{Width: 0.5, Color: table.Gray(128)},
		Padding: table.Pad(3),
		Font:    &font,
	})

	for _, f := range fields {
		t.AddRow().AddPair(f.Label, strings.TrimSpace(f.Value), Missing)
	}

	if err := t.Render(); err != nil {
		return err
	}
	r.pdf.Ln(r.font.Size)
	r.reset()
	return nil
}

func (r *renderer) clauses(clauses []Clause) {
	for _, c := range clauses {
		if c.Title != "" {
			r.pdf.SetFont(r.font.Family, "B", r.font.Size)
			r.pdf.MultiCell(r.contentW, r.lineHeight(r.font.Size), r.tr(c.Title), "", "L", false)
			r.reset()
		}
		r.paragraph(c.Text, "J")
	}
}

// signatures draws parties two per row: a blank signing space, the line,
// the role in bold, the name and the identity document.
func (r *renderer) signatures(sigs []Signature) error {
	if len(sigs) == 0 {
		return nil
	}
	half := r.contentW / 2
	font := r.tableFont()
	bold := &table.CellStyle{Font: font.Bold()}

	t := r.newTable()
	t.SetColumns(
		table.Column{Width: half, Align: "C"},
		table.Column{Width: half, Align: "C"},
	)
	t.SetStyle(table.Style{
		NoBorder:   true,
		Padding:    table.Padding{Left: 6, Right: 6},
		Font:       &font,
		LineHeight: 1.5,
	})

	for i := 0; i < len(sigs); i += 2 {
		pair := sigs[i:min(i+2, len(sigs))]

		t.AddRow().SetMinHeight(36)
		lines, roles, names, docs := t.AddRow(), t.AddRow().SetStyle(*bold), t.AddRow(), t.AddRow()
		for _, s := range pair {
			lines.AddCell(signLine)
			roles.AddCell(s.Role)
			names.AddCell(s.Name)
			d := ""
			if s.Document != "" {
				d = "C.C. " + s.Document
			}
			docs.AddCell(d)
		}
	}

	if err := t.Render(); err != nil {
		return err
	}
	r.pdf.Ln(r.font.Size)
	r.reset()
	return nil
}

func (r *renderer) rule() {
	pageW, _ := r.pdf.GetPageSize()
	lm, _, rm, _ := r.pdf.GetMargins()

	r.pdf.Ln(4)
	y := r.pdf.GetY()
	r.pdf.SetLineWidth(0.75)
	r.pdf.SetDrawColor(180, 180, 180)
	r.pdf.Line(lm, y, pageW-rm, y)
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetLineWidth(0.5)
	r.pdf.Ln(6)
}

// barcode registers the code with the engine and draws it at the cursor.
// Empty payloads draw nothing.
func (r *renderer) barcode(c *Code, a string) error {
	if c == nil || strings.TrimSpace(c.Value) == "" {
		return nil
	}

	var key string
	w, h := c.Width, c.Height
	switch c.Kind {
	case Code128, "":
		key = barcode.RegisterCode128(r.pdf, c.Value)
		w, h = orDefault(w, 180), orDefault(h, 36)
	case QR:
		key = barcode.RegisterQR(r.pdf, c.Value, qr.M, qr.Unicode)
		w, h = orDefault(w, 72), orDefault(h, 72)
	case PDF417:
		key = barcode.RegisterPdf417(r.pdf, c.Value, 8, 2)
		w, h = orDefault(w, 216), orDefault(h, 54)
	default:
		return fmt.Errorf("unknown barcode kind %q", c.Kind)
	}
	if r.pdf.Err() {
		return fmt.Errorf("encoding %s barcode: %w", c.Kind, r.pdf.Error())
	}

	_, pageH := r.pdf.GetPageSize()
	_, _, _, bottom := r.pdf.GetMargins()
	if r.pdf.GetY()+h > pageH-bottom {
		r.pdf.AddPage()
	}

	lm, _, _, _ := r.pdf.GetMargins()
	x := lm
	switch align(a, "L") {
	case "C":
		x = lm + (r.contentW-w)/2
	case "R":
		x = lm + r.contentW - w
	}
	y := r.pdf.GetY()
	barcode.Barcode(r.pdf, key, x, y, w, h, false)
	r.pdf.SetY(y + h + 2)

	if c.Caption != "" {
		size := r.font.Size - 2
		r.pdf.SetFont(r.font.Family, "", size)
		r.pdf.SetX(x)
		r.pdf.CellFormat(w, r.lineHeight(size), r.tr(c.Caption), "", 1, "C", false, 0, "")
		r.reset()
	}
	r.pdf.Ln(6)
	return nil
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func (r *renderer) footer(f Footer) {
	size := r.font.Size - 2
	_, pageH := r.pdf.GetPageSize()
	_, _, _, bottom := r.pdf.GetMargins()

	r.pdf.SetY(pageH - bottom/2 - size)
	r.pdf.SetFont(r.font.Family, "", size)
	r.pdf.SetTextColor(110, 110, 110)
	text := strings.ReplaceAll(f.Text, "{page}", strconv.Itoa(r.pdf.PageNo()))
	r.pdf.CellFormat(r.contentW, r.lineHeight(size), r.tr(text), "", 0, align(f.Align, "C"), false, 0, "")
	r.reset()
}
