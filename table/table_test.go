package table_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/formfill/table"
	"github.com/lvillar/formfill/textfit"
)

func newTestPDF() *fpdf.Fpdf {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(72, 72, 72)
	doc.SetAutoPageBreak(true, 72)
	doc.SetFont("Helvetica", "", 10)
	doc.AddPage()
	return doc
}

func output(t *testing.T, doc *fpdf.Fpdf) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	require.NotZero(t, buf.Len())
	return buf.Bytes()
}

func plainText(t *testing.T, data []byte) string {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		require.NoError(t, err)
		sb.WriteString(text)
	}
	return sb.String()
}

var (
	gray  = table.Gray(235)
	white = table.Gray(255)
)

func TestLabelValueTable(t *testing.T) {
	doc := newTestPDF()

	tb := table.New(doc)
	tb.SetColumns(
		table.Column{Width: 144, Style: &table.CellStyle{
			Font: &table.Font{Family: "Helvetica", Style: "B", Size: 10},
			Fill: &gray,
		}},
		table.Column{Width: 288},
	)
	tb.AddRow().AddPair("Placa:", "ABC123", "N/A")
	tb.AddRow().AddPair("Marca:", "CHEVROLET", "N/A")
	tb.AddRow().AddPair("Color:", "", "N/A")

	startY := doc.GetY()
	require.NoError(t, tb.Render())
	assert.Greater(t, doc.GetY(), startY)

	text := plainText(t, output(t, doc))
	assert.Contains(t, text, "Placa:")
	assert.Contains(t, text, "ABC123")
	assert.Contains(t, text, "CHEVROLET")
	assert.Contains(t, text, "N/A")
	assert.Equal(t, "N/A", tb.Rows()[2].Cells()[1].Text())
}

func TestStyleHelpers(t *testing.T) {
	assert.Equal(t, table.Color{R: 128, G: 128, B: 128}, table.Gray(128))

	base := table.Font{Family: "Helvetica", Size: 9}
	bold := base.Bold()
	assert.Equal(t, "B", bold.Style)
	assert.Equal(t, "", base.Style)
	assert.Equal(t, table.Padding{Top: 2, Right: 2, Bottom: 2, Left: 2}, table.Pad(2))
}

func TestAutoWidthColumns(t *testing.T) {
	doc := newTestPDF()

	tb := table.New(doc)
	tb.SetColumnWidths(0, 0, 0)
	r := tb.AddRow()
	r.AddCell("Auto 1")
	r.AddCell("Auto 2")
	r.AddCell("Auto 3")

	require.NoError(t, tb.Render())
	output(t, doc)
}

func TestHeaderRowsComeFirst(t *testing.T) {
	doc := newTestPDF()

	tb := table.New(doc)
	tb.AddRow().AddCell("body")
	tb.AddHeaderRow().AddCell("head 1")
	tb.AddHeaderRow().AddCell("head 2")

	var got []string
	for _, r := range tb.Rows() {
		got = append(got, r.Cells()[0].Text())
	}
	assert.Equal(t, []string{"head 1", "head 2", "body"}, got)
}

func TestHeaderRepeatsOnPageBreak(t *testing.T) {
	doc := newTestPDF()

	tb := table.New(doc)
	tb.SetColumnWidths(150, 150, 150)
	tb.SetStyle(table.Style{
		Header: &table.CellStyle{
			Fill: &table.Color{R: 63, G: 81, B: 181},
			Ink:  &white,
			Font: &table.Font{Family: "Helvetica", Style: "B", Size: 11},
		},
		Stripes: &table.Stripes{
			Even: table.CellStyle{Fill: &table.Color{R: 245, G: 245, B: 245}},
		},
		Padding: table.Pad(3),
	})

	h := tb.AddHeaderRow()
	h.AddCell("Campo")
	h.AddCell("Valor")
	h.AddCell("Nota")
	for i := 0; i < 60; i++ {
		r := tb.AddRow()
		r.AddCellf("%d", i+1)
		r.AddCellf("Item %d", i+1)
		r.AddCellf("$%.2f", float64(i+1)*1.5)
	}

	require.NoError(t, tb.Render())
	assert.GreaterOrEqual(t, doc.PageNo(), 2)

	text := plainText(t, output(t, doc))
	assert.GreaterOrEqual(t, strings.Count(text, "Campo"), 2)
}

func TestWrappedCellGrowsRow(t *testing.T) {
	short := newTestPDF()
	tb := table.New(short)
	tb.SetColumnWidths(100, 100)
	r := tb.AddRow()
	r.AddCell("Observaciones:")
	r.AddCell("corto")
	y0 := short.GetY()
	require.NoError(t, tb.Render())
	shortH := short.GetY() - y0

	long := newTestPDF()
	tb = table.New(long)
	tb.SetColumnWidths(100, 100)
	r = tb.AddRow()
	r.AddCell("Observaciones:")
	r.AddCell(strings.Repeat("texto largo de prueba ", 10))
	y0 = long.GetY()
	require.NoError(t, tb.Render())
	longH := long.GetY() - y0

	assert.Greater(t, longH, shortH)
}

func TestColspanAndNoBorder(t *testing.T) {
	doc := newTestPDF()

	tb := table.New(doc)
	tb.SetColumnWidths(200, 200)
	tb.SetStyle(table.Style{NoBorder: true, Padding: table.Pad(2)})

	tb.AddRow().AddCell("FIRMAS").SetColspan(2).SetAlign("C")
	r := tb.AddRow()
	r.AddCell("_________________________").SetAlign("C")
	r.AddCell("_________________________").SetAlign("C")

	require.NoError(t, tb.Render())
	assert.Contains(t, plainText(t, output(t, doc)), "FIRMAS")
}

func TestTranslatorAppliedToCells(t *testing.T) {
	doc := newTestPDF()

	var seen []string
	tb := table.New(doc)
	tb.SetColumnWidths(200)
	tb.SetTranslator(func(s string) string {
		seen = append(seen, s)
		return textfit.CP1252(s)
	})
	tb.AddRow().AddCell("Año")

	require.NoError(t, tb.Render())
	assert.Contains(t, seen, "Año")
	output(t, doc)
}

func TestEmptyTable(t *testing.T) {
	doc := newTestPDF()

	tb := table.New(doc)
	tb.SetColumnWidths(60, 60)
	require.NoError(t, tb.Render())

	require.NoError(t, table.New(doc).Render())
}

func TestRenderReportsEngineError(t *testing.T) {
	doc := newTestPDF()
	doc.SetError(assert.AnError)

	tb := table.New(doc)
	tb.AddRow().AddCell("x")
	assert.ErrorIs(t, tb.Render(), assert.AnError)
}
