package reader_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/formfill/reader"
)

// generateTestPDF creates a PDF in points with one page per text.
func generateTestPDF(t *testing.T, size fpdf.SizeType, texts ...string) []byte {
	t.Helper()
	pdf := fpdf.NewCustom(&fpdf.InitType{OrientationStr: "P", UnitStr: "pt", Size: size})
	pdf.SetFont("Helvetica", "", 12)
	for _, text := range texts {
		pdf.AddPage()
		pdf.Text(40, 60, text)
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestReadFrom(t *testing.T) {
	data := generateTestPDF(t, fpdf.SizeType{Wd: 612, Ht: 792}, "PLACA ABC123", "SEGUNDA")

	doc, err := reader.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.NumPages())

	box, ok := doc.MediaBox(1)
	require.True(t, ok)
	assert.InDelta(t, 612, box.Width(), 0.01)
	assert.InDelta(t, 792, box.Height(), 0.01)

	_, ok = doc.MediaBox(3)
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	data := generateTestPDF(t, fpdf.SizeType{Wd: 612, Ht: 792}, "PLACA ABC123")
	doc, err := reader.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)

	text, err := doc.Text()
	require.NoError(t, err)
	assert.Contains(t, strings.ReplaceAll(text, " ", ""), "ABC123")
}

func TestOpenAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.pdf")
	require.NoError(t, os.WriteFile(path, generateTestPDF(t, fpdf.SizeType{Wd: 842, Ht: 595}, "x"), 0o644))

	doc, err := reader.Open(path)
	require.NoError(t, err)
	box, _ := doc.MediaBox(1)
	assert.InDelta(t, 842, box.Width(), 0.01)

	assert.NoError(t, reader.Validate(path))
}

func TestPageCount(t *testing.T) {
	n, err := reader.PageCount(generateTestPDF(t, fpdf.SizeType{Wd: 612, Ht: 792}, "a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRejectsGarbage(t *testing.T) {
	_, err := reader.ReadFrom(strings.NewReader("not a pdf"))
	assert.Error(t, err)

	_, err = reader.ReadFrom(strings.NewReader(""))
	assert.Error(t, err)

	_, err = reader.Open(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
