// Package pageops works on whole PDF pages: stamping a drawn overlay onto a
// form template, bundling finished forms into one file and marking pages
// with a draft stamp.
//
// Pages are imported as templates with gofpdi and placed on pages of the
// same size in a new document; anything drawn afterwards lands on top.
package pageops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/reader"
)

// Letter size in points, used when a page size cannot be read.
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0
)

// importPage imports a single page from a source file into the target PDF.
// Returns the template ID and page dimensions.
func importPage(pdf *fpdf.Fpdf, imp *gofpdi.Importer, sourceFile string, pageNum int) (tplID int, w, h float64) {
	tplID = imp.ImportPage(pdf, sourceFile, pageNum, "/MediaBox")
	w, h = lastPageSize(imp, pageNum)
	return
}

func lastPageSize(imp *gofpdi.Importer, pageNum int) (w, h float64) {
	sizes := imp.GetPageSizes()
	if dims, ok := sizes[pageNum]; ok {
		if mb, ok := dims["/MediaBox"]; ok {
			w = mb["w"]
			h = mb["h"]
		}
	}
	return
}

// PageSize returns the media box of the first page of a PDF file, or
// Letter when the file cannot be read. err reports why Letter was used.
func PageSize(filename string) (w, h float64, err error) {
	doc, err := reader.Open(filename)
	if err != nil {
		return LetterWidth, LetterHeight, err
	}
	box, ok := doc.MediaBox(1)
	if !ok || box.Width() <= 0 || box.Height() <= 0 {
		return LetterWidth, LetterHeight, fmt.Errorf("pageops: %s: no readable media box", filename)
	}
	return box.Width(), box.Height(), nil
}

// copyPages appends every page of filename to pdf at its own size and
// calls after, when set, with the page still open for drawing. Panics
// raised by gofpdi on unreadable streams are returned as errors.
func copyPages(pdf *fpdf.Fpdf, filename string, after func(w, h float64)) (err error) {
	doc, err := reader.Open(filename)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("importing %s: %v", filename, r)
		}
	}()

	imp := gofpdi.NewImporter()
	for i := 1; i <= doc.NumPages(); i++ {
		tplID, w, h := importPage(pdf, imp, filename, i)
		if w == 0 || h == 0 {
			w, h = LetterWidth, LetterHeight
			if box, ok := doc.MediaBox(i); ok && box.Width() > 0 && box.Height() > 0 {
				w, h = box.Width(), box.Height()
			}
		}
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, w, h)
		if after != nil {
			after(w, h)
		}
	}
	return pdf.Error()
}

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// writePDF writes the PDF to a writer.
func writePDF(pdf *fpdf.Fpdf, w io.Writer) error {
	return pdf.Output(w)
}

// writePDFToFile writes the PDF to filename, creating missing parent
// directories, and fails when the written file is empty.
func writePDFToFile(pdf *fpdf.Fpdf, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("pageops: creating directory for %s: %w", filename, err)
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("pageops: creating %s: %w", filename, err)
	}
	if err := pdf.Output(f); err != nil {
		f.Close()
		return fmt.Errorf("pageops: writing %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("pageops: closing %s: %w", filename, err)
	}
	return checkNonEmpty(filename)
}

func checkNonEmpty(filename string) error {
	fi, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("pageops: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("pageops: %s: %w", filename, formfill.ErrEmptyOutput)
	}
	return nil
}
