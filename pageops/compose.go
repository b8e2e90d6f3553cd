package pageops

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/reader"
)

// ComposeOptions tunes Compose.
type ComposeOptions struct {
	Stamp    *Stamp // drawn over every page when set
	Validate bool   // run a structural check on the written file
}

// Compose stamps the pages of overlay onto the matching pages of the
// template and writes the result to outputPath. Template pages beyond the
// overlay's page count are copied unchanged. The output has exactly as
// many pages as the template.
func Compose(templatePath string, overlay []byte, outputPath string, opts ComposeOptions) error {
	pdf, err := buildComposed(templatePath, overlay, opts.Stamp)
	if err != nil {
		return err
	}
	if err := writePDFToFile(pdf, outputPath); err != nil {
		return err
	}
	if opts.Validate {
		if err := reader.Validate(outputPath); err != nil {
			return fmt.Errorf("pageops: %w: %v", formfill.ErrComposition, err)
		}
	}
	return nil
}

// ComposeTo is Compose writing to w.
func ComposeTo(w io.Writer, templatePath string, overlay []byte, opts ComposeOptions) error {
	pdf, err := buildComposed(templatePath, overlay, opts.Stamp)
	if err != nil {
		return err
	}
	return writePDF(pdf, w)
}

func buildComposed(templatePath string, overlay []byte, stamp *Stamp) (pdf *fpdf.Fpdf, err error) {
	if _, statErr := os.Stat(templatePath); statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return nil, fmt.Errorf("pageops: %w: %s", formfill.ErrTemplateMissing, templatePath)
		}
		return nil, fmt.Errorf("pageops: %w: %v", formfill.ErrComposition, statErr)
	}
	if len(overlay) == 0 {
		return nil, fmt.Errorf("pageops: %w: empty overlay", formfill.ErrComposition)
	}

	tpl, err := reader.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("pageops: %w: %v", formfill.ErrComposition, err)
	}
	if tpl.NumPages() == 0 {
		return nil, fmt.Errorf("pageops: %w: template %s has no pages", formfill.ErrComposition, templatePath)
	}
	overlayPages, err := reader.PageCount(overlay)
	if err != nil {
		return nil, fmt.Errorf("pageops: %w: %v", formfill.ErrComposition, err)
	}

	// gofpdi panics on streams it cannot parse.
	defer func() {
		if r := recover(); r != nil {
			pdf, err = nil, fmt.Errorf("pageops: %w: %v", formfill.ErrComposition, r)
		}
	}()

	pdf = newDocument()
	imp := gofpdi.NewImporter()
	var rs io.ReadSeeker = bytes.NewReader(overlay)

	for i := 1; i <= tpl.NumPages(); i++ {
		tplID, pw, ph := importPage(pdf, imp, templatePath, i)
		if pw == 0 || ph == 0 {
			pw, ph = LetterWidth, LetterHeight
			if box, ok := tpl.MediaBox(i); ok && box.Width() > 0 && box.Height() > 0 {
				pw, ph = box.Width(), box.Height()
			}
		}

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: pw, Ht: ph})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, pw, ph)

		if i <= overlayPages {
			ovID := imp.ImportPageFromStream(pdf, &rs, i, "/MediaBox")
			imp.UseImportedTemplate(pdf, ovID, 0, 0, pw, ph)
		}
		if stamp != nil {
			drawStamp(pdf, stamp.withDefaults(), pw, ph)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("pageops: %w: %v", formfill.ErrComposition, pdf.Error())
	}
	return pdf, nil
}
