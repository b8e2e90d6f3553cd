package pageops

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/lvillar/formfill/textfit"
)

// Stamp is text drawn diagonally across the middle of every page, such as
// BORRADOR on documents that are not final.
type Stamp struct {
	Text     string
	FontSize float64 // default 60
	Gray     int     // gray level of the text, default 200
	Opacity  float64 // default 0.3
	Angle    float64 // degrees counter-clockwise, default 45
}

// DraftStamp returns a stamp with the default look.
func DraftStamp(text string) *Stamp {
	return &Stamp{Text: text}
}

func (s Stamp) withDefaults() Stamp {
	if s.FontSize == 0 {
		s.FontSize = 60
	}
	if s.Gray == 0 {
		s.Gray = 200
	}
	if s.Opacity == 0 {
		s.Opacity = 0.3
	}
	if s.Angle == 0 {
		s.Angle = 45
	}
	return s
}

// StampTo writes a copy of the PDF at inputPath with s on every page.
func StampTo(w io.Writer, inputPath string, s Stamp) error {
	pdf, err := buildStamped(inputPath, s)
	if err != nil {
		return err
	}
	return writePDF(pdf, w)
}

// StampFile is StampTo writing to outputPath, which must differ from
// inputPath.
func StampFile(inputPath, outputPath string, s Stamp) error {
	if inputPath == outputPath {
		return fmt.Errorf("pageops: stamp: output would overwrite %s", inputPath)
	}
	pdf, err := buildStamped(inputPath, s)
	if err != nil {
		return err
	}
	return writePDFToFile(pdf, outputPath)
}

func buildStamped(inputPath string, s Stamp) (*fpdf.Fpdf, error) {
	s = s.withDefaults()
	pdf := newDocument()
	err := copyPages(pdf, inputPath, func(w, h float64) {
		drawStamp(pdf, s, w, h)
	})
	if err != nil {
		return nil, fmt.Errorf("pageops: stamp: %w", err)
	}
	return pdf, nil
}

// drawStamp centres s on the current page and restores the text colour
// and opacity afterwards.
func drawStamp(pdf *fpdf.Fpdf, s Stamp, pageW, pageH float64) {
	text := textfit.CP1252(s.Text)
	pdf.SetFont("Helvetica", "B", s.FontSize)
	pdf.SetTextColor(s.Gray, s.Gray, s.Gray)
	pdf.SetAlpha(s.Opacity, "Normal")

	cx, cy := pageW/2, pageH/2
	pdf.TransformBegin()
	pdf.TransformRotate(s.Angle, cx, cy)
	pdf.Text(cx-pdf.GetStringWidth(text)/2, cy+s.FontSize/3, text)
	pdf.TransformEnd()

	pdf.SetAlpha(1, "Normal")
	pdf.SetTextColor(0, 0, 0)
}
