// Package reader inspects existing PDF files: page count, page media boxes,
// plain text and structural validity. Templates are inspected before they
// are composed; generated forms are read back for checks and previews.
package reader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var configOnce sync.Once

// configuration returns a relaxed pdfcpu configuration that never touches
// the user's config directory.
func configuration() *model.Configuration {
	configOnce.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Rectangle is a page box in points.
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Width returns the width of the rectangle.
func (r Rectangle) Width() float64 { return r.URX - r.LLX }

// Height returns the height of the rectangle.
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

// Document is an inspected PDF held in memory.
type Document struct {
	name  string
	data  []byte
	boxes []Rectangle
}

// Open reads and inspects a PDF file from disk.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reader: opening %s: %w", filename, err)
	}
	return inspect(filename, data)
}

// ReadFrom inspects a PDF read entirely from r.
func ReadFrom(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reader: reading input: %w", err)
	}
	return inspect("stream", data)
}

func inspect(name string, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("reader: %s: empty document", name)
	}
	dims, err := api.PageDims(bytes.NewReader(data), configuration())
	if err != nil {
		return nil, fmt.Errorf("reader: %s: %w", name, err)
	}
	doc := &Document{name: name, data: data, boxes: make([]Rectangle, len(dims))}
	for i, d := range dims {
		doc.boxes[i] = Rectangle{URX: d.Width, URY: d.Height}
	}
	return doc, nil
}

// NumPages returns the number of pages.
func (d *Document) NumPages() int { return len(d.boxes) }

// MediaBox returns the media box of a 1-based page.
func (d *Document) MediaBox(page int) (Rectangle, bool) {
	if page < 1 || page > len(d.boxes) {
		return Rectangle{}, false
	}
	return d.boxes[page-1], true
}

// Bytes returns the raw document.
func (d *Document) Bytes() []byte { return d.data }

// Text extracts the plain text of every page, separated by form feeds.
func (d *Document) Text() (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(d.data), int64(len(d.data)))
	if err != nil {
		return "", fmt.Errorf("reader: %s: %w", d.name, err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reader: %s: page %d: %w", d.name, i, err)
		}
		if i > 1 {
			b.WriteByte('\f')
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// PageCount returns the number of pages of an in-memory PDF.
func PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), configuration())
	if err != nil {
		return 0, fmt.Errorf("reader: counting pages: %w", err)
	}
	return n, nil
}

// Validate runs a structural check of a PDF file.
func Validate(filename string) error {
	if err := api.ValidateFile(filename, configuration()); err != nil {
		return fmt.Errorf("reader: validating %s: %w", filename, err)
	}
	return nil
}
