// Package fallback lays out a form as a plain flowing document when the
// official template is not available: a title, label/value tables per
// section, contract clauses and signature lines.
package fallback

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/doctpl"
	"github.com/lvillar/formfill/normalize"
)

// Option configures a Generator.
type Option func(*Generator)

// WithBarcodes adds a plate Code128 and a reference QR under the title, and
// a PDF417 of the signing parties on contracts.
func WithBarcodes(on bool) Option {
	return func(g *Generator) { g.barcodes = on }
}

// WithFontFile embeds a TrueType font instead of Helvetica.
func WithFontFile(path string) Option {
	return func(g *Generator) { g.fontFile = path }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithClock sets the clock used for the document date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator builds fallback documents.
type Generator struct {
	barcodes bool
	fontFile string
	logger   *slog.Logger
	now      func() time.Time
}

// New returns a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type builder func(b *docBuilder)

var builders = map[formfill.FormType]builder{
	formfill.Tramite:     buildTramite,
	formfill.Compraventa: buildCompraventa,
	formfill.Mandato:     buildMandato,
}

// Document returns the fallback document of ft for data. ref identifies the
// render and is encoded in the reference QR when barcodes are on.
func (g *Generator) Document(ft formfill.FormType, data formfill.Data, ref string) (*doctpl.Document, error) {
	build, ok := builders[ft]
	if !ok {
		return nil, fmt.Errorf("fallback: %w: %q", formfill.ErrUnsupportedFormType, ft)
	}

	b := &docBuilder{
		gen: g,
		res: normalize.NewResolver(data),
		now: g.now(),
		ref: ref,
		doc: &doctpl.Document{
			Title:    ft.Title(),
			Subject:  string(ft),
			Author:   "formfill",
			FontFile: g.fontFile,
			Footer:   &doctpl.Footer{Text: "Documento generado sin plantilla oficial - Página {page}"},
		},
	}
	build(b)
	return b.doc, nil
}

// Generate writes the fallback document of ft to outputPath. The output file
// name, without extension, is used as the document reference.
func (g *Generator) Generate(ft formfill.FormType, data formfill.Data, outputPath string) error {
	ref := strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))
	doc, err := g.Document(ft, data, ref)
	if err != nil {
		return err
	}
	if err := doctpl.RenderFile(outputPath, doc); err != nil {
		return formfill.NewFormError("fallback", ft, err)
	}
	g.logger.Info("fallback document generated", "form_type", string(ft), "path", outputPath, "blocks", len(doc.Blocks))
	return nil
}
