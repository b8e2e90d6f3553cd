// Package overlay draws payload values onto a transparent page the size of
// a form template, ready to be stamped over the template by pageops.
package overlay

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/layout"
	"github.com/lvillar/formfill/normalize"
	"github.com/lvillar/formfill/textfit"
)

// PageSize is a page size in points.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Letter is used when a template page size cannot be read.
var Letter = PageSize{Width: 612, Height: 792}

// FieldError records a field that was skipped because drawing it failed.
type FieldError struct {
	Field string
	Err   error
}

func (e FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

// Overlay is a one-page PDF holding only the drawn values.
type Overlay struct {
	FormType   formfill.FormType
	Page       PageSize
	PDF        []byte
	Placements []textfit.Placement
	Skipped    []FieldError
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for per-field diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithFont sets the overlay font.
func WithFont(f textfit.Font) Option {
	return func(b *Builder) { b.font = f }
}

// WithClock sets the clock used for dates that default to today.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// Builder turns payloads into overlays using a coordinate registry.
type Builder struct {
	layout *layout.Registry
	font   textfit.Font
	logger *slog.Logger
	now    func() time.Time
}

// NewBuilder returns a Builder over reg, or over the built-in registry
// when reg is nil.
func NewBuilder(reg *layout.Registry, opts ...Option) *Builder {
	if reg == nil {
		reg = layout.Default()
	}
	b := &Builder{
		layout: reg,
		font:   textfit.Font{Family: textfit.CoreFamily},
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type fillFunc func(f *filler)

var fillers = map[formfill.FormType]fillFunc{
	formfill.Tramite:     fillTramite,
	formfill.Compraventa: fillCompraventa,
	formfill.Mandato:     fillMandato,
}

// Build draws data for ft on a page of the given size. Fields whose
// coordinates are unknown are skipped silently; fields that fail to draw
// are logged and listed in Overlay.Skipped.
func (b *Builder) Build(ft formfill.FormType, data formfill.Data, page PageSize) (*Overlay, error) {
	fill, ok := fillers[ft]
	if !ok {
		return nil, fmt.Errorf("overlay: %w: %q", formfill.ErrUnsupportedFormType, ft)
	}
	table, err := b.layout.Table(ft)
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	if page.Width <= 0 || page.Height <= 0 {
		page = Letter
	}

	canvas, err := textfit.NewCanvas(page.Width, page.Height, b.font)
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}

	f := &filler{
		canvas: canvas,
		table:  table,
		data:   data,
		res:    normalize.NewResolver(data),
		logger: b.logger.With("form_type", string(ft)),
		now:    b.now(),
	}
	fill(f)

	pdf, err := canvas.Bytes()
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	f.logger.Debug("overlay built", "fields", len(canvas.Placements()), "skipped", len(f.skipped))

	return &Overlay{
		FormType:   ft,
		Page:       page,
		PDF:        pdf,
		Placements: canvas.Placements(),
		Skipped:    f.skipped,
	}, nil
}
