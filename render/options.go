package render

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/config"
	"github.com/lvillar/formfill/layout"
)

// Option is a functional option for configuring a Service via New.
type Option func(*settings)

type settings struct {
	templates      config.TemplatesConfig
	layout         *layout.Registry
	outputDir      string
	fonts          []string
	fallback       bool
	barcodes       bool
	draftStamp     string
	validateOutput bool
	logger         *slog.Logger
	now            func() time.Time
	newID          func() uuid.UUID
}

func defaultSettings() *settings {
	return &settings{
		templates: config.TemplatesConfig{Dir: "templates"},
		outputDir: "media",
		fallback:  true,
		logger:    slog.Default(),
		now:       time.Now,
		newID:     uuid.New,
	}
}

// WithTemplatesDir sets the directory holding the standard template files.
func WithTemplatesDir(dir string) Option {
	return func(s *settings) {
		s.templates.Dir = dir
	}
}

// WithTemplate overrides the template file of one form type.
func WithTemplate(ft formfill.FormType, path string) Option {
	return func(s *settings) {
		switch ft {
		case formfill.Tramite:
			s.templates.Tramite = path
		case formfill.Compraventa:
			s.templates.Compraventa = path
		case formfill.Mandato:
			s.templates.Mandato = path
		}
	}
}

// WithLayout sets the coordinate registry. The built-in tables are used by default.
func WithLayout(reg *layout.Registry) Option {
	return func(s *settings) {
		s.layout = reg
	}
}

// WithOutputDir sets the base directory of generated files.
func WithOutputDir(dir string) Option {
	return func(s *settings) {
		s.outputDir = dir
	}
}

// WithFonts sets the TrueType files tried, in order, before Helvetica.
func WithFonts(paths ...string) Option {
	return func(s *settings) {
		s.fonts = paths
	}
}

// WithFallback enables or disables fallback documents for missing templates.
func WithFallback(enabled bool) Option {
	return func(s *settings) {
		s.fallback = enabled
	}
}

// WithBarcodes adds barcodes to fallback documents.
func WithBarcodes(enabled bool) Option {
	return func(s *settings) {
		s.barcodes = enabled
	}
}

// WithDraftStamp draws text diagonally across every generated page.
func WithDraftStamp(text string) Option {
	return func(s *settings) {
		s.draftStamp = text
	}
}

// WithOutputValidation runs a structural check on every written file.
func WithOutputValidation(enabled bool) Option {
	return func(s *settings) {
		s.validateOutput = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithClock sets the clock used for dates and output file names.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithIDGenerator sets the source of render ids.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *settings) {
		s.newID = fn
	}
}

// FromConfig translates cfg into options. It fails only when the layout
// override file cannot be loaded.
func FromConfig(cfg *config.Config) ([]Option, error) {
	opts := []Option{
		func(s *settings) { s.templates = cfg.Templates },
		WithOutputDir(cfg.Output.Dir),
		WithFonts(cfg.Fonts.Paths...),
		WithFallback(cfg.Fallback.Enabled),
		WithBarcodes(cfg.Fallback.Barcodes),
		WithDraftStamp(cfg.Output.DraftStamp),
		WithOutputValidation(cfg.Output.Validate),
	}
	if cfg.Layout.OverrideFile != "" {
		reg, err := layout.LoadOverrides(layout.Default(), cfg.Layout.OverrideFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLayout(reg))
	}
	return opts, nil
}
