// Package render is the entry point of formfill: it validates a payload,
// draws it over the official template of its form and falls back to a
// generated document when the template file is missing.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/doctpl"
	"github.com/lvillar/formfill/fallback"
	"github.com/lvillar/formfill/layout"
	"github.com/lvillar/formfill/overlay"
	"github.com/lvillar/formfill/pageops"
	"github.com/lvillar/formfill/reader"
	"github.com/lvillar/formfill/textfit"
	"github.com/lvillar/formfill/validate"
)

// Strategy says how a document was produced.
type Strategy string

const (
	StrategyTemplate Strategy = "template"
	StrategyFallback Strategy = "fallback"
)

// GeneratedDir is the sub-directory of the output directory that receives
// documents named by OutputPath.
const GeneratedDir = "generated_forms"

// Result describes a rendered document.
type Result struct {
	RenderID   uuid.UUID
	FormType   formfill.FormType
	Path       string
	Strategy   Strategy
	Placements []textfit.Placement
	Skipped    []overlay.FieldError
}

// Service renders forms. It holds only read-only state and is safe for
// concurrent use.
type Service struct {
	cfg      *settings
	overlays *overlay.Builder
	fallback *fallback.Generator
}

// New creates a Service.
func New(opts ...Option) *Service {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.layout == nil {
		cfg.layout = layout.Default()
	}

	font := textfit.ResolveFont(cfg.fonts)
	return &Service{
		cfg: cfg,
		overlays: overlay.NewBuilder(cfg.layout,
			overlay.WithLogger(cfg.logger),
			overlay.WithFont(font),
			overlay.WithClock(cfg.now),
		),
		fallback: fallback.New(
			fallback.WithBarcodes(cfg.barcodes),
			fallback.WithFontFile(font.Path),
			fallback.WithLogger(cfg.logger),
			fallback.WithClock(cfg.now),
		),
	}
}

// TemplatePath returns the template file used for ft.
func (s *Service) TemplatePath(ft formfill.FormType) string {
	return s.cfg.templates.Path(ft)
}

// Layout returns the coordinate registry used for overlays.
func (s *Service) Layout() *layout.Registry { return s.cfg.layout }

// Preview returns the fallback document of ft without rendering it.
func (s *Service) Preview(ft formfill.FormType, data formfill.Data) (*doctpl.Document, error) {
	return s.fallback.Document(ft, data, "preview")
}

// VerifyTemplates reports, per form type, whether its template file exists.
// Missing templates are logged; those forms will use fallback documents.
func (s *Service) VerifyTemplates() map[formfill.FormType]bool {
	out := make(map[formfill.FormType]bool, len(formfill.FormTypes()))
	for _, ft := range formfill.FormTypes() {
		path := s.TemplatePath(ft)
		_, err := os.Stat(path)
		out[ft] = err == nil
		if err != nil {
			s.cfg.logger.Warn("template not found, fallback will be used", "form_type", string(ft), "path", path)
		}
	}
	return out
}

// OutputPath returns <output dir>/generated_forms/<form>_<id>_<timestamp>.pdf.
func (s *Service) OutputPath(ft formfill.FormType, documentID string) string {
	name := fmt.Sprintf("%s_%s_%s.pdf", ft, documentID, s.cfg.now().Format("20060102_150405"))
	return filepath.Join(s.cfg.outputDir, GeneratedDir, name)
}

// Validate checks data against the required fields of ft.
func (s *Service) Validate(ft formfill.FormType, data formfill.Data) error {
	return validate.Check(ft, data)
}

// Render validates data and writes the document of ft to outputPath, or
// to OutputPath(ft, renderID) when outputPath is empty. Nothing is written
// when validation fails.
func (s *Service) Render(ft formfill.FormType, data formfill.Data, outputPath string) (*Result, error) {
	if !ft.Valid() {
		return nil, formfill.NewFormError("render", ft, formfill.ErrUnsupportedFormType)
	}

	id := s.cfg.newID()
	log := s.cfg.logger.With("render_id", id.String(), "form_type", string(ft))

	if err := validate.Check(ft, data); err != nil {
		log.Error("payload rejected", "error", err)
		return nil, formfill.NewFormError("render", ft, err)
	}

	if outputPath == "" {
		outputPath = s.OutputPath(ft, id.String())
	}
	res := &Result{RenderID: id, FormType: ft, Path: outputPath}

	tpl := s.TemplatePath(ft)
	_, statErr := os.Stat(tpl)
	switch {
	case statErr == nil:
		res.Strategy = StrategyTemplate
		if err := s.compose(log, tpl, ft, data, res); err != nil {
			log.Error("composition failed", "template", tpl, "error", err)
			return nil, formfill.NewFormError("render", ft, err)
		}
	case errors.Is(statErr, os.ErrNotExist) && s.cfg.fallback:
		log.Warn("template missing, generating fallback document", "template", tpl)
		res.Strategy = StrategyFallback
		if err := s.generateFallback(ft, data, outputPath); err != nil {
			log.Error("fallback generation failed", "error", err)
			return nil, formfill.NewFormError("render", ft, err)
		}
	case errors.Is(statErr, os.ErrNotExist):
		log.Error("template missing and fallback disabled", "template", tpl)
		return nil, formfill.NewFormError("render", ft, fmt.Errorf("%w: %s", formfill.ErrTemplateMissing, tpl))
	default:
		log.Error("template unreadable", "template", tpl, "error", statErr)
		return nil, formfill.NewFormError("render", ft, fmt.Errorf("%w: %v", formfill.ErrComposition, statErr))
	}

	if s.cfg.validateOutput {
		if err := reader.Validate(outputPath); err != nil {
			log.Error("written document failed validation", "path", outputPath, "error", err)
			return nil, formfill.NewFormError("render", ft, fmt.Errorf("%w: %v", formfill.ErrComposition, err))
		}
	}

	log.Info("form rendered", "path", outputPath, "strategy", string(res.Strategy),
		"fields", len(res.Placements), "skipped", len(res.Skipped))
	return res, nil
}

// Generate is Render reduced to success or failure; the reason is logged.
func (s *Service) Generate(ft formfill.FormType, data formfill.Data, outputPath string) bool {
	_, err := s.Render(ft, data, outputPath)
	return err == nil
}

func (s *Service) compose(log *slog.Logger, tpl string, ft formfill.FormType, data formfill.Data, res *Result) error {
	w, h, err := pageops.PageSize(tpl)
	if err != nil {
		log.Warn("template page size unreadable, using letter", "template", tpl, "error", err)
	}

	ov, err := s.overlays.Build(ft, data, overlay.PageSize{Width: w, Height: h})
	if err != nil {
		return err
	}
	res.Placements = ov.Placements
	res.Skipped = ov.Skipped

	return pageops.Compose(tpl, ov.PDF, res.Path, pageops.ComposeOptions{Stamp: s.stamp()})
}

func (s *Service) stamp() *pageops.Stamp {
	if s.cfg.draftStamp == "" {
		return nil
	}
	return pageops.DraftStamp(s.cfg.draftStamp)
}

// generateFallback writes the fallback document, stamping it through a
// temporary file when a draft stamp is configured.
func (s *Service) generateFallback(ft formfill.FormType, data formfill.Data, outputPath string) error {
	stamp := s.stamp()
	if stamp == nil {
		return s.fallback.Generate(ft, data, outputPath)
	}

	tmp := outputPath + ".unstamped.pdf"
	defer os.Remove(tmp)
	if err := s.fallback.Generate(ft, data, tmp); err != nil {
		return err
	}
	return pageops.StampFile(tmp, outputPath, *stamp)
}

// Bundle merges already generated documents into one file.
func (s *Service) Bundle(outputPath string, paths ...string) error {
	if err := pageops.MergeFiles(outputPath, paths...); err != nil {
		s.cfg.logger.Error("bundle failed", "path", outputPath, "error", err)
		return err
	}
	s.cfg.logger.Info("bundle written", "path", outputPath, "documents", len(paths))
	return nil
}
