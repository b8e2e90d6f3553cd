package render_test

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/config"
	"github.com/lvillar/formfill/layout"
	"github.com/lvillar/formfill/reader"
	"github.com/lvillar/formfill/render"
	"github.com/lvillar/formfill/textfit"
)

var (
	fixedNow = time.Date(2024, time.March, 9, 14, 30, 5, 0, time.UTC)
	fixedID  = uuid.MustParse("6f1c7c1e-2b1a-4c55-9d0e-0a6c7d2f9b11")
)

// createTemplate writes a PDF of n pages of the given size to dir/name.
func createTemplate(t *testing.T, dir, name string, n int, w, h float64) string {
	t.Helper()
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < n; i++ {
		doc.AddPage()
		doc.Text(40, 40, "FORMULARIO OFICIAL")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func newService(t *testing.T, logs io.Writer, opts ...render.Option) (*render.Service, string) {
	t.Helper()
	dir := t.TempDir()
	base := []render.Option{
		render.WithTemplatesDir(filepath.Join(dir, "templates")),
		render.WithOutputDir(filepath.Join(dir, "media")),
		render.WithLogger(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		render.WithClock(func() time.Time { return fixedNow }),
		render.WithIDGenerator(func() uuid.UUID { return fixedID }),
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	return render.New(append(base, opts...)...), dir
}

func tramiteData() formfill.Data {
	return formfill.Data{
		"placa":                       "ABC123",
		"marca":                       "CHEVROLET",
		"linea":                       "SPARK",
		"modelo":                      "2015",
		"color":                       "ROJO",
		"propietario_nombres":         "JUAN",
		"propietario_primer_apellido": "PEREZ",
		"propietario_documento":       "12345678",
	}
}

func byField(res *render.Result) map[string]textfit.Placement {
	out := make(map[string]textfit.Placement, len(res.Placements))
	for _, p := range res.Placements {
		out[p.Field] = p
	}
	return out
}

func TestRenderTramiteOverTemplate(t *testing.T) {
	var logs bytes.Buffer
	svc, dir := newService(t, &logs)
	createTemplate(t, filepath.Join(dir, "templates"), formfill.Tramite.TemplateFile(), 2, 842, 595)

	out := filepath.Join(dir, "out", "tramite.pdf")
	res, err := svc.Render(formfill.Tramite, tramiteData(), out)
	require.NoError(t, err)

	assert.Equal(t, render.StrategyTemplate, res.Strategy)
	assert.Equal(t, fixedID, res.RenderID)
	assert.Equal(t, out, res.Path)

	got := byField(res)
	letters, digits := got["placa_letras"], got["placa_numeros"]
	assert.Equal(t, "ABC", letters.Text)
	assert.Equal(t, "123", digits.Text)
	assert.InDelta(t, 495, letters.Y, 1e-9)
	assert.GreaterOrEqual(t, digits.X, letters.X+letters.Width+layout.PlateGroup.MinGap-1e-9)

	doc, err := reader.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.NumPages())

	assert.Contains(t, logs.String(), "render_id="+fixedID.String())
	assert.Contains(t, logs.String(), "strategy=template")
}

func TestRenderUsesTemplatePageSize(t *testing.T) {
	svc, dir := newService(t, io.Discard)
	createTemplate(t, filepath.Join(dir, "templates"), formfill.Tramite.TemplateFile(), 1, 612, 792)

	res, err := svc.Render(formfill.Tramite, tramiteData(), filepath.Join(dir, "narrow.pdf"))
	require.NoError(t, err)

	require.NotEmpty(t, res.Placements)
	for _, p := range res.Placements {
		assert.LessOrEqual(t, p.Right(), 612-textfit.PageInset+1e-9, p.Field)
	}
	doc, err := reader.Open(res.Path)
	require.NoError(t, err)
	box, ok := doc.MediaBox(1)
	require.True(t, ok)
	assert.InDelta(t, 612, box.Width(), 0.5)
}

func TestRenderFallsBackWhenTemplateMissing(t *testing.T) {
	var logs bytes.Buffer
	svc, _ := newService(t, &logs)

	res, err := svc.Render(formfill.Tramite, tramiteData(), "")
	require.NoError(t, err)

	assert.Equal(t, render.StrategyFallback, res.Strategy)
	assert.Empty(t, res.Placements)
	assert.Equal(t, svc.OutputPath(formfill.Tramite, fixedID.String()), res.Path)

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	doc, err := reader.Open(res.Path)
	require.NoError(t, err)
	text, err := doc.Text()
	require.NoError(t, err)
	assert.Contains(t, text, "CHEVROLET")

	assert.Contains(t, logs.String(), "template missing")
	assert.NotContains(t, logs.String(), "composition failed")
}

func TestRenderTemplateMissingWithoutFallback(t *testing.T) {
	svc, dir := newService(t, io.Discard, render.WithFallback(false))

	out := filepath.Join(dir, "none.pdf")
	_, err := svc.Render(formfill.Mandato, formfill.Data{
		"vehiculo":   map[string]any{"placa": "XYZ987"},
		"mandante":   map[string]any{"nombre": "LUIS", "documento": "1"},
		"mandatario": map[string]any{},
	}, out)
	assert.ErrorIs(t, err, formfill.ErrTemplateMissing)
	assert.NoFileExists(t, out)
}

func TestRenderRejectsInvalidPayload(t *testing.T) {
	svc, dir := newService(t, io.Discard)
	createTemplate(t, filepath.Join(dir, "templates"), formfill.Compraventa.TemplateFile(), 1, 612, 792)

	out := filepath.Join(dir, "sale.pdf")
	_, err := svc.Render(formfill.Compraventa, formfill.Data{"vehiculo": map[string]any{"placa": "ABC123"}}, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, formfill.ErrValidation)
	assert.Contains(t, err.Error(), "missing section 'vendedor'")
	assert.NoFileExists(t, out)

	assert.False(t, svc.Generate(formfill.Compraventa, formfill.Data{}, out))
}

func TestRenderUnsupportedFormType(t *testing.T) {
	svc, _ := newService(t, io.Discard)
	_, err := svc.Render("licencia", formfill.Data{}, "")
	assert.ErrorIs(t, err, formfill.ErrUnsupportedFormType)
}

func TestRenderCorruptTemplateFails(t *testing.T) {
	svc, dir := newService(t, io.Discard)
	path := filepath.Join(dir, "templates", formfill.Tramite.TemplateFile())
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err := svc.Render(formfill.Tramite, tramiteData(), filepath.Join(dir, "x.pdf"))
	assert.ErrorIs(t, err, formfill.ErrComposition)
}

func TestGenerate(t *testing.T) {
	svc, dir := newService(t, io.Discard)
	assert.True(t, svc.Generate(formfill.Tramite, tramiteData(), filepath.Join(dir, "ok.pdf")))
}

func TestDraftStamp(t *testing.T) {
	svc, dir := newService(t, io.Discard, render.WithDraftStamp("BORRADOR"))

	fallbackOut := filepath.Join(dir, "fallback.pdf")
	_, err := svc.Render(formfill.Tramite, tramiteData(), fallbackOut)
	require.NoError(t, err)
	assert.FileExists(t, fallbackOut)
	assert.NoFileExists(t, fallbackOut+".unstamped.pdf")

	createTemplate(t, filepath.Join(dir, "templates"), formfill.Tramite.TemplateFile(), 1, 612, 792)
	res, err := svc.Render(formfill.Tramite, tramiteData(), filepath.Join(dir, "composed.pdf"))
	require.NoError(t, err)
	assert.Equal(t, render.StrategyTemplate, res.Strategy)
	assert.FileExists(t, res.Path)
}

func TestOutputPath(t *testing.T) {
	svc, dir := newService(t, io.Discard)
	got := svc.OutputPath(formfill.Mandato, "42")
	assert.Equal(t, filepath.Join(dir, "media", "generated_forms", "contrato_mandato_42_20240309_143005.pdf"), got)
}

func TestVerifyTemplates(t *testing.T) {
	var logs bytes.Buffer
	svc, dir := newService(t, &logs)
	createTemplate(t, filepath.Join(dir, "templates"), formfill.Mandato.TemplateFile(), 1, 612, 792)

	got := svc.VerifyTemplates()
	assert.Equal(t, map[formfill.FormType]bool{
		formfill.Tramite:     false,
		formfill.Compraventa: false,
		formfill.Mandato:     true,
	}, got)
	assert.Equal(t, 2, strings.Count(logs.String(), "template not found"))
}

func TestTemplateOverride(t *testing.T) {
	dir := t.TempDir()
	custom := createTemplate(t, dir, "mi_formulario.pdf", 1, 612, 792)
	svc, _ := newService(t, io.Discard, render.WithTemplate(formfill.Tramite, custom))

	assert.Equal(t, custom, svc.TemplatePath(formfill.Tramite))
	res, err := svc.Render(formfill.Tramite, tramiteData(), filepath.Join(dir, "out.pdf"))
	require.NoError(t, err)
	assert.Equal(t, render.StrategyTemplate, res.Strategy)
}

func TestLayoutDefaultsToBuiltInTables(t *testing.T) {
	svc := render.New()
	require.NotNil(t, svc.Layout())

	for _, ft := range formfill.FormTypes() {
		_, err := svc.Layout().Table(ft)
		assert.NoError(t, err, ft)
	}
	tbl, err := svc.Layout().Table(formfill.Tramite)
	require.NoError(t, err)
	want, _ := layout.Default().Table(formfill.Tramite)
	assert.Equal(t, want.Points(), tbl.Points())
}

func TestBundle(t *testing.T) {
	svc, dir := newService(t, io.Discard)
	a := createTemplate(t, dir, "a.pdf", 2, 612, 792)
	b := createTemplate(t, dir, "b.pdf", 1, 612, 792)

	out := filepath.Join(dir, "bundle", "all.pdf")
	require.NoError(t, svc.Bundle(out, a, b))

	doc, err := reader.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.NumPages())
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(override, []byte("formulario_tramite:\n  marca: [100, 200]\n"), 0o644))

	cfg := &config.Config{
		Templates: config.TemplatesConfig{Dir: filepath.Join(dir, "templates")},
		Layout:    config.LayoutConfig{OverrideFile: override},
		Output:    config.OutputConfig{Dir: filepath.Join(dir, "media")},
		Fallback:  config.FallbackConfig{Enabled: true},
	}
	opts, err := render.FromConfig(cfg)
	require.NoError(t, err)

	svc := render.New(append(opts, render.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))...)
	createTemplate(t, filepath.Join(dir, "templates"), formfill.Tramite.TemplateFile(), 1, 612, 792)

	res, err := svc.Render(formfill.Tramite, tramiteData(), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Path, filepath.Join(dir, "media", "generated_forms")))
	marca := byField(res)["marca"]
	assert.Equal(t, 100.0, marca.X)
	assert.Equal(t, 200.0, marca.Y)

	cfg.Layout.OverrideFile = filepath.Join(dir, "missing.yaml")
	_, err = render.FromConfig(cfg)
	assert.Error(t, err)
}
