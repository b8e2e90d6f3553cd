package config

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/lvillar/formfill"
)

// Config holds all application configuration.
type Config struct {
	Templates TemplatesConfig
	Layout    LayoutConfig
	Output    OutputConfig
	Fonts     FontsConfig
	Fallback  FallbackConfig
	Log       LogConfig
}

// TemplatesConfig locates the official form templates.
type TemplatesConfig struct {
	Dir         string `mapstructure:"dir"`
	Tramite     string `mapstructure:"tramite"`
	Compraventa string `mapstructure:"compraventa"`
	Mandato     string `mapstructure:"mandato"`
}

// Path returns the template file of ft: the configured override when set,
// otherwise the standard file name under Dir.
func (t TemplatesConfig) Path(ft formfill.FormType) string {
	var override string
	switch ft {
	case formfill.Tramite:
		override = t.Tramite
	case formfill.Compraventa:
		override = t.Compraventa
	case formfill.Mandato:
		override = t.Mandato
	}
	if override != "" {
		if filepath.IsAbs(override) {
			return override
		}
		return filepath.Join(t.Dir, override)
	}
	return filepath.Join(t.Dir, ft.TemplateFile())
}

// LayoutConfig holds coordinate table settings.
type LayoutConfig struct {
	OverrideFile string `mapstructure:"override_file"`
}

// OutputConfig holds settings for generated files.
type OutputConfig struct {
	Dir        string `mapstructure:"dir"`
	Validate   bool   `mapstructure:"validate"`
	DraftStamp string `mapstructure:"draft_stamp"`
}

// FontsConfig lists TrueType files tried in order before the core font.
type FontsConfig struct {
	Paths []string `mapstructure:"paths"`
}

// FallbackConfig controls documents generated without a template.
type FallbackConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Barcodes bool `mapstructure:"barcodes"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Logger builds a slog logger writing to w. Format "json" selects the JSON
// handler; anything else the text handler.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Load reads configuration from environment variables with the FORMFILL_ prefix.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from path, when non-empty, and from
// FORMFILL_ environment variables, which take precedence.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FORMFILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Template defaults
	v.SetDefault("templates.dir", "templates")
	v.SetDefault("templates.tramite", "")
	v.SetDefault("templates.compraventa", "")
	v.SetDefault("templates.mandato", "")

	v.SetDefault("layout.override_file", "")

	// Output defaults
	v.SetDefault("output.dir", "media")
	v.SetDefault("output.validate", false)
	v.SetDefault("output.draft_stamp", "")

	v.SetDefault("fonts.paths", "")

	v.SetDefault("fallback.enabled", true)
	v.SetDefault("fallback.barcodes", false)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	cfg := &Config{}
	cfg.Templates = TemplatesConfig{
		Dir:         v.GetString("templates.dir"),
		Tramite:     v.GetString("templates.tramite"),
		Compraventa: v.GetString("templates.compraventa"),
		Mandato:     v.GetString("templates.mandato"),
	}
	cfg.Layout = LayoutConfig{
		OverrideFile: v.GetString("layout.override_file"),
	}
	cfg.Output = OutputConfig{
		Dir:        v.GetString("output.dir"),
		Validate:   v.GetBool("output.validate"),
		DraftStamp: v.GetString("output.draft_stamp"),
	}
	cfg.Fonts = FontsConfig{Paths: splitList(v.GetStringSlice("fonts.paths"))}
	cfg.Fallback = FallbackConfig{
		Enabled:  v.GetBool("fallback.enabled"),
		Barcodes: v.GetBool("fallback.barcodes"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	return cfg, nil
}

// splitList accepts both YAML lists and comma-separated environment values.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, p := range strings.Split(item, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
