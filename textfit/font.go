package textfit

import (
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// CoreFamily is the built-in font used when no TrueType file is available.
const CoreFamily = "Helvetica"

const embeddedFamily = "FormBody"

// Font selects the typeface used for overlays and fallback documents.
type Font struct {
	Family string // font family registered with the PDF engine
	Path   string // TrueType file; empty for the core font
}

// Core reports whether f is a built-in PDF font.
func (f Font) Core() bool { return f.Path == "" }

// ResolveFont returns the first readable TrueType file in paths, or the
// core Helvetica font when none is usable.
func ResolveFont(paths []string) Font {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() && fi.Size() > 0 {
			return Font{Family: embeddedFamily, Path: p}
		}
	}
	return Font{Family: CoreFamily}
}

// Translator converts UTF-8 text to the byte encoding a font expects.
type Translator func(string) string

// CP1252 encodes text for the core fonts, which use Windows-1252.
// Characters outside that code page become '?'.
func CP1252(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

// UTF8 leaves text untouched, for embedded TrueType fonts.
func UTF8(s string) string { return s }

// TranslatorFor returns the translator matching f.
func TranslatorFor(f Font) Translator {
	if f.Core() {
		return CP1252
	}
	return UTF8
}
