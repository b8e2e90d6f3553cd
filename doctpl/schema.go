// Package doctpl renders declarative, flowing documents: titled sections of
// label/value rows, numbered clauses, signature blocks and barcodes on Letter
// pages measured in points. Documents are plain structs with JSON tags so they
// can be built in code or inspected as data.
//
// Example JSON:
//
//	{
//	  "title": "CONTRATO DE MANDATO",
//	  "blocks": [
//	    {"type": "heading", "text": "CONTRATO DE MANDATO", "level": 1},
//	    {"type": "fields", "fields": [{"label": "Placa:", "value": "ABC123"}]}
//	  ]
//	}
package doctpl

// Block types.
const (
	Heading    = "heading"
	Paragraph  = "paragraph"
	Fields     = "fields"
	Clauses    = "clauses"
	Signatures = "signatures"
	Spacer     = "spacer"
	Rule       = "hr"
	Barcode    = "barcode"
)

// Barcode kinds.
const (
	Code128 = "code128"
	QR      = "qr"
	PDF417  = "pdf417"
)

// Missing is drawn in place of an empty field value.
const Missing = "N/A"

// Document is the top-level description of a PDF.
type Document struct {
	Title    string  `json:"title,omitempty"`
	Author   string  `json:"author,omitempty"`
	Subject  string  `json:"subject,omitempty"`
	Margin   *Margin `json:"margin,omitempty"`   // default one inch on every side
	Font     *Font   `json:"font,omitempty"`     // default Helvetica 10
	FontFile string  `json:"fontFile,omitempty"` // TrueType file; empty or unreadable uses the core font
	Footer   *Footer `json:"footer,omitempty"`
	Blocks   []Block `json:"blocks"`
}

// Margin defines page margins in points.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Font specifies a font face.
type Font struct {
	Family string  `json:"family,omitempty"`
	Style  string  `json:"style,omitempty"` // "", "B", "I", "BI"
	Size   float64 `json:"size,omitempty"`
}

// Footer is drawn at the bottom of every page. "{page}" in Text is replaced
// by the page number.
type Footer struct {
	Text  string `json:"text"`
	Align string `json:"align,omitempty"`
}

// Block is a single flowing element. Type selects which other fields apply.
type Block struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"` // heading level 1-3
	Align string `json:"align,omitempty"` // L, C, R, J

	Fields     []Field     `json:"fields,omitempty"`
	Clauses    []Clause    `json:"clauses,omitempty"`
	Signatures []Signature `json:"signatures,omitempty"`
	Code       *Code       `json:"code,omitempty"`

	Height float64 `json:"height,omitempty"` // spacer height
}

// Field is one label/value row.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Clause is a titled paragraph such as "PRIMERA - OBJETO:".
type Clause struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Signature is one signing party.
type Signature struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
}

// Code is a barcode payload.
type Code struct {
	Kind    string  `json:"kind"` // code128, qr, pdf417
	Value   string  `json:"value"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Caption string  `json:"caption,omitempty"`
}
