// Package formfill fills Colombian vehicle-transfer paperwork (the trámite
// request form, the sale contract and the mandate contract) by drawing
// payload values at fixed coordinates over blank PDF templates.
//
// The root package holds the shared vocabulary: form types, the payload
// model and the error kinds. Rendering lives in the render package.
package formfill

import (
	"fmt"
	"strings"
)

// FormType identifies one of the supported documents.
type FormType string

const (
	Tramite     FormType = "formulario_tramite"
	Compraventa FormType = "contrato_compraventa"
	Mandato     FormType = "contrato_mandato"
)

// FormTypes lists the supported form types in a stable order.
func FormTypes() []FormType {
	return []FormType{Tramite, Compraventa, Mandato}
}

// Valid reports whether ft is one of the supported form types.
func (ft FormType) Valid() bool {
	switch ft {
	case Tramite, Compraventa, Mandato:
		return true
	}
	return false
}

// TemplateFile returns the conventional template file name for ft.
func (ft FormType) TemplateFile() string {
	return string(ft) + "_template.pdf"
}

// Title returns the heading used on documents of this type.
func (ft FormType) Title() string {
	switch ft {
	case Tramite:
		return "FORMULARIO DE TRÁMITE VEHICULAR"
	case Compraventa:
		return "CONTRATO DE COMPRAVENTA VEHICULAR"
	case Mandato:
		return "CONTRATO DE MANDATO VEHICULAR"
	}
	return strings.ToUpper(string(ft))
}

// ParseFormType converts a name into a FormType. Short aliases such as
// "tramite" or "mandato" are accepted.
func ParseFormType(s string) (FormType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "tramite", "formulario", "formulario_tramite":
		return Tramite, nil
	case "compraventa", "contrato_compraventa":
		return Compraventa, nil
	case "mandato", "contrato_mandato":
		return Mandato, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormType, s)
}
