// Package extraction sits between the document analyzer and the renderer.
// It recovers the JSON object from a model response, supplies the default
// structure when there is none, and reshapes the analyzer's sections into
// form payloads.
package extraction

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/lvillar/formfill"
)

// Analyzer sections.
const (
	VehicleInfo  = "informacion_vehiculo"
	OwnerInfo    = "informacion_propietario"
	Registration = "detalles_registro"
	Restrictions = "restricciones_limitaciones"
)

// Unidentified is the document type of the default structure.
const Unidentified = "No identificado"

// rawPreview is how much of an unparseable response is kept in observaciones.
const rawPreview = 300

var objectPattern = regexp.MustCompile(`(?s)\{.*\}`)

var (
	vehicleKeys = []string{
		"placa", "marca", "linea", "modelo", "cilindrada_cc", "color",
		"clase_vehiculo", "tipo_carroceria", "numero_motor", "reg_numero_motor",
		"servicio", "combustible", "capacidad_kg_psj", "vin", "numero_serie",
		"reg_numero_serie", "numero_chasis", "reg_numero_chasis", "potencia_hp", "puertas",
	}
	ownerKeys        = []string{"nombre", "identificacion", "direccion", "telefono", "ciudad"}
	registrationKeys = []string{
		"licencia_transito_numero", "declaracion_importacion", "fecha_importacion",
		"fecha_matricula", "fecha_expedicion_licencia", "organismo_transito",
	}
	restrictionKeys = []string{"restriccion_movilidad", "blindaje", "limitacion_propiedad"}
)

// Parse extracts the outermost JSON object from an analyzer response. A
// response without any object yields the default structure; an object that
// does not decode is an error.
func Parse(raw string) (formfill.Data, error) {
	match := objectPattern.FindString(strings.TrimSpace(raw))
	if match == "" {
		return Default(raw), nil
	}
	var data formfill.Data
	if err := json.Unmarshal([]byte(match), &data); err != nil {
		return nil, fmt.Errorf("extraction: decoding response: %w", err)
	}
	return data, nil
}

// Default is the analyzer structure with every value unavailable. The
// start of raw is kept in observaciones.
func Default(raw string) formfill.Data {
	preview := raw
	if r := []rune(raw); len(r) > rawPreview {
		preview = string(r[:rawPreview])
	}
	return formfill.Data{
		"tipo_documento": Unidentified,
		VehicleInfo:      unavailable(vehicleKeys),
		OwnerInfo:        unavailable(ownerKeys),
		Registration:     unavailable(registrationKeys),
		Restrictions:     unavailable(restrictionKeys),
		"observaciones":  "Respuesta original: " + preview + "...",
	}
}

func unavailable(keys []string) map[string]any {
	m := make(map[string]any, len(keys))
	for _, k := range keys {
		m[k] = formfill.Unavailable
	}
	return m
}

// Structure reshapes analyzer output into the renderer's sections:
// vehiculo, propietario, registro and restricciones. Unavailable or blank
// values are dropped.
func Structure(extracted formfill.Data) formfill.Data {
	out := formfill.Data{
		"vehiculo":      pick(extracted.Section(VehicleInfo), vehicleKeys),
		"propietario":   pick(extracted.Section(OwnerInfo), ownerKeys),
		"registro":      pick(extracted.Section(Registration), registrationKeys),
		"restricciones": pick(extracted.Section(Restrictions), restrictionKeys),
	}
	if v := extracted.String("tipo_documento"); v != "" && v != Unidentified {
		out["tipo_documento"] = v
	}
	if v := extracted.String("observaciones"); v != "" {
		out["observaciones"] = v
	}
	return out
}

func pick(section formfill.Data, keys []string) formfill.Data {
	out := formfill.Data{}
	for _, k := range keys {
		if v := section.String(k); v != "" {
			out[k] = v
		}
	}
	return out
}

// DocumentKind is the kind of source document the analyzer read.
type DocumentKind string

const (
	KindRegistration DocumentKind = "registration"
	KindOwnership    DocumentKind = "ownership"
	KindUnknown      DocumentKind = "unknown"
)

var kindKeywords = []struct {
	keyword string
	kind    DocumentKind
}{
	{"matrícula", KindRegistration},
	{"matricula", KindRegistration},
	{"registro", KindRegistration},
	{"propiedad", KindOwnership},
	{"tarjeta", KindOwnership},
}

// Classify maps the analyzer's free-text document type to a DocumentKind.
func Classify(tipoDocumento string) DocumentKind {
	t := strings.ToLower(strings.TrimSpace(tipoDocumento))
	if t == "" || t == strings.ToLower(Unidentified) || formfill.IsUnavailable(t) {
		return KindUnknown
	}
	for _, k := range kindKeywords {
		if strings.Contains(t, k.keyword) {
			return k.kind
		}
	}
	return KindUnknown
}
