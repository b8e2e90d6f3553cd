package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/layout"
	"github.com/lvillar/formfill/validate"
)

// URI schemes of the published resources.
const (
	LayoutScheme = "layout://"
	SchemaScheme = "schema://"
)

// RegisterResources publishes, for each form type, its coordinate table
// (layout://<form>) and its required-field schema (schema://<form>).
func RegisterResources(s *Server, reg *layout.Registry) {
	for _, ft := range formfill.FormTypes() {
		s.AddResource(Resource{
			URI:         LayoutScheme + string(ft),
			Name:        ft.Title() + " - coordenadas",
			Description: "Field anchors in PDF points from the bottom-left corner of the page, plus field groups.",
			MIMEType:    "application/json",
			Handler:     layoutHandler(reg),
		})
		s.AddResource(Resource{
			URI:         SchemaScheme + string(ft),
			Name:        ft.Title() + " - campos requeridos",
			Description: "Fields and sections a payload must carry before the form is drawn.",
			MIMEType:    "application/json",
			Handler:     handleSchemaResource,
		})
	}
}

func formTypeFromURI(uri, scheme string) (formfill.FormType, error) {
	name, ok := strings.CutPrefix(uri, scheme)
	if !ok {
		return "", fmt.Errorf("unexpected resource %q", uri)
	}
	return formfill.ParseFormType(name)
}

func layoutHandler(reg *layout.Registry) ResourceHandler {
	return func(uri string) ([]ResourceContent, error) {
		ft, err := formTypeFromURI(uri, LayoutScheme)
		if err != nil {
			return nil, err
		}
		table, err := reg.Table(ft)
		if err != nil {
			return nil, err
		}
		return jsonContent(uri, map[string]any{
			"form_type": string(ft),
			"fields":    table.Points(),
			"groups":    table.Groups(),
		})
	}
}

func handleSchemaResource(uri string) ([]ResourceContent, error) {
	ft, err := formTypeFromURI(uri, SchemaScheme)
	if err != nil {
		return nil, err
	}
	schema, err := validate.SchemaFor(ft)
	if err != nil {
		return nil, err
	}

	entries := make([]map[string]any, 0, len(schema))
	for _, e := range schema {
		entry := map[string]any{"key": e.Key, "kind": kindName(e.Kind)}
		if len(e.Fields) > 0 {
			entry["fields"] = e.Fields
		}
		entries = append(entries, entry)
	}
	return jsonContent(uri, map[string]any{
		"form_type": string(ft),
		"required":  entries,
	})
}

func kindName(k validate.Kind) string {
	switch k {
	case validate.Flat:
		return "field"
	case validate.Nested:
		return "section"
	case validate.Presence:
		return "section_present"
	case validate.Scalar:
		return "value"
	}
	return "unknown"
}

func jsonContent(uri string, v any) ([]ResourceContent, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", uri, err)
	}
	return []ResourceContent{{URI: uri, MIMEType: "application/json", Text: string(b)}}, nil
}
