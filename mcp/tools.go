package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/extraction"
	"github.com/lvillar/formfill/reader"
	"github.com/lvillar/formfill/render"
	"github.com/lvillar/formfill/validate"
)

// RegisterTools adds the form tools backed by svc.
func RegisterTools(s *Server, svc *render.Service) {
	s.AddTool(listFormTypesTool(svc))
	s.AddTool(validateFormDataTool())
	s.AddTool(renderFormTool(svc))
	s.AddTool(previewFallbackTool(svc))
	s.AddTool(readFormTextTool())
	s.AddTool(bundleFormsTool(svc))
}

var (
	formTypeProperty = map[string]any{
		"type":        "string",
		"description": "Form type",
		"enum":        formTypeNames(),
	}
	dataProperty = map[string]any{
		"type":        "object",
		"description": "Form payload: flat keys for formulario_tramite, sections (vehiculo, vendedor, comprador, mandante, mandatario) for the contracts",
	}
)

func formTypeNames() []string {
	names := make([]string, 0, len(formfill.FormTypes()))
	for _, ft := range formfill.FormTypes() {
		names = append(names, string(ft))
	}
	return names
}

func listFormTypesTool(svc *render.Service) Tool {
	return Tool{
		Name:        "list_form_types",
		Description: "List the supported form types, their template files and whether each template is installed. Forms without a template are produced as fallback documents.",
		InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		Handler: func(map[string]any) (ToolResult, error) {
			present := svc.VerifyTemplates()
			out := make([]map[string]any, 0, len(present))
			for _, ft := range formfill.FormTypes() {
				out = append(out, map[string]any{
					"form_type":        string(ft),
					"title":            ft.Title(),
					"template":         svc.TemplatePath(ft),
					"template_present": present[ft],
				})
			}
			return jsonResult(out)
		},
	}
}

func validateFormDataTool() Tool {
	return Tool{
		Name:        "validate_form_data",
		Description: "Check that a payload carries the minimum fields of a form. Reports every violation at once.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"form_type": formTypeProperty,
				"data":      dataProperty,
			},
			"required": []string{"form_type", "data"},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			ft, data, err := formArgs(args)
			if err != nil {
				return ToolResult{}, err
			}
			ok, msg := validate.Validate(ft, data)
			res, err := jsonResult(map[string]any{"valid": ok, "message": msg})
			res.IsError = !ok
			return res, err
		},
	}
}

func renderFormTool(svc *render.Service) Tool {
	return Tool{
		Name:        "render_form",
		Description: "Render a form to a PDF file. The payload is drawn over the official template, or laid out as a fallback document when the template is missing. Set extracted to true to pass the raw output of the document extractor.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"form_type": formTypeProperty,
				"data":      dataProperty,
				"output_path": map[string]any{
					"type":        "string",
					"description": "Where to write the PDF. Defaults to a generated name under the output directory.",
				},
				"extracted": map[string]any{
					"type":        "boolean",
					"description": "Treat data as extractor output and structure it first",
				},
			},
			"required": []string{"form_type", "data"},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			ft, data, err := formArgs(args)
			if err != nil {
				return ToolResult{}, err
			}
			if extracted, _ := args["extracted"].(bool); extracted {
				seeded, err := extraction.Seed(ft, extraction.Structure(data))
				if err != nil {
					return ToolResult{}, err
				}
				data = seeded
			}
			out, _ := args["output_path"].(string)

			res, err := svc.Render(ft, data, out)
			if err != nil {
				return ToolResult{}, err
			}
			skipped := make([]string, 0, len(res.Skipped))
			for _, fe := range res.Skipped {
				skipped = append(skipped, fe.Error())
			}
			return jsonResult(map[string]any{
				"render_id": res.RenderID.String(),
				"form_type": string(res.FormType),
				"path":      res.Path,
				"strategy":  string(res.Strategy),
				"fields":    len(res.Placements),
				"skipped":   skipped,
			})
		},
	}
}

func previewFallbackTool(svc *render.Service) Tool {
	return Tool{
		Name:        "preview_fallback",
		Description: "Return the fallback document of a form as a JSON block list without writing a PDF.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"form_type": formTypeProperty,
				"data":      dataProperty,
			},
			"required": []string{"form_type", "data"},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			ft, data, err := formArgs(args)
			if err != nil {
				return ToolResult{}, err
			}
			doc, err := svc.Preview(ft, data)
			if err != nil {
				return ToolResult{}, err
			}
			return jsonResult(doc)
		},
	}
}

func readFormTextTool() Tool {
	return Tool{
		Name:        "read_form_text",
		Description: "Extract the text drawn directly on the pages of a PDF, with its page count. Text inside imported template pages is not returned.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Path to the PDF file",
				},
			},
			"required": []string{"path"},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			path, err := stringArg(args, "path")
			if err != nil {
				return ToolResult{}, err
			}
			doc, err := reader.Open(path)
			if err != nil {
				return ToolResult{}, err
			}
			text, err := doc.Text()
			if err != nil {
				return ToolResult{}, err
			}
			var b strings.Builder
			for i, page := range strings.Split(text, "\f") {
				fmt.Fprintf(&b, "--- Page %d ---\n%s\n\n", i+1, page)
			}
			return ToolResult{Content: []ContentBlock{{
				Type: "text",
				Text: fmt.Sprintf("%d page(s)\n\n%s", doc.NumPages(), b.String()),
			}}}, nil
		},
	}
}

func bundleFormsTool(svc *render.Service) Tool {
	return Tool{
		Name:        "bundle_forms",
		Description: "Merge rendered forms into a single PDF, in the order given.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"paths": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "PDF files to merge",
				},
				"output_path": map[string]any{
					"type":        "string",
					"description": "Path of the merged PDF",
				},
			},
			"required": []string{"paths", "output_path"},
		},
		Handler: func(args map[string]any) (ToolResult, error) {
			out, err := stringArg(args, "output_path")
			if err != nil {
				return ToolResult{}, err
			}
			raw, ok := args["paths"].([]any)
			if !ok || len(raw) == 0 {
				return ToolResult{}, fmt.Errorf("missing 'paths' argument")
			}
			paths := make([]string, 0, len(raw))
			for _, p := range raw {
				s, ok := p.(string)
				if !ok || s == "" {
					return ToolResult{}, fmt.Errorf("'paths' must hold file paths")
				}
				paths = append(paths, s)
			}
			if err := svc.Bundle(out, paths...); err != nil {
				return ToolResult{}, err
			}
			return ToolResult{Content: []ContentBlock{{
				Type: "text",
				Text: fmt.Sprintf("Merged %d documents into %s", len(paths), out),
			}}}, nil
		},
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing '%s' argument", key)
	}
	return v, nil
}

func formArgs(args map[string]any) (formfill.FormType, formfill.Data, error) {
	name, err := stringArg(args, "form_type")
	if err != nil {
		return "", nil, err
	}
	ft, err := formfill.ParseFormType(name)
	if err != nil {
		return "", nil, err
	}
	data, ok := args["data"].(map[string]any)
	if !ok {
		return "", nil, fmt.Errorf("missing 'data' argument")
	}
	return ft, formfill.Data(data), nil
}

func jsonResult(v any) (ToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ToolResult{}, fmt.Errorf("encoding result: %w", err)
	}
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: string(b)}}}, nil
}
