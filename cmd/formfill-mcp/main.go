// Command formfill-mcp serves the form renderer to AI assistants over the
// Model Context Protocol (JSON-RPC 2.0 on stdio).
//
// Configuration comes from FORMFILL_* environment variables or the file
// named by FORMFILL_CONFIG. Logs go to stderr; stdout carries protocol
// messages only.
//
// Tools:
//
//   - list_form_types: supported forms and template availability
//   - validate_form_data: required-field check of a payload
//   - render_form: draw a payload over its template, or lay out a fallback
//   - preview_fallback: fallback document as JSON blocks
//   - read_form_text: text read-back of a PDF
//   - bundle_forms: merge rendered forms into one file
//
// Resources:
//
//   - layout://<form_type>: field coordinates
//   - schema://<form_type>: required fields
package main

import (
	"fmt"
	"os"

	"github.com/lvillar/formfill/config"
	"github.com/lvillar/formfill/mcp"
	"github.com/lvillar/formfill/render"
)

func main() {
	cfg, err := config.LoadFile(os.Getenv("FORMFILL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "formfill-mcp: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.Log.Logger(os.Stderr)

	opts, err := render.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "formfill-mcp: %v\n", err)
		os.Exit(1)
	}
	svc := render.New(append(opts, render.WithLogger(logger))...)
	svc.VerifyTemplates()

	server := mcp.NewServer(logger)
	mcp.RegisterTools(server, svc)
	mcp.RegisterResources(server, svc.Layout())

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "formfill-mcp: %v\n", err)
		os.Exit(1)
	}
}
