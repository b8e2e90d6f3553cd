// Command formfill renders one form from a JSON payload.
//
//	formfill -form contrato_compraventa -data venta.json -out venta.pdf
//	formfill -form tramite -extracted respuesta.txt -data extra.json
//	formfill -form mandato -data mandato.json -validate-only
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/config"
	"github.com/lvillar/formfill/extraction"
	"github.com/lvillar/formfill/render"
)

func main() {
	form := flag.String("form", "", "form type: formulario_tramite, contrato_compraventa or contrato_mandato")
	dataPath := flag.String("data", "", "JSON payload file (- for stdin)")
	extracted := flag.String("extracted", "", "document analyzer response to structure into the payload")
	output := flag.String("out", "", "output PDF (generated name under output.dir if empty)")
	configPath := flag.String("config", "", "configuration file")
	validateOnly := flag.Bool("validate-only", false, "check the payload and exit")
	verify := flag.Bool("verify-templates", false, "report which templates are installed and exit")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := cfg.Log.Logger(os.Stderr)

	opts, err := render.FromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to load layout: %v", err)
	}
	svc := render.New(append(opts, render.WithLogger(logger))...)

	if *verify {
		present := svc.VerifyTemplates()
		for _, ft := range formfill.FormTypes() {
			fmt.Printf("%-22s %-5t %s\n", ft, present[ft], svc.TemplatePath(ft))
		}
		return
	}

	ft, err := formfill.ParseFormType(*form)
	if err != nil {
		log.Fatalf("Invalid -form: %v", err)
	}

	data, err := loadPayload(ft, *dataPath, *extracted)
	if err != nil {
		log.Fatalf("Failed to read payload: %v", err)
	}

	if *validateOnly {
		if err := svc.Validate(ft, data); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		fmt.Println("ok")
		return
	}

	res, err := svc.Render(ft, data, *output)
	if err != nil {
		log.Fatalf("Failed to render %s: %v", ft, err)
	}
	fmt.Printf("%s written to %s (%s)\n", ft.Title(), res.Path, res.Strategy)
}

// loadPayload reads the JSON payload and, when an analyzer response is
// given, seeds the payload from it first. Explicit payload values win.
func loadPayload(ft formfill.FormType, dataPath, extractedPath string) (formfill.Data, error) {
	data := formfill.Data{}
	if dataPath != "" {
		raw, err := readInput(dataPath)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", dataPath, err)
		}
	}
	if extractedPath == "" {
		if dataPath == "" {
			return nil, fmt.Errorf("one of -data or -extracted is required")
		}
		return data, nil
	}

	raw, err := readInput(extractedPath)
	if err != nil {
		return nil, err
	}
	parsed, err := extraction.Parse(string(raw))
	if err != nil {
		return nil, err
	}
	seeded, err := extraction.Seed(ft, extraction.Structure(parsed))
	if err != nil {
		return nil, err
	}
	return extraction.Merge(seeded, data), nil
}

func readInput(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
