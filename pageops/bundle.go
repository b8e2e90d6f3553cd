package pageops

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// MergeFiles writes the pages of every input, in order, to outputPath.
// Page sizes are kept.
func MergeFiles(outputPath string, inputPaths ...string) error {
	pdf, err := buildMerged(inputPaths)
	if err != nil {
		return err
	}
	return writePDFToFile(pdf, outputPath)
}

// Merge is MergeFiles writing to w.
func Merge(w io.Writer, inputPaths ...string) error {
	pdf, err := buildMerged(inputPaths)
	if err != nil {
		return err
	}
	return writePDF(pdf, w)
}

func buildMerged(inputPaths []string) (*fpdf.Fpdf, error) {
	if len(inputPaths) == 0 {
		return nil, fmt.Errorf("pageops: merge: no input files")
	}
	pdf := newDocument()
	for _, p := range inputPaths {
		if err := copyPages(pdf, p, nil); err != nil {
			return nil, fmt.Errorf("pageops: merging %s: %w", p, err)
		}
	}
	return pdf, nil
}
