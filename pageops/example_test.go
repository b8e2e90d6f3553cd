package pageops_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/lvillar/formfill/layout"
	"github.com/lvillar/formfill/pageops"
	"github.com/lvillar/formfill/reader"
	"github.com/lvillar/formfill/textfit"
)

// createExampleTemplate writes a blank Letter template with numPages pages.
func createExampleTemplate(filename string, numPages int) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 1; i <= numPages; i++ {
		pdf.AddPage()
		pdf.Text(40, 40, fmt.Sprintf("Formulario - hoja %d", i))
	}
	return pdf.OutputFileAndClose(filename)
}

// ExampleCompose draws a field on a one-page overlay and stamps it onto
// the first page of a two-page template.
func ExampleCompose() {
	dir, err := os.MkdirTemp("", "compose")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	tpl := filepath.Join(dir, "formulario.pdf")
	if err := createExampleTemplate(tpl, 2); err != nil {
		fmt.Println(err)
		return
	}

	canvas, err := textfit.NewCanvas(612, 792, textfit.Font{Family: textfit.CoreFamily})
	if err != nil {
		fmt.Println(err)
		return
	}
	if _, _, err := canvas.DrawText("marca", layout.Point{X: 100, Y: 500}, "Chevrolet", 9); err != nil {
		fmt.Println(err)
		return
	}
	overlay, err := canvas.Bytes()
	if err != nil {
		fmt.Println(err)
		return
	}

	out := filepath.Join(dir, "diligenciado.pdf")
	if err := pageops.Compose(tpl, overlay, out, pageops.ComposeOptions{Validate: true}); err != nil {
		fmt.Println(err)
		return
	}

	doc, err := reader.Open(out)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d pages\n", doc.NumPages())
	// Output:
	// 2 pages
}
