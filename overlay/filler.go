package overlay

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lvillar/formfill"
	"github.com/lvillar/formfill/layout"
	"github.com/lvillar/formfill/normalize"
	"github.com/lvillar/formfill/textfit"
)

// filler holds the state of one Build call.
type filler struct {
	canvas  *textfit.Canvas
	table   *layout.Table
	data    formfill.Data
	res     *normalize.Resolver
	logger  *slog.Logger
	now     time.Time
	skipped []FieldError
}

// guard runs one field draw, turning errors and panics into a skipped
// field so the rest of the form is still drawn.
func (f *filler) guard(field string, draw func() error) {
	defer func() {
		if r := recover(); r != nil {
			f.skip(field, fmt.Errorf("%w: %v", formfill.ErrFieldRender, r))
		}
	}()
	if err := draw(); err != nil {
		f.skip(field, err)
	}
}

func (f *filler) skip(field string, err error) {
	f.logger.Warn("field skipped", "field", field, "error", err)
	f.skipped = append(f.skipped, FieldError{Field: field, Err: err})
}

func (f *filler) point(field string) (layout.Point, bool) {
	p, ok := f.table.Lookup(field)
	if !ok {
		f.logger.Debug("no coordinates for field", "field", field)
	}
	return p, ok
}

func (f *filler) text(field, value string, size float64) {
	at, ok := f.point(field)
	if !ok {
		return
	}
	f.guard(field, func() error {
		_, _, err := f.canvas.DrawText(field, at, value, size)
		return err
	})
}

// long draws a field whose text may run past the page; it shrinks
// before it moves.
func (f *filler) long(field, value string, size float64, maxRunes int) {
	at, ok := f.point(field)
	if !ok {
		return
	}
	f.guard(field, func() error {
		_, _, err := f.canvas.DrawShrunk(field, at, value, size, maxRunes)
		return err
	})
}

func (f *filler) fit(field, value string, maxWidth float64) {
	at, ok := f.point(field)
	if !ok {
		return
	}
	f.guard(field, func() error {
		_, _, err := f.canvas.DrawFitted(field, at, value, maxWidth)
		return err
	})
}

func (f *filler) check(field string, size float64) {
	at, ok := f.point(field)
	if !ok {
		return
	}
	f.guard(field, func() error {
		_, err := f.canvas.DrawCheck(field, at, size)
		return err
	})
}

// classify marks the checkbox chosen by rules for value, if any.
func (f *filler) classify(rules normalize.Rules, value string) {
	if outcome, ok := rules.Match(value); ok {
		f.check(outcome, textfit.DefaultSize)
	}
}

// contractDate draws the day, Spanish month and year of the contract.
func (f *filler) contractDate(size float64) {
	d := normalize.ContractDate(f.res.Raw("fecha_contrato"), f.now)
	f.text("dia_contrato", fmt.Sprint(d.Day()), size)
	f.text("mes_contrato", normalize.SpanishMonth(d.Month()), size)
	f.text("año_contrato", fmt.Sprint(d.Year()), size)
}
