// Package validate checks that a payload carries the minimum fields a form
// needs before anything is drawn.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lvillar/formfill"
)

// Kind says how a schema entry is checked.
type Kind int

const (
	// Flat fields must be non-empty at the payload root.
	Flat Kind = iota
	// Nested sections must exist and hold every listed sub-field.
	Nested
	// Presence sections only need the key to exist.
	Presence
	// Scalar entries must be non-empty top-level values.
	Scalar
)

// Entry is one requirement of a schema.
type Entry struct {
	Key    string   `json:"key"`
	Kind   Kind     `json:"kind"`
	Fields []string `json:"fields,omitempty"`
}

// Schema is the ordered list of requirements of a form.
type Schema []Entry

var schemas = map[formfill.FormType]Schema{
	formfill.Tramite: {
		{Key: "placa", Kind: Flat},
		{Key: "marca", Kind: Flat},
		{Key: "linea", Kind: Flat},
		{Key: "modelo", Kind: Flat},
		{Key: "color", Kind: Flat},
		{Key: "propietario_nombres", Kind: Flat},
		{Key: "propietario_documento", Kind: Flat},
	},
	formfill.Compraventa: {
		{Key: "vehiculo", Kind: Nested, Fields: []string{"placa", "marca", "linea", "modelo"}},
		{Key: "vendedor", Kind: Nested, Fields: []string{"nombre", "documento"}},
		{Key: "comprador", Kind: Nested, Fields: []string{"nombre", "documento"}},
		{Key: "valor_venta", Kind: Scalar},
	},
	formfill.Mandato: {
		{Key: "vehiculo", Kind: Nested, Fields: []string{"placa"}},
		{Key: "mandante", Kind: Nested, Fields: []string{"nombre", "documento"}},
		{Key: "mandatario", Kind: Presence},
	},
}

// SchemaFor returns the requirements of ft.
func SchemaFor(ft formfill.FormType) (Schema, error) {
	s, ok := schemas[ft]
	if !ok {
		return nil, fmt.Errorf("validate: %w: %q", formfill.ErrUnsupportedFormType, ft)
	}
	return s, nil
}

// Error lists every requirement a payload failed.
type Error struct {
	FormType   formfill.FormType
	Violations []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validate: %s: %s", e.FormType, strings.Join(e.Violations, ", "))
}

// Is makes errors.Is(err, formfill.ErrValidation) hold.
func (e *Error) Is(target error) bool {
	return target == formfill.ErrValidation
}

// Check returns nil when data satisfies the schema of ft, a *Error that
// aggregates every violation otherwise, or an unsupported form error.
func Check(ft formfill.FormType, data formfill.Data) error {
	schema, err := SchemaFor(ft)
	if err != nil {
		return err
	}

	var violations []string
	for _, e := range schema {
		switch e.Kind {
		case Flat:
			if !present(data[e.Key]) {
				violations = append(violations, fmt.Sprintf("missing required field '%s'", e.Key))
			}
		case Scalar:
			if !data.Has(e.Key) {
				violations = append(violations, fmt.Sprintf("missing section '%s'", e.Key))
			} else if !present(data[e.Key]) {
				violations = append(violations, fmt.Sprintf("missing required field '%s'", e.Key))
			}
		case Presence:
			if !data.Has(e.Key) {
				violations = append(violations, fmt.Sprintf("missing section '%s'", e.Key))
			}
		case Nested:
			if !data.Has(e.Key) {
				violations = append(violations, fmt.Sprintf("missing section '%s'", e.Key))
				continue
			}
			section := data.Section(e.Key)
			for _, f := range e.Fields {
				if !present(section[f]) {
					violations = append(violations, fmt.Sprintf("missing field '%s' in section '%s'", f, e.Key))
				}
			}
		}
	}
	if len(violations) > 0 {
		return &Error{FormType: ft, Violations: violations}
	}
	return nil
}

// Validate is Check reduced to an ok flag and a message.
func Validate(ft formfill.FormType, data formfill.Data) (bool, string) {
	err := Check(ft, data)
	if err == nil {
		return true, "ok"
	}
	var ve *Error
	if errors.As(err, &ve) {
		return false, strings.Join(ve.Violations, ", ")
	}
	return false, err.Error()
}

// present treats nil, blank or placeholder strings, numeric zero, false
// and empty collections as missing.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return !formfill.IsUnavailable(t)
	case bool:
		return t
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return formfill.Scalar(v) != ""
}
