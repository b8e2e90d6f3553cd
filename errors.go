package formfill

import (
	"errors"
	"fmt"
)

// Sentinel errors for form rendering failures.
var (
	ErrUnsupportedFormType = errors.New("formfill: unsupported form type")
	ErrValidation          = errors.New("formfill: payload validation failed")
	ErrTemplateMissing     = errors.New("formfill: template file not found")
	ErrComposition         = errors.New("formfill: template composition failed")
	ErrFieldRender         = errors.New("formfill: field could not be drawn")
	ErrEmptyOutput         = errors.New("formfill: output file is empty")
)

// FormError represents a failure of a single rendering step for one form type.
type FormError struct {
	Op       string   // step name, e.g. "compose", "overlay", "write"
	FormType FormType // form being rendered, empty when unknown
	Err      error    // underlying error
}

func (e *FormError) Error() string {
	if e.FormType != "" {
		return fmt.Sprintf("formfill.%s(%s): %v", e.Op, e.FormType, e.Err)
	}
	return fmt.Sprintf("formfill.%s: %v", e.Op, e.Err)
}

func (e *FormError) Unwrap() error {
	return e.Err
}

// NewFormError wraps err with the operation and form type it belongs to.
func NewFormError(op string, ft FormType, err error) *FormError {
	return &FormError{Op: op, FormType: ft, Err: err}
}
