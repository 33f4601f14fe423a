package wpbridge

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var allowedMethods = []interface{}{
	"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
}

// defaultValidator is the stock ParameterValidator: pure string checks, no
// I/O, no state.
type defaultValidator struct{}

// NewParameterValidator returns the default ParameterValidator
// implementation.
func NewParameterValidator() ParameterValidator {
	return defaultValidator{}
}

func (defaultValidator) ValidateRequest(method, path string) error {
	if err := validation.Validate(strings.ToUpper(method),
		validation.Required,
		validation.In(allowedMethods...),
	); err != nil {
		return &ValidationError{Field: "method", Message: err.Error()}
	}
	if err := validation.Validate(path, validation.Required); err != nil {
		return &ValidationError{Field: "path", Message: err.Error()}
	}
	return nil
}

func (defaultValidator) ValidateNonEmpty(field, value string) error {
	if err := validation.Validate(value, validation.Required); err != nil {
		return &ValidationError{Field: field, Message: err.Error()}
	}
	return nil
}
