package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/glyphprompt/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrConfigurationMissing indicates no settings are available.
	ErrConfigurationMissing = errors.New("prompt settings missing")

	// ErrValidationFailed indicates the settings fail validation.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError represents an error while parsing a settings file.
type ParseError = loader.ParseError

// ValidationError describes a single invalid setting.
type ValidationError struct {
	// Path is the setting key that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// ValidationErrors collects every validation failure of a settings document.
type ValidationErrors struct {
	Errors []*ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e.Errors), strings.Join(msgs, "\n  - "))
}

// Is reports ErrValidationFailed.
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// add adds a validation error.
func (e *ValidationErrors) add(path, message string, value any) {
	e.Errors = append(e.Errors, &ValidationError{
		Path:    path,
		Message: message,
		Value:   value,
	})
}

// orNil returns e when it holds errors.
func (e *ValidationErrors) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
