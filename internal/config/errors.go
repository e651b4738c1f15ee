package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is.
var (
	// ErrTypeMismatch matches a *TypeError from LoadJSON.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed matches every *ValidationError from Validate.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownBackend is returned for a backend name other than canvas,
	// dom, webgl2 or gpu.
	ErrUnknownBackend = errors.New("unknown backend")
)

// ParseError reports a webterm.toml or JSON settings document that could
// not be decoded. Line and Column are zero when the decoder gave no
// position, which is always the case for JSON.
type ParseError struct {
	Source  string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError is one setting Validate rejected, keyed by its document
// path such as "canvas.scale".
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Code    ValidationErrorCode
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Path, e.Value, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidationErrorCode says which rule a setting broke.
type ValidationErrorCode uint8

const (
	// ErrCodeOutOfRange is a negative size or frame rate, or a scale that
	// is not positive.
	ErrCodeOutOfRange ValidationErrorCode = iota
	// ErrCodeInvalidEnum is a backend, cursor, selection or log level name
	// outside its allowed set.
	ErrCodeInvalidEnum
	// ErrCodePatternMismatch is a color that is not a hex color.
	ErrCodePatternMismatch
)

func (c ValidationErrorCode) String() string {
	switch c {
	case ErrCodeOutOfRange:
		return "out_of_range"
	case ErrCodeInvalidEnum:
		return "invalid_enum"
	case ErrCodePatternMismatch:
		return "pattern_mismatch"
	default:
		return "unknown"
	}
}

// TypeError reports a JSON value whose type does not fit the setting at
// Path. Expected and Actual are JSON type names.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: want %s, have %s", e.Path, e.Expected, e.Actual)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
