// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidPeriod  = errors.New("invalid period")
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrNoData         = errors.New("no data returned")
	ErrConfigInvalid  = errors.New("invalid configuration")
	ErrDatabaseError  = errors.New("database error")
)

// ShapeError reports mismatched array lengths between the OHLCV columns and
// the timestamp sequence.
type ShapeError struct {
	Column   string
	Length   int
	Expected int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("malformed input shape: column %s has length %d, expected %d", e.Column, e.Length, e.Expected)
}

// NewShapeError creates a new ShapeError.
func NewShapeError(column string, length, expected int) *ShapeError {
	return &ShapeError{
		Column:   column,
		Length:   length,
		Expected: expected,
	}
}

// FetchError represents a failure fetching market data for a symbol.
type FetchError struct {
	Symbol string
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch failed [%s] %s: %v", e.Source, e.Symbol, e.Err)
	}
	return fmt.Sprintf("fetch failed [%s] %s", e.Source, e.Symbol)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(source, symbol string, err error) *FetchError {
	return &FetchError{
		Symbol: symbol,
		Source: source,
		Err:    err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
