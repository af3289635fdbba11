// Package errors provides a lightweight structured error type (BridgeError)
// for category-based classification in the CLI and the watch daemon.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a bridge error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryProperties ErrorCategory = "properties"

	// Build-environment errors
	CategoryEnvironment ErrorCategory = "environment"

	// Hand-off and persistence errors
	CategoryExport  ErrorCategory = "export"
	CategoryJournal ErrorCategory = "journal"

	// Runtime and infrastructure errors
	CategoryWatch    ErrorCategory = "watch"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// BridgeError is a structured error with category, severity, and context
type BridgeError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BridgeError
type ContextFields map[string]any

// Error implements the error interface
func (e *BridgeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BridgeError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BridgeError) WithContext(key string, value any) *BridgeError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BridgeError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BridgeError {
	return &BridgeError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BridgeError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BridgeError {
	return &BridgeError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if be, ok := err.(*BridgeError); ok {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a BridgeError
func GetCategory(err error) ErrorCategory {
	if be, ok := err.(*BridgeError); ok {
		return be.Category
	}
	return CategoryInternal
}
