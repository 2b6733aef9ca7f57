// Package errors provides custom error types for the appdex system.
// These errors enable programmatic error checking with errors.Is and
// keep per-entry failures distinguishable from fatal document failures.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As, and Join are aliases for their standard library counterparts.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the appdex system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedDocument indicates that the catalogue document is
	// structurally broken and cannot be processed
	ErrMalformedDocument = errors.New("malformed document")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a single entry failing model constraints.
// It is scoped to that entry and never aborts a batch operation.
type ValidationError struct {
	Field   string
	Value   interface{}
	Index   int // position of the entry in its batch, -1 when unknown
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("validation failed for entry %d, field %s: %s", e.Index, e.Field, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Index: -1, Message: message}
}

// MalformedDocumentError indicates the catalogue document's required
// structure is missing or unparseable. It is fatal: the run aborts
// before any write.
type MalformedDocumentError struct {
	Path    string
	Section string
	Message string
}

// Error implements the error interface
func (e *MalformedDocumentError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed document %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("malformed document: %s", e.Message)
}

// Is implements errors.Is support
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// NewMalformedDocumentError creates a new MalformedDocumentError
func NewMalformedDocumentError(path, section, message string) *MalformedDocumentError {
	return &MalformedDocumentError{Path: path, Section: section, Message: message}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "markdown"
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// MergeError represents an error during merge-batch operations that is
// not attributable to a single entry
type MergeError struct {
	Batch    string
	Rejected int
	Err      error
}

// Error implements the error interface
func (e *MergeError) Error() string {
	if e.Rejected > 0 {
		return fmt.Sprintf("merge of %s rejected %d entries: %v", e.Batch, e.Rejected, e.Err)
	}
	return fmt.Sprintf("merge error for %s: %v", e.Batch, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *MergeError) Unwrap() error {
	return e.Err
}

// NewMergeError creates a new MergeError
func NewMergeError(batch string, rejected int, err error) *MergeError {
	return &MergeError{Batch: batch, Rejected: rejected, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformedDocument checks if an error is a malformed document error
func IsMalformedDocument(err error) bool {
	return errors.Is(err, ErrMalformedDocument)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Index: -1, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
