// Package errors defines the fatal error kinds of a cleaning run.
//
// Only these errors stop a run. Row-level anomalies (malformed widths,
// rejected characters, unparseable values) are repaired and counted instead.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the kind of a fatal pipeline error
type ErrorType string

const (
	ErrTypeIO     ErrorType = "IO"
	ErrTypeSchema ErrorType = "SCHEMA"
	ErrTypeConfig ErrorType = "CONFIG"
)

// Sentinels for errors.Is. A *PipelineError matches the sentinel of its type.
var (
	ErrIO     = &PipelineError{Type: ErrTypeIO, Message: "i/o failure"}
	ErrSchema = &PipelineError{Type: ErrTypeSchema, Message: "schema violation"}
	ErrConfig = &PipelineError{Type: ErrTypeConfig, Message: "invalid configuration"}
)

// PipelineError is a fatal error raised by a pipeline stage
type PipelineError struct {
	Type    ErrorType
	Op      string
	Path    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	msg := fmt.Sprintf("[%s]", e.Type)
	if e.Op != "" {
		msg += " " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap allows errors.Is and errors.As to reach the cause
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a PipelineError of the same type
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// WithContext adds context to the error
func (e *PipelineError) WithContext(key string, value interface{}) *PipelineError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewIOError creates an error for an unreadable or unwritable file or stream
func NewIOError(op, path string, cause error) *PipelineError {
	return &PipelineError{Type: ErrTypeIO, Op: op, Path: path, Cause: cause}
}

// NewSchemaError creates an error for a header that does not match the dataset schema
func NewSchemaError(path, message string) *PipelineError {
	return &PipelineError{Type: ErrTypeSchema, Op: "read header", Path: path, Message: message}
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *PipelineError {
	return &PipelineError{Type: ErrTypeConfig, Message: message, Cause: cause}
}

// IsFatal reports whether err carries one of the fatal pipeline error types
func IsFatal(err error) bool {
	var pe *PipelineError
	return stderrors.As(err, &pe)
}

// TypeOf returns the pipeline error type carried by err, or "" if none
func TypeOf(err error) ErrorType {
	var pe *PipelineError
	if stderrors.As(err, &pe) {
		return pe.Type
	}
	return ""
}
