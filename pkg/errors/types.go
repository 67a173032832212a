// Package errors defines the error kinds returned by cskit.
//
// Construction problems (bad signatures, misuse of a builder) and metadata lookups fail
// with a *BaseError carrying an ErrorCode. Callers match kinds with the standard
// errors.Is against the sentinels below:
//
//	if errors.Is(err, cserrors.ErrInvalidSignature) { ... }
//
// Syntax diagnostics produced during emission are data, not errors, and never surface
// through this package.
package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// ErrorCode represents the kind of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	InvalidSignatureCode
	InvalidOperationCode
	MissingKeyCode
	ManifestErrorCode
	ConfigurationErrorCode
	FileSystemErrorCode
	CheckerUnavailableCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case InvalidSignatureCode:
		return "InvalidSignature"
	case InvalidOperationCode:
		return "InvalidOperation"
	case MissingKeyCode:
		return "MissingKey"
	case ManifestErrorCode:
		return "ManifestError"
	case ConfigurationErrorCode:
		return "ConfigurationError"
	case FileSystemErrorCode:
		return "FileSystemError"
	case CheckerUnavailableCode:
		return "CheckerUnavailable"
	default:
		return "UnknownError"
	}
}

// Sentinels matched by code through errors.Is.
var (
	ErrInvalidSignature = New(InvalidSignatureCode, "invalid signature")
	ErrInvalidOperation = New(InvalidOperationCode, "invalid operation")
	ErrMissingKey       = New(MissingKeyCode, "missing key")

	ErrCheckerUnavailable = New(CheckerUnavailableCode, "syntax checker unavailable")
)

// BaseError is the concrete error type of the package
type BaseError struct {
	Code        ErrorCode              // kind of error
	Message     string                 // error message
	Cause       error                  // underlying cause, wrapped with a stack trace
	ContextData map[string]interface{} // additional context information
	Hints       []string               // suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Context returns the error context data
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns the hints attached to this error followed by any hints carried
// by its cause chain.
func (e *BaseError) Suggestions() []string {
	hints := append([]string(nil), e.Hints...)
	if e.Cause != nil {
		hints = append(hints, crdb.GetAllHints(e.Cause)...)
	}
	return hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *BaseError with the same code.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = crdb.WithStack(cause)
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return New(code, message).WithCause(cause)
}

// Wrapf creates a new error that wraps another error with formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// CodeOf returns the code of the first *BaseError in err's chain, or UnknownErrorCode.
func CodeOf(err error) ErrorCode {
	var base *BaseError
	if crdb.As(err, &base) {
		return base.Code
	}
	return UnknownErrorCode
}
