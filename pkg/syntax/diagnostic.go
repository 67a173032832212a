// Package syntax checks rendered C# text for syntax errors. It never resolves
// names or types; a file that parses is accepted.
package syntax

import (
	"context"
	"fmt"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	CodeMissing     Code = "SYNTAX_MISSING"
	CodeUnexpected  Code = "SYNTAX_UNEXPECTED"
	CodeInvalid     Code = "SYNTAX_INVALID"
	CodeUnavailable Code = "SYNTAX_UNAVAILABLE"
)

// Diagnostic is one problem found in a source text. Line and Column are
// 1-based; zero means the position is unknown.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Line     int
	Column   int
}

// IsError reports whether the diagnostic has error severity
func (d Diagnostic) IsError() bool { return d.Severity == SeverityError }

// String formats the diagnostic as "line:col: severity: message"
func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
}

// HasErrors reports whether any diagnostic has error severity
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Checker parses source text and reports syntax diagnostics. A non-nil error
// means the check could not run at all.
type Checker interface {
	Check(source []byte) ([]Diagnostic, error)
}

// ContextChecker is a Checker whose work can be bound to a context
type ContextChecker interface {
	Checker
	CheckContext(ctx context.Context, source []byte) ([]Diagnostic, error)
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(source []byte) ([]Diagnostic, error)

// Check implements Checker
func (f CheckerFunc) Check(source []byte) ([]Diagnostic, error) { return f(source) }
