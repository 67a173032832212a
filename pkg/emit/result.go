package emit

import "github.com/toyz/cskit/pkg/syntax"

// Diagnostic is a problem reported during emission
type Diagnostic = syntax.Diagnostic

// Diagnostic codes produced by the emitter itself
const (
	CodeInvalidDeclaration syntax.Code = "EMIT_INVALID_DECLARATION"
)

// Result is the outcome of an emission. The rendered text is always present;
// callers must narrow with Validated before trusting it.
//
//	res := emit.Emit(t, opts)
//	valid, ok := res.Validated()
//	if !ok {
//		for _, d := range res.Diagnostics() { ... }
//	}
type Result struct {
	code        string
	diagnostics []Diagnostic
	valid       bool
}

// ValidResult is a result that passed the configured validation. Its code is
// never empty.
type ValidResult struct {
	code string
}

// Code returns the rendered text
func (v ValidResult) Code() string { return v.code }

// Success reports whether the result is in the validated state
func (r Result) Success() bool { return r.valid }

// Code returns the rendered text in either state
func (r Result) Code() string { return r.code }

// Diagnostics returns a copy of the diagnostics; empty in the validated state
func (r Result) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), r.diagnostics...)
}

// Validated narrows the result to a ValidResult
func (r Result) Validated() (ValidResult, bool) {
	if !r.valid {
		return ValidResult{}, false
	}
	return ValidResult{code: r.code}, true
}

func validResult(code string) Result {
	return Result{code: code, valid: true}
}

func invalidResult(code string, diags []Diagnostic) Result {
	return Result{code: code, diagnostics: append([]Diagnostic(nil), diags...)}
}
