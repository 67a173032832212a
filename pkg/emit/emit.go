// Package emit renders declaration trees to C# source text. Emission hoists
// every import request to the top of the file, optionally groups members into
// regions, applies the configured formatting and, when asked, validates the
// text with a syntax checker.
package emit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/toyz/cskit/pkg/decl"
	"github.com/toyz/cskit/pkg/syntax"
)

// Emitter renders types with a fixed set of options. It holds no per-call
// state and may be shared between goroutines.
type Emitter struct {
	opts Options
}

// New creates an Emitter; unset options take their defaults
func New(opts Options) *Emitter {
	return &Emitter{opts: opts.withDefaults()}
}

// Options returns the effective options
func (e *Emitter) Options() Options {
	return e.opts
}

// Emit renders t with opts. See Emitter.EmitContext.
func Emit(t decl.Type, opts Options) Result {
	return New(opts).Emit(t)
}

// Emit renders t without a deadline. See EmitContext.
func (e *Emitter) Emit(t decl.Type) Result {
	return e.EmitContext(context.Background(), t)
}

// EmitContext renders t. A declaration that fails decl.Type.Validate always produces
// the diagnostic state. Otherwise ValidationNone yields the validated state,
// and with ValidationSyntax checker errors or a checker that cannot run
// produce the diagnostic state. The rendered text is kept in both states. ctx
// bounds the syntax check when the checker is a syntax.ContextChecker.
func (e *Emitter) EmitContext(ctx context.Context, t decl.Type) Result {
	log := e.opts.Logger.With(zap.String("type", t.FullName()))
	start := time.Now()

	declErr := t.Validate()

	r := &renderer{opts: e.opts}
	r.renderFile(t)
	code := format(r.w.lines, e.opts.Indentation, e.opts.LineEnding)
	log.Debug("rendered",
		zap.Int("lines", len(r.w.lines)),
		zap.Int("bytes", len(code)),
		zap.Bool("auto_regions", e.opts.AutoRegions))

	var diags []Diagnostic
	if declErr != nil {
		log.Warn("declaration is invalid", zap.Error(declErr))
		diags = append(diags, Diagnostic{
			Severity: syntax.SeverityError,
			Code:     CodeInvalidDeclaration,
			Message:  declErr.Error(),
		})
	}
	if e.opts.Validation != ValidationNone {
		diags = append(diags, e.check(ctx, code, log)...)
	}

	if len(diags) > 0 {
		log.Info("validation failed",
			zap.Int("diagnostics", len(diags)),
			zap.Duration("elapsed", time.Since(start)))
		return invalidResult(code, diags)
	}
	log.Debug("emitted", zap.Duration("elapsed", time.Since(start)))
	return validResult(code)
}

// check runs the checker and keeps error diagnostics. A checker that fails to
// run yields an error diagnostic.
func (e *Emitter) check(ctx context.Context, code string, log *zap.Logger) []Diagnostic {
	if e.opts.Checker == nil {
		return []Diagnostic{{
			Severity: syntax.SeverityError,
			Code:     syntax.CodeUnavailable,
			Message:  "no syntax checker configured",
		}}
	}
	var (
		found []Diagnostic
		err   error
	)
	if cc, ok := e.opts.Checker.(syntax.ContextChecker); ok {
		found, err = cc.CheckContext(ctx, []byte(code))
	} else {
		found, err = e.opts.Checker.Check([]byte(code))
	}
	if err != nil {
		log.Error("syntax checker unavailable", zap.Error(err))
		return []Diagnostic{{
			Severity: syntax.SeverityError,
			Code:     syntax.CodeUnavailable,
			Message:  err.Error(),
		}}
	}
	if !syntax.HasErrors(found) {
		log.Debug("checker passed", zap.Int("notes", len(found)))
		return nil
	}
	var out []Diagnostic
	for _, d := range found {
		if !d.IsError() {
			log.Debug("checker note", zap.Stringer("diagnostic", d))
			continue
		}
		out = append(out, d)
	}
	return out
}
