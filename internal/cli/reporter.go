package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	cserrors "github.com/toyz/cskit/pkg/errors"
	"github.com/toyz/cskit/pkg/syntax"
)

// Reporter prints errors and emission diagnostics for humans
type Reporter struct {
	out     io.Writer
	verbose bool

	errColor  *color.Color
	warnColor *color.Color
	noteColor *color.Color
}

// NewReporter creates a reporter writing to out. Colors follow fatih/color's
// terminal and NO_COLOR detection; FORCE_COLOR turns them on for pipes and
// noColor turns them off.
func NewReporter(out io.Writer, verbose, noColor bool) *Reporter {
	r := &Reporter{
		out:       out,
		verbose:   verbose,
		errColor:  color.New(color.FgRed, color.Bold),
		warnColor: color.New(color.FgYellow, color.Bold),
		noteColor: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.errColor, r.warnColor, r.noteColor} {
		switch {
		case noColor:
			c.DisableColor()
		case os.Getenv("FORCE_COLOR") != "":
			c.EnableColor()
		}
	}
	return r
}

// ReportWarning prints a one-line warning
func (r *Reporter) ReportWarning(message string) {
	r.warnColor.Fprint(r.out, "! ")
	fmt.Fprintln(r.out, message)
}

// ReportDiagnostics prints emission diagnostics, one per line, prefixed with
// the file they belong to.
func (r *Reporter) ReportDiagnostics(file string, diags []syntax.Diagnostic) {
	for _, d := range diags {
		c := r.noteColor
		switch d.Severity {
		case syntax.SeverityError:
			c = r.errColor
		case syntax.SeverityWarning:
			c = r.warnColor
		}
		prefix := file
		if d.Line > 0 {
			prefix = fmt.Sprintf("%s:%d:%d", file, d.Line, d.Column)
		}
		fmt.Fprintf(r.out, "%s: ", prefix)
		c.Fprint(r.out, string(d.Severity))
		fmt.Fprintf(r.out, " [%s] %s\n", d.Code, d.Message)
	}
}

// ReportError prints err with the context and suggestions carried by a
// *errors.BaseError in its chain.
func (r *Reporter) ReportError(err error) {
	var base *cserrors.BaseError
	if !errors.As(err, &base) {
		r.errColor.Fprint(r.out, "error: ")
		fmt.Fprintln(r.out, err.Error())
		return
	}

	r.errColor.Fprintf(r.out, "error[%s]: ", base.Code)
	fmt.Fprintln(r.out, err.Error())

	if ctx := base.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}
	if hints := base.Suggestions(); len(hints) > 0 {
		r.printSuggestions(hints)
	}
	if r.verbose {
		r.printChain(err)
	}
}

func (r *Reporter) printContext(ctx map[string]interface{}) {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(r.out, "Context:")
	for _, k := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(k), ctx[k])
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *Reporter) printSuggestions(suggestions []string) {
	fmt.Fprintln(r.out, "Suggestions:")
	for i, s := range suggestions {
		lines := strings.Split(s, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
}

func (r *Reporter) printChain(err error) {
	fmt.Fprintln(r.out, "Error chain:")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "    %d. %s\n", level, err.Error())
		err = errors.Unwrap(err)
		level++
	}
}
