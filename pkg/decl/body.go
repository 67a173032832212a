package decl

import (
	"regexp"
	"strings"

	cserrors "github.com/toyz/cskit/pkg/errors"
)

// Statement is one fragment of a block body. Raw fragments are emitted exactly as
// given; the rest go through Terminate.
type Statement struct {
	Text string
	Raw  bool
}

// Body is either a block of statements or a single expression (=> expr;).
// Setting one form replaces the other.
type Body struct {
	Statements []Statement
	Expression string
}

// IsEmpty reports whether neither form has been set
func (b Body) IsEmpty() bool {
	return len(b.Statements) == 0 && b.Expression == ""
}

// IsExpression reports whether the body is an expression body
func (b Body) IsExpression() bool {
	return b.Expression != ""
}

// AddStatement appends one statement fragment. Empty fragments are ignored.
func (b Body) AddStatement(text string) Body {
	if strings.TrimSpace(text) == "" {
		return b
	}
	b.Expression = ""
	b.Statements = appendClone(b.Statements, Statement{Text: strings.TrimRight(text, " \t\r\n")})
	return b
}

// AddStatements splits block on line boundaries and appends every non-empty line.
// Indentation common to all lines is removed; relative indentation is kept as given.
// Lines that open or label a block (if (...), else, case x:, lines ending in '{', ...)
// are kept raw so they never receive a terminator.
func (b Body) AddStatements(block string) Body {
	lines := splitLines(block)
	if len(lines) == 0 {
		return b
	}
	common := commonIndent(lines)
	stmts := make([]Statement, 0, len(lines))
	for _, line := range lines {
		text := strings.TrimRight(line[common:], " \t")
		stmts = append(stmts, Statement{Text: text, Raw: isStructural(text)})
	}
	b.Expression = ""
	b.Statements = appendClone(b.Statements, stmts...)
	return b
}

// AddReturn appends a return statement; an empty expr yields a bare return
func (b Body) AddReturn(expr string) Body {
	if strings.TrimSpace(expr) == "" {
		return b.AddStatement("return")
	}
	return b.AddStatement("return " + expr)
}

// AddThrow appends a throw statement; an empty expr yields a rethrow
func (b Body) AddThrow(expr string) Body {
	if strings.TrimSpace(expr) == "" {
		return b.AddStatement("throw")
	}
	return b.AddStatement("throw " + expr)
}

// WithExpression replaces the body with an expression body
func (b Body) WithExpression(expr string) Body {
	return Body{Expression: strings.TrimSuffix(strings.TrimSpace(expr), ";")}
}

// ContinueExpression appends fragment to the current expression body, e.g. a chained
// ".ToList()" or " ?? fallback". Leading whitespace of fragment is kept; a trailing
// ';' is dropped. It fails with errors.ErrInvalidOperation when no expression body is set.
func (b Body) ContinueExpression(fragment string) (Body, error) {
	if b.Expression == "" {
		return b, cserrors.InvalidOperation("ContinueExpression", "no expression body has been set").
			WithSuggestion("call WithExpressionBody before continuing the expression")
	}
	fragment = strings.TrimRight(fragment, " \t\r\n")
	fragment = strings.TrimRight(strings.TrimSuffix(fragment, ";"), " \t")
	b.Expression += fragment
	return b, nil
}

// Lines returns the block statements with the terminator rule applied
func (b Body) Lines() []string {
	out := make([]string, 0, len(b.Statements))
	for _, s := range b.Statements {
		if s.Raw {
			out = append(out, s.Text)
			continue
		}
		out = append(out, Terminate(s.Text))
	}
	return out
}

// Terminate applies the statement terminator rule: a fragment ending in ';' or '}',
// or carrying a trailing line comment, is returned unchanged (minus trailing blanks);
// anything else gains exactly one ';'.
func Terminate(fragment string) string {
	trimmed := strings.TrimRight(fragment, " \t\r\n")
	if trimmed == "" {
		return trimmed
	}
	if strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "}") || hasLineComment(trimmed) {
		return trimmed
	}
	return trimmed + ";"
}

// hasLineComment reports whether s contains // outside string and char literals.
func hasLineComment(s string) bool {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			return true
		}
	}
	return false
}

var (
	controlHead = regexp.MustCompile(`^(if|else if|for|foreach|while|switch|using|lock|fixed|catch)\s*\(.*\)$`)
	bareHead    = regexp.MustCompile(`^(else|try|finally|do|catch|unchecked|checked|unsafe)$`)
	labelLine   = regexp.MustCompile(`^(case\s.+|default):$`)
)

func isStructural(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasSuffix(trimmed, "{") ||
		strings.HasPrefix(trimmed, "#") ||
		controlHead.MatchString(trimmed) ||
		bareHead.MatchString(trimmed) ||
		labelLine.MatchString(trimmed)
}

func splitLines(block string) []string {
	block = strings.ReplaceAll(block, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func commonIndent(lines []string) int {
	common := -1
	for _, line := range lines {
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common < 0 {
		return 0
	}
	return common
}
