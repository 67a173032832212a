package decl

import "fmt"

// GuardKind selects the argument check emitted for a parameter
type GuardKind int

const (
	GuardNotNull GuardKind = iota
	GuardNotNullOrEmpty
	GuardNotNullOrWhiteSpace
	GuardRange
	GuardNotPositive
	GuardNotNegative
	GuardNotZero
	GuardPositive
)

// GuardImport is the namespace the throw helpers live in
const GuardImport = "System"

// Guard is one argument check requested on a parameter
type Guard struct {
	Kind GuardKind
	Min  string // GuardRange lower bound expression
	Max  string // GuardRange upper bound expression
}

// Statements renders the guard for the named parameter. GuardRange yields two
// statements; every other kind yields one.
func (g Guard) Statements(param string) []string {
	switch g.Kind {
	case GuardNotNull:
		return []string{fmt.Sprintf("ArgumentNullException.ThrowIfNull(%s);", param)}
	case GuardNotNullOrEmpty:
		return []string{fmt.Sprintf("ArgumentException.ThrowIfNullOrEmpty(%s);", param)}
	case GuardNotNullOrWhiteSpace:
		return []string{fmt.Sprintf("ArgumentException.ThrowIfNullOrWhiteSpace(%s);", param)}
	case GuardRange:
		return []string{
			fmt.Sprintf("ArgumentOutOfRangeException.ThrowIfLessThan(%s, %s);", param, g.Min),
			fmt.Sprintf("ArgumentOutOfRangeException.ThrowIfGreaterThan(%s, %s);", param, g.Max),
		}
	case GuardNotPositive:
		return []string{fmt.Sprintf("ArgumentOutOfRangeException.ThrowIfPositive(%s);", param)}
	case GuardNotNegative:
		return []string{fmt.Sprintf("ArgumentOutOfRangeException.ThrowIfNegative(%s);", param)}
	case GuardNotZero:
		return []string{fmt.Sprintf("ArgumentOutOfRangeException.ThrowIfZero(%s);", param)}
	case GuardPositive:
		return []string{fmt.Sprintf("ArgumentOutOfRangeException.ThrowIfNegativeOrZero(%s);", param)}
	default:
		return nil
	}
}

// PreambleStatements returns, for each parameter in order, its guard statements in
// request order followed by its assignment statement.
func PreambleStatements(params []Parameter) []string {
	var out []string
	for _, p := range params {
		for _, g := range p.Guards {
			out = append(out, g.Statements(p.Name)...)
		}
		if stmt := p.AssignmentStatement(); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// HasGuards reports whether any parameter requests a guard
func HasGuards(params []Parameter) bool {
	for _, p := range params {
		if len(p.Guards) > 0 {
			return true
		}
	}
	return false
}
