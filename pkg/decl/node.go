package decl

import "strings"

// Kind identifies the construct a node declares
type Kind int

const (
	KindType Kind = iota
	KindField
	KindProperty
	KindMethod
	KindConstructor
	KindOperator
	KindIndexer
	KindEvent
	KindEnumValue
	KindParameter
)

// String returns a lower-case name for the kind
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	case KindOperator:
		return "operator"
	case KindIndexer:
		return "indexer"
	case KindEvent:
		return "event"
	case KindEnumValue:
		return "enum value"
	case KindParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// Node is implemented by every declaration value
type Node interface {
	Kind() Kind
	DeclName() string
	Meta() Metadata
}

// Member is a node that can appear in a type's member list. The set of
// implementations is closed: Field, Property, Method, Constructor, Operator,
// Indexer, Event, EnumValue and Type.
type Member interface {
	Node
	RegionTag() string
	ImportRequests() []string
	withRegion(tag string) Member
}

// TypeNameSource produces fully qualified type names for symbols resolved elsewhere,
// such as a compiler's symbol model. Only the produced string is used.
type TypeNameSource interface {
	FullyQualifiedName() string
}

// TypeName adapts a literal string to TypeNameSource
type TypeName string

// FullyQualifiedName implements TypeNameSource
func (t TypeName) FullyQualifiedName() string { return string(t) }

// If returns fn(node) when cond holds and node unchanged otherwise.
//
//	m = decl.If(async, m, decl.Method.AsAsync)
func If[N any](cond bool, node N, fn func(N) N) N {
	if !cond {
		return node
	}
	return fn(node)
}

// TypeParameter is a generic type parameter with optional variance
type TypeParameter struct {
	Name     string
	Variance string // "", "in" or "out"
}

// String renders the parameter with its variance keyword
func (t TypeParameter) String() string {
	if t.Variance == "" {
		return t.Name
	}
	return t.Variance + " " + t.Name
}

// Constraint is a where clause: where Param : Clauses[0], Clauses[1]
type Constraint struct {
	Param   string
	Clauses []string
}

// String renders the where clause
func (c Constraint) String() string {
	return "where " + c.Param + " : " + strings.Join(c.Clauses, ", ")
}

// JoinTypeParameters renders <T, U>, or "" when params is empty
func JoinTypeParameters(params []TypeParameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func typeParams(names []string) []TypeParameter {
	out := make([]TypeParameter, len(names))
	for i, n := range names {
		out[i] = TypeParameter{Name: n}
	}
	return out
}
