package decl

import "strings"

// RefKind is the reference passing mode of a parameter
type RefKind int

const (
	ByValue RefKind = iota
	Ref
	Out
	In
	RefReadonly
)

// String returns the C# keyword, or "" for ByValue
func (r RefKind) String() string {
	switch r {
	case Ref:
		return "ref"
	case Out:
		return "out"
	case In:
		return "in"
	case RefReadonly:
		return "ref readonly"
	default:
		return ""
	}
}

// Receiver marks a parameter as a params array or as the extension target
type Receiver int

const (
	NoReceiver Receiver = iota
	ParamsArray
	ThisReceiver
)

// Parameter is a single parameter of a method, constructor, operator, indexer or
// delegate.
type Parameter struct {
	Name       string
	Type       string
	RefKind    RefKind
	Scoped     bool
	Receiver   Receiver
	Default    string // rendered after '=' when HasDefault is set
	HasDefault bool
	Attributes []Attribute
	Guards     []Guard
	AssignTo   string // member assigned from this parameter, "" for none
	Imports    []string
	Metadata   Metadata
}

// NewParameter creates a by-value parameter
func NewParameter(typ, name string) Parameter {
	return Parameter{Name: name, Type: typ}
}

// Kind implements Node
func (p Parameter) Kind() Kind { return KindParameter }

// DeclName returns the parameter name
func (p Parameter) DeclName() string { return p.Name }

// Meta returns the metadata bag
func (p Parameter) Meta() Metadata { return p.Metadata }

func (p Parameter) replaceMeta(m Metadata) Parameter {
	p.Metadata = m
	return p
}

// WithType replaces the parameter type
func (p Parameter) WithType(typ string) Parameter {
	p.Type = typ
	return p
}

// WithTypeFrom sets the type from a resolved type-name source
func (p Parameter) WithTypeFrom(src TypeNameSource) Parameter {
	return p.WithType(src.FullyQualifiedName())
}

// WithDefault sets the default value expression
func (p Parameter) WithDefault(expr string) Parameter {
	p.Default = expr
	p.HasDefault = true
	return p
}

// AsRef marks the parameter ref
func (p Parameter) AsRef() Parameter { return p.withRefKind(Ref) }

// AsOut marks the parameter out
func (p Parameter) AsOut() Parameter { return p.withRefKind(Out) }

// AsIn marks the parameter in
func (p Parameter) AsIn() Parameter { return p.withRefKind(In) }

// AsRefReadonly marks the parameter ref readonly
func (p Parameter) AsRefReadonly() Parameter { return p.withRefKind(RefReadonly) }

// AsScoped marks the parameter scoped, limiting the lifetime of the reference
// or ref struct it carries to the call
func (p Parameter) AsScoped() Parameter {
	p.Scoped = true
	return p
}

func (p Parameter) withRefKind(k RefKind) Parameter {
	p.RefKind = k
	return p
}

// AsParams marks the parameter as a params array, replacing a this marker
func (p Parameter) AsParams() Parameter {
	p.Receiver = ParamsArray
	return p
}

// AsThis marks the parameter as the extension target, replacing a params marker.
// Only the first parameter of a callable may carry it.
func (p Parameter) AsThis() Parameter {
	p.Receiver = ThisReceiver
	return p
}

// WithAttribute adds an attribute to the parameter
func (p Parameter) WithAttribute(name string, args ...string) Parameter {
	p.Attributes = appendClone(p.Attributes, NewAttribute(name, args...))
	return p
}

// WithImports attaches import requests
func (p Parameter) WithImports(imports ...string) Parameter {
	p.Imports = appendClone(p.Imports, imports...)
	return p
}

// WithGuard appends a guard request
func (p Parameter) WithGuard(g Guard) Parameter {
	p.Guards = appendClone(p.Guards, g)
	return p
}

// NotNull guards against null
func (p Parameter) NotNull() Parameter { return p.WithGuard(Guard{Kind: GuardNotNull}) }

// NotNullOrEmpty guards against null or empty strings
func (p Parameter) NotNullOrEmpty() Parameter {
	return p.WithGuard(Guard{Kind: GuardNotNullOrEmpty})
}

// NotNullOrWhiteSpace guards against null, empty or blank strings
func (p Parameter) NotNullOrWhiteSpace() Parameter {
	return p.WithGuard(Guard{Kind: GuardNotNullOrWhiteSpace})
}

// InRange guards that min <= value <= max
func (p Parameter) InRange(min, max string) Parameter {
	return p.WithGuard(Guard{Kind: GuardRange, Min: min, Max: max})
}

// NotPositive guards against values greater than zero
func (p Parameter) NotPositive() Parameter { return p.WithGuard(Guard{Kind: GuardNotPositive}) }

// NotNegative guards against values below zero
func (p Parameter) NotNegative() Parameter { return p.WithGuard(Guard{Kind: GuardNotNegative}) }

// NotZero guards against zero
func (p Parameter) NotZero() Parameter { return p.WithGuard(Guard{Kind: GuardNotZero}) }

// Positive guards against zero and negative values
func (p Parameter) Positive() Parameter { return p.WithGuard(Guard{Kind: GuardPositive}) }

// AssignsTo assigns the parameter to the named property or field
func (p Parameter) AssignsTo(member string) Parameter {
	p.AssignTo = member
	return p
}

// AssignsToProperty assigns the parameter to prop
func (p Parameter) AssignsToProperty(prop Property) Parameter {
	return p.AssignsTo(prop.Name)
}

// AssignsToField assigns the parameter to field
func (p Parameter) AssignsToField(field Field) Parameter {
	return p.AssignsTo(field.Name)
}

// AssignmentStatement returns the assignment produced by AssignsTo, or "".
func (p Parameter) AssignmentStatement() string {
	switch {
	case p.AssignTo == "":
		return ""
	case p.AssignTo == p.Name:
		return "this." + p.AssignTo + " = " + p.Name + ";"
	default:
		return p.AssignTo + " = " + p.Name + ";"
	}
}

// String renders the parameter as it appears in a parameter list
func (p Parameter) String() string {
	var parts []string
	for _, a := range p.Attributes {
		parts = append(parts, a.String())
	}
	switch p.Receiver {
	case ThisReceiver:
		parts = append(parts, "this")
	case ParamsArray:
		parts = append(parts, "params")
	}
	if p.Scoped {
		parts = append(parts, "scoped")
	}
	if k := p.RefKind.String(); k != "" {
		parts = append(parts, k)
	}
	parts = append(parts, p.Type, p.Name)
	s := strings.Join(parts, " ")
	if p.HasDefault {
		s += " = " + p.Default
	}
	return s
}

// JoinParameters renders a comma-separated parameter list without parentheses
func JoinParameters(params []Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
