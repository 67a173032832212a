package decl

// ConversionKind distinguishes symbolic operators from implicit and explicit
// conversion operators
type ConversionKind int

const (
	NotConversion ConversionKind = iota
	Implicit
	Explicit
)

// String returns the conversion keyword, or "" for symbolic operators
func (c ConversionKind) String() string {
	switch c {
	case Implicit:
		return "implicit"
	case Explicit:
		return "explicit"
	default:
		return ""
	}
}

// Operator is a user-defined operator. Symbolic operators carry Symbol and
// ReturnType; conversions carry Conversion and use ReturnType as the target type.
type Operator struct {
	Common
	ReturnType string
	Symbol     string
	Conversion ConversionKind
	Parameters []Parameter
	Body       Body
}

// NewOperator creates a public static symbolic operator such as "+" or "=="
func NewOperator(returnType, symbol string) Operator {
	return Operator{
		Common:     Common{Name: "operator " + symbol, Access: Public, Modifiers: ModStatic},
		ReturnType: returnType,
		Symbol:     symbol,
	}
}

// NewConversion creates a public static implicit or explicit conversion to target
func NewConversion(kind ConversionKind, target string) Operator {
	return Operator{
		Common:     Common{Name: kind.String() + " operator " + target, Access: Public, Modifiers: ModStatic},
		ReturnType: target,
		Conversion: kind,
	}
}

// IsConversion reports whether the operator is an implicit or explicit conversion
func (o Operator) IsConversion() bool { return o.Conversion != NotConversion }

// Kind implements Node
func (o Operator) Kind() Kind { return KindOperator }

func (o Operator) replaceMeta(md Metadata) Operator {
	o.Metadata = md
	return o
}

func (o Operator) withRegion(tag string) Member { return o.InRegion(tag) }

// WithAccess sets the accessibility
func (o Operator) WithAccess(a Accessibility) Operator {
	o.Access = a
	return o
}

// WithModifiers adds modifiers
func (o Operator) WithModifiers(mods Modifiers) Operator {
	o.Common = o.withModifier(mods)
	return o
}

// WithParameter appends an operand
func (o Operator) WithParameter(p Parameter) Operator {
	o.Parameters = appendClone(o.Parameters, p)
	return o
}

// AddParameter appends an operand built from type and name, optionally configured by fn
func (o Operator) AddParameter(typ, name string, fns ...func(Parameter) Parameter) Operator {
	p := NewParameter(typ, name)
	for _, fn := range fns {
		p = fn(p)
	}
	return o.WithParameter(p)
}

// WithBody replaces the whole body
func (o Operator) WithBody(b Body) Operator {
	o.Body = b
	return o
}

// AddStatement appends a statement fragment
func (o Operator) AddStatement(text string) Operator {
	o.Body = o.Body.AddStatement(text)
	return o
}

// AddStatements appends every non-empty line of block
func (o Operator) AddStatements(block string) Operator {
	o.Body = o.Body.AddStatements(block)
	return o
}

// AddReturn appends a return statement
func (o Operator) AddReturn(expr string) Operator {
	o.Body = o.Body.AddReturn(expr)
	return o
}

// AddThrow appends a throw statement
func (o Operator) AddThrow(expr string) Operator {
	o.Body = o.Body.AddThrow(expr)
	return o
}

// WithExpressionBody replaces the body with => expr
func (o Operator) WithExpressionBody(expr string) Operator {
	o.Body = o.Body.WithExpression(expr)
	return o
}

// ContinueExpression appends to the expression body
func (o Operator) ContinueExpression(fragment string) (Operator, error) {
	b, err := o.Body.ContinueExpression(fragment)
	if err != nil {
		return o, err
	}
	o.Body = b
	return o, nil
}

// WithAttribute adds an attribute
func (o Operator) WithAttribute(name string, args ...string) Operator {
	o.Common = o.withAttribute(NewAttribute(name, args...))
	return o
}

// WithSummary sets the XML documentation summary
func (o Operator) WithSummary(summary string) Operator {
	o.Summary = summary
	return o
}

// InRegion tags the operator with a region name
func (o Operator) InRegion(tag string) Operator {
	o.Region = tag
	return o
}

// WithImports attaches import requests
func (o Operator) WithImports(imports ...string) Operator {
	o.Common = o.withImports(imports...)
	return o
}

// Validate checks parameter invariants
func (o Operator) Validate() error {
	return validateParameters(o.Name, o.Parameters)
}
