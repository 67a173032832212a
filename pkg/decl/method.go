package decl

import (
	cserrors "github.com/toyz/cskit/pkg/errors"
)

// Method is a method declaration
type Method struct {
	Common
	ReturnType     string
	TypeParameters []TypeParameter
	Constraints    []Constraint
	Parameters     []Parameter
	Body           Body
}

// NewMethod creates a method returning returnType
func NewMethod(returnType, name string) Method {
	return Method{Common: Common{Name: name}, ReturnType: returnType}
}

// Kind implements Node
func (m Method) Kind() Kind { return KindMethod }

func (m Method) replaceMeta(md Metadata) Method {
	m.Metadata = md
	return m
}

func (m Method) withRegion(tag string) Member { return m.InRegion(tag) }

// WithName renames the method
func (m Method) WithName(name string) Method {
	m.Name = name
	return m
}

// WithAccess sets the accessibility
func (m Method) WithAccess(a Accessibility) Method {
	m.Access = a
	return m
}

// WithModifiers adds modifiers
func (m Method) WithModifiers(mods Modifiers) Method {
	m.Common = m.withModifier(mods)
	return m
}

// AsStatic marks the method static
func (m Method) AsStatic() Method { return m.WithModifiers(ModStatic) }

// AsAbstract marks the method abstract
func (m Method) AsAbstract() Method { return m.WithModifiers(ModAbstract) }

// AsVirtual marks the method virtual
func (m Method) AsVirtual() Method { return m.WithModifiers(ModVirtual) }

// AsOverride marks the method override
func (m Method) AsOverride() Method { return m.WithModifiers(ModOverride) }

// AsSealed marks the method sealed
func (m Method) AsSealed() Method { return m.WithModifiers(ModSealed) }

// AsAsync marks the method async
func (m Method) AsAsync() Method { return m.WithModifiers(ModAsync) }

// AsPartial marks the method partial
func (m Method) AsPartial() Method { return m.WithModifiers(ModPartial) }

// AsExtern marks the method extern
func (m Method) AsExtern() Method { return m.WithModifiers(ModExtern) }

// AsNew marks the method as hiding an inherited member
func (m Method) AsNew() Method { return m.WithModifiers(ModNew) }

// WithAttribute adds an attribute
func (m Method) WithAttribute(name string, args ...string) Method {
	m.Common = m.withAttribute(NewAttribute(name, args...))
	return m
}

// WithAttributes adds pre-built attributes
func (m Method) WithAttributes(attrs ...Attribute) Method {
	for _, a := range attrs {
		m.Common = m.withAttribute(a)
	}
	return m
}

// WithSummary sets the XML documentation summary
func (m Method) WithSummary(summary string) Method {
	m.Summary = summary
	return m
}

// InRegion tags the method with a region name
func (m Method) InRegion(tag string) Method {
	m.Region = tag
	return m
}

// WithImports attaches import requests
func (m Method) WithImports(imports ...string) Method {
	m.Common = m.withImports(imports...)
	return m
}

// WithReturnType replaces the return type
func (m Method) WithReturnType(typ string) Method {
	m.ReturnType = typ
	return m
}

// WithReturnTypeFrom sets the return type from a resolved type-name source
func (m Method) WithReturnTypeFrom(src TypeNameSource) Method {
	return m.WithReturnType(src.FullyQualifiedName())
}

// WithTypeParameters appends generic type parameters
func (m Method) WithTypeParameters(names ...string) Method {
	m.TypeParameters = appendClone(m.TypeParameters, typeParams(names)...)
	return m
}

// WithConstraint appends a where clause
func (m Method) WithConstraint(param string, clauses ...string) Method {
	m.Constraints = appendClone(m.Constraints, Constraint{Param: param, Clauses: cloneSlice(clauses)})
	return m
}

// WithParameter appends a parameter. An extension target that is not the first
// parameter makes Validate fail, and emit reports it as a diagnostic; use
// WithParameterChecked to fail at the call instead.
func (m Method) WithParameter(p Parameter) Method {
	m.Parameters = appendClone(m.Parameters, p)
	return m
}

// WithParameterChecked appends p, failing with errors.ErrInvalidOperation when p is
// an extension target and would not be the first parameter.
func (m Method) WithParameterChecked(p Parameter) (Method, error) {
	params, err := appendParameter(m.Name, m.Parameters, p)
	if err != nil {
		return m, err
	}
	m.Parameters = params
	return m, nil
}

// WithParameters appends parameters
func (m Method) WithParameters(ps ...Parameter) Method {
	m.Parameters = appendClone(m.Parameters, ps...)
	return m
}

// AddParameter appends a parameter built from type and name, optionally configured by fn
func (m Method) AddParameter(typ, name string, fns ...func(Parameter) Parameter) Method {
	p := NewParameter(typ, name)
	for _, fn := range fns {
		p = fn(p)
	}
	return m.WithParameter(p)
}

// AsExtension marks the first parameter as the extension target. It fails with
// errors.ErrInvalidOperation when the method has no parameters.
func (m Method) AsExtension() (Method, error) {
	if len(m.Parameters) == 0 {
		return m, cserrors.InvalidOperation("AsExtension", "method "+m.Name+" has no parameters")
	}
	m.Parameters = cloneSlice(m.Parameters)
	m.Parameters[0] = m.Parameters[0].AsThis()
	return m.AsStatic(), nil
}

// IsExtension reports whether the first parameter is an extension target
func (m Method) IsExtension() bool {
	return len(m.Parameters) > 0 && m.Parameters[0].Receiver == ThisReceiver
}

// ExtensionTarget returns the extended type, or "" for ordinary methods
func (m Method) ExtensionTarget() string {
	if !m.IsExtension() {
		return ""
	}
	return m.Parameters[0].Type
}

// WithBody replaces the whole body
func (m Method) WithBody(b Body) Method {
	m.Body = b
	return m
}

// AddStatement appends a statement fragment
func (m Method) AddStatement(text string) Method {
	m.Body = m.Body.AddStatement(text)
	return m
}

// AddStatements appends every non-empty line of block
func (m Method) AddStatements(block string) Method {
	m.Body = m.Body.AddStatements(block)
	return m
}

// AddReturn appends a return statement
func (m Method) AddReturn(expr string) Method {
	m.Body = m.Body.AddReturn(expr)
	return m
}

// AddThrow appends a throw statement
func (m Method) AddThrow(expr string) Method {
	m.Body = m.Body.AddThrow(expr)
	return m
}

// WithExpressionBody replaces the body with => expr
func (m Method) WithExpressionBody(expr string) Method {
	m.Body = m.Body.WithExpression(expr)
	return m
}

// ContinueExpression appends to the expression body
func (m Method) ContinueExpression(fragment string) (Method, error) {
	b, err := m.Body.ContinueExpression(fragment)
	if err != nil {
		return m, err
	}
	m.Body = b
	return m, nil
}

// Validate checks the invariants a builder chain cannot enforce on its own
func (m Method) Validate() error {
	if m.Name == "" {
		return cserrors.InvalidOperation("Method", "method name is empty")
	}
	return validateParameters(m.Name, m.Parameters)
}

func appendParameter(owner string, params []Parameter, p Parameter) ([]Parameter, error) {
	if p.Receiver == ThisReceiver && len(params) > 0 {
		return params, cserrors.InvalidOperation(owner, "only the first parameter may be an extension target").
			WithContext("parameter", p.Name)
	}
	return appendClone(params, p), nil
}

func validateParameters(owner string, params []Parameter) error {
	for i, p := range params {
		if p.Name == "" {
			return cserrors.InvalidOperation(owner, "parameter name is empty")
		}
		if i > 0 && p.Receiver == ThisReceiver {
			return cserrors.InvalidOperation(owner, "only the first parameter may be an extension target").
				WithContext("parameter", p.Name)
		}
	}
	return nil
}
