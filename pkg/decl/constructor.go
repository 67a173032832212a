package decl

import (
	cserrors "github.com/toyz/cskit/pkg/errors"
)

// InitializerKind selects the constructor chained to by a constructor initializer
type InitializerKind int

const (
	NoInitializer InitializerKind = iota
	BaseInitializer
	ThisInitializer
)

// Constructor is an instance or static constructor. An empty Name takes the name of
// the enclosing type when rendered.
type Constructor struct {
	Common
	Parameters      []Parameter
	Initializer     InitializerKind
	InitializerArgs []string
	Body            Body
}

// NewConstructor creates a constructor for the enclosing type
func NewConstructor() Constructor {
	return Constructor{}
}

// Kind implements Node
func (c Constructor) Kind() Kind { return KindConstructor }

func (c Constructor) replaceMeta(md Metadata) Constructor {
	c.Metadata = md
	return c
}

func (c Constructor) withRegion(tag string) Member { return c.InRegion(tag) }

// WithName sets the type name explicitly
func (c Constructor) WithName(name string) Constructor {
	c.Name = name
	return c
}

// WithAccess sets the accessibility
func (c Constructor) WithAccess(a Accessibility) Constructor {
	c.Access = a
	return c
}

// AsStatic marks the constructor static
func (c Constructor) AsStatic() Constructor {
	c.Common = c.withModifier(ModStatic)
	return c
}

// WithAttribute adds an attribute
func (c Constructor) WithAttribute(name string, args ...string) Constructor {
	c.Common = c.withAttribute(NewAttribute(name, args...))
	return c
}

// WithSummary sets the XML documentation summary
func (c Constructor) WithSummary(summary string) Constructor {
	c.Summary = summary
	return c
}

// InRegion tags the constructor with a region name
func (c Constructor) InRegion(tag string) Constructor {
	c.Region = tag
	return c
}

// WithImports attaches import requests
func (c Constructor) WithImports(imports ...string) Constructor {
	c.Common = c.withImports(imports...)
	return c
}

// WithParameter appends a parameter
func (c Constructor) WithParameter(p Parameter) Constructor {
	c.Parameters = appendClone(c.Parameters, p)
	return c
}

// WithParameterChecked appends p, rejecting extension targets
func (c Constructor) WithParameterChecked(p Parameter) (Constructor, error) {
	if p.Receiver == ThisReceiver {
		return c, cserrors.InvalidOperation("constructor", "constructors cannot declare an extension target").
			WithContext("parameter", p.Name)
	}
	c.Parameters = appendClone(c.Parameters, p)
	return c, nil
}

// WithParameters appends parameters
func (c Constructor) WithParameters(ps ...Parameter) Constructor {
	c.Parameters = appendClone(c.Parameters, ps...)
	return c
}

// AddParameter appends a parameter built from type and name, optionally configured by fn
func (c Constructor) AddParameter(typ, name string, fns ...func(Parameter) Parameter) Constructor {
	p := NewParameter(typ, name)
	for _, fn := range fns {
		p = fn(p)
	}
	return c.WithParameter(p)
}

// CallsBase chains to a base class constructor
func (c Constructor) CallsBase(args ...string) Constructor {
	c.Initializer = BaseInitializer
	c.InitializerArgs = cloneSlice(args)
	return c
}

// CallsThis chains to another constructor of the same type
func (c Constructor) CallsThis(args ...string) Constructor {
	c.Initializer = ThisInitializer
	c.InitializerArgs = cloneSlice(args)
	return c
}

// WithBody replaces the whole body
func (c Constructor) WithBody(b Body) Constructor {
	c.Body = b
	return c
}

// AddStatement appends a statement fragment
func (c Constructor) AddStatement(text string) Constructor {
	c.Body = c.Body.AddStatement(text)
	return c
}

// AddStatements appends every non-empty line of block
func (c Constructor) AddStatements(block string) Constructor {
	c.Body = c.Body.AddStatements(block)
	return c
}

// AddThrow appends a throw statement
func (c Constructor) AddThrow(expr string) Constructor {
	c.Body = c.Body.AddThrow(expr)
	return c
}

// WithExpressionBody replaces the body with => expr
func (c Constructor) WithExpressionBody(expr string) Constructor {
	c.Body = c.Body.WithExpression(expr)
	return c
}

// ContinueExpression appends to the expression body
func (c Constructor) ContinueExpression(fragment string) (Constructor, error) {
	b, err := c.Body.ContinueExpression(fragment)
	if err != nil {
		return c, err
	}
	c.Body = b
	return c, nil
}

// Validate checks parameter invariants
func (c Constructor) Validate() error {
	for _, p := range c.Parameters {
		if p.Receiver == ThisReceiver {
			return cserrors.InvalidOperation("constructor", "constructors cannot declare an extension target").
				WithContext("parameter", p.Name)
		}
	}
	return validateParameters("constructor", c.Parameters)
}
