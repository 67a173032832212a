package decl

// Indexer is a this[...] declaration
type Indexer struct {
	Common
	Type       string
	Parameters []Parameter
	Accessors  Accessors
	Expression string
}

// NewIndexer creates an indexer with get and set auto accessors
func NewIndexer(typ string) Indexer {
	return Indexer{
		Common:    Common{Name: "this"},
		Type:      typ,
		Accessors: Accessors{{Kind: Get}, {Kind: Set}},
	}
}

// Kind implements Node
func (x Indexer) Kind() Kind { return KindIndexer }

func (x Indexer) replaceMeta(md Metadata) Indexer {
	x.Metadata = md
	return x
}

func (x Indexer) withRegion(tag string) Member { return x.InRegion(tag) }

// WithAccess sets the accessibility
func (x Indexer) WithAccess(a Accessibility) Indexer {
	x.Access = a
	return x
}

// WithModifiers adds modifiers
func (x Indexer) WithModifiers(mods Modifiers) Indexer {
	x.Common = x.withModifier(mods)
	return x
}

// AsVirtual marks the indexer virtual
func (x Indexer) AsVirtual() Indexer { return x.WithModifiers(ModVirtual) }

// AsOverride marks the indexer override
func (x Indexer) AsOverride() Indexer { return x.WithModifiers(ModOverride) }

// AsAbstract marks the indexer abstract
func (x Indexer) AsAbstract() Indexer { return x.WithModifiers(ModAbstract) }

// WithParameter appends an index parameter
func (x Indexer) WithParameter(p Parameter) Indexer {
	x.Parameters = appendClone(x.Parameters, p)
	return x
}

// AddParameter appends an index parameter built from type and name
func (x Indexer) AddParameter(typ, name string) Indexer {
	return x.WithParameter(NewParameter(typ, name))
}

// ReadOnly removes the set accessor
func (x Indexer) ReadOnly() Indexer {
	x.Accessors = x.Accessors.without(Set, Init)
	return x
}

// WithGetter configures the get accessor body
func (x Indexer) WithGetter(fn func(Body) Body) Indexer {
	x.Accessors = x.Accessors.mapKind(Get, func(a Accessor) Accessor {
		a.Body = fn(a.Body)
		return a
	})
	x.Expression = ""
	return x
}

// WithSetterBody configures the set accessor body
func (x Indexer) WithSetterBody(fn func(Body) Body) Indexer {
	x.Accessors = x.Accessors.mapKind(Set, func(a Accessor) Accessor {
		a.Body = fn(a.Body)
		return a
	})
	x.Expression = ""
	return x
}

// WithExpressionBody makes the indexer get-only with => expr
func (x Indexer) WithExpressionBody(expr string) Indexer {
	x.Expression = trimExpression(expr)
	return x
}

// WithAttribute adds an attribute
func (x Indexer) WithAttribute(name string, args ...string) Indexer {
	x.Common = x.withAttribute(NewAttribute(name, args...))
	return x
}

// WithSummary sets the XML documentation summary
func (x Indexer) WithSummary(summary string) Indexer {
	x.Summary = summary
	return x
}

// InRegion tags the indexer with a region name
func (x Indexer) InRegion(tag string) Indexer {
	x.Region = tag
	return x
}

// WithImports attaches import requests
func (x Indexer) WithImports(imports ...string) Indexer {
	x.Common = x.withImports(imports...)
	return x
}

// Validate checks parameter invariants
func (x Indexer) Validate() error {
	return validateParameters("indexer", x.Parameters)
}
