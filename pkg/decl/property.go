package decl

// Property is a property declaration. With an expression body the property is
// get-only and rendered as "Type Name => expr;" and Accessors are ignored.
type Property struct {
	Common
	Type        string
	Accessors   Accessors
	Initializer string
	Expression  string
}

// NewProperty creates an auto property with get and set accessors
func NewProperty(typ, name string) Property {
	return Property{
		Common:    Common{Name: name},
		Type:      typ,
		Accessors: Accessors{{Kind: Get}, {Kind: Set}},
	}
}

// Kind implements Node
func (p Property) Kind() Kind { return KindProperty }

func (p Property) replaceMeta(md Metadata) Property {
	p.Metadata = md
	return p
}

func (p Property) withRegion(tag string) Member { return p.InRegion(tag) }

// WithAccess sets the accessibility
func (p Property) WithAccess(a Accessibility) Property {
	p.Access = a
	return p
}

// WithModifiers adds modifiers
func (p Property) WithModifiers(mods Modifiers) Property {
	p.Common = p.withModifier(mods)
	return p
}

// AsStatic marks the property static
func (p Property) AsStatic() Property { return p.WithModifiers(ModStatic) }

// AsAbstract marks the property abstract
func (p Property) AsAbstract() Property { return p.WithModifiers(ModAbstract) }

// AsVirtual marks the property virtual
func (p Property) AsVirtual() Property { return p.WithModifiers(ModVirtual) }

// AsOverride marks the property override
func (p Property) AsOverride() Property { return p.WithModifiers(ModOverride) }

// AsSealed marks the property sealed
func (p Property) AsSealed() Property { return p.WithModifiers(ModSealed) }

// AsRequired marks the property required
func (p Property) AsRequired() Property { return p.WithModifiers(ModRequired) }

// AsNew marks the property as hiding an inherited member
func (p Property) AsNew() Property { return p.WithModifiers(ModNew) }

// WithType replaces the property type
func (p Property) WithType(typ string) Property {
	p.Type = typ
	return p
}

// WithTypeFrom sets the type from a resolved type-name source
func (p Property) WithTypeFrom(src TypeNameSource) Property {
	return p.WithType(src.FullyQualifiedName())
}

// ReadOnly removes the set/init accessor
func (p Property) ReadOnly() Property {
	p.Accessors = p.Accessors.without(Set, Init)
	return p
}

// WithInit replaces the setter with an init accessor
func (p Property) WithInit() Property {
	setter, _ := p.Accessors.setter()
	setter.Kind = Init
	p.Accessors = p.Accessors.withAccessor(setter)
	return p
}

// WithSetter restores a set accessor, replacing init
func (p Property) WithSetter() Property {
	setter, _ := p.Accessors.setter()
	setter.Kind = Set
	p.Accessors = p.Accessors.withAccessor(setter)
	return p
}

// WithSetterAccess restricts the set/init accessor, e.g. { get; private set; }
func (p Property) WithSetterAccess(a Accessibility) Property {
	setter, i := p.Accessors.setter()
	if i < 0 {
		setter.Kind = Set
	}
	setter.Access = a
	p.Accessors = p.Accessors.withAccessor(setter)
	return p
}

// WithGetter configures the get accessor body
func (p Property) WithGetter(fn func(Body) Body) Property {
	p.Accessors = p.Accessors.mapKind(Get, func(a Accessor) Accessor {
		a.Body = fn(a.Body)
		return a
	})
	p.Expression = ""
	return p
}

// WithSetterBody configures the set/init accessor body
func (p Property) WithSetterBody(fn func(Body) Body) Property {
	setter, i := p.Accessors.setter()
	if i < 0 {
		setter.Kind = Set
	}
	setter.Body = fn(setter.Body)
	p.Accessors = p.Accessors.withAccessor(setter)
	p.Expression = ""
	return p
}

// WithInitializer sets "= expr;" after the accessor list
func (p Property) WithInitializer(expr string) Property {
	p.Initializer = trimExpression(expr)
	return p
}

// WithExpressionBody makes the property get-only with => expr
func (p Property) WithExpressionBody(expr string) Property {
	p.Expression = trimExpression(expr)
	p.Initializer = ""
	return p
}

// ContinueExpression appends to the expression body
func (p Property) ContinueExpression(fragment string) (Property, error) {
	b, err := Body{Expression: p.Expression}.ContinueExpression(fragment)
	if err != nil {
		return p, err
	}
	p.Expression = b.Expression
	return p, nil
}

// WithAttribute adds an attribute
func (p Property) WithAttribute(name string, args ...string) Property {
	p.Common = p.withAttribute(NewAttribute(name, args...))
	return p
}

// WithSummary sets the XML documentation summary
func (p Property) WithSummary(summary string) Property {
	p.Summary = summary
	return p
}

// InRegion tags the property with a region name
func (p Property) InRegion(tag string) Property {
	p.Region = tag
	return p
}

// WithImports attaches import requests
func (p Property) WithImports(imports ...string) Property {
	p.Common = p.withImports(imports...)
	return p
}
