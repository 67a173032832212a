package decl

// Field is a field declaration, optionally initialized
type Field struct {
	Common
	Type        string
	Initializer string
}

// NewField creates a field of the given type
func NewField(typ, name string) Field {
	return Field{Common: Common{Name: name}, Type: typ}
}

// Kind implements Node
func (f Field) Kind() Kind { return KindField }

func (f Field) replaceMeta(md Metadata) Field {
	f.Metadata = md
	return f
}

func (f Field) withRegion(tag string) Member { return f.InRegion(tag) }

// WithAccess sets the accessibility
func (f Field) WithAccess(a Accessibility) Field {
	f.Access = a
	return f
}

// WithModifiers adds modifiers
func (f Field) WithModifiers(mods Modifiers) Field {
	f.Common = f.withModifier(mods)
	return f
}

// AsStatic marks the field static
func (f Field) AsStatic() Field { return f.WithModifiers(ModStatic) }

// AsReadonly marks the field readonly
func (f Field) AsReadonly() Field { return f.WithModifiers(ModReadonly) }

// AsConst marks the field const, dropping static and readonly which const implies
func (f Field) AsConst() Field {
	f.Common = f.withoutModifier(ModStatic | ModReadonly).withModifier(ModConst)
	return f
}

// AsVolatile marks the field volatile
func (f Field) AsVolatile() Field { return f.WithModifiers(ModVolatile) }

// AsRequired marks the field required
func (f Field) AsRequired() Field { return f.WithModifiers(ModRequired) }

// AsNew marks the field as hiding an inherited member
func (f Field) AsNew() Field { return f.WithModifiers(ModNew) }

// WithType replaces the field type
func (f Field) WithType(typ string) Field {
	f.Type = typ
	return f
}

// WithTypeFrom sets the type from a resolved type-name source
func (f Field) WithTypeFrom(src TypeNameSource) Field {
	return f.WithType(src.FullyQualifiedName())
}

// WithInitializer sets the initializer expression
func (f Field) WithInitializer(expr string) Field {
	f.Initializer = trimExpression(expr)
	return f
}

// WithAttribute adds an attribute
func (f Field) WithAttribute(name string, args ...string) Field {
	f.Common = f.withAttribute(NewAttribute(name, args...))
	return f
}

// WithSummary sets the XML documentation summary
func (f Field) WithSummary(summary string) Field {
	f.Summary = summary
	return f
}

// InRegion tags the field with a region name
func (f Field) InRegion(tag string) Field {
	f.Region = tag
	return f
}

// WithImports attaches import requests
func (f Field) WithImports(imports ...string) Field {
	f.Common = f.withImports(imports...)
	return f
}
