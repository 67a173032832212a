package decl

// EnumValue is one named constant of an enum
type EnumValue struct {
	Common
	Value string // explicit value expression, "" for implicit
}

// NewEnumValue creates an enum constant with an implicit value
func NewEnumValue(name string) EnumValue {
	return EnumValue{Common: Common{Name: name}}
}

// Kind implements Node
func (e EnumValue) Kind() Kind { return KindEnumValue }

func (e EnumValue) replaceMeta(md Metadata) EnumValue {
	e.Metadata = md
	return e
}

func (e EnumValue) withRegion(tag string) Member { return e.InRegion(tag) }

// WithValue sets the explicit value
func (e EnumValue) WithValue(expr string) EnumValue {
	e.Value = trimExpression(expr)
	return e
}

// WithAttribute adds an attribute
func (e EnumValue) WithAttribute(name string, args ...string) EnumValue {
	e.Common = e.withAttribute(NewAttribute(name, args...))
	return e
}

// WithSummary sets the XML documentation summary
func (e EnumValue) WithSummary(summary string) EnumValue {
	e.Summary = summary
	return e
}

// InRegion tags the value; enum values are never placed in regions, the tag is
// kept for bookkeeping only
func (e EnumValue) InRegion(tag string) EnumValue {
	e.Region = tag
	return e
}
