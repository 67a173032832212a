package decl

// Event is a field-like event declaration
type Event struct {
	Common
	Type string
}

// NewEvent creates an event of the given delegate type
func NewEvent(typ, name string) Event {
	return Event{Common: Common{Name: name}, Type: typ}
}

// Kind implements Node
func (e Event) Kind() Kind { return KindEvent }

func (e Event) replaceMeta(md Metadata) Event {
	e.Metadata = md
	return e
}

func (e Event) withRegion(tag string) Member { return e.InRegion(tag) }

// WithAccess sets the accessibility
func (e Event) WithAccess(a Accessibility) Event {
	e.Access = a
	return e
}

// WithModifiers adds modifiers
func (e Event) WithModifiers(mods Modifiers) Event {
	e.Common = e.withModifier(mods)
	return e
}

// AsStatic marks the event static
func (e Event) AsStatic() Event { return e.WithModifiers(ModStatic) }

// AsVirtual marks the event virtual
func (e Event) AsVirtual() Event { return e.WithModifiers(ModVirtual) }

// WithType replaces the delegate type
func (e Event) WithType(typ string) Event {
	e.Type = typ
	return e
}

// WithAttribute adds an attribute
func (e Event) WithAttribute(name string, args ...string) Event {
	e.Common = e.withAttribute(NewAttribute(name, args...))
	return e
}

// WithSummary sets the XML documentation summary
func (e Event) WithSummary(summary string) Event {
	e.Summary = summary
	return e
}

// InRegion tags the event with a region name
func (e Event) InRegion(tag string) Event {
	e.Region = tag
	return e
}

// WithImports attaches import requests
func (e Event) WithImports(imports ...string) Event {
	e.Common = e.withImports(imports...)
	return e
}
