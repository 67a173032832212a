package decl

import "strings"

// Accessibility is the access level written in front of a declaration
type Accessibility int

const (
	AccessNone Accessibility = iota
	Public
	Private
	Protected
	Internal
	ProtectedInternal
	PrivateProtected
)

// String returns the C# keyword(s) for the accessibility, or "" for AccessNone
func (a Accessibility) String() string {
	switch a {
	case Public:
		return "public"
	case Private:
		return "private"
	case Protected:
		return "protected"
	case Internal:
		return "internal"
	case ProtectedInternal:
		return "protected internal"
	case PrivateProtected:
		return "private protected"
	default:
		return ""
	}
}

// Modifiers is a set of non-access declaration modifiers
type Modifiers uint32

const (
	ModNew Modifiers = 1 << iota
	ModStatic
	ModAbstract
	ModVirtual
	ModOverride
	ModSealed
	ModExtern
	ModUnsafe
	ModReadonly
	ModConst
	ModVolatile
	ModRequired
	ModAsync
	ModPartial
)

// modifierOrder is the order modifiers are written in.
var modifierOrder = []struct {
	mod     Modifiers
	keyword string
}{
	{ModNew, "new"},
	{ModStatic, "static"},
	{ModAbstract, "abstract"},
	{ModVirtual, "virtual"},
	{ModOverride, "override"},
	{ModSealed, "sealed"},
	{ModExtern, "extern"},
	{ModUnsafe, "unsafe"},
	{ModReadonly, "readonly"},
	{ModConst, "const"},
	{ModVolatile, "volatile"},
	{ModRequired, "required"},
	{ModAsync, "async"},
	{ModPartial, "partial"},
}

// Has reports whether every modifier in m is set
func (s Modifiers) Has(m Modifiers) bool {
	return s&m == m
}

// Keywords returns the C# keywords of the set in canonical order
func (s Modifiers) Keywords() []string {
	var out []string
	for _, entry := range modifierOrder {
		if s.Has(entry.mod) {
			out = append(out, entry.keyword)
		}
	}
	return out
}

// String joins Keywords with spaces
func (s Modifiers) String() string {
	return strings.Join(s.Keywords(), " ")
}

// ModifierFor maps a C# keyword to its modifier bit. The boolean is false for
// keywords that are not modifiers.
func ModifierFor(keyword string) (Modifiers, bool) {
	for _, entry := range modifierOrder {
		if entry.keyword == keyword {
			return entry.mod, true
		}
	}
	return 0, false
}

// AccessibilityFor maps a single access keyword to its Accessibility.
func AccessibilityFor(keyword string) (Accessibility, bool) {
	switch keyword {
	case "public":
		return Public, true
	case "private":
		return Private, true
	case "protected":
		return Protected, true
	case "internal":
		return Internal, true
	default:
		return AccessNone, false
	}
}

// Combine merges a second access keyword into an existing accessibility, producing
// the compound levels. It returns false for combinations C# does not allow.
func (a Accessibility) Combine(other Accessibility) (Accessibility, bool) {
	switch {
	case a == AccessNone:
		return other, true
	case (a == Protected && other == Internal) || (a == Internal && other == Protected):
		return ProtectedInternal, true
	case (a == Private && other == Protected) || (a == Protected && other == Private):
		return PrivateProtected, true
	default:
		return a, false
	}
}

// Attribute is a single attribute usage such as [Obsolete("use Foo")]
type Attribute struct {
	Name   string   // attribute name without the Attribute suffix requirement
	Args   []string // argument expressions, rendered verbatim
	Target string   // optional target such as "return" or "assembly"
}

// NewAttribute creates an attribute with the given argument expressions
func NewAttribute(name string, args ...string) Attribute {
	return Attribute{Name: name, Args: cloneSlice(args)}
}

// WithTarget returns a copy of the attribute applied to the given target
func (a Attribute) WithTarget(target string) Attribute {
	a.Target = target
	return a
}

// String renders the attribute including brackets
func (a Attribute) String() string {
	var b strings.Builder
	b.WriteString("[")
	if a.Target != "" {
		b.WriteString(a.Target)
		b.WriteString(": ")
	}
	b.WriteString(a.Name)
	if len(a.Args) > 0 {
		b.WriteString("(")
		b.WriteString(strings.Join(a.Args, ", "))
		b.WriteString(")")
	}
	b.WriteString("]")
	return b.String()
}

// Common holds the parts every member declaration shares.
type Common struct {
	Name       string
	Access     Accessibility
	Modifiers  Modifiers
	Attributes []Attribute
	Summary    string   // XML documentation summary
	Region     string   // explicit region tag
	Imports    []string // import requests hoisted to file scope on emission
	Metadata   Metadata // generator bookkeeping, never emitted
}

// DeclName returns the declared name
func (c Common) DeclName() string { return c.Name }

// RegionTag returns the explicit region tag, or ""
func (c Common) RegionTag() string { return c.Region }

// ImportRequests returns the import requests attached to this node
func (c Common) ImportRequests() []string { return c.Imports }

// Meta returns the metadata bag
func (c Common) Meta() Metadata { return c.Metadata }

func (c Common) withModifier(m Modifiers) Common {
	c.Modifiers |= m
	return c
}

func (c Common) withoutModifier(m Modifiers) Common {
	c.Modifiers &^= m
	return c
}

func (c Common) withAttribute(a Attribute) Common {
	c.Attributes = appendClone(c.Attributes, a)
	return c
}

func (c Common) withImports(imports ...string) Common {
	c.Imports = appendClone(c.Imports, imports...)
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// appendClone appends to a fresh backing array so values derived from the same
// original never share appended elements.
func appendClone[T any](s []T, items ...T) []T {
	out := make([]T, 0, len(s)+len(items))
	out = append(out, s...)
	return append(out, items...)
}
