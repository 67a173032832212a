package emit

import (
	"strings"

	"github.com/toyz/cskit/pkg/decl"
)

// words joins the non-empty parts with single spaces
func words(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func prefix(c decl.Common) string {
	return words(c.Access.String(), c.Modifiers.String())
}

func typeHead(t decl.Type) string {
	if t.TypeKind == decl.DelegateKind {
		return words(prefix(t.Common), "delegate", t.ReturnType,
			t.FullName()+"("+decl.JoinParameters(t.Parameters)+")")
	}
	head := words(prefix(t.Common), t.TypeKind.String(), t.FullName())
	if t.HasPrimary {
		head += "(" + decl.JoinParameters(t.PrimaryParameters) + ")"
	}
	switch {
	case t.TypeKind == decl.EnumKind && t.EnumBase != "":
		head += " : " + t.EnumBase
	case len(t.BaseTypes) > 0:
		head += " : " + strings.Join(t.BaseTypes, ", ")
	}
	return head
}

func methodHead(m decl.Method) string {
	return words(prefix(m.Common), m.ReturnType,
		m.Name+decl.JoinTypeParameters(m.TypeParameters)+"("+decl.JoinParameters(m.Parameters)+")")
}

func constructorHead(c decl.Constructor, owner string) string {
	name := c.Name
	if name == "" {
		name = owner
	}
	head := words(prefix(c.Common), name+"("+decl.JoinParameters(c.Parameters)+")")
	switch c.Initializer {
	case decl.BaseInitializer:
		head += " : base(" + strings.Join(c.InitializerArgs, ", ") + ")"
	case decl.ThisInitializer:
		head += " : this(" + strings.Join(c.InitializerArgs, ", ") + ")"
	}
	return head
}

func operatorHead(o decl.Operator) string {
	params := "(" + decl.JoinParameters(o.Parameters) + ")"
	if o.IsConversion() {
		return words(prefix(o.Common), o.Conversion.String(), "operator", o.ReturnType+params)
	}
	return words(prefix(o.Common), o.ReturnType, "operator", o.Symbol+params)
}

func propertyHead(p decl.Property) string {
	return words(prefix(p.Common), p.Type, p.Name)
}

func indexerHead(x decl.Indexer) string {
	return words(prefix(x.Common), x.Type, "this["+decl.JoinParameters(x.Parameters)+"]")
}

func fieldDecl(f decl.Field) string {
	s := words(prefix(f.Common), f.Type, f.Name)
	if f.Initializer != "" {
		s += " = " + f.Initializer
	}
	return s
}

func eventDecl(e decl.Event) string {
	return words(prefix(e.Common), "event", e.Type, e.Name)
}

func enumValueDecl(v decl.EnumValue) string {
	if v.Value == "" {
		return v.Name
	}
	return v.Name + " = " + v.Value
}

func inlineConstraints(cs []decl.Constraint) string {
	var b strings.Builder
	for _, c := range cs {
		b.WriteString(" ")
		b.WriteString(c.String())
	}
	return b.String()
}

func inlineAttributes(attrs []decl.Attribute) string {
	var b strings.Builder
	for _, a := range attrs {
		b.WriteString(a.String())
		b.WriteString(" ")
	}
	return b.String()
}

// inlineAccessors renders an accessor list on one line. Block-bodied accessors
// lose their body.
func inlineAccessors(as decl.Accessors) string {
	if len(as) == 0 {
		return "{ }"
	}
	parts := make([]string, len(as))
	for i, a := range as {
		if a.Body.IsExpression() {
			parts[i] = a.Head() + " => " + a.Body.Expression + ";"
			continue
		}
		parts[i] = a.Head() + ";"
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// Signature renders the one-line declaration of a member: attributes,
// modifiers, type, name, parameters, constraints, and an expression body or
// initializer when present. Block bodies and type members are omitted. The
// output is accepted by the signature parser.
func Signature(m decl.Member) string {
	switch n := m.(type) {
	case decl.Type:
		return inlineAttributes(n.Attributes) + typeHead(n) + inlineConstraints(n.Constraints)
	case decl.Method:
		s := inlineAttributes(n.Attributes) + methodHead(n) + inlineConstraints(n.Constraints)
		if n.Body.IsExpression() {
			s += " => " + n.Body.Expression
		}
		return s
	case decl.Constructor:
		s := inlineAttributes(n.Attributes) + constructorHead(n, n.Name)
		if n.Body.IsExpression() {
			s += " => " + n.Body.Expression
		}
		return s
	case decl.Operator:
		s := inlineAttributes(n.Attributes) + operatorHead(n)
		if n.Body.IsExpression() {
			s += " => " + n.Body.Expression
		}
		return s
	case decl.Property:
		s := inlineAttributes(n.Attributes) + propertyHead(n)
		if n.Expression != "" {
			return s + " => " + n.Expression
		}
		s += " " + inlineAccessors(n.Accessors)
		if n.Initializer != "" {
			s += " = " + n.Initializer
		}
		return s
	case decl.Indexer:
		s := inlineAttributes(n.Attributes) + indexerHead(n)
		if n.Expression != "" {
			return s + " => " + n.Expression
		}
		return s + " " + inlineAccessors(n.Accessors)
	case decl.Field:
		return inlineAttributes(n.Attributes) + fieldDecl(n)
	case decl.Event:
		return inlineAttributes(n.Attributes) + eventDecl(n)
	case decl.EnumValue:
		return inlineAttributes(n.Attributes) + enumValueDecl(n)
	default:
		return ""
	}
}
