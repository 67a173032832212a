package decl

import (
	"strings"

	"github.com/google/uuid"

	cserrors "github.com/toyz/cskit/pkg/errors"
)

// TypeKind is the declaration keyword of a type
type TypeKind int

const (
	ClassKind TypeKind = iota
	InterfaceKind
	StructKind
	RecordKind
	RecordStructKind
	EnumKind
	DelegateKind
)

// String returns the declaration keyword
func (k TypeKind) String() string {
	switch k {
	case InterfaceKind:
		return "interface"
	case StructKind:
		return "struct"
	case RecordKind:
		return "record"
	case RecordStructKind:
		return "record struct"
	case EnumKind:
		return "enum"
	case DelegateKind:
		return "delegate"
	default:
		return "class"
	}
}

// TypeKindFor maps a declaration keyword to its TypeKind
func TypeKindFor(keyword string) (TypeKind, bool) {
	for k := ClassKind; k <= DelegateKind; k++ {
		if k.String() == keyword {
			return k, true
		}
	}
	if keyword == "record class" {
		return RecordKind, true
	}
	return ClassKind, false
}

// InteropImport is requested by the [Guid] helpers
const InteropImport = "System.Runtime.InteropServices"

// Type is a type declaration. The root type handed to the emitter may carry a
// Namespace; nested types ignore theirs.
type Type struct {
	Common
	TypeKind          TypeKind
	Namespace         string
	TypeParameters    []TypeParameter
	Constraints       []Constraint
	BaseTypes         []string
	PrimaryParameters []Parameter
	HasPrimary        bool // render a primary constructor even when PrimaryParameters is empty
	EnumBase          string
	ReturnType        string      // delegates only
	Parameters        []Parameter // delegates only
	Members           []Member
}

// For creates a type of the given kind
func For(kind TypeKind, name string) Type {
	return Type{Common: Common{Name: name}, TypeKind: kind}
}

// Class creates a class declaration
func Class(name string) Type { return For(ClassKind, name) }

// Interface creates an interface declaration
func Interface(name string) Type { return For(InterfaceKind, name) }

// Struct creates a struct declaration
func Struct(name string) Type { return For(StructKind, name) }

// Record creates a record class declaration
func Record(name string) Type { return For(RecordKind, name) }

// RecordStruct creates a record struct declaration
func RecordStruct(name string) Type { return For(RecordStructKind, name) }

// Enum creates an enum declaration
func Enum(name string) Type { return For(EnumKind, name) }

// Delegate creates a delegate declaration
func Delegate(returnType, name string) Type {
	t := For(DelegateKind, name)
	t.ReturnType = returnType
	return t
}

// Kind implements Node
func (t Type) Kind() Kind { return KindType }

func (t Type) replaceMeta(md Metadata) Type {
	t.Metadata = md
	return t
}

func (t Type) withRegion(tag string) Member { return t.InRegion(tag) }

// WithName renames the type
func (t Type) WithName(name string) Type {
	t.Name = name
	return t
}

// WithNamespace sets the namespace the type is emitted in
func (t Type) WithNamespace(ns string) Type {
	t.Namespace = ns
	return t
}

// WithAccess sets the accessibility
func (t Type) WithAccess(a Accessibility) Type {
	t.Access = a
	return t
}

// WithModifiers adds modifiers
func (t Type) WithModifiers(mods Modifiers) Type {
	t.Common = t.withModifier(mods)
	return t
}

// AsStatic marks the type static
func (t Type) AsStatic() Type { return t.WithModifiers(ModStatic) }

// AsAbstract marks the type abstract
func (t Type) AsAbstract() Type { return t.WithModifiers(ModAbstract) }

// AsSealed marks the type sealed
func (t Type) AsSealed() Type { return t.WithModifiers(ModSealed) }

// AsPartial marks the type partial
func (t Type) AsPartial() Type { return t.WithModifiers(ModPartial) }

// AsReadonly marks a struct readonly
func (t Type) AsReadonly() Type { return t.WithModifiers(ModReadonly) }

// AsNew marks a nested type as hiding an inherited member
func (t Type) AsNew() Type { return t.WithModifiers(ModNew) }

// WithTypeParameters appends generic type parameters
func (t Type) WithTypeParameters(names ...string) Type {
	t.TypeParameters = appendClone(t.TypeParameters, typeParams(names)...)
	return t
}

// WithVariantTypeParameter appends a type parameter with in/out variance
func (t Type) WithVariantTypeParameter(variance, name string) Type {
	t.TypeParameters = appendClone(t.TypeParameters, TypeParameter{Name: name, Variance: variance})
	return t
}

// WithConstraint appends a where clause
func (t Type) WithConstraint(param string, clauses ...string) Type {
	t.Constraints = appendClone(t.Constraints, Constraint{Param: param, Clauses: cloneSlice(clauses)})
	return t
}

// WithBaseType appends base classes or implemented interfaces
func (t Type) WithBaseType(names ...string) Type {
	t.BaseTypes = appendClone(t.BaseTypes, names...)
	return t
}

// WithBaseTypeFrom appends a base type from a resolved type-name source
func (t Type) WithBaseTypeFrom(src TypeNameSource) Type {
	return t.WithBaseType(src.FullyQualifiedName())
}

// WithPrimaryConstructor declares a primary constructor with the given parameters
func (t Type) WithPrimaryConstructor(params ...Parameter) Type {
	t.HasPrimary = true
	t.PrimaryParameters = appendClone(t.PrimaryParameters, params...)
	return t
}

// WithEnumBase sets the underlying type of an enum
func (t Type) WithEnumBase(typ string) Type {
	t.EnumBase = typ
	return t
}

// WithReturnType sets the return type of a delegate
func (t Type) WithReturnType(typ string) Type {
	t.ReturnType = typ
	return t
}

// WithParameter appends a delegate parameter
func (t Type) WithParameter(p Parameter) Type {
	t.Parameters = appendClone(t.Parameters, p)
	return t
}

// AddParameter appends a delegate parameter built from type and name
func (t Type) AddParameter(typ, name string) Type {
	return t.WithParameter(NewParameter(typ, name))
}

// WithAttribute adds an attribute
func (t Type) WithAttribute(name string, args ...string) Type {
	t.Common = t.withAttribute(NewAttribute(name, args...))
	return t
}

// WithSummary sets the XML documentation summary
func (t Type) WithSummary(summary string) Type {
	t.Summary = summary
	return t
}

// InRegion tags a nested type with a region name
func (t Type) InRegion(tag string) Type {
	t.Region = tag
	return t
}

// WithImports attaches import requests
func (t Type) WithImports(imports ...string) Type {
	t.Common = t.withImports(imports...)
	return t
}

// WithGuid adds [Guid("...")] for COM interop. The value is normalized to the
// lower-case hyphenated form; anything uuid.Parse rejects is an invalid operation.
func (t Type) WithGuid(value string) (Type, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return t, cserrors.InvalidOperation("WithGuid", "malformed GUID").
			WithCause(err).
			WithContext("value", value)
	}
	return t.withGuid(id), nil
}

// WithNewGuid adds [Guid("...")] with a freshly generated random GUID
func (t Type) WithNewGuid() Type {
	return t.withGuid(uuid.New())
}

func (t Type) withGuid(id uuid.UUID) Type {
	return t.WithAttribute("Guid", `"`+id.String()+`"`).WithImports(InteropImport)
}

// AddMember appends any member
func (t Type) AddMember(m Member) Type {
	t.Members = appendClone(t.Members, m)
	return t
}

// AddMembers appends members in order
func (t Type) AddMembers(ms ...Member) Type {
	t.Members = appendClone(t.Members, ms...)
	return t
}

// AddField appends a field
func (t Type) AddField(f Field) Type { return t.AddMember(f) }

// AddFieldFunc appends a field built from type and name and configured by fn
func (t Type) AddFieldFunc(typ, name string, fn func(Field) Field) Type {
	return t.AddMember(apply(NewField(typ, name), fn))
}

// AddProperty appends a property
func (t Type) AddProperty(p Property) Type { return t.AddMember(p) }

// AddPropertyFunc appends a property built from type and name and configured by fn
func (t Type) AddPropertyFunc(typ, name string, fn func(Property) Property) Type {
	return t.AddMember(apply(NewProperty(typ, name), fn))
}

// AddMethod appends a method
func (t Type) AddMethod(m Method) Type { return t.AddMember(m) }

// AddMethodFunc appends a method built from return type and name and configured by fn
func (t Type) AddMethodFunc(returnType, name string, fn func(Method) Method) Type {
	return t.AddMember(apply(NewMethod(returnType, name), fn))
}

// AddConstructor appends a constructor
func (t Type) AddConstructor(c Constructor) Type { return t.AddMember(c) }

// AddConstructorFunc appends a constructor configured by fn
func (t Type) AddConstructorFunc(fn func(Constructor) Constructor) Type {
	return t.AddMember(apply(NewConstructor(), fn))
}

// AddOperator appends an operator or conversion
func (t Type) AddOperator(o Operator) Type { return t.AddMember(o) }

// AddIndexer appends an indexer
func (t Type) AddIndexer(x Indexer) Type { return t.AddMember(x) }

// AddEvent appends an event
func (t Type) AddEvent(e Event) Type { return t.AddMember(e) }

// AddEnumValue appends an enum constant
func (t Type) AddEnumValue(v EnumValue) Type { return t.AddMember(v) }

// AddEnumValues appends implicit-valued enum constants
func (t Type) AddEnumValues(names ...string) Type {
	for _, n := range names {
		t = t.AddMember(NewEnumValue(n))
	}
	return t
}

// AddNested appends a pre-built nested type
func (t Type) AddNested(nested Type) Type { return t.AddMember(nested) }

// AddNestedType appends a nested type created from kind and name and configured by fn
func (t Type) AddNestedType(kind TypeKind, name string, fn func(Type) Type) Type {
	return t.AddMember(apply(For(kind, name), fn))
}

// AddRegion groups exactly the members fn adds under the region name. fn receives
// the type with an empty member list; anything else it changes is discarded.
//
//	t = t.AddRegion("Helpers", func(r decl.Type) decl.Type {
//		return r.AddMethod(a).AddMethod(b)
//	})
func (t Type) AddRegion(name string, fn func(Type) Type) Type {
	scratch := t
	scratch.Members = nil
	added := fn(scratch).Members
	tagged := make([]Member, len(added))
	for i, m := range added {
		tagged[i] = m.withRegion(name)
	}
	t.Members = appendClone(t.Members, tagged...)
	return t
}

// FullName returns the name with its type parameter list, e.g. Repository<T>
func (t Type) FullName() string {
	return t.Name + JoinTypeParameters(t.TypeParameters)
}

// Validate checks the invariants of the type and, recursively, its members
func (t Type) Validate() error {
	if t.Name == "" {
		return cserrors.InvalidOperation("Type", "type name is empty")
	}
	if err := validateParameters(t.Name, t.PrimaryParameters); err != nil {
		return err
	}
	if err := validateParameters(t.Name, t.Parameters); err != nil {
		return err
	}
	for _, m := range t.Members {
		if m.DeclName() == "" && m.Kind() != KindConstructor {
			return cserrors.InvalidOperation(t.Name, "member name is empty").
				WithContext("kind", m.Kind().String())
		}
		if m.Kind() == KindEnumValue && t.TypeKind != EnumKind {
			return cserrors.InvalidOperation(t.Name, "enum values are only allowed in enums").
				WithContext("member", m.DeclName())
		}
		if v, ok := m.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func apply[N any](node N, fn func(N) N) N {
	if fn == nil {
		return node
	}
	return fn(node)
}
