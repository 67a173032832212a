package decl

import "strings"

// AccessorKind is the keyword of a property or indexer accessor
type AccessorKind int

const (
	Get AccessorKind = iota
	Set
	Init
)

// String returns the accessor keyword
func (k AccessorKind) String() string {
	switch k {
	case Set:
		return "set"
	case Init:
		return "init"
	default:
		return "get"
	}
}

// Accessor is one get/set/init accessor. An accessor with an empty Body renders as
// an auto accessor ("get;").
type Accessor struct {
	Kind   AccessorKind
	Access Accessibility
	Body   Body
}

// IsAuto reports whether the accessor has no body
func (a Accessor) IsAuto() bool { return a.Body.IsEmpty() }

// Head renders the accessor keyword with its accessibility
func (a Accessor) Head() string {
	if a.Access == AccessNone {
		return a.Kind.String()
	}
	return a.Access.String() + " " + a.Kind.String()
}

// Accessors is the accessor list of a property or indexer
type Accessors []Accessor

// Find returns the accessor of the given kind
func (as Accessors) Find(kind AccessorKind) (Accessor, bool) {
	for _, a := range as {
		if a.Kind == kind {
			return a, true
		}
	}
	return Accessor{}, false
}

// setter returns the set or init accessor
func (as Accessors) setter() (Accessor, int) {
	for i, a := range as {
		if a.Kind == Set || a.Kind == Init {
			return a, i
		}
	}
	return Accessor{}, -1
}

// IsAuto reports whether every accessor is an auto accessor
func (as Accessors) IsAuto() bool {
	for _, a := range as {
		if !a.IsAuto() {
			return false
		}
	}
	return true
}

// String renders an auto accessor list, e.g. "{ get; private set; }"
func (as Accessors) String() string {
	if len(as) == 0 {
		return "{ }"
	}
	parts := make([]string, len(as))
	for i, a := range as {
		parts[i] = a.Head() + ";"
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// withAccessor replaces the accessor of the same kind, or appends it. Set and
// Init replace each other.
func (as Accessors) withAccessor(a Accessor) Accessors {
	out := cloneSlice(as)
	for i, existing := range out {
		if existing.Kind == a.Kind || (a.Kind != Get && existing.Kind != Get) {
			out[i] = a
			return out
		}
	}
	out = append(out, a)
	if len(out) == 2 && out[0].Kind != Get {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

func (as Accessors) without(kinds ...AccessorKind) Accessors {
	var out Accessors
	for _, a := range as {
		drop := false
		for _, k := range kinds {
			if a.Kind == k {
				drop = true
			}
		}
		if !drop {
			out = append(out, a)
		}
	}
	return out
}

func (as Accessors) mapKind(kind AccessorKind, fn func(Accessor) Accessor) Accessors {
	existing, ok := as.Find(kind)
	if !ok {
		existing = Accessor{Kind: kind}
	}
	return as.withAccessor(fn(existing))
}

func trimExpression(expr string) string {
	return strings.TrimSuffix(strings.TrimSpace(expr), ";")
}
