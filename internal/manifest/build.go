package manifest

import (
	"sort"
	"strings"

	"github.com/toyz/cskit/pkg/decl"
	cserrors "github.com/toyz/cskit/pkg/errors"
	"github.com/toyz/cskit/pkg/signature"
)

// Build turns a manifest into a declaration tree. Signature errors keep their
// ErrInvalidSignature kind underneath the manifest error.
func Build(m Manifest) (decl.Type, error) {
	t, err := signature.ParseType(m.Type)
	if err != nil {
		return decl.Type{}, cserrors.Wrapf(cserrors.ManifestErrorCode, err, "type %q", m.Type)
	}
	if m.Namespace != "" {
		t = t.WithNamespace(m.Namespace)
	}
	if m.Summary != "" {
		t = t.WithSummary(m.Summary)
	}
	if m.Region != "" {
		t = t.InRegion(m.Region)
	}
	if len(m.Imports) > 0 {
		t = t.WithImports(m.Imports...)
	}

	switch strings.ToLower(m.Guid) {
	case "":
	case "new":
		t = t.WithNewGuid()
	default:
		withGuid, err := t.WithGuid(m.Guid)
		if err != nil {
			return decl.Type{}, cserrors.Wrapf(cserrors.ManifestErrorCode, err, "guid of %s", t.Name)
		}
		t = withGuid
	}

	if len(m.Values) > 0 && t.TypeKind != decl.EnumKind {
		return decl.Type{}, cserrors.Newf(cserrors.ManifestErrorCode, "%s is a %s; only enums take values", t.Name, t.TypeKind).
			WithContext("type", t.Name)
	}
	for _, v := range m.Values {
		t = t.AddEnumValue(enumValue(v))
	}

	for _, mem := range m.Members {
		member, err := buildMember(mem)
		if err != nil {
			return decl.Type{}, cserrors.Wrapf(cserrors.ManifestErrorCode, err, "member %q of %s", mem.Signature, t.Name)
		}
		t = t.AddMember(member)
	}

	for _, nm := range m.Nested {
		nested, err := Build(nm)
		if err != nil {
			return decl.Type{}, err
		}
		t = t.AddNested(nested)
	}
	return t, nil
}

func enumValue(s string) decl.EnumValue {
	name, value, ok := strings.Cut(s, "=")
	v := decl.NewEnumValue(strings.TrimSpace(name))
	if ok {
		v = v.WithValue(strings.TrimSpace(value))
	}
	return v
}

func buildMember(mem Member) (decl.Member, error) {
	m, err := signature.Parse(mem.Signature)
	if err != nil {
		return nil, err
	}
	if mem.Body != "" && mem.Expression != "" {
		return nil, cserrors.InvalidOperation("body", "body and expression are mutually exclusive")
	}

	switch v := m.(type) {
	case decl.Method:
		if v.Parameters, err = applyParameters(v.Parameters, mem); err != nil {
			return nil, err
		}
		v.Body = applyBody(v.Body, mem)
		mem.decorate(&v.Common)
		return v, nil
	case decl.Constructor:
		if v.Parameters, err = applyParameters(v.Parameters, mem); err != nil {
			return nil, err
		}
		v.Body = applyBody(v.Body, mem)
		mem.decorate(&v.Common)
		return v, nil
	case decl.Operator:
		if v.Parameters, err = applyParameters(v.Parameters, mem); err != nil {
			return nil, err
		}
		v.Body = applyBody(v.Body, mem)
		mem.decorate(&v.Common)
		return v, nil
	case decl.Property:
		if err := mem.noParameters(); err != nil {
			return nil, err
		}
		switch {
		case mem.Expression != "":
			v = v.WithExpressionBody(mem.Expression)
		case mem.Body != "":
			v = v.WithGetter(func(b decl.Body) decl.Body { return b.AddStatements(mem.Body) })
		}
		mem.decorate(&v.Common)
		return v, nil
	case decl.Indexer:
		if err := mem.noParameters(); err != nil {
			return nil, err
		}
		switch {
		case mem.Expression != "":
			v = v.WithExpressionBody(mem.Expression)
		case mem.Body != "":
			v = v.WithGetter(func(b decl.Body) decl.Body { return b.AddStatements(mem.Body) })
		}
		mem.decorate(&v.Common)
		return v, nil
	case decl.Field:
		if err := mem.bodiless(); err != nil {
			return nil, err
		}
		mem.decorate(&v.Common)
		return v, nil
	case decl.Event:
		if err := mem.bodiless(); err != nil {
			return nil, err
		}
		mem.decorate(&v.Common)
		return v, nil
	default:
		return nil, cserrors.InvalidOperation("member", "declare "+m.Kind().String()+" members under 'nested'")
	}
}

func (mem Member) decorate(c *decl.Common) {
	if mem.Summary != "" {
		c.Summary = mem.Summary
	}
	if mem.Region != "" {
		c.Region = mem.Region
	}
	if len(mem.Imports) > 0 {
		c.Imports = append(append([]string(nil), c.Imports...), mem.Imports...)
	}
}

func (mem Member) noParameters() error {
	if len(mem.Guards) > 0 || len(mem.Assign) > 0 {
		return cserrors.InvalidOperation("guards", "only methods, constructors and operators take guards or assignments")
	}
	return nil
}

func (mem Member) bodiless() error {
	if mem.Body != "" || mem.Expression != "" {
		return cserrors.InvalidOperation("body", "fields and events have no body")
	}
	return mem.noParameters()
}

func applyBody(b decl.Body, mem Member) decl.Body {
	switch {
	case mem.Expression != "":
		return b.WithExpression(mem.Expression)
	case mem.Body != "":
		return b.AddStatements(mem.Body)
	default:
		return b
	}
}

// applyParameters attaches guards and assignments by parameter name
func applyParameters(params []decl.Parameter, mem Member) ([]decl.Parameter, error) {
	if len(mem.Guards) == 0 && len(mem.Assign) == 0 {
		return params, nil
	}
	out := append([]decl.Parameter(nil), params...)
	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.Name] = i
	}

	for _, name := range sortedKeys(mem.Guards) {
		i, ok := index[name]
		if !ok {
			return nil, unknownParameter(name)
		}
		for _, g := range mem.Guards[name] {
			guard, err := ParseGuard(g)
			if err != nil {
				return nil, err
			}
			out[i] = out[i].WithGuard(guard)
		}
	}
	for _, name := range sortedKeys(mem.Assign) {
		i, ok := index[name]
		if !ok {
			return nil, unknownParameter(name)
		}
		out[i] = out[i].AssignsTo(mem.Assign[name])
	}
	return out, nil
}

func unknownParameter(name string) error {
	return cserrors.InvalidOperation("guards", "no parameter named "+name).
		WithContext("parameter", name)
}

var guardNames = map[string]decl.GuardKind{
	"not_null":               decl.GuardNotNull,
	"not_null_or_empty":      decl.GuardNotNullOrEmpty,
	"not_null_or_whitespace": decl.GuardNotNullOrWhiteSpace,
	"not_positive":           decl.GuardNotPositive,
	"not_negative":           decl.GuardNotNegative,
	"not_zero":               decl.GuardNotZero,
	"positive":               decl.GuardPositive,
}

// ParseGuard maps a guard name to a guard. Ranges are written "range:min,max".
func ParseGuard(s string) (decl.Guard, error) {
	s = strings.TrimSpace(s)
	if bounds, ok := strings.CutPrefix(s, "range:"); ok {
		lo, hi, ok := strings.Cut(bounds, ",")
		lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
		if !ok || lo == "" || hi == "" {
			return decl.Guard{}, cserrors.InvalidOperation("guards", "range needs two bounds, got "+s).
				WithSuggestion("write ranges as 'range:min,max'")
		}
		return decl.Guard{Kind: decl.GuardRange, Min: lo, Max: hi}, nil
	}
	kind, ok := guardNames[strings.ToLower(s)]
	if !ok {
		return decl.Guard{}, cserrors.InvalidOperation("guards", "unknown guard "+s).
			WithSuggestion("known guards: not_null, not_null_or_empty, not_null_or_whitespace, not_negative, not_positive, not_zero, positive, range:min,max")
	}
	return decl.Guard{Kind: kind}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
