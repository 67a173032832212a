package emit

import (
	"strings"

	"github.com/toyz/cskit/pkg/decl"
)

// owner is the type a member is rendered inside
type owner struct {
	name string
	kind decl.TypeKind
}

type renderer struct {
	w    writer
	opts Options
}

func (r *renderer) renderFile(t decl.Type) {
	if len(r.opts.Header) > 0 {
		for _, h := range r.opts.Header {
			r.w.write(headerLine(h))
		}
		r.w.blank()
	}

	if imports := collectImports(t); len(imports) > 0 {
		for _, imp := range imports {
			r.w.write("using " + imp + ";")
		}
		r.w.blank()
	}

	switch {
	case t.Namespace == "":
		r.renderType(t, r.opts.AutoRegions)
	case r.opts.BlockScopedNamespace:
		r.w.write("namespace " + t.Namespace)
		r.w.open()
		r.renderType(t, r.opts.AutoRegions)
		r.w.close("")
	default:
		r.w.write("namespace " + t.Namespace + ";")
		r.w.blank()
		r.renderType(t, r.opts.AutoRegions)
	}
}

func headerLine(h string) string {
	h = strings.TrimRight(h, " \t")
	switch {
	case h == "":
		return "//"
	case strings.HasPrefix(h, "//"), strings.HasPrefix(h, "#"):
		return h
	default:
		return "// " + h
	}
}

func (r *renderer) renderDocs(c decl.Common) {
	if strings.TrimSpace(c.Summary) == "" {
		return
	}
	r.w.write("/// <summary>")
	for _, l := range strings.Split(strings.TrimSpace(c.Summary), "\n") {
		r.w.write(strings.TrimRight("/// "+strings.TrimSpace(l), " "))
	}
	r.w.write("/// </summary>")
}

func (r *renderer) renderPreface(c decl.Common) {
	r.renderDocs(c)
	for _, a := range c.Attributes {
		r.w.write(a.String())
	}
}

// writeHead writes head followed by one where clause per line; suffix ends the
// last line written
func (r *renderer) writeHead(head string, constraints []decl.Constraint, suffix string) {
	if len(constraints) == 0 {
		r.w.write(head + suffix)
		return
	}
	r.w.write(head)
	r.w.indent(func() {
		for i, c := range constraints {
			if i == len(constraints)-1 {
				r.w.write(c.String() + suffix)
				continue
			}
			r.w.write(c.String())
		}
	})
}

func (r *renderer) renderType(t decl.Type, auto bool) {
	r.renderPreface(t.Common)

	if t.TypeKind == decl.DelegateKind {
		r.w.write(typeHead(t) + inlineConstraints(t.Constraints) + ";")
		return
	}
	if t.HasPrimary && len(t.Members) == 0 && len(t.Constraints) == 0 &&
		(t.TypeKind == decl.RecordKind || t.TypeKind == decl.RecordStructKind) {
		r.w.write(typeHead(t) + ";")
		return
	}

	r.writeHead(typeHead(t), t.Constraints, "")
	r.w.open()
	o := owner{name: t.Name, kind: t.TypeKind}
	if t.TypeKind == decl.EnumKind {
		r.renderEnumValues(t.Members, o)
	} else {
		r.renderSections(organize(t, auto), o)
	}
	r.w.close("")
}

func (r *renderer) renderEnumValues(members []decl.Member, o owner) {
	for i, m := range members {
		v, ok := m.(decl.EnumValue)
		if !ok {
			r.w.blank()
			r.renderMember(m, o)
			continue
		}
		r.renderPreface(v.Common)
		if i < len(members)-1 {
			r.w.write(enumValueDecl(v) + ",")
		} else {
			r.w.write(enumValueDecl(v))
		}
	}
}

func (r *renderer) renderSections(sections []section, o owner) {
	for i, s := range sections {
		if i > 0 {
			r.w.blank()
		}
		if s.name == "" {
			r.renderSequence(s.members, o)
			continue
		}
		r.w.write("#region " + s.name)
		r.w.blank()
		r.renderSequence(s.members, o)
		r.w.blank()
		r.w.write("#endregion")
	}
}

func fieldLike(m decl.Member) bool {
	k := m.Kind()
	return k == decl.KindField || k == decl.KindEvent
}

// renderSequence separates members with a blank line; runs of fields and
// events stay together
func (r *renderer) renderSequence(members []decl.Member, o owner) {
	for i, m := range members {
		if i > 0 && !(fieldLike(members[i-1]) && fieldLike(m)) {
			r.w.blank()
		}
		r.renderMember(m, o)
	}
}

func (r *renderer) renderMember(m decl.Member, o owner) {
	switch n := m.(type) {
	case decl.Type:
		r.renderType(n, false)
	case decl.Field:
		r.renderPreface(n.Common)
		r.w.write(fieldDecl(n) + ";")
	case decl.Event:
		r.renderPreface(n.Common)
		r.w.write(eventDecl(n) + ";")
	case decl.EnumValue:
		r.renderPreface(n.Common)
		r.w.write(enumValueDecl(n) + ",")
	case decl.Method:
		r.renderPreface(n.Common)
		r.renderCallable(methodHead(n), n.Constraints, n.Parameters, n.Body,
			bodyless(n.Common, o, n.Body, n.Parameters), n.ReturnType == "void")
	case decl.Constructor:
		r.renderPreface(n.Common)
		r.renderCallable(constructorHead(n, o.name), nil, n.Parameters, n.Body,
			n.Modifiers.Has(decl.ModExtern) && n.Body.IsEmpty() && !decl.HasGuards(n.Parameters), true)
	case decl.Operator:
		r.renderPreface(n.Common)
		r.renderCallable(operatorHead(n), nil, n.Parameters, n.Body,
			bodyless(n.Common, o, n.Body, n.Parameters), false)
	case decl.Property:
		r.renderPreface(n.Common)
		r.renderProperty(n)
	case decl.Indexer:
		r.renderPreface(n.Common)
		r.renderIndexer(n)
	}
}

// bodyless reports whether a callable renders with ";" in place of a body
func bodyless(c decl.Common, o owner, body decl.Body, params []decl.Parameter) bool {
	if !body.IsEmpty() || len(decl.PreambleStatements(params)) > 0 {
		return false
	}
	return o.kind == decl.InterfaceKind ||
		c.Modifiers.Has(decl.ModAbstract) ||
		c.Modifiers.Has(decl.ModExtern) ||
		c.Modifiers.Has(decl.ModPartial)
}

func (r *renderer) renderCallable(head string, constraints []decl.Constraint, params []decl.Parameter,
	body decl.Body, noBody, void bool) {
	if noBody {
		r.writeHead(head, constraints, ";")
		return
	}
	preamble := decl.PreambleStatements(params)
	if len(preamble) == 0 && body.IsExpression() {
		r.writeHead(head, constraints, " => "+body.Expression+";")
		return
	}

	r.writeHead(head, constraints, "")
	r.w.open()
	for _, s := range preamble {
		r.w.write(s)
	}
	r.renderBody(body, void)
	r.w.close("")
}

func (r *renderer) renderBody(body decl.Body, void bool) {
	if body.IsExpression() {
		if void {
			r.w.write(body.Expression + ";")
		} else {
			r.w.write("return " + body.Expression + ";")
		}
		return
	}
	for _, l := range body.Lines() {
		r.w.write(l)
	}
}

func (r *renderer) renderProperty(p decl.Property) {
	head := propertyHead(p)
	switch {
	case p.Expression != "":
		r.w.write(head + " => " + p.Expression + ";")
	case p.Accessors.IsAuto():
		s := head + " " + p.Accessors.String()
		if p.Initializer != "" {
			s += " = " + p.Initializer + ";"
		}
		r.w.write(s)
	default:
		r.w.write(head)
		r.renderAccessorBlock(p.Accessors)
		if p.Initializer != "" {
			r.w.close(" = " + p.Initializer + ";")
			return
		}
		r.w.close("")
	}
}

func (r *renderer) renderIndexer(x decl.Indexer) {
	head := indexerHead(x)
	switch {
	case x.Expression != "":
		r.w.write(head + " => " + x.Expression + ";")
	case x.Accessors.IsAuto():
		r.w.write(head + " " + x.Accessors.String())
	default:
		r.w.write(head)
		r.renderAccessorBlock(x.Accessors)
		r.w.close("")
	}
}

// renderAccessorBlock opens the accessor block; the caller closes it
func (r *renderer) renderAccessorBlock(as decl.Accessors) {
	r.w.open()
	for _, a := range as {
		switch {
		case a.IsAuto():
			r.w.write(a.Head() + ";")
		case a.Body.IsExpression():
			r.w.write(a.Head() + " => " + a.Body.Expression + ";")
		default:
			r.w.write(a.Head())
			r.w.open()
			r.renderBody(a.Body, true)
			r.w.close("")
		}
	}
}

// RenderMember renders one member as it would appear inside a class, using
// opts for indentation and line endings. Unnamed constructors render with an
// empty name; give them one with WithName first.
func RenderMember(m decl.Member, opts Options) string {
	opts = opts.withDefaults()
	r := &renderer{opts: opts}
	r.renderMember(m, owner{name: m.DeclName(), kind: decl.ClassKind})
	return format(r.w.lines, opts.Indentation, opts.LineEnding)
}
