package signature

import (
	"strings"

	"github.com/toyz/cskit/pkg/decl"
)

var overloadable = map[string]int{
	"+": 2, "-": 2, "!": 1, "~": 1, "++": 1, "--": 1, "true": 1, "false": 1,
	"*": 2, "/": 2, "%": 2, "&": 2, "|": 2, "^": 2, "<<": 2, ">>": 2, ">>>": 2,
	"==": 2, "!=": 2, "<": 2, ">": 2, "<=": 2, ">=": 2,
}

func (p *parser) parseMember() (decl.Member, error) {
	h, err := p.parseHead()
	if err != nil {
		return nil, err
	}
	switch t := p.peek(); {
	case p.atTypeKeyword():
		return p.parseTypeDecl(h)
	case t.is("implicit"), t.is("explicit"):
		return p.parseConversion(h)
	case t.is("event"):
		return p.parseEvent(h)
	}

	typ, err := p.readReturnType()
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(typ, "ref ") && (p.peek().is("(") || p.peek().is("operator")) {
		return nil, p.fail("constructors and operators cannot return by reference")
	}
	switch {
	case p.peek().is("("):
		return p.parseConstructor(h, typ)
	case p.peek().is("operator"):
		return p.parseOperator(h, typ)
	case p.peek().is("this"):
		return p.parseIndexer(h, typ)
	}

	name, err := p.parseMemberName()
	if err != nil {
		return nil, err
	}
	switch {
	case p.peek().is("<"), p.peek().is("("):
		return p.parseMethod(h, typ, name)
	case p.peek().is("{"), p.peek().is("=>"):
		return p.parseProperty(h, typ, name)
	default:
		return p.parseField(h, typ, name)
	}
}

func (p *parser) atTypeKeyword() bool {
	switch t := p.peek(); {
	case t.is("class"), t.is("interface"), t.is("struct"), t.is("enum"), t.is("delegate"):
		return true
	case t.is("record"):
		next := p.at(1)
		return next.kind == tokIdent
	}
	return false
}

func (p *parser) parseTypeDecl(h head) (decl.Member, error) {
	if err := h.check(p, decl.KindType); err != nil {
		return nil, err
	}
	keyword := p.next().text
	kind, _ := decl.TypeKindFor(keyword)
	if keyword == "record" {
		kind = decl.RecordKind
		if p.accept("struct") {
			kind = decl.RecordStructKind
		} else {
			p.accept("class")
		}
	}

	if kind == decl.DelegateKind {
		return p.parseDelegate(h)
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	t := decl.For(kind, name)
	h.apply(&t.Common)

	if t.TypeParameters, err = p.parseTypeParameters(kind == decl.InterfaceKind); err != nil {
		return nil, err
	}
	if kind == decl.EnumKind && len(t.TypeParameters) > 0 {
		return nil, p.fail("enums cannot be generic")
	}
	if p.peek().is("(") {
		if kind == decl.EnumKind || kind == decl.InterfaceKind {
			return nil, p.fail("a %s cannot declare a primary constructor", kind)
		}
		if t.PrimaryParameters, err = p.parseParameters("(", ")"); err != nil {
			return nil, err
		}
		t.HasPrimary = true
	}
	if p.accept(":") {
		for {
			base, err := p.readType()
			if err != nil {
				return nil, err
			}
			if p.peek().is("(") {
				return nil, p.fail("base constructor arguments are not part of a signature")
			}
			t.BaseTypes = append(t.BaseTypes, base)
			if !p.accept(",") {
				break
			}
		}
		if kind == decl.EnumKind {
			if len(t.BaseTypes) != 1 {
				return nil, p.fail("an enum has exactly one underlying type")
			}
			t.EnumBase, t.BaseTypes = t.BaseTypes[0], nil
		}
	}
	if kind != decl.EnumKind {
		if t.Constraints, err = p.parseConstraints(); err != nil {
			return nil, err
		}
	}
	// tolerate an empty body: "class Foo { }"
	if p.accept("{") {
		if err := p.expect("}"); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (p *parser) parseDelegate(h head) (decl.Member, error) {
	ret, err := p.readReturnType()
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	t := decl.Delegate(ret, name)
	h.apply(&t.Common)
	if t.TypeParameters, err = p.parseTypeParameters(true); err != nil {
		return nil, err
	}
	if t.Parameters, err = p.parseParameters("(", ")"); err != nil {
		return nil, err
	}
	if t.Constraints, err = p.parseConstraints(); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *parser) parseMethod(h head, ret, name string) (decl.Member, error) {
	if err := h.check(p, decl.KindMethod); err != nil {
		return nil, err
	}
	m := decl.NewMethod(ret, name)
	h.apply(&m.Common)

	var err error
	if m.TypeParameters, err = p.parseTypeParameters(false); err != nil {
		return nil, err
	}
	if m.Parameters, err = p.parseParameters("(", ")"); err != nil {
		return nil, err
	}
	if m.Constraints, err = p.parseConstraints(); err != nil {
		return nil, err
	}
	expr, ok, err := p.parseExpressionBody()
	if err != nil {
		return nil, err
	}
	if ok {
		m = m.WithExpressionBody(expr)
	}
	return m, nil
}

func (p *parser) parseConstructor(h head, name string) (decl.Member, error) {
	if !simpleIdent.MatchString(name) || builtinTypes[name] {
		return nil, p.fail("expected a member name before '('")
	}
	if err := h.check(p, decl.KindConstructor); err != nil {
		return nil, err
	}
	c := decl.NewConstructor().WithName(name)
	h.apply(&c.Common)

	var err error
	if c.Parameters, err = p.parseParameters("(", ")"); err != nil {
		return nil, err
	}
	for _, param := range c.Parameters {
		if param.Receiver == decl.ThisReceiver {
			return nil, p.fail("constructors cannot declare an extension target")
		}
	}
	if p.accept(":") {
		switch {
		case p.accept("base"):
			c.Initializer = decl.BaseInitializer
		case p.accept("this"):
			c.Initializer = decl.ThisInitializer
		default:
			return nil, p.fail("expected base or this, found %s", p.describe())
		}
		if c.InitializerArgs, err = p.readArguments(); err != nil {
			return nil, err
		}
	}
	expr, ok, err := p.parseExpressionBody()
	if err != nil {
		return nil, err
	}
	if ok {
		c = c.WithExpressionBody(expr)
	}
	return c, nil
}

func (p *parser) parseOperator(h head, ret string) (decl.Member, error) {
	if err := h.check(p, decl.KindOperator); err != nil {
		return nil, err
	}
	p.pos++ // operator
	symbol := ""
	for !p.done() && !p.peek().is("(") {
		t := p.next()
		if t.kind != tokOperator && t.kind != tokPunct && !t.is("true") && !t.is("false") {
			return nil, p.fail("unexpected %q in operator symbol", t.text)
		}
		symbol += t.text
	}
	arity, ok := overloadable[symbol]
	if !ok {
		return nil, p.fail("operator %q cannot be overloaded", symbol)
	}
	o := decl.NewOperator(ret, symbol)
	h.apply(&o.Common)
	if err := p.parseOperatorRest(&o); err != nil {
		return nil, err
	}
	// + and - exist as unary and binary
	if n := len(o.Parameters); n != arity && !(n == 1 && (symbol == "+" || symbol == "-")) {
		return nil, p.fail("operator %s takes %d operand(s), found %d", symbol, arity, n)
	}
	return o, nil
}

func (p *parser) parseConversion(h head) (decl.Member, error) {
	if err := h.check(p, decl.KindOperator); err != nil {
		return nil, err
	}
	kind := decl.Implicit
	if p.next().is("explicit") {
		kind = decl.Explicit
	}
	if err := p.expect("operator"); err != nil {
		return nil, err
	}
	target, err := p.readType()
	if err != nil {
		return nil, err
	}
	o := decl.NewConversion(kind, target)
	h.apply(&o.Common)
	if err := p.parseOperatorRest(&o); err != nil {
		return nil, err
	}
	if len(o.Parameters) != 1 {
		return nil, p.fail("a conversion takes exactly one operand")
	}
	return o, nil
}

func (p *parser) parseOperatorRest(o *decl.Operator) error {
	params, err := p.parseParameters("(", ")")
	if err != nil {
		return err
	}
	o.Parameters = params
	expr, ok, err := p.parseExpressionBody()
	if err != nil {
		return err
	}
	if ok {
		*o = o.WithExpressionBody(expr)
	}
	return nil
}

func (p *parser) parseIndexer(h head, typ string) (decl.Member, error) {
	if err := h.check(p, decl.KindIndexer); err != nil {
		return nil, err
	}
	p.pos++ // this
	x := decl.NewIndexer(typ)
	h.apply(&x.Common)

	params, err := p.parseParameters("[", "]")
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return nil, p.fail("an indexer needs at least one parameter")
	}
	x.Parameters = params
	if p.peek().is("{") {
		if x.Accessors, err = p.parseAccessors(); err != nil {
			return nil, err
		}
		return x, nil
	}
	expr, ok, err := p.parseExpressionBody()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.fail("expected an accessor list or '=>', found %s", p.describe())
	}
	x.Accessors = decl.Accessors{{Kind: decl.Get}}
	return x.WithExpressionBody(expr), nil
}

func (p *parser) parseProperty(h head, typ, name string) (decl.Member, error) {
	if err := h.check(p, decl.KindProperty); err != nil {
		return nil, err
	}
	prop := decl.NewProperty(typ, name)
	h.apply(&prop.Common)

	if p.peek().is("=>") {
		expr, _, err := p.parseExpressionBody()
		if err != nil {
			return nil, err
		}
		prop.Accessors = decl.Accessors{{Kind: decl.Get}}
		return prop.WithExpressionBody(expr), nil
	}

	accessors, err := p.parseAccessors()
	if err != nil {
		return nil, err
	}
	prop.Accessors = accessors
	if p.accept("=") {
		expr, err := p.skipExpression()
		if err != nil {
			return nil, err
		}
		prop = prop.WithInitializer(expr)
	}
	return prop, nil
}

func (p *parser) parseField(h head, typ, name string) (decl.Member, error) {
	if err := h.check(p, decl.KindField); err != nil {
		return nil, err
	}
	f := decl.NewField(typ, name)
	h.apply(&f.Common)
	if p.accept("=") {
		expr, err := p.skipExpression()
		if err != nil {
			return nil, err
		}
		f = f.WithInitializer(expr)
	}
	return f, nil
}

func (p *parser) parseEvent(h head) (decl.Member, error) {
	if err := h.check(p, decl.KindEvent); err != nil {
		return nil, err
	}
	p.pos++ // event
	typ, err := p.readType()
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	e := decl.NewEvent(typ, name)
	h.apply(&e.Common)
	return e, nil
}
