package signature

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/toyz/cskit/pkg/decl"
	cserrors "github.com/toyz/cskit/pkg/errors"
)

// notAType lists keywords that can never start or continue a type reference.
var notAType = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"new": true, "static": true, "abstract": true, "virtual": true, "override": true,
	"sealed": true, "extern": true, "unsafe": true, "readonly": true, "const": true,
	"volatile": true, "required": true, "async": true, "partial": true,
	"class": true, "struct": true, "interface": true, "enum": true, "delegate": true,
	"event": true, "operator": true, "implicit": true, "explicit": true,
	"this": true, "base": true, "where": true, "params": true, "ref": true, "out": true,
	"in": true, "return": true, "null": true, "true": true, "false": true,
}

// builtinTypes are keywords that are valid types but never names.
var builtinTypes = map[string]bool{
	"void": true, "bool": true, "byte": true, "sbyte": true, "char": true, "decimal": true,
	"double": true, "float": true, "int": true, "uint": true, "long": true, "ulong": true,
	"short": true, "ushort": true, "object": true, "string": true, "nint": true, "nuint": true,
}

var simpleIdent = regexp.MustCompile(`^@?[A-Za-z_][A-Za-z0-9_]*$`)

type parser struct {
	input string
	toks  []token
	pos   int
}

func newParser(text string) (*parser, error) {
	input := strings.TrimSpace(text)
	input = strings.TrimSpace(strings.TrimSuffix(input, ";"))
	if input == "" {
		return nil, cserrors.InvalidSignature(text, "empty signature")
	}
	toks, err := tokenize(input)
	if err != nil {
		return nil, cserrors.InvalidSignature(text, "unrecognized input").WithCause(err)
	}
	return &parser{input: input, toks: toks}, nil
}

func (p *parser) at(n int) token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return token{kind: tokEOF, offset: len(p.input)}
}

func (p *parser) peek() token { return p.at(0) }

func (p *parser) next() token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }

func (p *parser) accept(text string) bool {
	if p.peek().is(text) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(text string) error {
	if !p.accept(text) {
		return p.fail("expected %q, found %s", text, p.describe())
	}
	return nil
}

func (p *parser) describe() string {
	if p.done() {
		return "end of input"
	}
	return strconv.Quote(p.peek().text)
}

func (p *parser) fail(format string, args ...any) error {
	return cserrors.InvalidSignature(p.input, fmt.Sprintf(format, args...))
}

func (p *parser) finish() error {
	if !p.done() {
		return p.fail("unexpected %s", p.describe())
	}
	return nil
}

// parseName reads a single identifier usable as a declared name.
func (p *parser) parseName() (string, error) {
	t := p.peek()
	if t.kind != tokIdent || notAType[t.text] || builtinTypes[t.text] {
		return "", p.fail("expected a name, found %s", p.describe())
	}
	p.pos++
	return t.text, nil
}

// parseMemberName reads a name, allowing the dotted form of explicit interface
// implementations, whose qualifier may carry type arguments.
func (p *parser) parseMemberName() (string, error) {
	start := p.pos
	if _, err := p.parseName(); err != nil {
		return "", err
	}
	for {
		save := p.pos
		if p.peek().is("<") && p.skipBalanced() != nil {
			p.pos = save
			break
		}
		if !p.peek().is(".") || p.at(1).kind != tokIdent {
			p.pos = save
			break
		}
		p.pos++
		if _, err := p.parseName(); err != nil {
			return "", err
		}
	}
	return canonical(p.toks[start:p.pos]), nil
}

// readReturnType reads a type that may be returned by reference.
func (p *parser) readReturnType() (string, error) {
	prefix := ""
	if p.accept("ref") {
		prefix = "ref "
		if p.accept("readonly") {
			prefix = "ref readonly "
		}
	}
	typ, err := p.readType()
	if err != nil {
		return "", err
	}
	return prefix + typ, nil
}

// readType reads one type reference. Generic argument lists, tuple types and
// array rank specifiers are consumed by bracket depth so their interior commas
// never end the type.
func (p *parser) readType() (string, error) {
	start := p.pos
	if p.peek().is("(") {
		if err := p.skipBalanced(); err != nil {
			return "", err
		}
	} else if err := p.readTypeName(); err != nil {
		return "", err
	}
	for {
		switch {
		case p.peek().is("?"), p.peek().is("*"):
			p.pos++
		case p.peek().is("[") && (p.at(1).is("]") || p.at(1).is(",")):
			if err := p.skipBalanced(); err != nil {
				return "", err
			}
		default:
			return canonical(p.toks[start:p.pos]), nil
		}
	}
}

func (p *parser) readTypeName() error {
	if p.peek().is("global") && p.at(1).is("::") {
		p.pos += 2
	}
	for {
		t := p.peek()
		if t.kind != tokIdent || notAType[t.text] {
			return p.fail("expected a type, found %s", p.describe())
		}
		p.pos++
		if p.peek().is("<") {
			if err := p.skipBalanced(); err != nil {
				return err
			}
		}
		if (p.peek().is(".") || p.peek().is("::")) && p.at(1).kind == tokIdent {
			p.pos++
			continue
		}
		return nil
	}
}

var closers = map[string]string{"<": ">", "(": ")", "[": "]"}

// skipBalanced consumes a bracketed group starting at the current opener.
func (p *parser) skipBalanced() error {
	var stack []string
	for !p.done() {
		t := p.next()
		if t.kind == tokString || t.kind == tokChar {
			continue
		}
		if closer, ok := closers[t.text]; ok {
			stack = append(stack, closer)
		} else if t.is(">") || t.is(")") || t.is("]") {
			if len(stack) == 0 || stack[len(stack)-1] != t.text {
				return p.fail("unbalanced %q", t.text)
			}
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return nil
		}
	}
	return p.fail("unterminated bracket")
}

// skipExpression advances over an expression until one of stops appears at
// bracket depth zero or the input ends, and returns the source span covered.
func (p *parser) skipExpression(stops ...string) (string, error) {
	start := p.peek().offset
	end := start
	depth := 0
	for !p.done() {
		t := p.peek()
		if depth == 0 && t.kind == tokPunct && contains(stops, t.text) {
			break
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
		if depth < 0 {
			return "", p.fail("unbalanced %q", t.text)
		}
		end = t.end()
		p.pos++
	}
	if depth != 0 {
		return "", p.fail("unterminated bracket")
	}
	expr := strings.TrimSpace(p.input[start:end])
	if expr == "" {
		return "", p.fail("expected an expression, found %s", p.describe())
	}
	return expr, nil
}

// readArguments reads "(a, b)" and returns the argument expressions as written.
func (p *parser) readArguments() ([]string, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	if p.accept(")") {
		return nil, nil
	}
	var args []string
	for {
		arg, err := p.skipExpression(",", ")")
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.accept(",") {
			continue
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// head is the part every declaration starts with: attributes, accessibility
// and modifiers.
type head struct {
	attrs  []decl.Attribute
	access decl.Accessibility
	mods   decl.Modifiers
}

var allowedModifiers = map[decl.Kind]decl.Modifiers{
	decl.KindType: decl.ModNew | decl.ModStatic | decl.ModAbstract | decl.ModSealed |
		decl.ModPartial | decl.ModReadonly | decl.ModUnsafe,
	decl.KindMethod: decl.ModNew | decl.ModStatic | decl.ModAbstract | decl.ModVirtual |
		decl.ModOverride | decl.ModSealed | decl.ModExtern | decl.ModUnsafe | decl.ModAsync |
		decl.ModPartial | decl.ModReadonly,
	decl.KindProperty: decl.ModNew | decl.ModStatic | decl.ModAbstract | decl.ModVirtual |
		decl.ModOverride | decl.ModSealed | decl.ModExtern | decl.ModUnsafe | decl.ModRequired |
		decl.ModReadonly,
	decl.KindIndexer: decl.ModNew | decl.ModAbstract | decl.ModVirtual | decl.ModOverride |
		decl.ModSealed | decl.ModExtern | decl.ModUnsafe | decl.ModReadonly,
	decl.KindField: decl.ModNew | decl.ModStatic | decl.ModReadonly | decl.ModConst |
		decl.ModVolatile | decl.ModRequired | decl.ModUnsafe,
	decl.KindEvent: decl.ModNew | decl.ModStatic | decl.ModAbstract | decl.ModVirtual |
		decl.ModOverride | decl.ModSealed | decl.ModExtern | decl.ModUnsafe,
	decl.KindConstructor: decl.ModStatic | decl.ModExtern | decl.ModUnsafe,
	decl.KindOperator:    decl.ModStatic | decl.ModExtern | decl.ModUnsafe,
}

func (p *parser) parseHead() (head, error) {
	var h head
	attrs, err := p.parseAttributes()
	if err != nil {
		return h, err
	}
	h.attrs = attrs
	for p.peek().kind == tokIdent {
		word := p.peek().text
		if a, ok := decl.AccessibilityFor(word); ok {
			combined, ok := h.access.Combine(a)
			if !ok {
				return h, p.fail("conflicting accessibility %q", word)
			}
			h.access = combined
			p.pos++
			continue
		}
		mod, ok := decl.ModifierFor(word)
		if !ok {
			break
		}
		if h.mods.Has(mod) {
			return h, p.fail("duplicate modifier %q", word)
		}
		h.mods |= mod
		p.pos++
	}
	return h, nil
}

// check rejects modifiers the detected declaration kind cannot carry.
func (h head) check(p *parser, kind decl.Kind) error {
	if extra := h.mods &^ allowedModifiers[kind]; extra != 0 {
		return p.fail("modifier %q is not valid on a %s", extra.Keywords()[0], kind)
	}
	return nil
}

func (h head) apply(c *decl.Common) {
	c.Attributes = h.attrs
	c.Access = h.access
	c.Modifiers = h.mods
}

func (p *parser) parseAttributes() ([]decl.Attribute, error) {
	var out []decl.Attribute
	for p.peek().is("[") {
		p.pos++
		target := ""
		if p.peek().kind == tokIdent && p.at(1).is(":") {
			target = p.next().text
			p.pos++
		}
		for {
			name, err := p.readType()
			if err != nil {
				return nil, err
			}
			var args []string
			if p.peek().is("(") {
				if args, err = p.readArguments(); err != nil {
					return nil, err
				}
			}
			out = append(out, decl.NewAttribute(name, args...).WithTarget(target))
			if p.accept(",") {
				continue
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			break
		}
	}
	return out, nil
}

func (p *parser) parseTypeParameters(allowVariance bool) ([]decl.TypeParameter, error) {
	if !p.accept("<") {
		return nil, nil
	}
	var out []decl.TypeParameter
	for {
		var tp decl.TypeParameter
		if allowVariance && (p.peek().is("in") || p.peek().is("out")) && p.at(1).kind == tokIdent {
			tp.Variance = p.next().text
		}
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		tp.Name = name
		out = append(out, tp)
		if p.accept(",") {
			continue
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func (p *parser) parseParameters(open, close string) ([]decl.Parameter, error) {
	if err := p.expect(open); err != nil {
		return nil, err
	}
	if p.accept(close) {
		return nil, nil
	}
	var out []decl.Parameter
	for {
		param, err := p.parseParameter(close)
		if err != nil {
			return nil, err
		}
		if param.Receiver == decl.ThisReceiver && len(out) > 0 {
			return nil, p.fail("only the first parameter may use 'this'")
		}
		if len(out) > 0 && out[len(out)-1].Receiver == decl.ParamsArray {
			return nil, p.fail("a params parameter must be last")
		}
		out = append(out, param)
		if p.accept(",") {
			continue
		}
		if err := p.expect(close); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func (p *parser) parseParameter(close string) (decl.Parameter, error) {
	var param decl.Parameter
	attrs, err := p.parseAttributes()
	if err != nil {
		return param, err
	}
	refSeen := false
	for p.peek().kind == tokIdent {
		word := p.peek().text
		if word == "this" || word == "params" {
			if param.Receiver != decl.NoReceiver {
				return param, p.fail("parameter has more than one of 'this' and 'params'")
			}
			param.Receiver = map[string]decl.Receiver{"this": decl.ThisReceiver, "params": decl.ParamsArray}[word]
			p.pos++
			continue
		}
		if word == "scoped" && p.scopedModifier(close) {
			if param.Scoped {
				return param, p.fail("parameter repeats 'scoped'")
			}
			param.Scoped = true
			p.pos++
			continue
		}
		kind, ok := map[string]decl.RefKind{"ref": decl.Ref, "out": decl.Out, "in": decl.In}[word]
		if !ok {
			break
		}
		if refSeen {
			return param, p.fail("parameter has more than one reference modifier")
		}
		refSeen = true
		p.pos++
		if kind == decl.Ref && p.accept("readonly") {
			kind = decl.RefReadonly
		}
		param.RefKind = kind
	}
	typ, err := p.readType()
	if err != nil {
		return param, err
	}
	name, err := p.parseName()
	if err != nil {
		return param, err
	}
	param.Type = typ
	param.Name = name
	param.Attributes = attrs
	if p.accept("=") {
		expr, err := p.skipExpression(",", close)
		if err != nil {
			return param, err
		}
		param = param.WithDefault(expr)
	}
	return param, nil
}

// scopedModifier reports whether the "scoped" at the cursor modifies the
// parameter rather than naming its type or the parameter itself.
func (p *parser) scopedModifier(close string) bool {
	next := p.at(1)
	if next.kind != tokIdent {
		return false
	}
	after := p.at(2)
	return !(after.is(",") || after.is(close) || after.is("=") || after.kind == tokEOF)
}

func (p *parser) parseConstraints() ([]decl.Constraint, error) {
	var out []decl.Constraint
	for p.accept("where") {
		param, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		var clauses []string
		for {
			start := p.pos
			if err := p.skipConstraint(); err != nil {
				return nil, err
			}
			if start == p.pos {
				return nil, p.fail("expected a constraint, found %s", p.describe())
			}
			clauses = append(clauses, canonical(p.toks[start:p.pos]))
			if !p.accept(",") {
				break
			}
		}
		out = append(out, decl.Constraint{Param: param, Clauses: clauses})
	}
	return out, nil
}

func (p *parser) skipConstraint() error {
	for !p.done() {
		t := p.peek()
		switch {
		case t.is(",") || t.is("where") || t.is("=>") || t.is("{"):
			return nil
		case t.is("<") || t.is("(") || t.is("["):
			if err := p.skipBalanced(); err != nil {
				return err
			}
		default:
			p.pos++
		}
	}
	return nil
}

// parseExpressionBody reads an optional trailing "=> expr".
func (p *parser) parseExpressionBody() (string, bool, error) {
	if !p.accept("=>") {
		return "", false, nil
	}
	expr, err := p.skipExpression()
	if err != nil {
		return "", false, err
	}
	return expr, true, nil
}

func (p *parser) parseAccessors() (decl.Accessors, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	var out decl.Accessors
	for !p.accept("}") {
		if p.done() {
			return nil, p.fail("unterminated accessor list")
		}
		acc := decl.Accessor{}
		for p.peek().kind == tokIdent {
			a, ok := decl.AccessibilityFor(p.peek().text)
			if !ok {
				break
			}
			combined, ok := acc.Access.Combine(a)
			if !ok {
				return nil, p.fail("conflicting accessibility %q", p.peek().text)
			}
			acc.Access = combined
			p.pos++
		}
		switch kw := p.next(); {
		case kw.is("get"):
			acc.Kind = decl.Get
		case kw.is("set"):
			acc.Kind = decl.Set
		case kw.is("init"):
			acc.Kind = decl.Init
		default:
			return nil, p.fail("expected get, set or init, found %q", kw.text)
		}
		for _, existing := range out {
			if existing.Kind == acc.Kind || (existing.Kind != decl.Get && acc.Kind != decl.Get) {
				return nil, p.fail("duplicate %s accessor", acc.Kind)
			}
		}
		if p.accept("=>") {
			expr, err := p.skipExpression(";", "}")
			if err != nil {
				return nil, err
			}
			acc.Body = acc.Body.WithExpression(expr)
		}
		if err := p.expect(";"); err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	if len(out) == 0 {
		return nil, p.fail("empty accessor list")
	}
	return out, nil
}
