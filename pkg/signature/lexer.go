package signature

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokChar
	tokOperator
	tokPunct
)

type token struct {
	kind   tokenKind
	text   string
	offset int
}

func (t token) end() int { return t.offset + len(t.text) }

func (t token) is(text string) bool { return t.kind != tokEOF && t.text == text }

func (t token) isWord() bool {
	switch t.kind {
	case tokIdent, tokNumber, tokString, tokChar:
		return true
	}
	return false
}

// signatureLexer splits a declaration into C# tokens. '>' is always a single
// token so nested generic arguments close one level at a time.
var signatureLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `\$?@?"(\\.|[^"\\])*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "Ident", Pattern: `@?[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_.]*`},
	{Name: "Operator", Pattern: `==|!=|<=|>=|&&|\|\||\+\+|--|=>|::|<<|\?\?`},
	{Name: "Punct", Pattern: `[-+*/%&|^!~<>=?:;,.()\[\]{}]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var tokenKinds = func() map[lexer.TokenType]tokenKind {
	byName := map[string]tokenKind{
		"String":   tokString,
		"Char":     tokChar,
		"Ident":    tokIdent,
		"Number":   tokNumber,
		"Operator": tokOperator,
		"Punct":    tokPunct,
	}
	out := make(map[lexer.TokenType]tokenKind, len(byName))
	for name, typ := range signatureLexer.Symbols() {
		if kind, ok := byName[name]; ok {
			out[typ] = kind
		}
	}
	return out
}()

// tokenize lexes src, dropping whitespace.
func tokenize(src string) ([]token, error) {
	lex, err := signatureLexer.LexString("", src)
	if err != nil {
		return nil, err
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}
	out := make([]token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			break
		}
		kind, ok := tokenKinds[t.Type]
		if !ok {
			continue
		}
		out = append(out, token{kind: kind, text: t.Value, offset: t.Pos.Offset})
	}
	return out, nil
}

// canonical joins tokens the way types and constraints are rendered: a space
// between adjacent words, ", " after commas (except inside rank specifiers),
// nothing else.
func canonical(toks []token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			prev := toks[i-1]
			switch {
			case prev.is(","):
				if !t.is("]") && !t.is(",") {
					b.WriteByte(' ')
				}
			case prev.isWord() && t.isWord():
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.text)
	}
	return b.String()
}
