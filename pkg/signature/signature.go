// Package signature parses one-line C# declarations into decl nodes.
//
//	m, err := signature.ParseMethod("public static bool TryParse(string s, out int value)")
//
// The parser is whitespace tolerant and strips a trailing ';'. Every failure,
// including empty input, is reported as errors.ErrInvalidSignature and no partial
// node is returned.
package signature

import (
	"fmt"
	"strings"

	"github.com/toyz/cskit/pkg/decl"
	cserrors "github.com/toyz/cskit/pkg/errors"
)

// Parse detects the declaration kind and returns the matching member node
func Parse(text string) (decl.Member, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	m, err := p.parseMember()
	if err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseType parses a type declaration head such as "public sealed class Foo<T> : Bar"
func ParseType(text string) (decl.Type, error) {
	return parseAs[decl.Type](text, decl.KindType)
}

// ParseMethod parses a method signature
func ParseMethod(text string) (decl.Method, error) {
	return parseAs[decl.Method](text, decl.KindMethod)
}

// ParseConstructor parses a constructor signature
func ParseConstructor(text string) (decl.Constructor, error) {
	return parseAs[decl.Constructor](text, decl.KindConstructor)
}

// ParseOperator parses a symbolic or conversion operator signature
func ParseOperator(text string) (decl.Operator, error) {
	return parseAs[decl.Operator](text, decl.KindOperator)
}

// ParseProperty parses a property declaration
func ParseProperty(text string) (decl.Property, error) {
	return parseAs[decl.Property](text, decl.KindProperty)
}

// ParseIndexer parses an indexer declaration
func ParseIndexer(text string) (decl.Indexer, error) {
	return parseAs[decl.Indexer](text, decl.KindIndexer)
}

// ParseField parses a field declaration
func ParseField(text string) (decl.Field, error) {
	return parseAs[decl.Field](text, decl.KindField)
}

// ParseEvent parses a field-like event declaration
func ParseEvent(text string) (decl.Event, error) {
	return parseAs[decl.Event](text, decl.KindEvent)
}

// ParseParameter parses a single parameter such as "ref int count" or "string name = null"
func ParseParameter(text string) (decl.Parameter, error) {
	p, err := newParser(text)
	if err != nil {
		return decl.Parameter{}, err
	}
	param, err := p.parseParameter("")
	if err != nil {
		return decl.Parameter{}, err
	}
	if err := p.finish(); err != nil {
		return decl.Parameter{}, err
	}
	return param, nil
}

func parseAs[T decl.Member](text string, want decl.Kind) (T, error) {
	var zero T
	m, err := Parse(text)
	if err != nil {
		return zero, err
	}
	typed, ok := m.(T)
	if !ok {
		return zero, cserrors.InvalidSignature(strings.TrimSpace(text),
			fmt.Sprintf("expected a %s, found a %s", want, m.Kind()))
	}
	return typed, nil
}
