package syntax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeSitter_ValidSource(t *testing.T) {
	testCases := []struct {
		name   string
		source string
	}{
		{
			name:   "empty class",
			source: "public class Empty\n{\n}\n",
		},
		{
			name: "file scoped namespace",
			source: `using System;

namespace Demo;

public class Greeter
{
    private readonly string name;

    public Greeter(string name)
    {
        ArgumentNullException.ThrowIfNull(name);
        this.name = name;
    }

    public string Greet() => "Hello " + name;
}
`,
		},
		{
			name:   "enum",
			source: "public enum Color\n{\n    Red,\n    Green = 2,\n}\n",
		},
	}

	checker := NewTreeSitter()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			diags, err := checker.Check([]byte(tc.source))
			require.NoError(t, err)
			assert.Empty(t, diags)
		})
	}
}

func TestTreeSitter_InvalidSource(t *testing.T) {
	source := `public class Broken
{
    public void Run()
    {
        var = = 5;
    }
}
`
	diags, err := NewTreeSitter().Check([]byte(source))
	require.NoError(t, err)
	require.NotEmpty(t, diags)
	assert.True(t, HasErrors(diags))
	for _, d := range diags {
		assert.NotEmpty(t, d.Message)
		assert.Positive(t, d.Line)
	}
}

func TestTreeSitter_MissingBrace(t *testing.T) {
	diags, err := NewTreeSitter().Check([]byte("public class Open\n{\n    public int X;\n"))
	require.NoError(t, err)
	assert.True(t, HasErrors(diags))
}

func TestTreeSitter_CheckContext(t *testing.T) {
	testCases := []struct {
		name      string
		source    string
		hasErrors bool
	}{
		{name: "valid", source: "public class Empty\n{\n}\n"},
		{name: "invalid", source: "public class Open\n{\n", hasErrors: true},
	}

	var checker ContextChecker = NewTreeSitter()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			diags, err := checker.CheckContext(context.Background(), []byte(tc.source))
			require.NoError(t, err)
			assert.Equal(t, tc.hasErrors, HasErrors(diags))

			plain, err := checker.Check([]byte(tc.source))
			require.NoError(t, err)
			assert.Equal(t, diags, plain)
		})
	}
}

func TestTreeSitter_InvalidUTF8(t *testing.T) {
	diags, err := NewTreeSitter().Check([]byte{0xff, 0xfe, 'c'})
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeInvalid, diags[0].Code)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Message: "missing ;", Line: 3, Column: 7}
	assert.Equal(t, "3:7: error: missing ;", d.String())

	d = Diagnostic{Severity: SeverityWarning, Message: "checker skipped"}
	assert.Equal(t, "warning: checker skipped", d.String())
	assert.False(t, d.IsError())
}

func TestCheckerFunc(t *testing.T) {
	var called bool
	var c Checker = CheckerFunc(func(source []byte) ([]Diagnostic, error) {
		called = true
		return nil, nil
	})
	_, err := c.Check([]byte("x"))
	require.NoError(t, err)
	assert.True(t, called)
}
