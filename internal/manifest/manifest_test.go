package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/cskit/pkg/decl"
	"github.com/toyz/cskit/pkg/emit"
	cserrors "github.com/toyz/cskit/pkg/errors"
)

const boxYAML = `type: public class Box
namespace: Demo.Storage
members:
  - signature: public string Value { get; set; }
  - signature: public Box(string value)
    guards:
      value: [not_null]
    assign:
      value: Value
`

const boxTOML = `type = "public class Box"
namespace = "Demo.Storage"

[[members]]
signature = "public string Value { get; set; }"

[[members]]
signature = "public Box(string value)"
guards = { value = ["not_null"] }
assign = { value = "Value" }
`

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Formats(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{name: "yaml", file: "box.yaml", content: boxYAML},
		{name: "yml", file: "box.yml", content: boxYAML},
		{name: "toml", file: "box.toml", content: boxTOML},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Load(writeManifest(t, tc.file, tc.content))
			require.NoError(t, err)

			assert.Equal(t, "public class Box", m.Type)
			assert.Equal(t, "Demo.Storage", m.Namespace)
			require.Len(t, m.Members, 2)
			assert.Equal(t, []string{"not_null"}, m.Members[1].Guards["value"])
			assert.Equal(t, "Value", m.Members[1].Assign["value"])
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		code    cserrors.ErrorCode
	}{
		{name: "unknown yaml key", file: "m.yaml", content: "type: class A\nfields: []\n", code: cserrors.ManifestErrorCode},
		{name: "unknown toml key", file: "m.toml", content: "type = \"class A\"\nfields = []\n", code: cserrors.ManifestErrorCode},
		{name: "missing type", file: "m.yaml", content: "namespace: Demo\n", code: cserrors.ManifestErrorCode},
		{name: "missing signature", file: "m.yaml", content: "type: class A\nmembers:\n  - summary: nothing\n", code: cserrors.ManifestErrorCode},
		{name: "malformed toml", file: "m.toml", content: "type = \n", code: cserrors.ManifestErrorCode},
		{name: "unsupported format", file: "m.json", content: "{}", code: cserrors.ManifestErrorCode},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeManifest(t, tc.file, tc.content))
			require.Error(t, err)
			assert.Equal(t, tc.code, cserrors.CodeOf(err))
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Equal(t, cserrors.FileSystemErrorCode, cserrors.CodeOf(err))
	})
}

func TestBuild_EmitsGuardedConstructor(t *testing.T) {
	m, err := Load(writeManifest(t, "box.yaml", boxYAML))
	require.NoError(t, err)

	typ, err := Build(m)
	require.NoError(t, err)
	require.NoError(t, typ.Validate())

	res := emit.Emit(typ, emit.Options{LineEnding: "\n"})
	valid, ok := res.Validated()
	require.True(t, ok)

	expected := `using System;

namespace Demo.Storage;

public class Box
{
    public string Value { get; set; }

    public Box(string value)
    {
        ArgumentNullException.ThrowIfNull(value);
        Value = value;
    }
}
`
	assert.Equal(t, expected, valid.Code())
}

func TestBuild_Members(t *testing.T) {
	m := Manifest{
		Type:    "public sealed class Calculator",
		Summary: "Adds numbers.",
		Imports: []string{"System.Linq"},
		Guid:    "6f1c2b7e-8f55-4c7e-9a55-1b0d3e6c9a10",
		Members: []Member{
			{Signature: "public int Add(int a, int b)", Expression: "a + b", Region: "Math"},
			{
				Signature: "public int Sum(IEnumerable<int> values)",
				Imports:   []string{"System.Collections.Generic"},
				Guards:    map[string][]string{"values": {"not_null"}},
				Body:      "return values.Sum();",
			},
			{Signature: "public int Scale(int factor)", Guards: map[string][]string{"factor": {"range:1,10", "not_zero"}}, Body: "return factor;"},
			{Signature: "public int Total { get; }", Expression: "0"},
		},
		Nested: []Manifest{{Type: "public enum Mode", Region: "Nested", Values: []string{"Fast", "Slow = 4"}}},
	}

	typ, err := Build(m)
	require.NoError(t, err)

	assert.Equal(t, "Calculator", typ.Name)
	assert.Equal(t, "Adds numbers.", typ.Summary)
	require.Len(t, typ.Members, 5)

	add, ok := typ.Members[0].(decl.Method)
	require.True(t, ok)
	assert.Equal(t, "a + b", add.Body.Expression)
	assert.Equal(t, "Math", add.Region)

	sum := typ.Members[1].(decl.Method)
	assert.Equal(t, []string{"System.Collections.Generic"}, sum.Imports)
	require.Len(t, sum.Parameters[0].Guards, 1)

	scale := typ.Members[2].(decl.Method)
	assert.Equal(t, []decl.Guard{
		{Kind: decl.GuardRange, Min: "1", Max: "10"},
		{Kind: decl.GuardNotZero},
	}, scale.Parameters[0].Guards)

	total := typ.Members[3].(decl.Property)
	assert.Equal(t, "0", total.Expression)

	mode := typ.Members[4].(decl.Type)
	assert.Equal(t, decl.EnumKind, mode.TypeKind)
	assert.Equal(t, "Nested", mode.Region)
	require.Len(t, mode.Members, 2)
	assert.Equal(t, "4", mode.Members[1].(decl.EnumValue).Value)

	require.NoError(t, typ.Validate())
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		manifest Manifest
		sentinel error
	}{
		{
			name:     "bad type head",
			manifest: Manifest{Type: "public class"},
			sentinel: cserrors.ErrInvalidSignature,
		},
		{
			name:     "bad member signature",
			manifest: Manifest{Type: "class A", Members: []Member{{Signature: "public int ("}}},
			sentinel: cserrors.ErrInvalidSignature,
		},
		{
			name:     "unknown parameter",
			manifest: Manifest{Type: "class A", Members: []Member{{Signature: "void Run(int x)", Guards: map[string][]string{"y": {"not_zero"}}}}},
			sentinel: cserrors.ErrInvalidOperation,
		},
		{
			name:     "unknown guard",
			manifest: Manifest{Type: "class A", Members: []Member{{Signature: "void Run(int x)", Guards: map[string][]string{"x": {"is_even"}}}}},
			sentinel: cserrors.ErrInvalidOperation,
		},
		{
			name:     "body and expression",
			manifest: Manifest{Type: "class A", Members: []Member{{Signature: "int Run()", Body: "return 1;", Expression: "1"}}},
			sentinel: cserrors.ErrInvalidOperation,
		},
		{
			name:     "field body",
			manifest: Manifest{Type: "class A", Members: []Member{{Signature: "private int x", Body: "x++;"}}},
			sentinel: cserrors.ErrInvalidOperation,
		},
		{
			name:     "type as member",
			manifest: Manifest{Type: "class A", Members: []Member{{Signature: "public class B"}}},
			sentinel: cserrors.ErrInvalidOperation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.manifest)
			require.Error(t, err)
			assert.Equal(t, cserrors.ManifestErrorCode, cserrors.CodeOf(err))
			assert.True(t, errors.Is(err, tc.sentinel), "expected %v in %v", tc.sentinel, err)
		})
	}

	t.Run("values on a class", func(t *testing.T) {
		_, err := Build(Manifest{Type: "class A", Values: []string{"X"}})
		require.Error(t, err)
		assert.Equal(t, cserrors.ManifestErrorCode, cserrors.CodeOf(err))
	})
}

func TestParseGuard(t *testing.T) {
	testCases := []struct {
		input   string
		want    decl.Guard
		wantErr bool
	}{
		{input: "not_null", want: decl.Guard{Kind: decl.GuardNotNull}},
		{input: "NOT_NULL_OR_EMPTY", want: decl.Guard{Kind: decl.GuardNotNullOrEmpty}},
		{input: "not_null_or_whitespace", want: decl.Guard{Kind: decl.GuardNotNullOrWhiteSpace}},
		{input: "not_negative", want: decl.Guard{Kind: decl.GuardNotNegative}},
		{input: "not_positive", want: decl.Guard{Kind: decl.GuardNotPositive}},
		{input: "positive", want: decl.Guard{Kind: decl.GuardPositive}},
		{input: " range: 0 , MaxAge ", want: decl.Guard{Kind: decl.GuardRange, Min: "0", Max: "MaxAge"}},
		{input: "range:5", wantErr: true},
		{input: "range:,5", wantErr: true},
		{input: "odd", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			g, err := ParseGuard(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, cserrors.ErrInvalidOperation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, g)
		})
	}
}
