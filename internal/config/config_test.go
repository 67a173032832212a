package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toyz/cskit/pkg/emit"
	cserrors "github.com/toyz/cskit/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.IndentSize)
	assert.False(t, cfg.UseTabs)
	assert.Equal(t, "platform", cfg.LineEnding)
	assert.Equal(t, "none", cfg.Validation)
	assert.False(t, cfg.AutoRegions)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Empty(t, cfg.Header)
}

func TestLoad_Files(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "cskit.toml",
			content: `indent_size = 2
line_ending = "crlf"
validation = "syntax"
auto_regions = true
header = ["<auto-generated/>"]
`,
		},
		{
			name: "yaml",
			file: "cskit.yml",
			content: `indent_size: 2
line_ending: crlf
validation: syntax
auto_regions: true
header:
  - <auto-generated/>
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(NewViper(), writeFile(t, tc.file, tc.content))
			require.NoError(t, err)

			assert.Equal(t, 2, cfg.IndentSize)
			assert.Equal(t, "crlf", cfg.LineEnding)
			assert.Equal(t, "syntax", cfg.Validation)
			assert.True(t, cfg.AutoRegions)
			assert.Equal(t, []string{"<auto-generated/>"}, cfg.Header)
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "cskit.toml", "indent_size = 2\nauto_regions = false\n")
	t.Setenv("CSKIT_INDENT_SIZE", "8")
	t.Setenv("CSKIT_AUTO_REGIONS", "true")

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.IndentSize)
	assert.True(t, cfg.AutoRegions)
}

func TestLoad_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cskit.yaml"), []byte("use_tabs: true\n"), 0o644))
	chdir(t, dir)

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.True(t, cfg.UseTabs)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "bad line ending", content: "line_ending = \"cr\"\n"},
		{name: "bad validation", content: "validation = \"semantic\"\n"},
		{name: "bad indent", content: "indent_size = 0\n"},
		{name: "bad log format", content: "log_format = \"xml\"\n"},
		{name: "malformed", content: "indent_size = = 2\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(NewViper(), writeFile(t, "cskit.toml", tc.content))
			require.Error(t, err)
			assert.Equal(t, cserrors.ConfigurationErrorCode, cserrors.CodeOf(err))
		})
	}

	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestConfig_EmitOptions(t *testing.T) {
	testCases := []struct {
		name   string
		cfg    Config
		indent string
		eol    string
		level  emit.ValidationLevel
	}{
		{
			name:   "spaces lf",
			cfg:    Config{IndentSize: 2, LineEnding: "lf", Validation: "none", LogFormat: "console"},
			indent: "  ",
			eol:    "\n",
			level:  emit.ValidationNone,
		},
		{
			name:   "tabs crlf syntax",
			cfg:    Config{IndentSize: 4, UseTabs: true, LineEnding: "CRLF", Validation: "syntax", LogFormat: "json"},
			indent: "\t",
			eol:    "\r\n",
			level:  emit.ValidationSyntax,
		},
		{
			name:   "platform",
			cfg:    Config{IndentSize: 4, LineEnding: "platform", Validation: "none", LogFormat: "console"},
			indent: "    ",
			eol:    "",
			level:  emit.ValidationNone,
		},
	}

	logger := zap.NewNop()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := tc.cfg.EmitOptions(logger)
			require.NoError(t, err)
			assert.Equal(t, tc.indent, opts.Indentation)
			assert.Equal(t, tc.eol, opts.LineEnding)
			assert.Equal(t, tc.level, opts.Validation)
			assert.Same(t, logger, opts.Logger)
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and PWD, restoring both when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
