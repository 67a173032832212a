package emit

import (
	"runtime"
	"strings"

	"go.uber.org/zap"

	cserrors "github.com/toyz/cskit/pkg/errors"
	"github.com/toyz/cskit/pkg/syntax"
)

// ValidationLevel selects what happens to rendered text before it is returned
type ValidationLevel int

const (
	// ValidationNone returns the rendered text as validated without checking it
	ValidationNone ValidationLevel = iota
	// ValidationSyntax parses the rendered text and fails on syntax errors
	ValidationSyntax
)

// String returns the lower-case level name used in configuration
func (v ValidationLevel) String() string {
	if v == ValidationSyntax {
		return "syntax"
	}
	return "none"
}

// ParseValidationLevel maps "none" or "syntax" (any case) to a level
func ParseValidationLevel(s string) (ValidationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ValidationNone, nil
	case "syntax":
		return ValidationSyntax, nil
	default:
		return ValidationNone, cserrors.Newf(cserrors.ConfigurationErrorCode, "unknown validation level %q", s).
			WithSuggestion("use 'none' or 'syntax'")
	}
}

// DefaultIndentation is the indent unit used when Options.Indentation is empty
const DefaultIndentation = "    "

// Options configures emission
type Options struct {
	// Indentation is one indent unit; empty means DefaultIndentation
	Indentation string
	// LineEnding separates lines; empty means the platform newline
	LineEnding string
	Validation ValidationLevel
	// AutoRegions groups the root type's members into Fields, Constructors,
	// Properties and Methods regions
	AutoRegions bool
	// Header lines are written as comments at the top of the file. Lines that
	// already start with "//" or "#" are written as given.
	Header []string
	// BlockScopedNamespace renders "namespace X { ... }" instead of "namespace X;"
	BlockScopedNamespace bool
	// Checker runs every level above ValidationNone; nil means the tree-sitter
	// C# checker
	Checker syntax.Checker
	// Logger receives stage logs; nil disables logging
	Logger *zap.Logger
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{}.withDefaults()
}

// PlatformLineEnding returns "\r\n" on Windows and "\n" elsewhere
func PlatformLineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

func (o Options) withDefaults() Options {
	if o.Indentation == "" {
		o.Indentation = DefaultIndentation
	}
	if o.LineEnding == "" {
		o.LineEnding = PlatformLineEnding()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Checker == nil && o.Validation != ValidationNone {
		o.Checker = syntax.NewTreeSitter()
	}
	o.Header = append([]string(nil), o.Header...)
	return o
}
