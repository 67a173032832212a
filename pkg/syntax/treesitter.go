package syntax

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	cserrors "github.com/toyz/cskit/pkg/errors"
)

// ErrUnavailable is returned when the C# grammar cannot be loaded or the parser
// produced no tree.
var ErrUnavailable = cserrors.ErrCheckerUnavailable

// maxReported caps the diagnostics collected from one parse.
const maxReported = 50

// TreeSitter checks C# text with the tree-sitter C# grammar
type TreeSitter struct{}

// NewTreeSitter creates a checker. A new tree-sitter parser is created for every
// call, so one TreeSitter may be shared between goroutines.
func NewTreeSitter() *TreeSitter {
	return &TreeSitter{}
}

// Check implements Checker
func (c *TreeSitter) Check(source []byte) ([]Diagnostic, error) {
	return c.CheckContext(context.Background(), source)
}

// CheckContext implements ContextChecker. A cancelled ctx stops the parse and
// is returned as a CheckerUnavailable error.
func (c *TreeSitter) CheckContext(ctx context.Context, source []byte) ([]Diagnostic, error) {
	if !utf8.Valid(source) {
		return []Diagnostic{{
			Severity: SeverityError,
			Code:     CodeInvalid,
			Message:  "source is not valid UTF-8",
		}}, nil
	}

	lang := csharp.GetLanguage()
	if lang == nil {
		return nil, ErrUnavailable
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, cserrors.Wrap(cserrors.CheckerUnavailableCode, "tree-sitter parse failed", err)
	}
	if tree == nil {
		return nil, ErrUnavailable
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, ErrUnavailable
	}
	if !root.HasError() {
		return nil, nil
	}

	var diags []Diagnostic
	collect(root, source, &diags)
	if len(diags) == 0 {
		// HasError without a located ERROR or MISSING node
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Code:     CodeInvalid,
			Message:  "source contains syntax errors",
		})
	}
	return diags, nil
}

func collect(n *sitter.Node, source []byte, diags *[]Diagnostic) {
	if len(*diags) >= maxReported || n == nil {
		return
	}
	pos := n.StartPoint()
	switch {
	case n.IsMissing():
		*diags = append(*diags, Diagnostic{
			Severity: SeverityError,
			Code:     CodeMissing,
			Message:  fmt.Sprintf("missing %s", n.Type()),
			Line:     int(pos.Row) + 1,
			Column:   int(pos.Column) + 1,
		})
		return
	case n.Type() == "ERROR":
		*diags = append(*diags, Diagnostic{
			Severity: SeverityError,
			Code:     CodeUnexpected,
			Message:  fmt.Sprintf("unexpected %s", snippet(n.Content(source))),
			Line:     int(pos.Row) + 1,
			Column:   int(pos.Column) + 1,
		})
		return
	}
	if !n.HasError() {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collect(n.Child(i), source, diags)
	}
}

func snippet(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > 40 {
		text = text[:40] + "..."
	}
	if text == "" {
		return "input"
	}
	return fmt.Sprintf("%q", text)
}
