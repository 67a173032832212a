package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/toyz/cskit/pkg/decl"
	"github.com/toyz/cskit/pkg/emit"
	"github.com/toyz/cskit/pkg/signature"
)

func (a *app) parseCommand() *cobra.Command {
	var (
		render  bool
		summary string
	)
	cmd := &cobra.Command{
		Use:   "parse <signature>",
		Short: "Parse a declaration and print its canonical form",
		Long: `Parse one C# declaration, report its kind and print it back in canonical
form. With --render the member is printed as it would be emitted inside a class.

Examples:
  cskit parse "public static T Max<T>(this IEnumerable<T> source) where T : IComparable<T>"
  cskit parse --render --summary "Adds two numbers." "public int Add(int a, int b) => a + b"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := signature.Parse(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("parsed", zap.Stringer("kind", m.Kind()), zap.String("name", m.DeclName()))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kind: %s\n", m.Kind())
			fmt.Fprintf(out, "signature: %s\n", emit.Signature(m))
			if !render {
				return nil
			}

			if summary != "" {
				m = withSummary(m, summary)
			}
			opts, err := a.cfg.EmitOptions(a.logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, emit.RenderMember(m, opts))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&render, "render", "r", false, "print the member as emitted")
	cmd.Flags().StringVar(&summary, "summary", "", "documentation summary used with --render")
	return cmd
}

func withSummary(m decl.Member, summary string) decl.Member {
	switch n := m.(type) {
	case decl.Method:
		return n.WithSummary(summary)
	case decl.Constructor:
		return n.WithSummary(summary)
	case decl.Operator:
		return n.WithSummary(summary)
	case decl.Property:
		return n.WithSummary(summary)
	case decl.Indexer:
		return n.WithSummary(summary)
	case decl.Field:
		return n.WithSummary(summary)
	case decl.Event:
		return n.WithSummary(summary)
	case decl.EnumValue:
		return n.WithSummary(summary)
	case decl.Type:
		return n.WithSummary(summary)
	default:
		return m
	}
}
