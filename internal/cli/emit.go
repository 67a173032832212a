package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/toyz/cskit/internal/config"
	"github.com/toyz/cskit/internal/manifest"
	"github.com/toyz/cskit/pkg/emit"
	cserrors "github.com/toyz/cskit/pkg/errors"
)

func (a *app) emitCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "emit <manifest>",
		Short: "Emit a C# file from a declaration manifest",
		Long: `Build the type described by a YAML or TOML manifest and emit it as a C#
source file. Diagnostics are printed and the command fails when validation
is enabled and the emitted code does not parse.

Examples:
  cskit emit calculator.yaml
  cskit emit calculator.toml -o src/Calculator.cs --validation syntax --auto-regions`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEmit(cmd.Context(), cmd.OutOrStdout(), args[0], output)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	flags.String("validation", "none", "validation level: none or syntax")
	flags.Bool("auto-regions", false, "group members into regions by category")
	flags.String("line-ending", "platform", "line ending: lf, crlf or platform")
	flags.Int("indent-size", 4, "spaces per indent level")
	flags.Bool("use-tabs", false, "indent with tabs")
	flags.Bool("block-namespace", false, "emit a block-scoped namespace")
	flags.StringSlice("header", nil, "header comment lines")

	for key, name := range map[string]string{
		config.KeyValidation:           "validation",
		config.KeyAutoRegions:          "auto-regions",
		config.KeyLineEnding:           "line-ending",
		config.KeyIndentSize:           "indent-size",
		config.KeyUseTabs:              "use-tabs",
		config.KeyBlockScopedNamespace: "block-namespace",
		config.KeyHeader:               "header",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}
	return cmd
}

func (a *app) runEmit(ctx context.Context, stdout io.Writer, path, output string) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	t, err := manifest.Build(m)
	if err != nil {
		return cserrors.WrapManifestError(path, err)
	}
	opts, err := a.cfg.EmitOptions(a.logger)
	if err != nil {
		return err
	}
	if a.cfg.UseTabs && a.v.IsSet(config.KeyIndentSize) {
		a.reporter.ReportWarning("indent_size is ignored when use_tabs is set")
	}

	res := emit.New(opts).EmitContext(ctx, t)
	valid, ok := res.Validated()
	if !ok {
		a.reporter.ReportDiagnostics(path, res.Diagnostics())
		return ErrValidationFailed
	}

	if output == "" {
		_, err := io.WriteString(stdout, valid.Code())
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cserrors.WrapFileSystemError("create directory", dir, err)
		}
	}
	if err := os.WriteFile(output, []byte(valid.Code()), 0o644); err != nil {
		return cserrors.WrapFileSystemError("write", output, err)
	}
	a.logger.Info("wrote file", zap.String("path", output), zap.String("type", t.FullName()))
	return nil
}
