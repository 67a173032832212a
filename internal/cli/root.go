// Package cli implements the cskit command line: parsing signatures and
// emitting types from manifests.
package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/toyz/cskit/internal/config"
	"github.com/toyz/cskit/internal/logging"
)

// Version is set at build time with -ldflags "-X github.com/toyz/cskit/internal/cli.Version=..."
var Version = "dev"

// ErrValidationFailed is returned when an emitted file carries diagnostics
var ErrValidationFailed = errors.New("emitted code failed validation")

// app is the state shared by every command of one invocation
type app struct {
	out     io.Writer
	errOut  io.Writer
	v       *viper.Viper
	cfgFile string
	noColor bool

	cfg      *config.Config
	logger   *zap.Logger
	reporter *Reporter
}

// NewRootCommand builds the command tree writing to out and errOut
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, v: config.NewViper()}
	return a.rootCommand()
}

// Execute runs the command line and reports a failure on errOut. The returned
// error is the one already reported.
func Execute(args []string, out, errOut io.Writer) error {
	a := &app{out: out, errOut: errOut, v: config.NewViper()}
	root := a.rootCommand()
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return nil
	}
	reporter := a.reporter
	if reporter == nil {
		reporter = NewReporter(errOut, false, a.noColor)
	}
	if !errors.Is(err, ErrValidationFailed) {
		reporter.ReportError(err)
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cskit",
		Short: "Build and emit C# declarations",
		Long: `cskit parses one-line C# declarations and emits complete source files
from declaration manifests.

Settings come from flags, CSKIT_* environment variables and an optional
cskit.toml or cskit.yaml in the working directory (or --config).

Examples:
  cskit parse "public static bool TryParse(string s, out int value)"
  cskit emit calculator.yaml -o Calculator.cs
  CSKIT_VALIDATION=syntax cskit emit calculator.toml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (TOML or YAML)")
	flags.BoolP("verbose", "v", false, "debug logging and full error chains")
	flags.String("log-format", "console", "log format: console or json")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	_ = a.v.BindPFlag(config.KeyVerbose, flags.Lookup("verbose"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	root.AddCommand(a.parseCommand(), a.emitCommand(), a.versionCommand())
	return root
}

// setup loads configuration and builds the logger before any subcommand runs
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Verbose, cfg.LogFormat, a.errOut)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.With(zap.String("command", cmd.Name()))
	a.reporter = NewReporter(a.errOut, cfg.Verbose, a.noColor)
	a.logger.Debug("configuration loaded",
		zap.String("file", a.v.ConfigFileUsed()),
		zap.String("validation", cfg.Validation),
		zap.Bool("auto_regions", cfg.AutoRegions))
	return nil
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cskit version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), "cskit "+Version+"\n")
			return err
		},
	}
}
