// Package logging builds the zap logger used by the cskit command.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cserrors "github.com/toyz/cskit/pkg/errors"
)

// Formats accepted by New
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to w. Verbose enables debug output; otherwise
// only warnings and errors are written so command output stays clean.
func New(verbose bool, format string, w io.Writer) (*zap.Logger, error) {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	var encoder zapcore.Encoder
	switch format {
	case "", FormatConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		cfg.CallerKey = ""
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	case FormatJSON:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	default:
		return nil, cserrors.Newf(cserrors.ConfigurationErrorCode, "unknown log format %q", format).
			WithContext("format", format).
			WithSuggestion("use 'console' or 'json'")
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core).Named("cskit"), nil
}
