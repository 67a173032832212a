// Package config loads cskit settings. Precedence, highest first: command-line
// flags, CSKIT_* environment variables, the config file, built-in defaults.
package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/toyz/cskit/pkg/emit"
	cserrors "github.com/toyz/cskit/pkg/errors"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "CSKIT"

// Keys, also used as flag names with '_' replaced by '-'
const (
	KeyIndentSize           = "indent_size"
	KeyUseTabs              = "use_tabs"
	KeyLineEnding           = "line_ending"
	KeyValidation           = "validation"
	KeyAutoRegions          = "auto_regions"
	KeyBlockScopedNamespace = "block_scoped_namespace"
	KeyHeader               = "header"
	KeyVerbose              = "verbose"
	KeyLogFormat            = "log_format"
)

// Config holds every setting the CLI understands
type Config struct {
	IndentSize           int      `mapstructure:"indent_size"`
	UseTabs              bool     `mapstructure:"use_tabs"`
	LineEnding           string   `mapstructure:"line_ending"` // lf, crlf or platform
	Validation           string   `mapstructure:"validation"`  // none or syntax
	AutoRegions          bool     `mapstructure:"auto_regions"`
	BlockScopedNamespace bool     `mapstructure:"block_scoped_namespace"`
	Header               []string `mapstructure:"header"`
	Verbose              bool     `mapstructure:"verbose"`
	LogFormat            string   `mapstructure:"log_format"` // console or json
}

// SetDefaults registers the defaults. Every key must have one so environment
// variables are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyIndentSize, 4)
	v.SetDefault(KeyUseTabs, false)
	v.SetDefault(KeyLineEnding, "platform")
	v.SetDefault(KeyValidation, "none")
	v.SetDefault(KeyAutoRegions, false)
	v.SetDefault(KeyBlockScopedNamespace, false)
	v.SetDefault(KeyHeader, []string{})
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyLogFormat, "console")
}

// NewViper returns a viper instance with defaults and environment binding
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the config file at path into v and unmarshals the result. With an
// empty path, cskit.toml or cskit.yaml in the working directory is used when
// present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "yml" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, cserrors.WrapConfigurationError(path, "read", err).
				WithSuggestion("config files may be TOML or YAML")
		}
	} else {
		v.SetConfigName("cskit")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, cserrors.WrapConfigurationError("cskit", "read", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, cserrors.WrapConfigurationError(v.ConfigFileUsed(), "unmarshal", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check
func (c *Config) Validate() error {
	if c.IndentSize < 1 || c.IndentSize > 16 {
		return cserrors.Newf(cserrors.ConfigurationErrorCode, "indent_size must be between 1 and 16, got %d", c.IndentSize)
	}
	if _, err := c.lineEnding(); err != nil {
		return err
	}
	if _, err := emit.ParseValidationLevel(c.Validation); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return cserrors.Newf(cserrors.ConfigurationErrorCode, "unknown log_format %q", c.LogFormat).
			WithSuggestion("use 'console' or 'json'")
	}
	return nil
}

func (c *Config) lineEnding() (string, error) {
	switch strings.ToLower(c.LineEnding) {
	case "", "platform":
		return "", nil
	case "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	default:
		return "", cserrors.Newf(cserrors.ConfigurationErrorCode, "unknown line_ending %q", c.LineEnding).
			WithSuggestion("use 'lf', 'crlf' or 'platform'")
	}
}

// EmitOptions translates the configuration into emitter options
func (c *Config) EmitOptions(logger *zap.Logger) (emit.Options, error) {
	if err := c.Validate(); err != nil {
		return emit.Options{}, err
	}
	eol, _ := c.lineEnding()
	level, _ := emit.ParseValidationLevel(c.Validation)

	indent := strings.Repeat(" ", c.IndentSize)
	if c.UseTabs {
		indent = "\t"
	}
	return emit.Options{
		Indentation:          indent,
		LineEnding:           eol,
		Validation:           level,
		AutoRegions:          c.AutoRegions,
		Header:               append([]string(nil), c.Header...),
		BlockScopedNamespace: c.BlockScopedNamespace,
		Logger:               logger,
	}, nil
}
