package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// fileConfig mirrors AppConfig for YAML decoding. Pointer fields tell an
// absent key apart from a zero value.
type fileConfig struct {
	N           *string `yaml:"n"`
	Algo        *string `yaml:"algo"`
	Timeout     *string `yaml:"timeout"`
	Quiet       *bool   `yaml:"quiet"`
	Verbose     *bool   `yaml:"verbose"`
	Details     *bool   `yaml:"details"`
	LastDigits  *int    `yaml:"last_digits"`
	Output      *string `yaml:"output"`
	FixedWidth  *bool   `yaml:"fixed_width"`
	Metrics     *bool   `yaml:"metrics"`
	LogLevel    *string `yaml:"log_level"`
	Interactive *bool   `yaml:"interactive"`
	TUI         *bool   `yaml:"tui"`
	NoColor     *bool   `yaml:"no_color"`
}

// loadFile reads and decodes a YAML configuration file. Unknown keys are
// rejected so that typos do not go unnoticed.
func loadFile(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "opening config file")
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewConfigError("parsing config file %s: %v", path, err)
	}
	return &fc, nil
}

// applyFileConfig resolves the config file path (flag, then FIBSEQ_CONFIG)
// and applies its values for every flag not set on the command line.
func applyFileConfig(config *AppConfig, fs *flag.FlagSet) error {
	if config.ConfigFile == "" {
		config.ConfigFile = os.Getenv(EnvPrefix + "CONFIG")
	}
	if config.ConfigFile == "" {
		return nil
	}
	fc, err := loadFile(config.ConfigFile)
	if err != nil {
		return err
	}
	return fc.apply(config, fs)
}

func (fc *fileConfig) apply(c *AppConfig, fs *flag.FlagSet) error {
	set := func(flags ...string) bool { return !isFlagSetAny(fs, flags...) }

	if fc.N != nil && set("n") {
		n, err := ParseIndex(*fc.N)
		if err != nil {
			return apperrors.WrapError(err, "config file")
		}
		c.N = n
	}
	if fc.Timeout != nil && set("timeout") {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("config file: invalid timeout %q: %v", *fc.Timeout, err)
		}
		c.Timeout = d
	}
	applyString(fc.Algo, &c.Algo, set("algo"))
	applyString(fc.Output, &c.OutputFile, set("output", "o"))
	applyString(fc.LogLevel, &c.LogLevel, set("log-level"))
	applyBool(fc.Quiet, &c.Quiet, set("quiet", "q"))
	applyBool(fc.Verbose, &c.Verbose, set("verbose", "v"))
	applyBool(fc.Details, &c.Details, set("details", "d"))
	applyBool(fc.FixedWidth, &c.FixedWidth, set("fixed-width"))
	applyBool(fc.Metrics, &c.Metrics, set("metrics"))
	applyBool(fc.Interactive, &c.Interactive, set("interactive", "i"))
	applyBool(fc.TUI, &c.TUI, set("tui"))
	applyBool(fc.NoColor, &c.NoColor, set("no-color"))
	if fc.LastDigits != nil && set("last-digits") {
		c.LastDigits = *fc.LastDigits
	}
	return nil
}

func applyString(src *string, dst *string, ok bool) {
	if src != nil && ok {
		*dst = *src
	}
}

func applyBool(src *bool, dst *bool, ok bool) {
	if src != nil && ok {
		*dst = *src
	}
}
