package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/primecalc/internal/errors"
)

// FileConfig mirrors the subset of AppConfig that may be set from YAML.
// Pointer fields distinguish "absent" from the zero value.
type FileConfig struct {
	Threads     *int   `yaml:"threads"`
	Timeout     string `yaml:"timeout"`
	Quiet       *bool  `yaml:"quiet"`
	Verbose     *bool  `yaml:"verbose"`
	Details     *bool  `yaml:"details"`
	NoColor     *bool  `yaml:"no_color"`
	LogLevel    string `yaml:"log_level"`
	MetricsFile string `yaml:"metrics_file"`
	Serve       string `yaml:"serve"`
	Output      string `yaml:"output"`
}

// LoadFile reads and strictly decodes a YAML configuration file. Unknown keys
// are rejected.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("reading config file: %v", err)
	}
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, apperrors.NewConfigError("parsing config file %s: %v", path, err)
	}
	if fc.Timeout != "" {
		if _, err := time.ParseDuration(fc.Timeout); err != nil {
			return FileConfig{}, apperrors.NewConfigError("config file %s: invalid timeout %q", path, fc.Timeout)
		}
	}
	return fc, nil
}

// apply copies file values into c for every option not set on the command line.
func (fc FileConfig) apply(c *AppConfig, fs *flag.FlagSet) {
	if fc.Threads != nil && !isFlagSetAny(fs, "threads", "t") {
		c.Threads = *fc.Threads
		c.ThreadSource = "file"
	}
	if fc.Timeout != "" && !isFlagSet(fs, "timeout") {
		c.Timeout, _ = time.ParseDuration(fc.Timeout)
	}
	applyBool(fc.Quiet, &c.Quiet, fs, "quiet", "q")
	applyBool(fc.Verbose, &c.Verbose, fs, "verbose", "v")
	applyBool(fc.Details, &c.Details, fs, "details", "d")
	applyBool(fc.NoColor, &c.NoColor, fs, "no-color")
	applyString(fc.LogLevel, &c.LogLevel, fs, "log-level")
	applyString(fc.MetricsFile, &c.MetricsFile, fs, "metrics-file")
	applyString(fc.Serve, &c.Serve, fs, "serve")
	applyString(fc.Output, &c.OutputFile, fs, "output", "o")
}

func applyBool(src *bool, dst *bool, fs *flag.FlagSet, names ...string) {
	if src != nil && !isFlagSetAny(fs, names...) {
		*dst = *src
	}
}

func applyString(src string, dst *string, fs *flag.FlagSet, names ...string) {
	if src != "" && !isFlagSetAny(fs, names...) {
		*dst = src
	}
}
