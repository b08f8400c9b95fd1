// Package config parses command-line flags, environment variables and an
// optional YAML file into the application configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "PRIMECALC_"

// Default values for the configurable options.
const (
	DefaultTimeout  = 5 * time.Minute
	DefaultLogLevel = "warn"
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// Threads is the partition count N. Zero means "detect from the host".
	Threads int
	// ThreadSource records where Threads came from (flag, env, file or a probe name).
	ThreadSource string
	// Timeout bounds the whole batch.
	Timeout time.Duration
	// Quiet prints one line per candidate.
	Quiet bool
	// Verbose adds partition logging at debug level.
	Verbose bool
	// Details prints partition layouts and resource stats.
	Details bool
	// NoColor disables ANSI colors.
	NoColor bool
	// LogLevel is the zerolog level name for diagnostics on stderr.
	LogLevel string
	// MetricsFile, when set, receives a Prometheus text exposition after the batch.
	MetricsFile string
	// Serve, when set, is the listen address of the HTTP mode.
	Serve string
	// TUI launches the interactive dashboard.
	TUI bool
	// Calibrate sweeps thread counts for each candidate.
	Calibrate bool
	// Interactive starts a prompt that checks numbers read from stdin.
	Interactive bool
	// OutputFile, when set, receives a plain-text copy of every report.
	OutputFile string
	// Completion names a shell whose completion script is printed instead of
	// running a batch.
	Completion string
	// ConfigFile is the optional YAML configuration file.
	ConfigFile string
	// Candidates holds the positional arguments in order.
	Candidates []string
}

// UsageLine returns the one-line usage string for the given program name.
func UsageLine(programName string) string {
	return fmt.Sprintf("Usage: %s num1 [num2 num3 ...]", programName)
}

// ParseConfig parses args (without the program name) into an AppConfig.
//
// Resolution order, highest priority first: command-line flags, PRIMECALC_*
// environment variables, the YAML file named by --config, then defaults.
// A missing candidate list yields an apperrors.UsageError unless --serve is set.
// flag.ErrHelp is returned unchanged when -h/--help is requested; any other
// flag error becomes an apperrors.ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintln(errWriter, UsageLine(programName))
		fmt.Fprintln(errWriter, "\nFlags:")
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.IntVar(&config.Threads, "threads", 0, "Number of partitions/threads (0 = detect hardware concurrency).")
	fs.IntVar(&config.Threads, "t", 0, "Shorthand for --threads.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration for the whole batch.")
	fs.BoolVar(&config.Quiet, "quiet", false, "One line per candidate, suitable for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Log partition dispatch at debug level.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.Details, "details", false, "Show partition layouts and resource statistics.")
	fs.BoolVar(&config.Details, "d", false, "Shorthand for --details.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level (debug, info, warn, error).")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the batch.")
	fs.StringVar(&config.Serve, "serve", "", "Run the HTTP API on this address instead of a batch (e.g. :8080).")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive dashboard.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Sweep thread counts for each candidate and report the fastest.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Read numbers from stdin in an interactive prompt.")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for --interactive.")
	fs.StringVar(&config.OutputFile, "output", "", "Also write every report to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")
	fs.StringVar(&config.ConfigFile, "config", "", "Path to a YAML configuration file.")

	if err := fs.Parse(separateNumericArgs(fs, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.ConfigError{Message: err.Error()}
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		file, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		file.apply(&config, fs)
	}
	applyEnvOverrides(&config, fs)

	if isFlagSetAny(fs, "threads", "t") {
		config.ThreadSource = "flag"
	}
	config.Candidates = fs.Args()

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	if len(config.Candidates) == 0 && !config.NeedsNoCandidates() {
		return AppConfig{}, apperrors.UsageError{Usage: UsageLine(programName), Cause: apperrors.ErrNoCandidates}
	}
	return config, nil
}

// Validate checks value ranges that the flag package cannot express.
func (c AppConfig) Validate() error {
	if c.Threads < 0 {
		return apperrors.NewConfigError("threads must be >= 0, got %d", c.Threads)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	modes := 0
	for _, on := range []bool{c.TUI, c.Serve != "", c.Interactive} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--tui, --serve and --interactive are mutually exclusive")
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish":
	default:
		return apperrors.NewConfigError("unsupported completion shell %q (accepted values: bash, zsh, fish)", c.Completion)
	}
	return nil
}

// NeedsNoCandidates reports whether the selected mode runs without positional
// arguments.
func (c AppConfig) NeedsNoCandidates() bool {
	return c.Serve != "" || c.Interactive || c.Completion != ""
}

// separateNumericArgs inserts "--" before the first argument that is an
// integer literal in flag position, so "-7" reaches the candidate list
// instead of failing as an undefined flag. Values of non-boolean flags are
// skipped, which keeps "--threads -3" a flag value.
func separateNumericArgs(fs *flag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args
		}
		if isIntegerLiteral(arg) {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
		if len(arg) < 2 || arg[0] != '-' {
			// flag parsing stops at the first positional argument.
			return args
		}
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBoolFlag(f) {
			i++
		}
	}
	return args
}

// isIntegerLiteral reports whether s parses as a signed integer with Go base
// prefixes. Out-of-range literals still count so that they are rejected as
// candidates rather than as flags.
func isIntegerLiteral(s string) bool {
	_, err := strconv.ParseInt(s, 0, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
