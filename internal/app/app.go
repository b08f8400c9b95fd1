// Package app wires configuration, logging, metrics and the driver together
// and dispatches to the selected mode.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/primecalc/internal/calibration"
	"github.com/agbru/primecalc/internal/cli"
	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/server"
	"github.com/agbru/primecalc/internal/sysmon"
	"github.com/agbru/primecalc/internal/tui"
	"github.com/agbru/primecalc/internal/ui"
)

// Application represents the primecalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Recorder  *metrics.Recorder

	in     io.Reader
	detect func() sysmon.Concurrency
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used by the interactive prompt.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.in = in }
}

// WithConcurrencyProbe replaces host concurrency detection.
func WithConcurrencyProbe(detect func() sysmon.Concurrency) AppOption {
	return func(a *Application) { a.detect = detect }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, detect: sysmon.HardwareConcurrency}
	for _, opt := range opts {
		opt(app)
	}

	programName := "primecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = config.ResolveThreads(cfg, app.detect)

	level, _ := logging.ParseLevel(app.Config.LogLevel)
	if app.Config.Verbose {
		level = zerolog.DebugLevel
	}
	if app.Config.Serve != "" {
		app.Logger = logging.NewZerologAdapter(zerolog.New(errWriter).Level(level).With().Timestamp().Str("component", "server").Logger())
	} else {
		app.Logger = logging.NewConsoleLogger(errWriter, "primecalc", level)
	}
	app.Logger.Debug("configuration resolved",
		logging.Int("threads", app.Config.Threads),
		logging.String("source", app.Config.ThreadSource),
		logging.Int("candidates", len(app.Config.Candidates)))

	app.Recorder = metrics.NewRecorder()
	app.Recorder.SetThreads(app.Config.Threads)
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor || !ui.IsTerminal(out))
	driver := orchestration.NewDriver(a.Config.Threads,
		orchestration.WithLogger(a.Logger),
		orchestration.WithObserver(a.Recorder))

	switch {
	case a.Config.Serve != "":
		return a.runServer(ctx, driver)
	case a.Config.TUI:
		return a.runTUI(ctx, driver)
	case a.Config.Interactive:
		return a.runREPL(driver, out)
	case a.Config.Calibrate:
		return a.runCalibration(ctx, driver, out)
	}
	return a.runBatch(ctx, driver, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until ctx ends or a signal arrives.
func (a *Application) runServer(ctx context.Context, driver *orchestration.Driver) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.NewServer(a.Config.Serve, driver, a.Recorder, a.Logger)
	if err := srv.Run(ctx); err != nil {
		return apperrors.HandleError(err, a.ErrWriter, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context, driver *orchestration.Driver) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, driver, a.Config, Version)
}

// runREPL starts the interactive prompt.
func (a *Application) runREPL(driver *orchestration.Driver, out io.Writer) int {
	repl := cli.NewREPL(driver, cli.REPLConfig{Timeout: a.Config.Timeout, Details: a.Config.Details})
	if a.in != nil {
		repl.SetInput(a.in)
	}
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runCalibration sweeps thread counts for every candidate.
func (a *Application) runCalibration(ctx context.Context, driver *orchestration.Driver, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	code, err := calibration.RunCalibration(ctx, driver, a.Config.Candidates, a.Config.Threads, out)
	if err != nil {
		return apperrors.HandleError(apperrors.WrapError(err, "calibration"), a.ErrWriter, cli.CLIColorProvider{})
	}
	return code
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// HandleStartupError reports an error returned by New and returns the exit
// code. Help requests exit successfully; usage errors print the usage line.
func HandleStartupError(err error, errWriter io.Writer) int {
	if IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	var usageErr apperrors.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(errWriter, usageErr.Usage)
		return apperrors.ExitErrorUsage
	}
	return apperrors.HandleError(err, errWriter, nil)
}
