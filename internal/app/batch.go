package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/primecalc/internal/cli"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/sysmon"
	"github.com/agbru/primecalc/internal/ui"
)

// runBatch checks every candidate in order and prints the reports.
func (a *Application) runBatch(ctx context.Context, driver *orchestration.Driver, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var (
		presenter orchestration.ResultPresenter
		progress  orchestration.ProgressReporter
	)
	if a.Config.Quiet {
		presenter = cli.QuietPresenter{Errors: a.ErrWriter}
		progress = orchestration.NullProgressReporter{}
	} else {
		presenter = cli.CLIResultPresenter{Details: a.Config.Details, Errors: a.ErrWriter}
		progress = cli.NewCLIProgressReporter(a.ErrWriter)
	}

	details := a.Config.Details && !a.Config.Quiet
	if details {
		cli.PrintExecutionConfig(a.Config, out)
	}
	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	result := driver.CheckAll(ctx, a.Config.Candidates, presenter, progress, out)

	if details {
		cli.DisplayMemoryStats(collector.Snapshot().Since(before), out)
		cli.DisplaySystemStats(sysmon.Sample(), out)
	}
	if code := a.writeArtifacts(driver.Threads, result, out); code != apperrors.ExitSuccess {
		return code
	}

	if result.Err != nil {
		err := result.Err
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: "batch", Limit: a.Config.Timeout}
		}
		return apperrors.HandleError(err, a.ErrWriter, cli.CLIColorProvider{})
	}
	return result.ExitCode()
}

// writeArtifacts saves the report file and the metrics textfile when
// requested.
func (a *Application) writeArtifacts(threads int, result orchestration.BatchResult, out io.Writer) int {
	if path := a.Config.OutputFile; path != "" {
		if err := cli.WriteReportsToFile(path, threads, result); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving reports: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			fmt.Fprintf(out, "%sReports saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
		}
	}
	if path := a.Config.MetricsFile; path != "" {
		if err := a.Recorder.WriteTextfile(path); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		a.Logger.Info("metrics written", logging.String("path", path))
	}
	return apperrors.ExitSuccess
}
