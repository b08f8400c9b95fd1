package orchestration

import (
	"context"
	"io"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
)

// BatchResult aggregates a CheckAll run.
type BatchResult struct {
	Reports  []Report
	Rejected []Candidate
	// Err is set when the context ended before every candidate was processed.
	Err error
}

// CheckAll parses and checks every argument in order. Rejected arguments are
// presented and skipped. ctx is consulted between candidates only, so an
// in-flight candidate always completes.
func (d *Driver) CheckAll(ctx context.Context, args []string, presenter ResultPresenter, progress ProgressReporter, out io.Writer) BatchResult {
	if progress == nil {
		progress = NullProgressReporter{}
	}
	var result BatchResult
	presenter.PresentHeader(d.Threads, out)

	for _, c := range ParseCandidates(args) {
		if err := ctx.Err(); err != nil {
			result.Err = err
			d.Logger.Debug("batch interrupted", logging.Int("remaining", len(args)-c.Index))
			return result
		}
		if c.Rejected() {
			d.Logger.Debug("candidate rejected", logging.String("arg", c.Arg), logging.Err(c.Err))
			d.Observer.ObserveRejected()
			result.Rejected = append(result.Rejected, c)
			presenter.PresentRejected(c, out)
			continue
		}

		progress.Begin(c, out)
		report := d.Check(ctx, c.Value)
		progress.End()

		report.Candidate = c
		result.Reports = append(result.Reports, report)
		presenter.PresentReport(report, out)
	}
	return result
}

// ExitCode maps a batch outcome to a process exit code. Context errors take
// precedence, then verdict mismatches. Rejected arguments are reported where
// they occur and leave the exit code at ExitSuccess.
func (r BatchResult) ExitCode() int {
	if r.Err != nil {
		return apperrors.ExitCodeFor(r.Err)
	}
	for _, report := range r.Reports {
		if !report.Consistent() {
			return apperrors.ExitErrorMismatch
		}
	}
	return apperrors.ExitSuccess
}
