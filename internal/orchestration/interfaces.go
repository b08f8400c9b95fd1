package orchestration

import (
	"io"
	"time"

	"github.com/agbru/primecalc/internal/primality"
)

// Candidate is one command-line argument after parsing. Err is non-nil when
// the argument could not be converted to a 64-bit integer, in which case Value
// is meaningless.
type Candidate struct {
	// Index is the zero-based position of the argument in the batch.
	Index int
	// Arg is the raw argument as supplied by the user.
	Arg string
	// Value is the parsed integer.
	Value int64
	// Err holds the parse failure, if any.
	Err error
}

// Rejected reports whether the argument failed to parse.
func (c Candidate) Rejected() bool {
	return c.Err != nil
}

// PhaseResult is the outcome of one timed run of the tester.
type PhaseResult struct {
	// Prime is the verdict of the run.
	Prime bool
	// Elapsed is the wall-clock time of the run.
	Elapsed time.Duration
}

// Report encapsulates the outcome of checking a single candidate in both
// modes. It is the shared domain type between orchestration and presentation.
type Report struct {
	Candidate Candidate
	// Threads is the number of partitions used by the parallel phase.
	Threads int
	// Bound is the exclusive upper limit of the divisor search.
	Bound      int64
	Partitions []primality.SearchRange
	Sequential PhaseResult
	Parallel   PhaseResult
	// Speedup is Sequential.Elapsed / Parallel.Elapsed, or 0 when the parallel
	// interval measured as zero.
	Speedup float64
}

// Consistent reports whether both phases reached the same verdict.
func (r Report) Consistent() bool {
	return r.Sequential.Prime == r.Parallel.Prime
}

// ProgressReporter displays activity while a candidate is being checked.
// Begin is called before the sequential phase and End once both phases have
// completed, before the report is presented.
type ProgressReporter interface {
	Begin(c Candidate, out io.Writer)
	End()
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// Begin does nothing.
func (NullProgressReporter) Begin(Candidate, io.Writer) {}

// End does nothing.
func (NullProgressReporter) End() {}

// ResultPresenter defines how batch output is rendered. This interface
// decouples the driver from output formats (CLI, quiet, TUI).
type ResultPresenter interface {
	// PresentHeader is called once before the first candidate.
	PresentHeader(threads int, out io.Writer)

	// PresentReport displays the outcome of one candidate.
	PresentReport(report Report, out io.Writer)

	// PresentRejected displays an argument that could not be parsed.
	PresentRejected(c Candidate, out io.Writer)
}

// Observer receives the outcome of every candidate. metrics.Recorder
// satisfies it.
type Observer interface {
	ObserveCheck(prime bool, sequential, parallel time.Duration, speedup float64)
	ObserveRejected()
}

type nopObserver struct{}

func (nopObserver) ObserveCheck(bool, time.Duration, time.Duration, float64) {}
func (nopObserver) ObserveRejected()                                           {}
