package cli

import (
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/sysmon"
	"github.com/agbru/primecalc/internal/ui"
)

// Delimiter separates the reports of consecutive candidates.
const Delimiter = "--------------"

// CLIResultPresenter implements orchestration.ResultPresenter for the default
// human-readable output.
type CLIResultPresenter struct {
	// Details adds the partition layout after each report.
	Details bool
	// Errors receives rejected-input messages. Nil means the report writer.
	Errors io.Writer
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ResultPresenter = QuietPresenter{}
)

// PresentHeader prints the thread count once at the start of the batch.
func (CLIResultPresenter) PresentHeader(threads int, out io.Writer) {
	fmt.Fprintf(out, "Number of threads = %s%d%s\n\n", ui.ColorCyan(), threads, ui.ColorReset())
}

// PresentReport prints the sequential section, the parallel section, the
// speedup and the delimiter for one candidate.
func (p CLIResultPresenter) PresentReport(r orchestration.Report, out io.Writer) {
	n := r.Candidate.Value

	fmt.Fprintf(out, "Sequential isPrime for %d\n", n)
	fmt.Fprintln(out, FormatVerdict(n, r.Sequential.Prime))
	fmt.Fprintf(out, "Completed in %s%s%s sec\n\n", ui.ColorYellow(), format.FormatSeconds(r.Sequential.Elapsed), ui.ColorReset())

	fmt.Fprintf(out, "Parallel isPrime for %d\n", n)
	fmt.Fprintln(out, FormatVerdict(n, r.Parallel.Prime))
	fmt.Fprintf(out, "Completed in %s%s%s sec\n\n", ui.ColorYellow(), format.FormatSeconds(r.Parallel.Elapsed), ui.ColorReset())

	fmt.Fprintf(out, "Speed-up: %s%s%s\n\n", ui.ColorBold(), format.FormatSpeedup(r.Speedup), ui.ColorReset())

	if !r.Consistent() {
		fmt.Fprintf(out, "%sCRITICAL: sequential and parallel verdicts disagree for %d.%s\n\n", ui.ColorRed(), n, ui.ColorReset())
	}
	if p.Details {
		DisplayPartitions(r, out)
	}
	fmt.Fprintf(out, "%s\n\n", Delimiter)
}

// PresentRejected reports an argument that is not a 64-bit integer.
func (p CLIResultPresenter) PresentRejected(c orchestration.Candidate, out io.Writer) {
	if p.Errors != nil {
		out = p.Errors
	}
	fmt.Fprintf(out, "%sError: %v%s\n\n", ui.ColorRed(), c.Err, ui.ColorReset())
}

// FormatVerdict returns "N is prime" or "N is not prime", colorized.
func FormatVerdict(n int64, prime bool) string {
	if prime {
		return fmt.Sprintf("%d is %sprime%s", n, ui.ColorGreen(), ui.ColorReset())
	}
	return fmt.Sprintf("%d is %snot prime%s", n, ui.ColorRed(), ui.ColorReset())
}

// DisplayPartitions prints the search bound and the range owned by each task.
// The last range runs on the calling goroutine.
func DisplayPartitions(r orchestration.Report, out io.Writer) {
	fmt.Fprintf(out, "Search bound: %d (%d partitions)\n", r.Bound, len(r.Partitions))

	width := len("Partition")
	for i := range r.Partitions {
		if l := len(fmt.Sprintf("#%d", i)); l > width {
			width = l
		}
	}
	fmt.Fprintf(out, "  %sPartition%s%s   %sRange%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", width-len("Partition")),
		ui.ColorUnderline(), ui.ColorReset())
	for i, sr := range r.Partitions {
		label := fmt.Sprintf("#%d", i)
		owner := ""
		if i == len(r.Partitions)-1 {
			owner = " (caller)"
		}
		fmt.Fprintf(out, "  %s%s%s%s   %s%s\n",
			ui.ColorBlue(), label, ui.ColorReset(), padRight("", width-len(label)), sr, owner)
	}
	fmt.Fprintln(out)
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// QuietPresenter prints one line per candidate, suitable for scripts.
type QuietPresenter struct {
	// Errors receives rejected-input messages.
	Errors io.Writer
}

// PresentHeader prints nothing in quiet mode.
func (QuietPresenter) PresentHeader(int, io.Writer) {}

// PresentReport prints the quiet line for the report.
func (QuietPresenter) PresentReport(r orchestration.Report, out io.Writer) {
	fmt.Fprintln(out, FormatQuietResult(r))
}

// PresentRejected writes the parse error to Errors, if set.
func (p QuietPresenter) PresentRejected(c orchestration.Candidate, _ io.Writer) {
	if p.Errors != nil {
		fmt.Fprintf(p.Errors, "Error: %v\n", c.Err)
	}
}

// CLIColorProvider implements apperrors.ColorProvider using the active theme.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

// Yellow returns the warning color.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Red returns the error color.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Reset returns the reset sequence.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// DisplayMemoryStats shows Go runtime memory statistics for the batch.
func DisplayMemoryStats(m metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "Memory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(m.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(m.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", m.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(m.PauseTotalNs)/1e6)
	fmt.Fprintf(out, "  Goroutines:      %d\n", m.Goroutines)
}

// DisplaySystemStats shows host-wide CPU and memory usage.
func DisplaySystemStats(s sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "System Stats:\n")
	fmt.Fprintf(out, "  CPU usage:       %.1f%%\n", s.CPUPercent)
	fmt.Fprintf(out, "  Memory usage:    %.1f%%\n", s.MemPercent)
}
