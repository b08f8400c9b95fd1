package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/ui"
)

// printCalibrationResults formats and prints the sweep table for one
// candidate. The sequential row carries the speedup reference.
func printCalibrationResults(out io.Writer, n int64, results []Result, bestThreads int) {
	verdict := "composite"
	if len(results) > 0 && results[0].Prime {
		verdict = "prime"
	}
	fmt.Fprintf(out, "\n%d is %s\n", n, verdict)

	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreads%s      │ %sTime (sec)%s   │ %sSpeed-up%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 15), strings.Repeat("─", 20))

	seq := results[0].Elapsed
	for _, res := range results {
		label := fmt.Sprintf("%d", res.Threads)
		speedup := format.FormatSpeedup(orchestration.Speedup(seq, res.Elapsed))
		if res.Threads == SequentialThreads {
			label = "Sequential"
			speedup = "-"
		}
		highlight := ""
		if res.Threads == bestThreads {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %s%-12s%s │ %s%s\n",
			ui.ColorCyan(), label, ui.ColorReset(),
			ui.ColorYellow(), format.FormatSeconds(res.Elapsed), ui.ColorReset(),
			speedup, highlight)
	}
	tw.Flush()
}
