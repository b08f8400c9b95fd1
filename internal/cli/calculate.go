package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/primecalc/internal/config"
	"github.com/agbru/primecalc/internal/sysmon"
	"github.com/agbru/primecalc/internal/ui"
)

// PrintExecutionConfig displays the resolved configuration: the thread count
// and where it came from, the batch timeout and the host environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Checking %s%d%s candidate(s) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), len(cfg.Candidates), ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Threads: %s%d%s (source: %s).\n",
		ui.ColorCyan(), cfg.Threads, ui.ColorReset(), cfg.ThreadSource)
	fmt.Fprintf(out, "Environment: %s, %s%d%s logical processors, Go %s%s%s.\n\n",
		sysmon.CPUModel(), ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}
