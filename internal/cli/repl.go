package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout bounds each command.
	Timeout time.Duration
	// Details shows the partition layout after each report.
	Details bool
}

// REPL is an interactive session that checks numbers typed on stdin.
type REPL struct {
	config REPLConfig
	driver *orchestration.Driver
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance around driver.
func NewREPL(driver *orchestration.Driver, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		driver: driver,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until "exit" or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"prime> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s== Primality Checker - Interactive Mode ==%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "Number of threads = %s%d%s\n\n", ui.ColorCyan(), r.driver.Threads, ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scheck <n>...%s  - Check one or more numbers (a bare number also works)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sthreads <k>%s   - Change the number of partitions\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdetails%s       - Toggle the partition layout\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "check", "c":
		r.cmdCheck(args)
	case "threads", "t":
		r.cmdThreads(args)
	case "details", "d":
		r.config.Details = !r.config.Details
		fmt.Fprintf(r.out, "Partition details: %s%v%s\n", ui.ColorGreen(), r.config.Details, ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if c := orchestration.ParseCandidate(0, parts[0]); !c.Rejected() {
			r.cmdCheck(parts)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	return true
}

func (r *REPL) cmdCheck(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: check <n>...%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	presenter := replPresenter{CLIResultPresenter{Details: r.config.Details}}
	result := r.driver.CheckAll(ctx, args, presenter, orchestration.NullProgressReporter{}, r.out)
	if result.Err != nil {
		fmt.Fprintf(r.out, "%sStopped: %v%s\n", ui.ColorRed(), result.Err, ui.ColorReset())
	}
}

func (r *REPL) cmdThreads(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: threads <k>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	k, err := strconv.Atoi(args[0])
	if err != nil || k < 1 {
		fmt.Fprintf(r.out, "%sInvalid thread count: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.driver.Threads = k
	fmt.Fprintf(r.out, "Number of threads = %s%d%s\n", ui.ColorGreen(), k, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Threads:  %s%d%s\n", ui.ColorCyan(), r.driver.Threads, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:  %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Details:  %s%v%s\n", ui.ColorCyan(), r.config.Details, ui.ColorReset())
	fmt.Fprintln(r.out)
}

// replPresenter suppresses the batch header, which the banner already shows.
type replPresenter struct {
	CLIResultPresenter
}

func (replPresenter) PresentHeader(int, io.Writer) {}
