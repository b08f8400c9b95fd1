// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayPartitions], [DisplayMemoryStats].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatVerdict].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteReportsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/orchestration"
)

// FormatQuietResult formats a report as a single line:
// "<n> prime|composite <seq_s> <par_s> <speedup>".
func FormatQuietResult(r orchestration.Report) string {
	verdict := "composite"
	if r.Parallel.Prime {
		verdict = "prime"
	}
	return fmt.Sprintf("%d %s %s %s %s",
		r.Candidate.Value, verdict,
		format.FormatSeconds(r.Sequential.Elapsed),
		format.FormatSeconds(r.Parallel.Elapsed),
		format.FormatSpeedup(r.Speedup))
}

// WriteReportsToFile writes an uncolored summary of a batch to path, creating
// parent directories as needed.
func WriteReportsToFile(path string, threads int, result orchestration.BatchResult) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeReports(file, threads, result); err != nil {
		file.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return file.Close()
}

func writeReports(w io.Writer, threads int, result orchestration.BatchResult) error {
	if _, err := fmt.Fprintf(w, "# primecalc report\n# Generated: %s\n# Threads: %d\n\n",
		time.Now().Format(time.RFC3339), threads); err != nil {
		return err
	}
	for _, r := range result.Reports {
		if _, err := fmt.Fprintln(w, FormatQuietResult(r)); err != nil {
			return err
		}
	}
	for _, c := range result.Rejected {
		if _, err := fmt.Fprintf(w, "# rejected %q: %v\n", c.Arg, c.Err); err != nil {
			return err
		}
	}
	return nil
}
