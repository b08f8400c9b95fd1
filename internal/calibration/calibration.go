// Package calibration sweeps the parallel phase over several thread counts
// for a candidate and reports which count ran fastest on this host.
package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/primality"
)

// DefaultRepeats is the number of timed runs per thread count. The fastest
// run is kept.
const DefaultRepeats = 3

// SequentialThreads labels the sequential baseline row of a sweep.
const SequentialThreads = 0

// Result is one row of a sweep.
type Result struct {
	Threads int
	Elapsed time.Duration
	Prime   bool
}

// Sweep times the sequential phase and the parallel phase at every count in
// counts, keeping the fastest of repeats runs each. The first row is the
// sequential baseline. ctx is checked between rows.
func Sweep(ctx context.Context, d *orchestration.Driver, n int64, counts []int, repeats int) ([]Result, error) {
	if repeats < 1 {
		repeats = 1
	}
	bound := primality.Bound(n)
	results := make([]Result, 0, len(counts)+1)

	seq := bestOf(repeats, func() orchestration.PhaseResult { return d.RunSequential(ctx, n, bound) })
	results = append(results, Result{Threads: SequentialThreads, Elapsed: seq.Elapsed, Prime: seq.Prime})

	for _, k := range counts {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		par := bestOf(repeats, func() orchestration.PhaseResult {
			res, _ := d.RunParallel(ctx, n, bound, k)
			return res
		})
		results = append(results, Result{Threads: k, Elapsed: par.Elapsed, Prime: par.Prime})
	}
	return results, nil
}

func bestOf(repeats int, run func() orchestration.PhaseResult) orchestration.PhaseResult {
	best := run()
	for i := 1; i < repeats; i++ {
		if r := run(); r.Elapsed < best.Elapsed {
			best = r
		}
	}
	return best
}

// findBestThreads returns the parallel thread count with the lowest elapsed
// time. Ties go to the smaller count. The sequential row is ignored.
func findBestThreads(results []Result) int {
	best, bestElapsed := 0, time.Duration(-1)
	for _, r := range results {
		if r.Threads == SequentialThreads {
			continue
		}
		if bestElapsed < 0 || r.Elapsed < bestElapsed {
			best, bestElapsed = r.Threads, r.Elapsed
		}
	}
	return best
}

// RunCalibration sweeps every argument and prints one table per candidate.
// Rejected arguments are reported and skipped. It returns the process exit
// code.
func RunCalibration(ctx context.Context, d *orchestration.Driver, args []string, maxThreads int, out io.Writer) (int, error) {
	counts := GenerateThreadCounts(maxThreads)
	fmt.Fprintf(out, "--- Calibration: thread counts %v ---\n", counts)

	var batch orchestration.BatchResult
	for _, c := range orchestration.ParseCandidates(args) {
		if c.Rejected() {
			fmt.Fprintf(out, "\nError: %v\n", c.Err)
			batch.Rejected = append(batch.Rejected, c)
			continue
		}
		results, err := Sweep(ctx, d, c.Value, counts, DefaultRepeats)
		if err != nil {
			return orchestration.BatchResult{Err: err}.ExitCode(), err
		}
		printCalibrationResults(out, c.Value, results, findBestThreads(results))
		for _, r := range results[1:] {
			if r.Prime != results[0].Prime {
				batch.Reports = append(batch.Reports, orchestration.Report{
					Candidate:  c,
					Sequential: orchestration.PhaseResult{Prime: results[0].Prime},
					Parallel:   orchestration.PhaseResult{Prime: r.Prime},
				})
			}
		}
	}
	return batch.ExitCode(), nil
}
