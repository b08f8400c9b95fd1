package orchestration

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/primality"
)

// TracerName identifies the spans emitted by the driver.
const TracerName = "github.com/agbru/primecalc/internal/orchestration"

// Clock returns the current time. Tests substitute a deterministic clock.
type Clock func() time.Time

// Driver runs the sequential and parallel trial-division phases for one
// candidate at a time. Threads is the partition count of the parallel phase
// and is injected from configuration.
type Driver struct {
	Threads  int
	Clock    Clock
	Logger   logging.Logger
	Observer Observer
	Tracer   trace.Tracer
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces time.Now as the phase timer.
func WithClock(clock Clock) Option {
	return func(d *Driver) { d.Clock = clock }
}

// WithLogger sets the logger used for per-candidate debug lines.
func WithLogger(logger logging.Logger) Option {
	return func(d *Driver) { d.Logger = logger }
}

// WithObserver registers a sink for per-candidate outcomes.
func WithObserver(o Observer) Option {
	return func(d *Driver) { d.Observer = o }
}

// WithTracer overrides the tracer obtained from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(d *Driver) { d.Tracer = t }
}

// NewDriver returns a Driver using threads partitions. A value below 1 is
// treated as 1.
func NewDriver(threads int, opts ...Option) *Driver {
	if threads < 1 {
		threads = 1
	}
	d := &Driver{
		Threads:  threads,
		Clock:    time.Now,
		Logger:   logging.NewNopLogger(),
		Observer: nopObserver{},
		Tracer:   otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Check runs both phases for n and returns the combined report. Once started,
// a phase always runs to completion; ctx only carries the trace span.
func (d *Driver) Check(ctx context.Context, n int64) Report {
	ctx, span := d.Tracer.Start(ctx, "primality.check",
		trace.WithAttributes(
			attribute.Int64("candidate", n),
			attribute.Int("threads", d.Threads),
		))
	defer span.End()

	bound := primality.Bound(n)
	span.SetAttributes(attribute.Int64("bound", bound))

	seq := d.RunSequential(ctx, n, bound)
	par, partitions := d.RunParallel(ctx, n, bound, d.Threads)

	report := Report{
		Threads:    d.Threads,
		Bound:      bound,
		Partitions: partitions,
		Sequential: seq,
		Parallel:   par,
		Speedup:    Speedup(seq.Elapsed, par.Elapsed),
	}
	span.SetAttributes(
		attribute.Bool("prime", par.Prime),
		attribute.Float64("speedup", report.Speedup),
	)

	d.Logger.Debug("candidate checked",
		logging.Int64("n", n),
		logging.Int64("bound", bound),
		logging.Int("threads", d.Threads),
		logging.Bool("sequential_prime", seq.Prime),
		logging.Bool("parallel_prime", par.Prime),
		logging.Duration("sequential", seq.Elapsed),
		logging.Duration("parallel", par.Elapsed),
	)
	d.Observer.ObserveCheck(par.Prime, seq.Elapsed, par.Elapsed, report.Speedup)
	return report
}

// RunSequential tests every odd divisor in [3, bound) on the calling
// goroutine.
func (d *Driver) RunSequential(ctx context.Context, n, bound int64) PhaseResult {
	_, span := d.Tracer.Start(ctx, "primality.sequential")
	defer span.End()

	start := d.Clock()
	prime := primality.IsPrime(n, 3, bound)
	return PhaseResult{Prime: prime, Elapsed: d.Clock().Sub(start)}
}

// RunParallel splits [0, bound) into threads contiguous ranges, dispatches
// all but the last to their own goroutine, evaluates the last one on the
// calling goroutine, waits for the others and AND-reduces the partial
// verdicts. The measured interval covers dispatch, the local range, the join
// and the reduction.
func (d *Driver) RunParallel(ctx context.Context, n, bound int64, threads int) (PhaseResult, []primality.SearchRange) {
	_, span := d.Tracer.Start(ctx, "primality.parallel",
		trace.WithAttributes(attribute.Int("threads", threads)))
	defer span.End()

	ranges := primality.Partition(bound, threads)
	partial := make([]bool, len(ranges))
	last := len(ranges) - 1

	start := d.Clock()
	var g errgroup.Group
	for j := 0; j < last; j++ {
		r := ranges[j]
		g.Go(func() error {
			partial[j] = primality.IsPrime(n, r.Lo, r.Hi)
			return nil
		})
	}
	partial[last] = primality.IsPrime(n, ranges[last].Lo, ranges[last].Hi)
	_ = g.Wait()
	prime := reduce(partial)
	elapsed := d.Clock().Sub(start)

	return PhaseResult{Prime: prime, Elapsed: elapsed}, ranges
}

// reduce combines partial verdicts with logical AND, stopping at the first
// false.
func reduce(partial []bool) bool {
	for _, ok := range partial {
		if !ok {
			return false
		}
	}
	return true
}

// Speedup returns seq/par, or 0 when par is not positive.
func Speedup(seq, par time.Duration) float64 {
	if par <= 0 {
		return 0
	}
	return seq.Seconds() / par.Seconds()
}
