package sysmon

import (
	"errors"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v4/cpu"
)

// FallbackConcurrency is used when no probe can report a thread count.
const FallbackConcurrency = 1

// errUnsupported is returned by probes that do not apply to the current platform.
var errUnsupported = errors.New("not supported on this platform")

// Probe reports a logical CPU count from one source.
type Probe struct {
	Name  string
	Count func() (int, error)
}

// Concurrency is the resolved number of hardware threads and where it came from.
type Concurrency struct {
	Count  int
	Source string
}

// DefaultProbes lists the probes consulted by HardwareConcurrency, most
// specific first. runtime.NumCPU always answers, so it comes last.
func DefaultProbes() []Probe {
	return defaultProbes(affinityCount)
}

func defaultProbes(affinity func() (int, error)) []Probe {
	return []Probe{
		{Name: "affinity", Count: affinity},
		{Name: "gopsutil", Count: func() (int, error) { return cpu.Counts(true) }},
		{Name: "cpuid", Count: func() (int, error) { return cpuid.CPU.LogicalCores, nil }},
		{Name: "runtime", Count: func() (int, error) { return runtime.NumCPU(), nil }},
	}
}

// Detect returns the first positive count reported by probes, in order.
// Probes that fail or report zero are skipped. If none succeeds the result
// is FallbackConcurrency with source "fallback".
func Detect(probes ...Probe) Concurrency {
	for _, p := range probes {
		n, err := p.Count()
		if err == nil && n > 0 {
			return Concurrency{Count: n, Source: p.Name}
		}
	}
	return Concurrency{Count: FallbackConcurrency, Source: "fallback"}
}

// HardwareConcurrency reports how many hardware threads this process can
// usefully run concurrently. It is meant to be queried once at startup.
func HardwareConcurrency() Concurrency {
	return Detect(DefaultProbes()...)
}
