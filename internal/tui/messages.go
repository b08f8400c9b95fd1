package tui

import (
	"time"

	"github.com/agbru/primecalc/internal/orchestration"
)

// CandidateStartedMsg is sent when the driver begins checking a candidate.
type CandidateStartedMsg struct {
	Candidate  orchestration.Candidate
	Generation uint64
}

// ReportMsg carries the outcome of one candidate.
type ReportMsg struct {
	Report     orchestration.Report
	Generation uint64
}

// RejectedMsg carries an argument that could not be parsed.
type RejectedMsg struct {
	Candidate  orchestration.Candidate
	Generation uint64
}

// BatchDoneMsg is sent once CheckAll returns.
type BatchDoneMsg struct {
	ExitCode   int
	Err        error
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries runtime memory statistics.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries system-wide CPU and memory usage.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg is sent when the batch context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
