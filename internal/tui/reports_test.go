package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/primecalc/internal/orchestration"
)

func sampleReport(arg string, prime bool, speedup float64) orchestration.Report {
	return orchestration.Report{
		Candidate:  orchestration.Candidate{Arg: arg},
		Threads:    4,
		Sequential: orchestration.PhaseResult{Prime: prime, Elapsed: 2 * time.Millisecond},
		Parallel:   orchestration.PhaseResult{Prime: prime, Elapsed: time.Millisecond},
		Speedup:    speedup,
	}
}

func TestReportsModel_View(t *testing.T) {
	r := NewReportsModel()
	r.SetSize(80, 12)
	r.AddReport(sampleReport("97", true, 2))
	r.AddReport(sampleReport("100", false, 0))
	r.AddRejected(orchestration.Candidate{Arg: "abc", Err: errors.New("invalid syntax")})
	r.SetInFlight("7919")

	view := r.View()
	for _, want := range []string{"Candidates", "Speed-up", "97", "prime", "100", "composite", "n/a", "abc", "rejected", "checking 7919"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestReportsModel_AddReportClearsInFlight(t *testing.T) {
	r := NewReportsModel()
	r.SetInFlight("97")
	r.AddReport(sampleReport("97", true, 1))
	if r.inFlight != "" {
		t.Errorf("inFlight = %q, want empty", r.inFlight)
	}
}

func TestReportsModel_Mismatch(t *testing.T) {
	rep := sampleReport("91", false, 1)
	rep.Parallel.Prime = true
	if got := formatReportRow(reportRow{arg: "91", report: &rep}); !strings.Contains(got, "MISMATCH") {
		t.Errorf("row = %q, want MISMATCH", got)
	}
}

func TestReportsModel_Scroll(t *testing.T) {
	r := NewReportsModel()
	r.SetSize(80, 8) // 8 - 2 borders - 2 headings - 1 in-flight = 3 visible rows
	for range 10 {
		r.AddReport(sampleReport("5", true, 1))
	}
	if r.offset != 7 {
		t.Fatalf("offset = %d, want 7 (following the tail)", r.offset)
	}

	r.Update(tea.KeyMsg{Type: tea.KeyUp})
	if r.offset != 6 || r.autoScroll {
		t.Fatalf("after up: offset=%d autoScroll=%v", r.offset, r.autoScroll)
	}
	r.AddReport(sampleReport("7", true, 1))
	if r.offset != 6 {
		t.Errorf("offset moved to %d while the user scrolled back", r.offset)
	}

	r.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	r.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	r.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if r.offset != 0 {
		t.Errorf("offset = %d, want clamp at 0", r.offset)
	}

	r.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	r.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	r.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	r.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	if r.offset != r.maxOffset() || !r.autoScroll {
		t.Errorf("offset = %d (max %d), autoScroll=%v", r.offset, r.maxOffset(), r.autoScroll)
	}

	r.Reset()
	if r.Len() != 0 || r.offset != 0 || !r.autoScroll {
		t.Errorf("Reset left len=%d offset=%d autoScroll=%v", r.Len(), r.offset, r.autoScroll)
	}
}
