package tui

import (
	"context"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/primecalc/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the batch goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// pauseGate holds the batch between candidates while the dashboard is
// paused. A nil resume channel means running.
type pauseGate struct {
	mu     sync.Mutex
	resume chan struct{}
}

// Pause makes subsequent Wait calls block until Resume.
func (g *pauseGate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.resume == nil {
		g.resume = make(chan struct{})
	}
}

// Resume releases every waiter.
func (g *pauseGate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.resume != nil {
		close(g.resume)
		g.resume = nil
	}
}

// Paused reports whether the gate is closed.
func (g *pauseGate) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resume != nil
}

// Wait blocks while the gate is paused or until ctx ends.
func (g *pauseGate) Wait(ctx context.Context) {
	g.mu.Lock()
	ch := g.resume
	g.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case <-ch:
	case <-ctx.Done():
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter. Begin blocks
// on the pause gate, then announces the candidate to the dashboard.
type TUIProgressReporter struct {
	ref  *programRef
	gate *pauseGate
	ctx  context.Context
	gen  uint64
}

// Verify interface compliance.
var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// Begin waits for the gate and sends a CandidateStartedMsg.
func (t *TUIProgressReporter) Begin(c orchestration.Candidate, _ io.Writer) {
	if t.gate != nil {
		t.gate.Wait(t.ctx)
	}
	t.ref.Send(CandidateStartedMsg{Candidate: c, Generation: t.gen})
}

// End does nothing; the report message marks completion.
func (t *TUIProgressReporter) End() {}

// TUIResultPresenter implements orchestration.ResultPresenter.
// It sends messages to the dashboard instead of writing to stdout.
type TUIResultPresenter struct {
	ref *programRef
	gen uint64
}

// Verify interface compliance.
var _ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)

// PresentHeader does nothing; the thread count is shown in the header bar.
func (t *TUIResultPresenter) PresentHeader(int, io.Writer) {}

// PresentReport sends the report to the dashboard.
func (t *TUIResultPresenter) PresentReport(report orchestration.Report, _ io.Writer) {
	t.ref.Send(ReportMsg{Report: report, Generation: t.gen})
}

// PresentRejected sends the rejected argument to the dashboard.
func (t *TUIResultPresenter) PresentRejected(c orchestration.Candidate, _ io.Writer) {
	t.ref.Send(RejectedMsg{Candidate: c, Generation: t.gen})
}
