package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/agbru/primecalc/internal/orchestration"
)

func TestProgramRef_Send_NilProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	// Must not panic without a program.
	ref.Send(ReportMsg{})
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ref.Send(CandidateStartedMsg{Candidate: orchestration.Candidate{Index: i}})
		}(i)
	}
	wg.Wait()
}

func TestPauseGate(t *testing.T) {
	t.Parallel()
	gate := &pauseGate{}
	ctx := context.Background()

	// Open gate returns immediately.
	gate.Wait(ctx)
	if gate.Paused() {
		t.Fatal("new gate should not be paused")
	}

	gate.Pause()
	gate.Pause() // idempotent
	if !gate.Paused() {
		t.Fatal("expected paused gate")
	}

	released := make(chan struct{})
	go func() {
		gate.Wait(ctx)
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("Wait returned while paused")
	case <-time.After(20 * time.Millisecond):
	}

	gate.Resume()
	gate.Resume() // idempotent
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Resume")
	}
}

func TestPauseGate_ContextEndsWait(t *testing.T) {
	t.Parallel()
	gate := &pauseGate{}
	gate.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		gate.Wait(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait ignored context cancellation")
	}
}

func TestTUIResultPresenter_NoProgram(t *testing.T) {
	t.Parallel()
	p := &TUIResultPresenter{ref: &programRef{}, gen: 3}
	p.PresentHeader(4, nil)
	p.PresentReport(orchestration.Report{}, nil)
	p.PresentRejected(orchestration.Candidate{Arg: "abc"}, nil)
}

func TestTUIProgressReporter_BeginWithoutGate(t *testing.T) {
	t.Parallel()
	r := &TUIProgressReporter{ref: &programRef{}, ctx: context.Background()}
	r.Begin(orchestration.Candidate{Arg: "97"}, nil)
	r.End()
}
