package cli

import (
	"io"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/primecalc/internal/cli/mocks"
	"github.com/agbru/primecalc/internal/orchestration"
)

func TestCLIProgressReporter(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mocks.NewMockSpinner(ctrl)
	gomock.InOrder(
		s.EXPECT().UpdateSuffix(" checking 97 ..."),
		s.EXPECT().Start(),
		s.EXPECT().Stop(),
	)

	p := &CLIProgressReporter{spinner: s}
	p.Begin(orchestration.Candidate{Arg: "97", Value: 97}, io.Discard)
	p.End()
}

func TestNewCLIProgressReporterUsesFactory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mocks.NewMockSpinner(ctrl)
	original := newSpinner
	defer func() { newSpinner = original }()

	var gotOptions int
	newSpinner = func(options ...spinner.Option) Spinner {
		gotOptions = len(options)
		return s
	}

	p := NewCLIProgressReporter(io.Discard)
	if p.spinner != s {
		t.Fatal("reporter did not use the spinner factory")
	}
	if gotOptions != 2 {
		t.Errorf("factory received %d options, want 2", gotOptions)
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
	if s.Suffix != " test" {
		t.Errorf("Suffix = %q, want %q", s.Suffix, " test")
	}
}
