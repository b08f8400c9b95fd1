package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/sysmon"
	"github.com/agbru/primecalc/internal/ui"
)

func fourThreads() sysmon.Concurrency {
	return sysmon.Concurrency{Count: 4, Source: "test"}
}

func newTestApp(t *testing.T, stderr *bytes.Buffer, args ...string) *Application {
	t.Helper()
	a, err := New(append([]string{"primecalc", "--no-color"}, args...), stderr, WithConcurrencyProbe(fourThreads))
	if err != nil {
		t.Fatalf("New(%v) failed: %v", args, err)
	}
	return a
}

func TestNew_ResolvesThreads(t *testing.T) {
	var stderr bytes.Buffer
	a := newTestApp(t, &stderr, "97")
	if a.Config.Threads != 4 || a.Config.ThreadSource != "test" {
		t.Errorf("Threads = %d (%q), want 4 from probe", a.Config.Threads, a.Config.ThreadSource)
	}

	a = newTestApp(t, &stderr, "-t", "3", "97")
	if a.Config.Threads != 3 {
		t.Errorf("Threads = %d, want 3 from flag", a.Config.Threads)
	}
}

func TestHandleStartupError(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"no candidates", []string{"primecalc"}, apperrors.ExitErrorUsage, "Usage: primecalc num1 [num2 num3 ...]"},
		{"help", []string{"primecalc", "--help"}, apperrors.ExitSuccess, "Usage:"},
		{"bad flag value", []string{"primecalc", "--timeout", "0s", "7"}, apperrors.ExitErrorConfig, "timeout must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			_, err := New(tt.args, &stderr, WithConcurrencyProbe(fourThreads))
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := HandleStartupError(err, &stderr); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantErr)
			}
		})
	}
}

func TestRun_Batch(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a := newTestApp(t, &stderr, "97", "100")

	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{
		"Number of threads = 4\n\n",
		"Sequential isPrime for 97\n97 is prime\n",
		"Parallel isPrime for 97\n97 is prime\n",
		"Sequential isPrime for 100\n100 is not prime\n",
		"Speed-up: ",
		"--------------\n\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "--------------") != 2 {
		t.Errorf("expected two delimiters:\n%s", out)
	}
}

func TestRun_RejectedInputContinues(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a := newTestApp(t, &stderr, "abc", "7")

	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !strings.Contains(stderr.String(), `rejected input "abc"`) {
		t.Errorf("stderr = %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "7 is prime") {
		t.Errorf("batch did not continue past the rejected argument:\n%s", stdout.String())
	}
}

func TestRun_Quiet(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a := newTestApp(t, &stderr, "-q", "13", "15")

	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", stdout.String())
	}
	if !strings.HasPrefix(lines[0], "13 prime ") || !strings.HasPrefix(lines[1], "15 composite ") {
		t.Errorf("unexpected quiet output %q", lines)
	}
}

func TestRun_Canceled(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a := newTestApp(t, &stderr, "97")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if code := a.Run(ctx, &stdout); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
	if !strings.Contains(stderr.String(), "Canceled") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_Artifacts(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "out", "report.txt")
	metricsPath := filepath.Join(dir, "primecalc.prom")

	var stdout, stderr bytes.Buffer
	a := newTestApp(t, &stderr, "-o", reportPath, "--metrics-file", metricsPath, "97")
	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}

	report, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(report), "# Threads: 4") {
		t.Errorf("report = %q", report)
	}

	exposition, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics not written: %v", err)
	}
	for _, want := range []string{"primecalc_candidates_checked_total", "primecalc_threads 4"} {
		if !strings.Contains(string(exposition), want) {
			t.Errorf("metrics file missing %q", want)
		}
	}
}

func TestRun_Details(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a := newTestApp(t, &stderr, "-d", "97")
	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"--- Execution Configuration ---", "Search bound: 10 (4 partitions)"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRun_Completion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a := newTestApp(t, &stderr, "--completion", "bash")
	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "complete -F _primecalc_completions primecalc") {
		t.Errorf("unexpected completion script:\n%s", stdout.String())
	}
}

func TestRun_Interactive(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a, err := New([]string{"primecalc", "--no-color", "-i"}, &stderr,
		WithConcurrencyProbe(fourThreads), WithInput(strings.NewReader("97\nexit\n")))
	if err != nil {
		t.Fatal(err)
	}
	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "97 is prime") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_Calibration(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a := newTestApp(t, &stderr, "--calibrate", "97")
	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "--- Calibration: thread counts [1 2 4] ---") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-q", "97", "-version"}, true},
		{[]string{"97"}, false},
		{[]string{"--", "-V"}, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "primecalc "+Version+"\n") {
		t.Errorf("PrintVersion() = %q", buf.String())
	}
}

func TestRun_RedirectedOutputIsUncolored(t *testing.T) {
	saved := ui.GetCurrentTheme()
	t.Cleanup(func() { ui.SetCurrentTheme(saved) })
	ui.SetCurrentTheme(ui.DarkTheme)

	var stdout, stderr bytes.Buffer
	a, err := New([]string{"primecalc", "-t", "2", "97"}, &stderr, WithConcurrencyProbe(fourThreads))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if strings.Contains(stdout.String(), "\x1b[") {
		t.Errorf("stdout carries ANSI escapes:\n%q", stdout.String())
	}
	if !strings.HasPrefix(stdout.String(), "Number of threads = 2\n") {
		t.Errorf("stdout = %q", stdout.String())
	}
}
