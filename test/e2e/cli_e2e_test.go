package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and checks its output and exit codes.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}

	tmpDir := t.TempDir()
	binName := "primecalc"
	if runtime.GOOS == "windows" {
		binName = "primecalc.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/primecalc")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build primecalc: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  []string // substrings of combined output
		wantCode int
	}{
		{"Prime", []string{"-t", "4", "97"}, []string{"Number of threads = 4"}, 0},
		{"Composite", []string{"100"}, []string{"100 is not prime"}, 0},
		{"Hex input", []string{"0x61"}, []string{"97 is prime"}, 0},
		{"Leading negative", []string{"-7", "97"}, []string{"-7 is not prime", "97 is prime"}, 0},
		{"Negative after separator", []string{"--", "-7"}, []string{"-7 is not prime"}, 0},
		{"Quiet", []string{"-q", "13"}, []string{"13 prime "}, 0},
		{"No arguments", nil, []string{"Usage: "}, 1},
		{"Rejected input", []string{"abc", "7"}, []string{`rejected input "abc"`, "7 is prime"}, 0},
		{"Bad flag value", []string{"--threads", "-3", "7"}, []string{"threads must be >= 0"}, 4},
		{"Help", []string{"--help"}, []string{"usage"}, 0},
		{"Version", []string{"--version"}, []string{"primecalc"}, 0},
		{"Completion", []string{"--completion", "fish"}, []string{"complete -c primecalc"}, 0},
		{"Calibration", []string{"--calibrate", "-t", "2", "97"}, []string{"(Optimal)"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("failed to run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput:\n%s", code, tt.wantCode, outStr)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(want)) {
					t.Errorf("Output missing %q.\nGot:\n%s", want, outStr)
				}
			}
		})
	}
}
