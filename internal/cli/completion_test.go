package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _primecalc_completions primecalc", "--threads", "--output|-o|--metrics-file|--config)", `compgen -W "bash zsh fish"`}},
		{"zsh", []string{"#compdef primecalc", "'(-t --threads)'{-t,--threads}'[Number of partitions]:count:(1 2 4 8 16)'", "'--config[YAML configuration file]:file:_files'"}},
		{"fish", []string{"complete -c primecalc -f", "complete -c primecalc -s q -l quiet -d 'One line per candidate'", "-l serve -d 'Run the HTTP API on an address' -x"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%q) error: %v", tt.shell, err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("%s script missing %q", tt.shell, s)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&bytes.Buffer{}, "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
