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
		{"bash", []string{"complete -F _primescan_completions primescan", "--start", "--output|-o|--calibration-profile|--config)", `compgen -W "full first"`}},
		{"zsh", []string{"#compdef primescan", "'(-o --output)'{-o,--output}'[CSV output path]:file:_files'", "'--preset[Range preset]:preset:(full first)'"}},
		{"fish", []string{"complete -c primescan -f", "# Range", "complete -c primescan -l log-level -d 'Log level' -xa 'debug info warn error'", "-l max-primes -d 'Stop after this many primes' -x"}},
		{"powershell", []string{"Register-ArgumentCompleter -CommandName 'primescan'", "'--completion' {", "@{Name = '-y'; Description = 'Skip the confirmation prompt' }"}},
		{"ps", []string{"Register-ArgumentCompleter"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%q) error = %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&bytes.Buffer{}, "tcsh"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestFlagRegistry_UniqueNames(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			if seen[name] {
				t.Errorf("duplicate flag %s", name)
			}
			seen[name] = true
		}
	}
}
