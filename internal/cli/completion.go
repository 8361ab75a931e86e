package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "o")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	Section   string   // fish section comment
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Long: "start", Help: "First value of the range", Values: []string{"1", "1e6", "1e9", "1e12"}, ValueName: "number", Section: "Range"},
	{Long: "end", Help: "Last value of the range", Values: []string{"1e6", "1e9", "2e12-1"}, ValueName: "number", Section: "Range"},
	{Long: "preset", Help: "Range preset", Values: []string{"full", "first"}, ValueName: "preset", Section: "Range"},
	{Long: "count", Help: "Primes for the first preset", Values: []string{"100", "1000", "10000"}, ValueName: "number", Section: "Range"},
	{Long: "max-primes", Help: "Stop after this many primes", ValueName: "number", Section: "Range"},
	{Long: "output", Short: "o", Help: "CSV output path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "batch-size", Help: "Records buffered between writes", Values: []string{"1000", "10000", "100000"}, ValueName: "number", Section: "Output"},
	{Long: "progress-interval", Help: "Candidates between progress reports", Values: []string{"1000000", "10000000"}, ValueName: "number", Section: "Output"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"10m", "1h", "24h"}, ValueName: "duration", Section: "Output"},
	{Long: "yes", Short: "y", Help: "Skip the confirmation prompt", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts", Section: "Output"},
	{Long: "verbose", Short: "v", Help: "Print forecast and progress lines", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "estimate", Help: "Print the forecast and exit", Section: "Modes"},
	{Long: "check", Help: "Interactive primality checker", Section: "Modes"},
	{Long: "tui", Help: "Interactive dashboard", Section: "Modes"},
	{Long: "calibrate", Help: "Run calibration mode", Section: "Calibration"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file", Section: "Calibration"},
	{Long: "throughput", Help: "Estimator throughput in candidates/s", ValueName: "rate", Section: "Calibration"},
	{Long: "config", Help: "YAML run file", IsFile: true, ValueName: "file", Section: "Configuration"},
	{Long: "metrics-addr", Help: "Prometheus metrics address", Values: []string{":9090", "127.0.0.1:9090"}, ValueName: "address", Section: "Configuration"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Configuration"},
	{Long: "log-json", Help: "Emit logs as JSON", Section: "Configuration"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Completion"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	case "powershell", "ps":
		return generatePowerShellCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// flagNames returns the "--long" and "-s" spellings of f.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
	}

	var caseBody strings.Builder
	writeCase := func(patterns []string, body string) {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(patterns, "|"))
		caseBody.WriteString(")\n            ")
		caseBody.WriteString(body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	var filePatterns []string
	for _, f := range flagRegistry {
		if f.IsFile {
			filePatterns = append(filePatterns, flagNames(f)...)
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}
	for _, f := range flagRegistry {
		if !f.IsFile && len(f.Values) > 0 {
			writeCase(flagNames(f), fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}

	script := fmt.Sprintf(`# Bash completion script for primescan
# Add this to your ~/.bashrc or ~/.bash_completion

_primescan_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _primescan_completions primescan
`, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef primescan

# Zsh completion script for primescan
# Add this to your ~/.zshrc or place in $fpath

_primescan() {
    _arguments -s \
%s
}

_primescan "$@"
`, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer) error {
	lines := []string{
		"# Fish completion script for primescan",
		"# Add this to ~/.config/fish/completions/primescan.fish",
		"",
		"# Disable file completion by default",
		"complete -c primescan -f",
	}

	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c primescan"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer) error {
	var optionEntries []string
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '%s'; Description = '%s' }", name, f.Help))
		}
	}

	var switchEntries []string
	for _, f := range flagRegistry {
		if f.IsFile || len(f.Values) == 0 {
			continue
		}
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = fmt.Sprintf("'%s'", v)
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	script := fmt.Sprintf(`# PowerShell completion script for primescan
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'primescan' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
