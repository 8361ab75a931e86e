// Package config parses and validates the primescan command line, applying
// overrides from a YAML run file and PRIMESCAN_* environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/primescan/internal/errors"
)

// EnvPrefix is the prefix shared by every environment override.
const EnvPrefix = "PRIMESCAN_"

// Preset names.
const (
	PresetFull  = "full"
	PresetFirst = "first"
)

const (
	// PresetStart and PresetEnd bound the range both presets scan.
	PresetStart uint64 = 1_000_000_000_000
	PresetEnd   uint64 = 2_000_000_000_000 - 1

	DefaultOutputFile              = "primes.csv"
	DefaultCount            uint64 = 1000
	DefaultBatchSize               = 10_000
	DefaultProgressInterval uint64 = 10_000_000
	DefaultLogLevel                = "info"

	// CheckerLimit is the largest value the interactive checker accepts
	// without asking for confirmation.
	CheckerLimit uint64 = 1_000_000_000_000_000
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// StartText and EndText are the range bounds as typed; Start and End hold
	// the parsed values once ParseConfig succeeds.
	StartText string
	EndText   string
	Start     uint64
	End       uint64

	OutputFile       string
	MaxPrimes        uint64
	Preset           string
	Count            uint64
	BatchSize        int
	ProgressInterval uint64
	Timeout          time.Duration

	// Yes skips the confirmation prompt before long scans.
	Yes     bool
	Quiet   bool
	Verbose bool
	NoColor bool

	// Mode selectors.
	Estimate   bool
	Check      bool
	TUI        bool
	Calibrate  bool
	Completion string

	CalibrationProfile string
	// Throughput overrides the estimator rate in candidates per second.
	Throughput  float64
	MetricsAddr string
	LogLevel    string
	LogJSON     bool
	ConfigFile  string
}

// Capped reports whether the run stops after MaxPrimes primes.
func (c AppConfig) Capped() bool { return c.MaxPrimes > 0 }

// Validate checks the semantic consistency of the parsed values.
func (c AppConfig) Validate() error {
	switch {
	case c.Start == 0:
		return apperrors.RangeError{Start: c.Start, End: c.End, Reason: "start must be at least 1"}
	case c.Start > c.End:
		return apperrors.RangeError{Start: c.Start, End: c.End, Reason: "start exceeds end"}
	case c.BatchSize <= 0:
		return apperrors.ValidationError{Field: "batch-size", Message: "must be greater than zero"}
	case c.ProgressInterval == 0:
		return apperrors.ValidationError{Field: "progress-interval", Message: "must be greater than zero"}
	case strings.TrimSpace(c.OutputFile) == "" && !c.Check && !c.Calibrate && c.Completion == "":
		return apperrors.ValidationError{Field: "output", Message: "must not be empty"}
	case c.Preset != PresetFull && c.Preset != PresetFirst:
		return apperrors.NewConfigError("unknown preset %q (expected %q or %q)", c.Preset, PresetFull, PresetFirst)
	case c.Throughput < 0:
		return apperrors.ValidationError{Field: "throughput", Message: "must not be negative"}
	case c.Timeout < 0:
		return apperrors.ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish", "powershell", "ps":
	default:
		return apperrors.NewConfigError("unsupported shell %q for --completion", c.Completion)
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig.
// Priority, highest first: flags, PRIMESCAN_* environment variables, the
// YAML run file named by --config, the selected preset, built-in defaults.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments without the program name.
//   - errorWriter: The writer for usage and parse errors.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp for --help, or a typed apperrors value.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errorWriter, "Enumerates the primes of a range into a CSV file, or checks single numbers interactively.")
		fmt.Fprintln(errorWriter, "\nOptions:")
		fs.PrintDefaults()
	}

	config := AppConfig{}
	setupFlags(fs, &config)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if err := resolve(&config, fs); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// resolve applies the run file, environment and preset layers on top of the
// parsed flags, then validates the result.
func resolve(config *AppConfig, fs *flag.FlagSet) error {
	if fs.NArg() > 0 {
		return apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[canonicalFlag(f.Name)] = true })

	if config.ConfigFile == "" {
		config.ConfigFile = getEnvString("CONFIG", "")
	}
	if config.ConfigFile != "" {
		rf, err := LoadRunFile(config.ConfigFile)
		if err != nil {
			return err
		}
		if err := rf.apply(config, explicit); err != nil {
			return err
		}
	}

	applyEnvOverrides(config, fs, explicit)

	config.Preset = strings.ToLower(strings.TrimSpace(config.Preset))
	applyPreset(config, explicit)

	if err := resolveRange(config); err != nil {
		return err
	}
	return config.Validate()
}

func setupFlags(fs *flag.FlagSet, config *AppConfig) {
	fs.StringVar(&config.StartText, "start", "", "First value of the range (digits, 1_000 separators, or 1e12 form).")
	fs.StringVar(&config.EndText, "end", "", "Last value of the range, inclusive (e.g. 2e12-1).")
	fs.StringVar(&config.OutputFile, "output", DefaultOutputFile, "CSV output path (created or truncated).")
	fs.StringVar(&config.OutputFile, "o", DefaultOutputFile, "Shorthand for --output.")
	fs.Uint64Var(&config.MaxPrimes, "max-primes", 0, "Stop after this many primes (0 = scan the whole range).")
	fs.StringVar(&config.Preset, "preset", PresetFull, "Range preset: 'full' or 'first' (first --count primes).")
	fs.Uint64Var(&config.Count, "count", DefaultCount, "Number of primes for the 'first' preset.")
	fs.IntVar(&config.BatchSize, "batch-size", DefaultBatchSize, "Records buffered between writes.")
	fs.Uint64Var(&config.ProgressInterval, "progress-interval", DefaultProgressInterval, "Candidates between progress reports.")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Maximum run time (e.g. 30m, 0 = no limit).")
	fs.BoolVar(&config.Yes, "yes", false, "Skip the confirmation prompt.")
	fs.BoolVar(&config.Yes, "y", false, "Shorthand for --yes.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: only the final summary line.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print the forecast and per-report progress lines.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.Estimate, "estimate", false, "Print the runtime and output size forecast, then exit.")
	fs.BoolVar(&config.Check, "check", false, "Start the interactive primality checker.")
	fs.BoolVar(&config.TUI, "tui", false, "Run the scan inside the interactive dashboard.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Measure trial-division throughput and save a profile.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path of the calibration profile.")
	fs.Float64Var(&config.Throughput, "throughput", 0, "Estimator throughput in candidates/s (0 = profile or default).")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.BoolVar(&config.LogJSON, "log-json", false, "Emit logs as JSON instead of console text.")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish, powershell).")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML run file with default settings.")
}

// canonicalFlag maps shorthand flags to their long names.
func canonicalFlag(name string) string {
	switch name {
	case "o":
		return "output"
	case "y":
		return "yes"
	case "q":
		return "quiet"
	case "v":
		return "verbose"
	}
	return name
}

// applyPreset fills the range and cap from the preset for every key no other
// layer set.
func applyPreset(c *AppConfig, explicit map[string]bool) {
	if !explicit["start"] {
		c.StartText = ""
		c.Start = PresetStart
	}
	if !explicit["end"] {
		c.EndText = ""
		c.End = PresetEnd
	}
	if c.Preset == PresetFirst && !explicit["max-primes"] {
		c.MaxPrimes = c.Count
	}
}

// resolveRange parses the textual bounds left by the layers above the preset.
func resolveRange(c *AppConfig) error {
	if c.StartText != "" {
		v, err := ParseNumber("start", c.StartText)
		if err != nil {
			return err
		}
		c.Start = v
	}
	if c.EndText != "" {
		v, err := ParseNumber("end", c.EndText)
		if err != nil {
			return err
		}
		c.End = v
	}
	return nil
}
