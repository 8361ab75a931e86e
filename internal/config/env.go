// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the PRIMESCAN_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value. apply
// reports whether the value was accepted.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) bool
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Range and cap
	{"START", []string{"start"}, func(c *AppConfig, v string) bool {
		c.StartText = v
		return true
	}},
	{"END", []string{"end"}, func(c *AppConfig, v string) bool {
		c.EndText = v
		return true
	}},
	{"MAX_PRIMES", []string{"max-primes"}, func(c *AppConfig, v string) bool {
		return parseUintEnv(v, &c.MaxPrimes)
	}},
	{"PRESET", []string{"preset"}, func(c *AppConfig, v string) bool {
		c.Preset = v
		return true
	}},
	{"COUNT", []string{"count"}, func(c *AppConfig, v string) bool {
		return parseUintEnv(v, &c.Count)
	}},

	// Tuning
	{"BATCH_SIZE", []string{"batch-size"}, func(c *AppConfig, v string) bool {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return false
		}
		c.BatchSize = parsed
		return true
	}},
	{"PROGRESS_INTERVAL", []string{"progress-interval"}, func(c *AppConfig, v string) bool {
		return parseUintEnv(v, &c.ProgressInterval)
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) bool {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return false
		}
		c.Timeout = parsed
		return true
	}},
	{"THROUGHPUT", []string{"throughput"}, func(c *AppConfig, v string) bool {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return false
		}
		c.Throughput = parsed
		return true
	}},

	// String overrides
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) bool {
		c.OutputFile = v
		return true
	}},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) bool {
		c.CalibrationProfile = v
		return true
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) bool {
		c.MetricsAddr = v
		return true
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) bool {
		c.LogLevel = v
		return true
	}},

	// Boolean overrides
	{"YES", []string{"yes", "y"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.Yes)
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.Quiet)
	}},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.Verbose)
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.TUI)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.NoColor)
	}},
	{"LOG_JSON", []string{"log-json"}, func(c *AppConfig, v string) bool {
		return parseBoolEnv(v, &c.LogJSON)
	}},
}

// parseBoolEnv parses a boolean environment variable value into dst.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Unrecognized values leave dst untouched and return false.
func parseBoolEnv(val string, dst *bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	default:
		return false
	}
	return true
}

func parseUintEnv(val string, dst *uint64) bool {
	parsed, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return false
	}
	*dst = parsed
	return true
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line, and marks
// the accepted ones in explicit so presets leave them alone.
// This implements the priority: CLI flags > Environment variables > run file.
//
// Supported environment variables (all prefixed with PRIMESCAN_):
//   - START, END, MAX_PRIMES, PRESET, COUNT, BATCH_SIZE, PROGRESS_INTERVAL,
//     TIMEOUT, THROUGHPUT, OUTPUT, CALIBRATION_PROFILE, METRICS_ADDR,
//     LOG_LEVEL, YES, QUIET, VERBOSE, TUI, NO_COLOR, LOG_JSON, CONFIG
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet, explicit map[string]bool) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if o.apply(config, val) {
				explicit[o.flags[0]] = true
			}
		}
	}
}
