package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/primescan/internal/errors"
)

// RunFile is the YAML run file accepted by --config. Every field is optional;
// numbers may be written as YAML integers or as strings in any form
// ParseNumber accepts.
//
//	start: 1e12
//	end: 2e12-1
//	output: primes.csv
//	preset: first
//	count: 5000
//	batch_size: 20000
//	timeout: 6h
type RunFile struct {
	Start            *string  `yaml:"start"`
	End              *string  `yaml:"end"`
	Output           *string  `yaml:"output"`
	MaxPrimes        *uint64  `yaml:"max_primes"`
	Preset           *string  `yaml:"preset"`
	Count            *uint64  `yaml:"count"`
	BatchSize        *int     `yaml:"batch_size"`
	ProgressInterval *uint64  `yaml:"progress_interval"`
	Timeout          *string  `yaml:"timeout"`
	Throughput       *float64 `yaml:"throughput"`
	MetricsAddr      *string  `yaml:"metrics_addr"`
	LogLevel         *string  `yaml:"log_level"`
	LogJSON          *bool    `yaml:"log_json"`
	Yes              *bool    `yaml:"yes"`
	Quiet            *bool    `yaml:"quiet"`
	Verbose          *bool    `yaml:"verbose"`
}

// LoadRunFile reads and decodes a run file. Unknown keys are rejected so
// typos surface as configuration errors.
func LoadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("cannot read run file %s: %v", path, err)
	}
	return DecodeRunFile(data)
}

// DecodeRunFile decodes YAML run file content.
func DecodeRunFile(data []byte) (*RunFile, error) {
	var rf RunFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewConfigError("invalid run file: %v", err)
	}
	return &rf, nil
}

// apply copies the file's values into c for every key the command line did
// not set, recording them in explicit.
func (rf *RunFile) apply(c *AppConfig, explicit map[string]bool) error {
	setString := func(key string, src *string, dst *string) {
		if src != nil && !explicit[key] {
			*dst = *src
			explicit[key] = true
		}
	}
	setBool := func(key string, src *bool, dst *bool) {
		if src != nil && !explicit[key] {
			*dst = *src
			explicit[key] = true
		}
	}
	setUint := func(key string, src *uint64, dst *uint64) {
		if src != nil && !explicit[key] {
			*dst = *src
			explicit[key] = true
		}
	}

	setString("start", rf.Start, &c.StartText)
	setString("end", rf.End, &c.EndText)
	setString("output", rf.Output, &c.OutputFile)
	setString("preset", rf.Preset, &c.Preset)
	setString("metrics-addr", rf.MetricsAddr, &c.MetricsAddr)
	setString("log-level", rf.LogLevel, &c.LogLevel)
	setUint("max-primes", rf.MaxPrimes, &c.MaxPrimes)
	setUint("count", rf.Count, &c.Count)
	setUint("progress-interval", rf.ProgressInterval, &c.ProgressInterval)
	setBool("log-json", rf.LogJSON, &c.LogJSON)
	setBool("yes", rf.Yes, &c.Yes)
	setBool("quiet", rf.Quiet, &c.Quiet)
	setBool("verbose", rf.Verbose, &c.Verbose)

	if rf.BatchSize != nil && !explicit["batch-size"] {
		c.BatchSize = *rf.BatchSize
		explicit["batch-size"] = true
	}
	if rf.Throughput != nil && !explicit["throughput"] {
		c.Throughput = *rf.Throughput
		explicit["throughput"] = true
	}
	if rf.Timeout != nil && !explicit["timeout"] {
		d, err := time.ParseDuration(*rf.Timeout)
		if err != nil {
			return apperrors.ValidationError{Field: "timeout", Message: err.Error()}
		}
		c.Timeout = d
		explicit["timeout"] = true
	}
	return nil
}
