// Package calibration measures how fast the trial-division oracle runs on the
// current machine and caches the result so the estimator can forecast scans
// from real numbers instead of a built-in guess.
package calibration

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// CurrentProfileVersion is bumped whenever the profile layout changes.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the profile name inside the home directory.
const DefaultProfileFileName = ".primescan_calibration.json"

// Sample is the throughput measured around one magnitude.
type Sample struct {
	// Magnitude is the first candidate of the measured block.
	Magnitude uint64 `json:"magnitude"`
	// Checked is the number of candidates examined.
	Checked uint64 `json:"checked"`
	// Throughput is in candidates per second.
	Throughput float64 `json:"throughput"`
}

// CalibrationProfile is the persisted result of a calibration run together
// with the hardware it was measured on.
type CalibrationProfile struct {
	ProfileVersion  int       `json:"profile_version"`
	CalibratedAt    time.Time `json:"calibrated_at"`
	NumCPU          int       `json:"num_cpu"`
	GOARCH          string    `json:"goarch"`
	GOOS            string    `json:"goos"`
	GoVersion       string    `json:"go_version"`
	WordSize        int       `json:"word_size"`
	Samples         []Sample  `json:"samples"`
	CalibrationTime string    `json:"calibration_time,omitempty"`
}

// NewProfile returns an empty profile stamped with the current hardware.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
	}
}

// IsValid reports whether the profile was measured on hardware matching the
// current process.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// ThroughputNear returns the sample whose magnitude is closest to n on a log
// scale. ok is false when the profile holds no usable sample.
func (p *CalibrationProfile) ThroughputNear(n uint64) (throughput float64, magnitude uint64, ok bool) {
	if p == nil {
		return 0, 0, false
	}
	target := math.Log10(math.Max(float64(n), 1))
	best := math.Inf(1)
	for _, s := range p.Samples {
		if s.Throughput <= 0 || s.Magnitude == 0 {
			continue
		}
		if d := math.Abs(math.Log10(float64(s.Magnitude)) - target); d < best {
			best, throughput, magnitude, ok = d, s.Throughput, s.Magnitude, true
		}
	}
	return throughput, magnitude, ok
}

// String renders the profile for humans.
func (p *CalibrationProfile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calibration profile v%d (%s/%s, %d CPUs, %s), measured %s",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.GoVersion,
		p.CalibratedAt.Format("2006-01-02 15:04:05"))
	for _, s := range p.Samples {
		fmt.Fprintf(&b, "\n  near %d: %.0f candidates/s", s.Magnitude, s.Throughput)
	}
	return b.String()
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When the file is missing or
// unreadable it returns a fresh profile and loaded=false.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns ~/.primescan_calibration.json, falling back
// to the working directory when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
