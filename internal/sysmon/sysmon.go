// Package sysmon samples system-wide CPU, memory and disk usage for the scan
// dashboard and the pre-run disk space check.
package sysmon

import (
	"path/filepath"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	DiskFree   uint64  // bytes free on the output volume, 0 if unknown
}

// Sampler samples the host and the volume holding the output file.
type Sampler struct {
	dir string
}

// NewSampler returns a sampler whose disk figures refer to the directory
// containing outputPath.
func NewSampler(outputPath string) *Sampler {
	return &Sampler{dir: outputDir(outputPath)}
}

// Sample collects a single snapshot.
// CPU uses interval=0 (delta since last call). Fields are zero on error.
func (s *Sampler) Sample() Stats {
	st := Sample()
	if free, ok := DiskFree(s.dir); ok {
		st.DiskFree = free
	}
	return st
}

// Sample collects a single system-wide CPU and memory snapshot.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// DiskFree reports the free bytes on the volume holding dir.
func DiskFree(dir string) (uint64, bool) {
	u, err := disk.Usage(dir)
	if err != nil || u == nil {
		return 0, false
	}
	return u.Free, true
}

func outputDir(path string) string {
	dir := filepath.Dir(path)
	if dir == "" {
		return "."
	}
	return dir
}
