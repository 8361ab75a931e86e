package tui

import (
	"strings"
	"testing"
	"time"
)

func TestChartModel_AddDataPoint(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.SetSize(50, 10)

	chart.AddDataPoint(0.25, 1000, 30*time.Second)
	chart.AddDataPoint(0.50, 1200, 20*time.Second)
	chart.AddDataPoint(0.75, 900, 10*time.Second)

	if chart.progress != 0.75 {
		t.Errorf("expected progress 0.75, got %f", chart.progress)
	}
	if chart.eta != 10*time.Second {
		t.Errorf("expected eta 10s, got %v", chart.eta)
	}
	if chart.speedHistory.Len() != 3 {
		t.Errorf("expected 3 speed samples, got %d", chart.speedHistory.Len())
	}
}

func TestChartModel_Reset(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.AddDataPoint(0.5, 100, 10*time.Second)
	chart.UpdateSysStats(25.0, 60.0)
	chart.SetDone(time.Minute)

	chart.Reset()

	if chart.progress != 0 || chart.done {
		t.Errorf("expected cleared chart, got progress=%f done=%v", chart.progress, chart.done)
	}
	if chart.speedHistory.Len() != 0 {
		t.Error("expected speedHistory to be empty after reset")
	}
	if chart.cpuHistory.Len() != 0 {
		t.Error("expected cpuHistory to be empty after reset")
	}
	if chart.memHistory.Len() != 0 {
		t.Error("expected memHistory to be empty after reset")
	}
}

func TestChartModel_View(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		setup  func(c *ChartModel)
		want   []string
		absent []string
	}{
		{
			name: "running",
			setup: func(c *ChartModel) {
				c.AddDataPoint(0.3, 500, 20*time.Second)
				c.AddDataPoint(0.6, 700, 10*time.Second)
			},
			want:   []string{"Scan Progress", "ETA:", "Speed (max"},
			absent: []string{"Total:"},
		},
		{
			name: "done",
			setup: func(c *ChartModel) {
				c.AddDataPoint(1, 700, 0)
				c.SetDone(90 * time.Second)
			},
			want:   []string{"Total:"},
			absent: []string{"ETA:"},
		},
		{
			name: "disk free",
			setup: func(c *ChartModel) {
				c.SetDiskFree(2048)
			},
			want: []string{"Disk free:", "2.00 KB"},
		},
		{
			name: "system load",
			setup: func(c *ChartModel) {
				c.UpdateSysStats(12.5, 40)
			},
			want: []string{"CPU", "MEM", "12.5%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chart := NewChartModel()
			chart.SetSize(60, 14)
			tt.setup(&chart)

			view := chart.View()
			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("expected view to contain %q", w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(view, a) {
					t.Errorf("expected view not to contain %q", a)
				}
			}
		})
	}
}

func TestChartModel_RenderProgressBar(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.SetSize(50, 10)
	chart.AddDataPoint(0.5, 100, 10*time.Second)

	bar := chart.renderProgressBar()
	if !strings.Contains(bar, " 50.0%") {
		t.Errorf("expected 50.0%% in bar, got %q", bar)
	}

	chart.AddDataPoint(1.5, 100, 0)
	if bar := chart.renderProgressBar(); !strings.Contains(bar, "100.0%") {
		t.Errorf("expected fraction clamped to 100%%, got %q", bar)
	}
}

func TestChartModel_RenderProgressBar_Narrow(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.SetSize(10, 10)
	chart.AddDataPoint(0.5, 100, 0)

	if bar := chart.renderProgressBar(); bar != "" {
		t.Errorf("expected no bar in a narrow panel, got %q", bar)
	}
}

func TestChartModel_SetSize_ResizesSparklines(t *testing.T) {
	t.Parallel()
	chart := NewChartModel()
	chart.SetSize(40, 12)

	if got, want := chart.cpuHistory.Cap(), 40-sparklineWidth; got != want {
		t.Errorf("cpu history capacity = %d, want %d", got, want)
	}
	if got, want := chart.memHistory.Cap(), 40-sparklineWidth; got != want {
		t.Errorf("mem history capacity = %d, want %d", got, want)
	}
}
