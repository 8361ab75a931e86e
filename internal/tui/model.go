package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primescan/internal/metrics"
	"github.com/agbru/primescan/internal/scan"
	"github.com/agbru/primescan/internal/sysmon"
)

// Info describes the scan shown by the dashboard.
type Info struct {
	Range      scan.Range
	OutputPath string
	MaxPrimes  uint64
	Version    string
}

// scanState tracks the scan behind the dashboard.
type scanState struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   bool
	failed bool
}

// Dashboard proportions.
const (
	headerRows  = 1
	footerRows  = 1
	minBodyRows = 4

	// logsShare is the percentage of the width given to the event log.
	logsShare = 45

	// metricsRows caps the metrics panel; the chart takes the rest.
	metricsRows = 6
)

type panelSize struct{ w, h int }

// layout splits the terminal into the event log on the left and the
// metrics and chart panels stacked on the right.
type layout struct {
	width, height int
	body          int
	logs          panelSize
	metrics       panelSize
	chart         panelSize
}

func computeLayout(width, height int) layout {
	body := max(height-headerRows-footerRows, minBodyRows)
	logsW := width * logsShare / 100
	rightW := width - logsW
	metricsH := min(metricsRows, body/2)
	return layout{
		width:   width,
		height:  height,
		body:    body,
		logs:    panelSize{logsW, body},
		metrics: panelSize{rightW, metricsH},
		chart:   panelSize{rightW, body - metricsH},
	}
}

// Model is the root bubbletea model for the scan dashboard.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	scanState
	size layout

	sampler *sysmon.Sampler
	mem     *metrics.MemoryCollector
	paused  bool
}

// NewModel creates a dashboard for the scan described by info. The scan
// context derives from parentCtx and is canceled by the quit key.
func NewModel(parentCtx context.Context, info Info) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	logs := NewLogsModel()
	logs.AddRunInfo(info)

	return Model{
		header:  NewHeaderModel(info.Version, info.Range),
		logs:    logs,
		metrics: NewMetricsModel(),
		chart:   NewChartModel(),
		footer:  NewFooterModel(),
		keymap:  DefaultKeyMap(),
		scanState: scanState{
			ctx:    ctx,
			cancel: cancel,
		},
		sampler: sysmon.NewSampler(info.OutputPath),
		mem:     metrics.NewMemoryCollector(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.size = computeLayout(msg.Width, msg.Height)
		m.layoutPanels()
		return m, nil

	case ReportMsg:
		if !m.paused {
			m.logs.AddReport(msg.Line)
			m.chart.AddDataPoint(msg.Line.Fraction(), msg.Line.Speed, msg.Line.ETA)
			m.metrics.UpdateReport(msg.Line)
		}
		return m, nil

	case ScanDoneMsg:
		m.done = true
		if msg.Err != nil {
			m.failed = true
			m.logs.AddError(msg.Err)
			m.footer.SetError(true)
		} else {
			m.logs.AddSummary(msg.Summary)
		}
		m.header.SetDone()
		m.chart.SetDone(msg.Summary.Elapsed)
		m.footer.SetDone(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(m.mem), sampleSysStatsCmd(m.sampler), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		m.chart.SetDiskFree(msg.DiskFree)
		return m, nil

	case ContextCancelledMsg:
		m.header.SetDone()
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		// The engine sees the cancellation, flushes and returns; Run waits
		// for it.
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.size.width == 0 || m.size.height == 0 {
		return "Initializing..."
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	logs := m.logs.renderToHeight(lipgloss.Height(rightCol))
	body := lipgloss.JoinHorizontal(lipgloss.Top, logs, rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.size.width)
	m.footer.SetWidth(m.size.width)
	m.logs.SetSize(m.size.logs.w, m.size.logs.h)
	m.metrics.SetSize(m.size.metrics.w, m.size.metrics.h)
	m.chart.SetSize(m.size.chart.w, m.size.chart.h)
}

// Run shows the dashboard while fn scans, and returns the scan outcome once
// the engine has finished its final flush. Quitting the dashboard cancels
// the scan.
func Run(ctx context.Context, fn ScanFunc, info Info, opts ...tea.ProgramOption) (scan.Summary, error) {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, info)
	defer model.cancel()

	ref := &programRef{}
	res := newScanResult()
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	// Inject the program reference before the scan starts so it can Send.
	ref.SetProgram(p)
	go runScan(model.ctx, ref, fn, res)

	_, tuiErr := p.Run()
	model.cancel()
	<-res.done

	if tuiErr != nil && res.err == nil {
		return res.summary, fmt.Errorf("dashboard: %w", tuiErr)
	}
	return res.summary, res.err
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		s := mc.Snapshot()
		return MemStatsMsg{
			Alloc:        s.HeapAlloc,
			HeapInuse:    s.HeapInuse,
			NumGC:        s.NumGC,
			PauseTotalNs: s.PauseTotalNs,
			NumGoroutine: s.NumGoroutine,
		}
	}
}

// sampleSysStatsCmd samples system-wide CPU, memory and disk usage.
func sampleSysStatsCmd(s *sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		st := s.Sample()
		return SysStatsMsg{
			CPUPercent: st.CPUPercent,
			MemPercent: st.MemPercent,
			DiskFree:   st.DiskFree,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
