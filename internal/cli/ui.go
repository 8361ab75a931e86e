//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/primescan/internal/format"
	"github.com/agbru/primescan/internal/progress"
	"github.com/agbru/primescan/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples DisplayProgress from a specific spinner implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// FormatProgressSuffix renders the spinner status for a report line.
func FormatProgressSuffix(line progress.ReportLine) string {
	return fmt.Sprintf(" %s | found %s%s%s | %s/s",
		format.FormatProgressBarWithETA(line.Fraction(), line.ETA, ProgressBarWidth),
		ui.ColorGreen(), format.FormatUint(line.Found), ui.ColorReset(),
		format.FormatFloat(line.Speed, 0))
}

// DisplayProgress shows a spinner driven by the report lines received on
// lines until the channel is closed. In verbose mode every report is also
// printed as a plain progress line. wg.Done is called on return.
func DisplayProgress(wg *sync.WaitGroup, lines <-chan progress.ReportLine, verbose bool, out io.Writer) {
	defer wg.Done()

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" scanning...")
	s.Start()

	var last progress.ReportLine
	seen := false
	for line := range lines {
		last, seen = line, true
		s.UpdateSuffix(FormatProgressSuffix(line))
		if verbose && !line.Final {
			s.Stop()
			fmt.Fprintln(out, line.String())
			s.Start()
		}
	}
	s.Stop()

	if seen {
		fmt.Fprintln(out, last.String())
	}
}
