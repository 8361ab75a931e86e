package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/primescan/internal/estimate"
	"github.com/agbru/primescan/internal/format"
	"github.com/agbru/primescan/internal/scan"
	"github.com/agbru/primescan/internal/ui"
)

// timestampLayout is used for the start and end lines of a run.
const timestampLayout = "2006-01-02 15:04:05"

var ruler = strings.Repeat("=", 70)

// RunInfo describes a scan about to start.
type RunInfo struct {
	Range      scan.Range
	OutputPath string
	MaxPrimes  uint64
	BatchSize  int
	StartedAt  time.Time
}

// DisplayBanner prints the range, its size and the output path before a scan.
func DisplayBanner(out io.Writer, info RunInfo) {
	fmt.Fprintln(out, ruler)
	fmt.Fprintf(out, "%sPrime range scan%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintln(out, ruler)
	fmt.Fprintf(out, "Start:       %s%s%s\n", ui.ColorMagenta(), format.FormatUint(info.Range.Start), ui.ColorReset())
	fmt.Fprintf(out, "End:         %s%s%s\n", ui.ColorMagenta(), format.FormatUint(info.Range.End), ui.ColorReset())
	fmt.Fprintf(out, "Range size:  %s numbers\n", format.FormatUint(info.Range.Size()))
	if info.MaxPrimes > 0 {
		fmt.Fprintf(out, "Stop after:  %s primes\n", format.FormatUint(info.MaxPrimes))
	}
	fmt.Fprintf(out, "Output file: %s%s%s\n", ui.ColorCyan(), info.OutputPath, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %d logical processors, Go %s\n", runtime.NumCPU(), runtime.Version())
	fmt.Fprintln(out, ruler)
	fmt.Fprintf(out, "Started at:  %s\n\n", info.StartedAt.Format(timestampLayout))
}

// DisplaySummary prints the final report of a run that was not interrupted.
func DisplaySummary(out io.Writer, s scan.Summary, outputPath string, end time.Time) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, ruler)
	switch s.Status {
	case scan.CapReached:
		fmt.Fprintf(out, "%sScan stopped after %s primes.%s\n", ui.ColorGreen(), format.FormatUint(s.Found), ui.ColorReset())
	case scan.Interrupted:
		fmt.Fprintf(out, "%sScan interrupted.%s\n", ui.ColorYellow(), ui.ColorReset())
	case scan.Failed:
		fmt.Fprintf(out, "%sScan failed.%s\n", ui.ColorRed(), ui.ColorReset())
	default:
		fmt.Fprintf(out, "%sScan complete.%s\n", ui.ColorGreen(), ui.ColorReset())
	}
	fmt.Fprintln(out, ruler)
	fmt.Fprintf(out, "Finished at:     %s\n", end.Format(timestampLayout))
	fmt.Fprintf(out, "Total time:      %s (%s)\n", format.FormatSeconds(s.Elapsed, 2), format.FormatHours(s.Elapsed))
	fmt.Fprintf(out, "Numbers checked: %s\n", format.FormatUint(s.Checked))
	fmt.Fprintf(out, "Primes found:    %s%s%s\n", ui.ColorGreen(), format.FormatUint(s.Found), ui.ColorReset())
	fmt.Fprintf(out, "Average speed:   %s/s\n", format.FormatFloat(s.Throughput(), 0))
	fmt.Fprintf(out, "Prime density:   %s%%\n", format.FormatFloat(s.Density(), 4))
	fmt.Fprintf(out, "Results saved:   %s%s%s\n", ui.ColorCyan(), outputPath, ui.ColorReset())
	fmt.Fprintln(out, ruler)
}

// DisplayInterrupted tells the user that the primes found so far are on disk.
func DisplayInterrupted(out io.Writer, s scan.Summary, outputPath string) {
	fmt.Fprintf(out, "\n\n%sScan interrupted by the user.%s\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(out, "The %s primes found so far were saved to %s%s%s.\n",
		format.FormatUint(s.Found), ui.ColorCyan(), outputPath, ui.ColorReset())
	if s.Last > 0 {
		fmt.Fprintf(out, "Resume with --start %d.\n", s.Last+1)
	}
}

// FormatQuietSummary renders a single tab-separated line for scripts:
// status, checked, found, elapsed seconds, output path.
func FormatQuietSummary(s scan.Summary, outputPath string) string {
	return fmt.Sprintf("%s\t%d\t%d\t%.3f\t%s", s.Status, s.Checked, s.Found, s.Elapsed.Seconds(), outputPath)
}

// DisplayQuietSummary prints FormatQuietSummary.
func DisplayQuietSummary(out io.Writer, s scan.Summary, outputPath string) {
	fmt.Fprintln(out, FormatQuietSummary(s, outputPath))
}

// DisplayForecast prints the estimator output for a range.
func DisplayForecast(out io.Writer, r scan.Range, f estimate.Forecast) {
	fmt.Fprintf(out, "--- Forecast (%s) ---\n", f.Mode)
	fmt.Fprintf(out, "Range:            [%s, %s]\n", format.FormatUint(r.Start), format.FormatUint(r.End))
	fmt.Fprintf(out, "Odd candidates:   %s\n", format.FormatUint(f.Candidates))
	fmt.Fprintf(out, "Expected primes:  %s%s%s\n", ui.ColorGreen(), format.FormatUint(f.Primes), ui.ColorReset())
	fmt.Fprintf(out, "Output size:      %s\n", format.FormatBytes(f.Bytes))
	fmt.Fprintf(out, "Throughput:       %s candidates/s\n", format.FormatFloat(f.Throughput, 0))
	fmt.Fprintf(out, "Estimated time:   %s%s%s (%s)\n",
		ui.ColorYellow(), format.FormatETA(f.Duration), ui.ColorReset(), format.FormatHours(f.Duration))
}

// DisplayDiskWarning warns when the forecast output does not fit in the free
// space of the output volume.
func DisplayDiskWarning(out io.Writer, need, free uint64) {
	fmt.Fprintf(out, "%sWarning: the output may need %s but only %s are free.%s\n",
		ui.ColorYellow(), format.FormatBytes(need), format.FormatBytes(free), ui.ColorReset())
}
