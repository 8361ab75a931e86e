package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/primescan/internal/format"
	"github.com/agbru/primescan/internal/ui"
)

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, samples []Sample) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sMagnitude%s          │ %sCandidates%s    │ %sThroughput%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 20), strings.Repeat("─", 15), strings.Repeat("─", 20))
	for _, s := range samples {
		rate := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if s.Throughput > 0 {
			rate = fmt.Sprintf("%s%s/s%s", ui.ColorYellow(), format.FormatFloat(s.Throughput, 0), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-18s%s │ %-13s │ %s\n",
			ui.ColorCyan(), format.FormatUint(s.Magnitude), ui.ColorReset(),
			format.FormatUint(s.Checked), rate)
	}
	tw.Flush()
}

// printCalibrationOutput confirms where the profile was saved.
func printCalibrationOutput(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%sCalibration saved%s to %s%s%s\n",
		ui.ColorGreen(), ui.ColorReset(), ui.ColorCyan(), path, ui.ColorReset())
}
