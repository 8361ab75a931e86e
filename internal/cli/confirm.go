package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/primescan/internal/format"
	"github.com/agbru/primescan/internal/scan"
	"github.com/agbru/primescan/internal/ui"
)

// HugeRangeCandidates is the number of odd candidates above which an
// uncapped scan asks for confirmation.
const HugeRangeCandidates uint64 = 100_000_000

// NeedsConfirmation reports whether a scan over r is long enough to warrant
// the confirmation gate. Capped runs stop early and never need it.
func NeedsConfirmation(r scan.Range, maxPrimes uint64) bool {
	return maxPrimes == 0 && r.OddCandidates() > HugeRangeCandidates
}

// DisplayHugeRangeWarning explains what an uncapped scan of r involves.
func DisplayHugeRangeWarning(out io.Writer, r scan.Range) {
	fmt.Fprintf(out, "\n%sWarning: this scan covers %s numbers and may take hours or days.%s\n",
		ui.ColorYellow(), format.FormatUint(r.Size()), ui.ColorReset())
	fmt.Fprintf(out, "About %s odd candidates will be checked.\n\n", format.FormatUint(r.OddCandidates()))
	fmt.Fprintln(out, "Notes:")
	fmt.Fprintln(out, "  1. Press Ctrl+C at any time to stop; primes found so far are kept.")
	fmt.Fprintln(out, "  2. Progress and an ETA are shown periodically.")
	fmt.Fprintln(out, "  3. Results are written in batches to limit data loss.")
	fmt.Fprintln(out)
}

// Confirm prints prompt and reads one answer from in. Only "y" and "yes"
// (any case) count as consent; an empty answer, any other text or EOF is a
// refusal. A read error other than EOF is returned.
func Confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s (yes/no): ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	if errors.Is(err, io.EOF) && answer == "" {
		fmt.Fprintln(out)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
