package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agbru/primescan/internal/config"
	"github.com/agbru/primescan/internal/format"
	"github.com/agbru/primescan/internal/primes"
	"github.com/agbru/primescan/internal/ui"
)

// REPLConfig holds configuration for the checker session.
type REPLConfig struct {
	// Limit is the largest value checked without asking for confirmation.
	Limit uint64
}

// REPL is the interactive primality checker. Each line is either a number
// to test, a command, or q to quit. Invalid input is reported and the prompt
// is shown again.
type REPL struct {
	config REPLConfig
	in     *bufio.Reader
	out    io.Writer
}

// NewREPL creates a checker reading from stdin and writing to stdout.
func NewREPL(cfg REPLConfig) *REPL {
	if cfg.Limit == 0 {
		cfg.Limit = config.CheckerLimit
	}
	return &REPL{
		config: cfg,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = bufio.NewReader(in)
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until q or EOF.
func (r *REPL) Start() {
	r.printBanner()

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"Enter a positive integer ('q' to quit): "+ui.ColorReset())

		input, err := r.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		if input == "" {
			continue
		}
		if !r.processCommand(input) {
			return
		}
	}
}

// readLine returns the next trimmed line. A final line without a newline is
// returned before io.EOF.
func (r *REPL) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *REPL) printBanner() {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorCyan(), rule, ui.ColorReset())
	fmt.Fprintf(r.out, "%sPrime checker%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorCyan(), rule, ui.ColorReset())
	fmt.Fprintf(r.out, "Checks positive integers from 1 to %s.\n", format.FormatUint(r.config.Limit))
	fmt.Fprintln(r.out, "Larger values up to 18,446,744,073,709,551,615 are accepted after confirmation.")
	fmt.Fprintln(r.out, "Type 'help' for the list of commands.")
	fmt.Fprintf(r.out, "%s%s%s\n\n", ui.ColorCyan(), rule, ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<n>%s             - Check whether n is prime\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdivisors <n>%s    - List every divisor of n\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfactors <n>%s     - Prime factorization of n\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sq%s / %squit%s        - Exit\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand executes one input line. Returns false if the session
// should end.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "q", "quit", "exit":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	case "help", "h", "?":
		r.printHelp()
	case "divisors", "d":
		if n, ok := r.argument(cmd, args); ok {
			r.divisors(n)
		}
	case "factors", "f":
		if n, ok := r.argument(cmd, args); ok {
			r.factors(n)
		}
	default:
		if len(args) > 0 {
			r.invalid(input)
			return true
		}
		if n, ok := r.parse(input); ok {
			r.check(n)
		}
	}
	return true
}

// argument parses the single numeric argument of a command.
func (r *REPL) argument(cmd string, args []string) (uint64, bool) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: %s <n>%s\n\n", ui.ColorRed(), cmd, ui.ColorReset())
		return 0, false
	}
	return r.parse(args[0])
}

// parse validates a number and applies the confirmation gate.
func (r *REPL) parse(text string) (uint64, bool) {
	n, err := config.ParseNumber("number", text)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n\n", ui.ColorRed(), err, ui.ColorReset())
		return 0, false
	}
	if n < 1 {
		fmt.Fprintf(r.out, "%sError: enter an integer greater than 0.%s\n\n", ui.ColorRed(), ui.ColorReset())
		return 0, false
	}
	if n > r.config.Limit && !r.confirmLarge(n) {
		fmt.Fprintf(r.out, "Canceled.\n\n")
		return 0, false
	}
	return n, true
}

func (r *REPL) confirmLarge(n uint64) bool {
	fmt.Fprintf(r.out, "%sWarning: %s exceeds the recommended limit of %s; the check may take a while.%s\n",
		ui.ColorYellow(), format.FormatUint(n), format.FormatUint(r.config.Limit), ui.ColorReset())
	fmt.Fprint(r.out, "Continue? (y/n): ")
	answer, err := r.readLine()
	if err != nil {
		fmt.Fprintln(r.out)
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (r *REPL) invalid(input string) {
	fmt.Fprintf(r.out, "%sError: %q is not a valid integer or command.%s\n", ui.ColorRed(), input, ui.ColorReset())
	fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n\n", ui.ColorYellow(), ui.ColorReset())
}

func (r *REPL) check(n uint64) {
	fmt.Fprintf(r.out, "\nChecking %s ...\n\n", format.FormatUint(n))
	if primes.IsPrime(n) {
		fmt.Fprintf(r.out, "%sYES, this is a prime number%s\n", ui.ColorGreen(), ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "%sNO, this is not a prime number%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintln(r.out, "Its distinct prime factors are:")
		fmt.Fprintln(r.out, joinValues(primes.DistinctPrimeFactors(n), ","))
	}
	r.separator()
}

func (r *REPL) divisors(n uint64) {
	d := primes.AllFactors(n)
	fmt.Fprintf(r.out, "\n%s has %d divisors:\n", format.FormatUint(n), len(d))
	fmt.Fprintln(r.out, joinValues(d, ", "))
	r.separator()
}

func (r *REPL) factors(n uint64) {
	f := primes.PrimeFactors(n)
	fmt.Fprintf(r.out, "\n%s = %s\n", format.FormatUint(n), joinValues(f, " × "))
	r.separator()
}

func (r *REPL) separator() {
	fmt.Fprintf(r.out, "\n%s\n\n", strings.Repeat("-", 50))
}

// joinValues renders values with sep, or "(none)" when empty.
func joinValues(values []uint64, sep string) string {
	if len(values) == 0 {
		return "(none)"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, sep)
}
