// Package app wires configuration, the scan engine and the presentation
// layers into the primescan command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/primescan/internal/calibration"
	"github.com/agbru/primescan/internal/cli"
	"github.com/agbru/primescan/internal/config"
	apperrors "github.com/agbru/primescan/internal/errors"
	"github.com/agbru/primescan/internal/logging"
	"github.com/agbru/primescan/internal/ui"
)

// Application represents the primescan application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In feeds the confirmation prompt and the interactive checker.
	In io.Reader

	logger *logging.ZerologAdapter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used for prompts. The default is os.Stdin.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithLogger replaces the logger built from --log-level and --log-json.
func WithLogger(l *logging.ZerologAdapter) AppOption {
	return func(a *Application) { a.logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}

	programName := "primescan"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = logging.NewConsoleLogger(errWriter, logging.ParseLevel(cfg.LogLevel), cfg.LogJSON)
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.Calibrate:
		return a.runCalibration(ctx, out)
	case a.Config.Check:
		return a.runCheck(out)
	case a.Config.Estimate:
		return a.runEstimate(out)
	case a.Config.TUI:
		return a.runTUI(ctx, out)
	}
	return a.runScan(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration measures trial-division throughput and saves the profile
// the estimator reads.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()
	return calibration.RunCalibration(ctx, out, calibration.Options{ProfilePath: a.Config.CalibrationProfile})
}

// runCheck starts the interactive primality checker.
func (a *Application) runCheck(out io.Writer) int {
	repl := cli.NewREPL(cli.REPLConfig{Limit: config.CheckerLimit})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// lifecycle derives a context canceled by SIGINT, SIGTERM or the configured
// timeout.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	cancelTimeout := context.CancelFunc(func() {})
	if a.Config.Timeout > 0 {
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
