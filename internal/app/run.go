package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/primescan/internal/calibration"
	"github.com/agbru/primescan/internal/cli"
	apperrors "github.com/agbru/primescan/internal/errors"
	"github.com/agbru/primescan/internal/estimate"
	"github.com/agbru/primescan/internal/logging"
	"github.com/agbru/primescan/internal/metrics"
	"github.com/agbru/primescan/internal/progress"
	"github.com/agbru/primescan/internal/scan"
	"github.com/agbru/primescan/internal/server"
	"github.com/agbru/primescan/internal/sysmon"
	"github.com/agbru/primescan/internal/tui"
	"github.com/agbru/primescan/internal/ui"
)

// progressBuffer is the number of report lines queued for the spinner.
const progressBuffer = 16

func (a *Application) scanRange() scan.Range {
	return scan.Range{Start: a.Config.Start, End: a.Config.End}
}

func (a *Application) runOptions() scan.RunOptions {
	return scan.RunOptions{
		MaxPrimes:        a.Config.MaxPrimes,
		BatchSize:        a.Config.BatchSize,
		ProgressInterval: a.Config.ProgressInterval,
	}
}

// forecast runs the estimator with the --throughput override, the
// calibration profile, or the built-in default, in that order.
func (a *Application) forecast() (estimate.Forecast, error) {
	thr, ref := a.Config.Throughput, uint64(0)
	if thr <= 0 {
		if t, r, ok := calibration.LoadThroughput(a.Config.CalibrationProfile, a.Config.Start); ok {
			thr, ref = t, r
		}
	}
	mode := estimate.FullRange
	if a.Config.Capped() {
		mode = estimate.Bounded
	}
	return estimate.New(thr, ref).Estimate(mode, a.Config.Start, a.Config.End, a.Config.MaxPrimes)
}

// checkDiskSpace warns when the forecast output is larger than the free
// space next to the output file.
func (a *Application) checkDiskSpace(out io.Writer, f estimate.Forecast) {
	free, ok := sysmon.DiskFree(filepath.Dir(a.Config.OutputFile))
	if ok && f.Bytes > free {
		cli.DisplayDiskWarning(out, f.Bytes, free)
	}
}

// runEstimate prints the forecast and exits without scanning.
func (a *Application) runEstimate(out io.Writer) int {
	f, err := a.forecast()
	if err != nil {
		return apperrors.HandleScanError(apperrors.WrapError(err, "estimate"), 0, a.ErrWriter, ui.ErrorColors{})
	}
	cli.DisplayForecast(out, a.scanRange(), f)
	a.checkDiskSpace(out, f)
	return apperrors.ExitSuccess
}

// preflight runs the forecast, the disk check and the huge-range
// confirmation. proceed is false when the scan must not start; code is then
// the exit code.
func (a *Application) preflight(out io.Writer) (code int, proceed bool) {
	rng := a.scanRange()
	if f, err := a.forecast(); err == nil {
		if a.Config.Verbose && !a.Config.Quiet {
			cli.DisplayForecast(out, rng, f)
		}
		a.checkDiskSpace(out, f)
	} else {
		a.logger.Debug("forecast unavailable", logging.Err(err))
	}

	if a.Config.Yes || !cli.NeedsConfirmation(rng, a.Config.MaxPrimes) {
		return apperrors.ExitSuccess, true
	}
	cli.DisplayHugeRangeWarning(out, rng)
	ok, err := cli.Confirm(a.In, out, "Continue?")
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error reading confirmation: %v\n", err)
		return apperrors.ExitErrorGeneric, false
	}
	if !ok {
		fmt.Fprintln(out, "Scan canceled.")
		return apperrors.ExitErrorCanceled, false
	}
	return apperrors.ExitSuccess, true
}

// runScan is the default mode: scan the range into the CSV file with a
// spinner on stdout.
func (a *Application) runScan(ctx context.Context, out io.Writer) int {
	if code, proceed := a.preflight(out); !proceed {
		return code
	}

	sink, err := scan.OpenCSV(a.Config.OutputFile)
	if err != nil {
		return apperrors.HandleScanError(err, 0, a.ErrWriter, ui.ErrorColors{})
	}

	ctx, stop := a.lifecycle(ctx)
	defer stop()

	rng := a.scanRange()
	if !a.Config.Quiet {
		cli.DisplayBanner(out, cli.RunInfo{
			Range:      rng,
			OutputPath: a.Config.OutputFile,
			MaxPrimes:  a.Config.MaxPrimes,
			BatchSize:  a.Config.BatchSize,
			StartedAt:  time.Now(),
		})
	}

	engine, srv, err := a.newEngine(a.logger)
	if err != nil {
		_ = sink.Close()
		return apperrors.HandleScanError(err, 0, a.ErrWriter, ui.ErrorColors{})
	}

	var wg sync.WaitGroup
	var lines chan progress.ReportLine
	if !a.Config.Quiet {
		lines = make(chan progress.ReportLine, progressBuffer)
		engine.Observe(progress.NewChannelObserver(lines))
		wg.Add(1)
		go cli.DisplayProgress(&wg, lines, a.Config.Verbose, out)
	}
	if a.Config.Quiet || a.Config.LogJSON {
		engine.Observe(progress.NewLoggingObserver(a.logger.Zerolog()))
	}

	summary, err := a.execute(ctx, engine, srv, sink)
	if lines != nil {
		close(lines)
		wg.Wait()
	}
	return a.report(ctx, out, summary, err)
}

// newEngine builds the engine and, with --metrics-addr, the metrics server
// bound to its collector. The listener is opened here so a bad address fails
// before the scan starts.
func (a *Application) newEngine(logger *logging.ZerologAdapter) (*scan.Engine, *metricsServer, error) {
	opts := []scan.Option{scan.WithLogger(logger)}
	var srv *metricsServer
	if a.Config.MetricsAddr != "" {
		ln, err := net.Listen("tcp", a.Config.MetricsAddr)
		if err != nil {
			return nil, nil, apperrors.NewConfigError("cannot listen on %s: %v", a.Config.MetricsAddr, err)
		}
		reg := server.NewRegistry()
		collector := metrics.NewScanCollector(reg)
		opts = append(opts, scan.WithObserver(collector), scan.WithRecorder(collector))
		srv = &metricsServer{srv: server.New(a.Config.MetricsAddr, reg, logger), ln: ln, logger: logger}
		logger.Info("serving metrics", logging.String("addr", ln.Addr().String()))
	}
	return scan.NewEngine(opts...), srv, nil
}

type metricsServer struct {
	srv    *server.Server
	ln     net.Listener
	logger logging.Logger
}

// serve runs until ctx is done. A failing server is logged and does not
// abort the scan.
func (m *metricsServer) serve(ctx context.Context) error {
	if err := m.srv.Serve(ctx, m.ln); err != nil {
		m.logger.Error("metrics server stopped", err)
	}
	return nil
}

// execute runs the engine and the optional metrics server side by side. The
// server stops once the scan returns. The sink is closed before execute
// returns, and its close error is combined with the scan error.
func (a *Application) execute(ctx context.Context, engine *scan.Engine, srv *metricsServer, sink *scan.CSVSink) (scan.Summary, error) {
	var g errgroup.Group
	serverCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()

	var summary scan.Summary
	g.Go(func() error {
		defer stopServer()
		var err error
		summary, err = engine.Run(ctx, a.scanRange(), sink, a.runOptions())
		if cerr := sink.Close(); cerr != nil {
			err = multierr.Append(err, apperrors.IOError{
				Op: "close", Path: a.Config.OutputFile,
				Checked: summary.Checked, Found: summary.Found, Cause: cerr,
			})
		}
		return err
	})
	if srv != nil {
		g.Go(func() error { return srv.serve(serverCtx) })
	}
	err := g.Wait()
	return summary, err
}

// timeoutError turns an interruption caused by --timeout into an error.
func (a *Application) timeoutError(ctx context.Context, s scan.Summary) error {
	if s.Status == scan.Interrupted && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "scan", Limit: a.Config.Timeout}
	}
	return nil
}

// report prints the outcome of a scan and returns the exit code.
func (a *Application) report(ctx context.Context, out io.Writer, s scan.Summary, err error) int {
	if err == nil {
		err = a.timeoutError(ctx, s)
	}
	path := a.Config.OutputFile

	if a.Config.Quiet {
		cli.DisplayQuietSummary(out, s, path)
	} else {
		cli.DisplaySummary(out, s, path, time.Now())
		if s.Status == scan.Interrupted && err == nil {
			cli.DisplayInterrupted(out, s, path)
		}
	}

	if err != nil {
		return apperrors.HandleScanError(err, s.Elapsed, a.ErrWriter, ui.ErrorColors{})
	}
	if s.Status == scan.Interrupted {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// runTUI runs the scan inside the dashboard, then prints the summary once
// the terminal is restored.
func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	if code, proceed := a.preflight(out); !proceed {
		return code
	}
	sink, err := scan.OpenCSV(a.Config.OutputFile)
	if err != nil {
		return apperrors.HandleScanError(err, 0, a.ErrWriter, ui.ErrorColors{})
	}

	ctx, stop := a.lifecycle(ctx)
	defer stop()

	// Log lines would tear the alternate screen.
	engine, srv, err := a.newEngine(logging.NewConsoleLogger(io.Discard, logging.ParseLevel(a.Config.LogLevel), a.Config.LogJSON))
	if err != nil {
		_ = sink.Close()
		return apperrors.HandleScanError(err, 0, a.ErrWriter, ui.ErrorColors{})
	}

	fn := func(ctx context.Context, obs progress.Observer) (scan.Summary, error) {
		engine.Observe(obs)
		return a.execute(ctx, engine, srv, sink)
	}
	summary, err := tui.Run(ctx, fn, tui.Info{
		Range:      a.scanRange(),
		OutputPath: a.Config.OutputFile,
		MaxPrimes:  a.Config.MaxPrimes,
		Version:    Version,
	})
	return a.report(ctx, out, summary, err)
}
