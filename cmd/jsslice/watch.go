package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jsslice/internal/driver"
	"jsslice/internal/observ"
	"jsslice/internal/trace"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [path...]",
	Short: "Re-run check whenever a source file changes",
	Long: `Watch runs check once, then again after every batch of changes to
.js/.mjs files under the given paths. With --metrics-addr it also serves
Prometheus metrics at /metrics.`,
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.Int("jobs", 0, "max parallel workers (0=auto)")
	f.StringArray("exclude", nil, "exclude paths matching this regex (repeatable)")
	f.Bool("cache", true, "reuse summaries of unchanged files")
	f.String("cache-dir", "", "summary cache directory (default: user cache dir)")
	f.Bool("expect-lets", false, "fail files whose let declarations differ from their let keywords")
	f.Int("max-depth", 0, "expression nesting limit (0=default)")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9464)")
	f.Duration("debounce", driver.DefaultDebounce, "quiet period before re-checking")
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := buildCheckOptions(cmd)
	if err != nil {
		return err
	}
	metricsAddr, err := cmd.Flags().GetString("metrics-addr")
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	roots := checkRoots(args)
	opts.Metrics = observ.NewCollector(nil)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: metricsMux(opts.Metrics), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(cmd.ErrOrStderr(), "metrics server: %v\n", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	w, err := driver.NewWatcher(roots, opts.Filter, debounce)
	if err != nil {
		return err
	}
	defer w.Close()
	w.OnError = func(err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "watch: %v\n", err)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	runOnce(ctx, out, errOut, roots, opts, nil)
	if !current.quiet {
		fmt.Fprintf(errOut, "watching %d path(s); press Ctrl+C to stop\n", len(roots))
	}
	return w.Run(ctx, func(changed []string) {
		runOnce(ctx, out, errOut, roots, opts, changed)
	})
}

// runOnce перепроверяет все корни: кэш делает неизменённые файлы дешёвыми.
func runOnce(ctx context.Context, out, errOut io.Writer, roots []string, opts driver.CheckOptions, changed []string) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "watch-run")
	defer span.End("")
	if len(changed) > 0 && !current.quiet {
		fmt.Fprintf(errOut, "\n%d file(s) changed\n", len(changed))
	}
	report, err := driver.CheckPaths(ctx, roots, opts)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(errOut, "check failed: %v\n", err)
		}
		return
	}
	for i := range report.Files {
		if r := &report.Files[i]; r.Failed() {
			fmt.Fprintf(out, "%-6s %s\n", fileStatus(r), displayPath(report, r.Path))
			writeDiagnostics(errOut, r.Bag, report.FileSet, useColor(os.Stderr))
		}
	}
	writeCheckTotals(errOut, report)
}

func metricsMux(c *observ.Collector) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	return mux
}
