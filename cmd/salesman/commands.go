package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/salesman/config"
	"github.com/katalvlaran/salesman/geom"
	"github.com/katalvlaran/salesman/metrics"
	"github.com/katalvlaran/salesman/pointio"
	"github.com/katalvlaran/salesman/tsp"
)

type solveFlags struct {
	configPath string
	algo       string
	timeLimit  string
	workers    int
	logLevel   string
	metrics    bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "salesman",
		Short:         "Exact travelling salesman solver for planar cities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCmd())

	return root
}

func newSolveCmd() *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Find the shortest closed tour through the cities in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			started := time.Now()
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			return runSolve(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], cfg, started)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	fl.StringVarP(&f.algo, "algo", "a", "", "algorithm: branch-and-bound or held-karp")
	fl.StringVarP(&f.timeLimit, "time-limit", "t", "", `execution time budget, e.g. 30s, or "none"`)
	fl.IntVarP(&f.workers, "workers", "w", 0, "root subtrees searched in parallel")
	fl.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fl.BoolVar(&f.metrics, "metrics", false, "print Prometheus metrics after solving")

	return cmd
}

// resolve layers explicitly set flags over the config file over defaults.
func (f solveFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	fl := cmd.Flags()
	if fl.Changed("algo") {
		cfg.Algorithm = f.algo
	}
	if fl.Changed("time-limit") {
		cfg.MaxExecutionTime = f.timeLimit
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fl.Changed("metrics") {
		cfg.Metrics = f.metrics
	}

	return cfg, cfg.Validate()
}

func runSolve(ctx context.Context, out, errOut io.Writer, path string, cfg config.Config, started time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := newLogger(errOut, level)

	opts, err := cfg.SolverOptions(started, logger)
	if err != nil {
		return err
	}

	var (
		reg *prometheus.Registry
		rec *metrics.Recorder
	)
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		if rec, err = metrics.NewRecorder(reg); err != nil {
			return err
		}
		opts.Hooks = rec.Hooks()
	}

	points, err := pointio.ReadFile(path)
	if err != nil {
		return err
	}
	logger.Debug("salesman: cities loaded", slog.String("file", path), slog.Int("count", len(points)))

	res, err := tsp.Solve(ctx, points, opts)
	if err != nil {
		return err
	}
	if rec != nil {
		rec.ObserveResult(opts.Algo, res)
	}

	if err = printResult(out, points, res); err != nil {
		return err
	}
	if reg != nil {
		return dumpMetrics(out, reg)
	}

	return nil
}

// newLogger writes text to terminals and JSON lines everywhere else.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}

// printResult writes the tour as 1-based city ids followed by a summary line.
func printResult(w io.Writer, points []geom.Point, res tsp.Result) error {
	if !res.Found() {
		_, err := fmt.Fprintf(w, "no tour found in %.3f ms (%s)\n", ms(res.Elapsed), res.Status)
		return err
	}

	ids := make([]int, len(res.Tour))
	for i, v := range res.Tour {
		ids[i] = v + 1
	}
	_, err := fmt.Fprintf(w, "%v\nFound tour [%.3f units] long in [%.3f ms] (%s, %d cities)\n",
		ids, res.Cost, ms(res.Elapsed), res.Status, len(points))

	return err
}

func dumpMetrics(w io.Writer, reg prometheus.Gatherer) error {
	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
