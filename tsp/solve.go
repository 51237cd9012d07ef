// Package tsp - unified entry point.
//
// Solve validates the instance and Options, derives the run deadline from the
// single StartedAt timestamp, routes to the selected algorithm and logs one
// summary line. Deadline expiry and cancellation are reported through
// Result.Status; only malformed input yields an error.
package tsp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/salesman/geom"
)

// Solve computes the best closed tour over points starting and ending at
// point 0.
//
// Contracts:
//   - len(points) ≥ 1; ErrNoPoints otherwise.
//   - coordinates are finite; geom.ErrNonFinite otherwise.
//   - opts passes validation; ErrInvalidOptions / ErrUnsupportedAlgorithm otherwise.
//
// The returned Result carries the best tour found and its status: Completed
// (proven optimal), TimedOut or Canceled (best-effort, possibly no tour).
func Solve(ctx context.Context, points []geom.Point, opts Options) (Result, error) {
	if len(points) == 0 {
		return Result{}, ErrNoPoints
	}
	if err := geom.Validate(points); err != nil {
		return Result{}, err
	}
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}

	started := opts.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	if deadline, ok := deadlineFor(started, opts.MaxExecutionTime); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}

	var (
		res Result
		err error
	)
	switch opts.Algo {
	case BranchAndBound:
		res = solveBranchAndBound(ctx, points, opts)
	case HeldKarp:
		res, err = solveHeldKarp(ctx, points)
		if err != nil {
			return Result{}, err
		}
	default:
		return Result{}, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, opts.Algo)
	}
	res.Elapsed = time.Since(started)

	if res.Status == TimedOut {
		opts.Hooks.timeout()
	}
	opts.logger().Info("tsp: solve finished",
		slog.String("algo", opts.Algo.String()),
		slog.Int("points", len(points)),
		slog.String("status", res.Status.String()),
		slog.Float64("cost", res.Cost),
		slog.Duration("elapsed", res.Elapsed),
		slog.Int64("nodes", res.Stats.Nodes))

	return res, nil
}

// deadlineFor returns started+budget, or false when the budget is unlimited.
// Budgets too large to add without overflow count as unlimited.
func deadlineFor(started time.Time, budget time.Duration) (time.Time, bool) {
	if budget >= NoTimeLimit/2 {
		return time.Time{}, false
	}

	return started.Add(budget), true
}

// statusOf maps the error that ended a search to a Status.
// Anything but a context error is a programming defect.
func statusOf(err error) Status {
	switch {
	case err == nil:
		return Completed
	case errors.Is(err, context.DeadlineExceeded):
		return TimedOut
	case errors.Is(err, context.Canceled):
		return Canceled
	default:
		panic(fmt.Sprintf("tsp: unexpected search error: %v", err))
	}
}
