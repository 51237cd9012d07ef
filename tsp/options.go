package tsp

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"
)

// NoTimeLimit disables the wall-clock deadline.
const NoTimeLimit = time.Duration(math.MaxInt64)

// DefaultMaxExecutionTime is the budget used by DefaultOptions.
const DefaultMaxExecutionTime = 30 * time.Second

// Hooks are optional instrumentation callbacks. Nil fields are no-ops.
// With Workers > 1 they are invoked from several goroutines at once.
type Hooks struct {
	// OnExpand is called after a node bounded its children.
	OnExpand func(depth, children int)

	// OnPrune is called with the number of children skipped at a node.
	OnPrune func(depth, count int)

	// OnIncumbent is called whenever a strictly better tour is recorded.
	OnIncumbent func(cost float64, depth int)

	// OnTimeout is called once when the deadline stops the search.
	OnTimeout func()
}

// Options configures Solve.
type Options struct {
	// Algo selects the strategy; BranchAndBound by default.
	Algo Algorithm

	// MaxExecutionTime is the wall-clock budget measured from StartedAt.
	// 0 means the budget is already spent (Solve returns at once, TimedOut);
	// NoTimeLimit disables the deadline. Negative values are rejected.
	MaxExecutionTime time.Duration

	// StartedAt is the single start timestamp of the run. Zero ⇒ time.Now()
	// on entry to Solve.
	StartedAt time.Time

	// Workers > 1 fans the root's children out over that many goroutines.
	// Each subtree is still searched sequentially.
	Workers int

	// Logger receives debug traces and a summary line. Nil ⇒ discarded.
	Logger *slog.Logger

	Hooks Hooks
}

// DefaultOptions returns sequential branch-and-bound with a 30s budget.
func DefaultOptions() Options {
	return Options{
		Algo:             BranchAndBound,
		MaxExecutionTime: DefaultMaxExecutionTime,
		Workers:          1,
	}
}

// validateOptions checks Options without reference to the instance.
func validateOptions(opts Options) error {
	if opts.MaxExecutionTime < 0 {
		return fmt.Errorf("%w: negative MaxExecutionTime %v", ErrInvalidOptions, opts.MaxExecutionTime)
	}
	if opts.Workers < 0 {
		return fmt.Errorf("%w: negative Workers %d", ErrInvalidOptions, opts.Workers)
	}
	switch opts.Algo {
	case BranchAndBound, HeldKarp:
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, opts.Algo)
	}

	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (h Hooks) expand(depth, children int) {
	if h.OnExpand != nil {
		h.OnExpand(depth, children)
	}
}

func (h Hooks) prune(depth, count int) {
	if h.OnPrune != nil && count > 0 {
		h.OnPrune(depth, count)
	}
}

func (h Hooks) incumbent(cost float64, depth int) {
	if h.OnIncumbent != nil {
		h.OnIncumbent(cost, depth)
	}
}

func (h Hooks) timeout() {
	if h.OnTimeout != nil {
		h.OnTimeout()
	}
}
