package tsp

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Sentinel errors. Timeouts are never errors; see Status.
var (
	// ErrNoPoints is returned when no points are supplied (no tour exists).
	ErrNoPoints = errors.New("tsp: no points")

	// ErrInvalidOptions is returned for malformed Options (negative budget, etc).
	ErrInvalidOptions = errors.New("tsp: invalid options")

	// ErrUnsupportedAlgorithm is returned for an unknown Algorithm value or name.
	ErrUnsupportedAlgorithm = errors.New("tsp: unsupported algorithm")

	// ErrTooManyPoints is returned when HeldKarp is asked to solve more than
	// MaxHeldKarpPoints points.
	ErrTooManyPoints = errors.New("tsp: too many points for held-karp")
)

// Algorithm selects the solver strategy.
type Algorithm int

const (
	// BranchAndBound is the reduced-cost-matrix search (default).
	BranchAndBound Algorithm = iota
	// HeldKarp is the exact bitmask dynamic program.
	HeldKarp
)

// String returns the canonical name used in configs and flags.
func (a Algorithm) String() string {
	switch a {
	case BranchAndBound:
		return "branch-and-bound"
	case HeldKarp:
		return "held-karp"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a name (or its short alias) to an Algorithm.
//
//	"branch-and-bound", "bb" → BranchAndBound
//	"held-karp", "hk", "dp"  → HeldKarp
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "branch-and-bound", "bb", "":
		return BranchAndBound, nil
	case "held-karp", "hk", "dp":
		return HeldKarp, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
}

// Status tells how a search ended.
type Status int

const (
	// Completed means the search space was exhausted; the tour is optimal.
	Completed Status = iota
	// TimedOut means MaxExecutionTime elapsed; the tour is the best found so far.
	TimedOut
	// Canceled means the caller's context was canceled.
	Canceled
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case TimedOut:
		return "timed-out"
	case Canceled:
		return "canceled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Stats holds search instrumentation counters.
type Stats struct {
	Nodes        int64 // nodes visited (including leaves)
	Expanded     int64 // nodes whose children were bounded
	Pruned       int64 // children skipped because their bound could not win
	Leaves       int64 // complete tours evaluated
	Improvements int64 // incumbent replacements
}

// Result is the outcome of Solve.
type Result struct {
	// Tour is the closed tour, origin first and last, or nil when no complete
	// tour was reached before the deadline.
	Tour []int

	// Cost is the closed tour length, or +Inf when Tour is nil.
	Cost float64

	// RootBound is the reduction lower bound of the full instance
	// (0 for algorithms that do not compute one).
	RootBound float64

	Status  Status
	Stats   Stats
	Elapsed time.Duration
}

// Found reports whether a complete tour was produced.
func (r Result) Found() bool { return r.Tour != nil }

// Optimal reports whether the tour is proven optimal.
func (r Result) Optimal() bool { return r.Found() && r.Status == Completed }

func emptyResult(status Status) Result {
	return Result{Cost: math.Inf(1), Status: status}
}

// roundScale controls final cost stabilization precision (1e-9).
const roundScale = 1e9

// round1e9 returns x rounded to 1e-9 absolute precision.
// Infinities pass through unchanged.
func round1e9(x float64) float64 {
	if math.IsInf(x, 0) {
		return x
	}

	return math.Round(x*roundScale) / roundScale
}
