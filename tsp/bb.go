// Branch-and-bound over reduced cost matrices (Little's algorithm).
//
// The search is a depth-first traversal of partial tours rooted at point 0.
// Every node owns (matrix, tour, bound, length):
//
//   - matrix: its private reduced CostMatrix copy;
//   - tour:   the immutable Partial visiting order;
//   - bound:  committed reduced edge costs plus every reduction on the path
//     from the root, a lower bound on any completion;
//   - length: the raw Euclidean length of the open path.
//
// Expansion copies the node matrix once per unvisited candidate c, commits
// last→c with ExcludePath, reduces the copy and sets
//
//	bound(c) = bound + M[last][c] + reduction
//
// where M[last][c] is the entry of the node's already reduced matrix. Children
// are sorted by ascending bound and visited while bound < incumbent; the first
// child that cannot win ends the loop since every later one is no better.
//
// Leaves close the cycle back to the origin and compare the closed raw length
// strictly against the incumbent.
//
// Deadline and cancellation are observed through ctx at the start of every
// node visit; an expired ctx unwinds the whole recursion with ctx.Err().
//
// Complexity: exponential worst case; O(n²) time and memory per child bound.

package tsp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/salesman/costmatrix"
	"github.com/katalvlaran/salesman/geom"
	"github.com/katalvlaran/salesman/tour"
)

const (
	// progressEvery is the number of visited nodes between progress attempts.
	progressEvery = 1 << 12
	// progressInterval throttles progress lines to at most one per interval.
	progressInterval = time.Second
)

// node is one search state.
type node struct {
	m      *costmatrix.CostMatrix
	tour   tour.Partial
	bound  float64
	length float64
}

// bbEngine is the search context passed through the recursion. It replaces
// any process-wide state: one engine per Solve call.
type bbEngine struct {
	points  []geom.Point
	n       int
	origin  int
	workers int

	best  *incumbent
	hooks Hooks
	log   *slog.Logger

	progress rate.Sometimes

	nodes        atomic.Int64
	expanded     atomic.Int64
	pruned       atomic.Int64
	leaves       atomic.Int64
	improvements atomic.Int64
}

func newBBEngine(points []geom.Point, opts Options) *bbEngine {
	return &bbEngine{
		points:   points,
		n:        len(points),
		origin:   0,
		workers:  opts.Workers,
		best:     newIncumbent(),
		hooks:    opts.Hooks,
		log:      opts.logger(),
		progress: rate.Sometimes{Interval: progressInterval},
	}
}

// root builds the fully reduced root node.
func (e *bbEngine) root() node {
	m := costmatrix.FromPoints(e.points)
	bound := m.ReduceAndCost()

	return node{m: m, tour: tour.At(e.origin), bound: bound}
}

// run searches from root, sequentially or with the root fan-out.
func (e *bbEngine) run(ctx context.Context, root node) error {
	if e.workers <= 1 {
		return e.visit(ctx, root)
	}

	return e.fanOut(ctx, root)
}

// visit processes one node and recurses into its surviving children.
func (e *bbEngine) visit(ctx context.Context, nd node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n := e.nodes.Add(1); n%progressEvery == 0 {
		e.progress.Do(func() {
			e.log.Debug("tsp: progress",
				slog.Int64("nodes", n),
				slog.Int("depth", nd.tour.Size()),
				slog.Float64("best", e.best.best()))
		})
	}

	if nd.tour.Size() == e.n {
		e.leaf(nd)
		return nil
	}

	kids := e.expand(nd)
	for i := range kids {
		if !(kids[i].bound < e.best.best()) {
			skipped := len(kids) - i
			e.pruned.Add(int64(skipped))
			e.hooks.prune(nd.tour.Size(), skipped)
			break
		}
		if err := e.visit(ctx, kids[i]); err != nil {
			return err
		}
	}

	return nil
}

// fanOut expands the root and searches each child subtree on its own
// goroutine, at most e.workers at a time. Bounds are re-validated against the
// shared incumbent right before a subtree starts.
func (e *bbEngine) fanOut(ctx context.Context, root node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.nodes.Add(1)
	if root.tour.Size() == e.n {
		e.leaf(root)
		return nil
	}

	kids := e.expand(root)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, k := range kids {
		k := k
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if !(k.bound < e.best.best()) {
				e.pruned.Add(1)
				e.hooks.prune(1, 1)
				return nil
			}

			return e.visit(gctx, k)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

// expand bounds every unvisited candidate and returns the children sorted by
// ascending bound; ties keep candidate index order.
func (e *bbEngine) expand(nd node) []node {
	var (
		last  = nd.tour.Last()
		depth = nd.tour.Size()
		kids  = make([]node, 0, e.n-depth)
		c     int
		edge  float64
	)
	for c = 0; c < e.n; c++ {
		if nd.tour.Has(c) {
			continue
		}
		edge = nd.m.At(last, c)
		if edge == costmatrix.Sentinel {
			panic(fmt.Sprintf("tsp: edge %d→%d resolved before it was committed (tour %v)", last, c, nd.tour))
		}
		m := nd.m.Copy()
		m.ExcludePath(last, c)
		reduction := m.ReduceAndCost()
		kids = append(kids, node{
			m:      m,
			tour:   nd.tour.Add(c),
			bound:  nd.bound + edge + reduction,
			length: nd.length + e.points[last].DistanceTo(e.points[c]),
		})
	}
	sort.SliceStable(kids, func(i, j int) bool { return kids[i].bound < kids[j].bound })

	e.expanded.Add(1)
	e.hooks.expand(depth, len(kids))

	return kids
}

// leaf closes the tour at the origin and offers it to the incumbent.
func (e *bbEngine) leaf(nd node) {
	e.leaves.Add(1)
	closed := nd.length + e.points[nd.tour.Last()].DistanceTo(e.points[e.origin])
	if !e.best.offer(closed, nd.tour.Closed()) {
		return
	}
	e.improvements.Add(1)
	e.hooks.incumbent(closed, nd.tour.Size())
	e.log.Debug("tsp: new incumbent",
		slog.Float64("cost", closed),
		slog.Float64("bound", nd.bound),
		slog.Int64("nodes", e.nodes.Load()))
}

func (e *bbEngine) stats() Stats {
	return Stats{
		Nodes:        e.nodes.Load(),
		Expanded:     e.expanded.Load(),
		Pruned:       e.pruned.Load(),
		Leaves:       e.leaves.Load(),
		Improvements: e.improvements.Load(),
	}
}

// solveBranchAndBound runs the search under ctx and converts its outcome
// into a Result. Deadline expiry is a status, not an error.
func solveBranchAndBound(ctx context.Context, points []geom.Point, opts Options) Result {
	e := newBBEngine(points, opts)
	root := e.root()
	err := e.run(ctx, root)

	cost, best := e.best.snapshot()

	return Result{
		Tour:      best,
		Cost:      round1e9(cost),
		RootBound: round1e9(root.bound),
		Status:    statusOf(err),
		Stats:     e.stats(),
	}
}
