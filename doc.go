// Package salesman finds shortest closed tours through planar cities.
//
// What is salesman?
//
//	An exact, anytime travelling salesman solver built on Little's
//	branch-and-bound:
//		• Reduced cost matrices as admissible lower bounds
//		• Depth-first search with locally best-first child ordering
//		• Pruning against a shared incumbent
//		• A wall-clock budget that returns the best tour found so far
//		• Held–Karp dynamic programming for small instances
//
// Under the hood the module is organized into small packages:
//
//	geom/          Point and Euclidean distance
//	costmatrix/    N×N reduced-cost matrix (reduce, exclude, copy)
//	tour/          immutable partial tours and closed-tour checks
//	tsp/           Solve, Options, Hooks, branch-and-bound and Held–Karp
//	pointio/       "id x y" city file reader
//	config/        YAML configuration
//	metrics/       Prometheus instrumentation via tsp.Hooks
//	cmd/salesman/  command line front end
//
// Quick start:
//
//	pts, _ := pointio.ReadFile("cities.txt")
//	opts := tsp.DefaultOptions()
//	opts.MaxExecutionTime = 10 * time.Second
//	res, err := tsp.Solve(ctx, pts, opts)
//	// res.Tour starts and ends at index 0; res.Status tells whether the
//	// search finished (Completed) or ran out of time (TimedOut).
package salesman
