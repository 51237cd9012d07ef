// Package tsp provides Travelling Salesman solvers over planar points.
//
// Two exact strategies share one entry point, Solve:
//
//   - BranchAndBound: Little's reduced-cost-matrix search (default). Depth
//     first with locally best-first child ordering. Anytime: on deadline it
//     returns the best tour found so far. Optionally fans the root's children
//     out over Options.Workers goroutines.
//   - HeldKarp: bitmask dynamic programming in O(n²·2ⁿ) time and O(n·2ⁿ)
//     memory; n ≤ MaxHeldKarpPoints.
//
// Tours are closed: they start and end at point 0 and visit every other point
// exactly once. Costs are Euclidean lengths rounded to 1e-9.
//
// Budget policy: Options.MaxExecutionTime is measured from Options.StartedAt.
// A zero budget returns at once with Status TimedOut and no tour; use
// NoTimeLimit to search to exhaustion.
package tsp
