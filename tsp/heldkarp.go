package tsp

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/salesman/costmatrix"
	"github.com/katalvlaran/salesman/geom"
)

// MaxHeldKarpPoints caps HeldKarp instances; the DP tables grow as n·2ⁿ.
const MaxHeldKarpPoints = 16

// hkCheckEvery is the number of subsets processed between ctx checks.
const hkCheckEvery = 1 << 10

// solveHeldKarp solves the instance exactly with the Held–Karp dynamic program
// over the same symmetric cost matrix the branch-and-bound search starts from.
//
// dp[mask*n+j] is the length of the shortest path that starts at the origin,
// visits exactly the points in mask (origin included) and ends at j. The tour
// is closed by returning from the best j to the origin and rebuilt through
// the parent table.
//
// The DP has no intermediate incumbent: on deadline it returns no tour.
//
// Time complexity:  O(n²·2ⁿ)
// Memory complexity: O(n·2ⁿ)
func solveHeldKarp(ctx context.Context, points []geom.Point) (Result, error) {
	n := len(points)
	if n > MaxHeldKarpPoints {
		return Result{}, fmt.Errorf("%w: %d > %d", ErrTooManyPoints, n, MaxHeldKarpPoints)
	}
	if err := ctx.Err(); err != nil {
		return emptyResult(statusOf(err)), nil
	}
	if n == 1 {
		return Result{Tour: []int{0, 0}, Cost: 0, Status: Completed}, nil
	}

	m := costmatrix.FromPoints(points)
	var (
		inf     = math.Inf(1)
		allMask = 1<<n - 1
		dp      = make([]float64, (allMask+1)*n)
		parent  = make([]int, (allMask+1)*n)
		mask    int
		j, k    int
		prev    int
		cand    float64
	)
	for i := range dp {
		dp[i] = inf
		parent[i] = -1
	}
	dp[1*n+0] = 0 // only the origin, standing on it

	for mask = 1; mask <= allMask; mask += 2 { // odd masks contain the origin
		if mask%hkCheckEvery == 1 {
			if err := ctx.Err(); err != nil {
				return emptyResult(statusOf(err)), nil
			}
		}
		for j = 1; j < n; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			prev = mask ^ (1 << j)
			for k = 0; k < n; k++ {
				if prev&(1<<k) == 0 || math.IsInf(dp[prev*n+k], 1) {
					continue
				}
				cand = dp[prev*n+k] + m.At(k, j)
				if cand < dp[mask*n+j] {
					dp[mask*n+j] = cand
					parent[mask*n+j] = k
				}
			}
		}
	}

	best, last := inf, -1
	for j = 1; j < n; j++ {
		if cand = dp[allMask*n+j] + m.At(j, 0); cand < best {
			best, last = cand, j
		}
	}

	t := make([]int, n+1)
	mask = allMask
	for i := n - 1; i >= 1; i-- {
		t[i] = last
		p := parent[mask*n+last]
		mask ^= 1 << last
		last = p
	}

	return Result{Tour: t, Cost: round1e9(best), Status: Completed}, nil
}
