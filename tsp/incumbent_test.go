package tsp

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIncumbent_OfferIsStrict(t *testing.T) {
	in := newIncumbent()
	require.True(t, math.IsInf(in.best(), 1))

	require.True(t, in.offer(10, []int{0, 1, 0}))
	require.False(t, in.offer(10, []int{0, 2, 0}), "equal cost must not replace")
	require.False(t, in.offer(11, []int{0, 3, 0}))
	require.True(t, in.offer(9, []int{0, 4, 0}))

	cost, tour := in.snapshot()
	require.Equal(t, 9.0, cost)
	require.Equal(t, []int{0, 4, 0}, tour)
}

func TestIncumbent_ConcurrentOffersKeepMinimum(t *testing.T) {
	in := newIncumbent()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for k := 100; k > 0; k-- {
				c := float64(k*8 + g)
				in.offer(c, []int{g, k})
			}
		}(g)
	}
	wg.Wait()

	cost, tour := in.snapshot()
	require.Equal(t, 8.0, cost)
	require.Equal(t, []int{0, 1}, tour, "cost and tour must change together")
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, Completed, statusOf(nil))
	require.Panics(t, func() { statusOf(ErrNoPoints) })
}

func TestRound1e9(t *testing.T) {
	require.Equal(t, 0.3, round1e9(0.1+0.2))
	require.True(t, math.IsInf(round1e9(math.Inf(1)), 1))
}
