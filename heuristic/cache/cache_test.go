package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/heuristic/cache"
	"github.com/lvlath-planner/sasplan/packedstate"
)

type countingEval struct {
	calls int
}

func (c *countingEval) Evaluate(values []int) heuristic.Result {
	c.calls++

	return heuristic.Result{Value: values[0]}
}

func TestCacheMemoisesPerState(t *testing.T) {
	inner := &countingEval{}
	lookup := map[packedstate.StateID][]int{0: {4}, 1: {9}}
	c := cache.New(inner, func(id packedstate.StateID) []int { return lookup[id] })

	r1 := c.Evaluate(0)
	r2 := c.Evaluate(0)
	require.Equal(t, r1, r2)
	require.Equal(t, 1, inner.calls)

	r3 := c.Evaluate(1)
	require.Equal(t, 9, r3.Value)
	require.Equal(t, 2, inner.calls)
	require.Equal(t, 2, c.Len())
}
