package searchspace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/packedstate"
	"github.com/lvlath-planner/sasplan/searchspace"
)

func TestNodeDefaultsToInfiniteG(t *testing.T) {
	sp := searchspace.NewSpace()
	n := sp.Node(packedstate.StateID(5))
	require.Equal(t, searchspace.New, n.Status)
	require.Equal(t, int64(searchspace.InfiniteG), n.G)
	require.False(t, n.HasParent)
}

func TestReconstructBuildsForwardPlan(t *testing.T) {
	sp := searchspace.NewSpace()

	// 0 -op0-> 1 -op2-> 2 (goal)
	n0 := sp.Node(0)
	n0.Status = searchspace.Closed
	n0.G = 0

	n1 := sp.Node(1)
	n1.Status = searchspace.Closed
	n1.G = 3
	n1.HasParent = true
	n1.Parent = 0
	n1.CreatingOpIndex = 0

	n2 := sp.Node(2)
	n2.Status = searchspace.Closed
	n2.G = 8
	n2.HasParent = true
	n2.Parent = 1
	n2.CreatingOpIndex = 2

	plan, cost := sp.Reconstruct(2)
	require.Equal(t, []int{0, 2}, plan)
	require.Equal(t, int64(8), cost)
}

func TestReconstructEmptyPlanForInitialGoal(t *testing.T) {
	sp := searchspace.NewSpace()
	n0 := sp.Node(0)
	n0.Status = searchspace.Closed
	n0.G = 0

	plan, cost := sp.Reconstruct(0)
	require.Empty(t, plan)
	require.Equal(t, int64(0), cost)
}
