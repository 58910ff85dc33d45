package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/packedstate"
	"github.com/lvlath-planner/sasplan/search"
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

func TestParseSearchSpecAStar(t *testing.T) {
	mode, inner, err := parseSearchSpec("astar(lmcut())")
	require.NoError(t, err)
	require.Equal(t, search.AStar, mode)
	require.Equal(t, "lmcut()", inner)
}

func TestParseSearchSpecEagerGreedy(t *testing.T) {
	mode, inner, err := parseSearchSpec("eager_greedy(hadd())")
	require.NoError(t, err)
	require.Equal(t, search.Greedy, mode)
	require.Equal(t, "hadd()", inner)
}

func TestParseSearchSpecUnknownVerb(t *testing.T) {
	_, _, err := parseSearchSpec("bogus(blind())")
	require.Error(t, err)
	require.IsType(t, &search.UnsupportedError{}, err)
}

func TestParseSearchSpecMalformed(t *testing.T) {
	_, _, err := parseSearchSpec("astar")
	require.Error(t, err)
}

func TestBuildEvaluatorBlind(t *testing.T) {
	tk := &task.Task{
		Variables:    []task.Variable{{Name: "v", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1}},
		Operators:    []task.Operator{{Name: "o", Cost: 1}},
		InitialState: []int{0},
		Goal:         []task.FactPair{{Var: 0, Value: 1}},
	}
	proxy := taskproxy.NewRoot(tk)
	lookup := func(packedstate.StateID) []int { return []int{1} }

	binding, err := buildEvaluator(proxy, lookup, "blind()", false)
	require.NoError(t, err)
	require.False(t, binding.Preferred)
	require.Equal(t, 0, binding.Eval.Evaluate(0).Value)
}

func TestBuildEvaluatorCacheWrapsResult(t *testing.T) {
	tk := &task.Task{
		Variables:    []task.Variable{{Name: "v", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1}},
		Operators:    []task.Operator{{Name: "o", Cost: 1}},
		InitialState: []int{0},
		Goal:         []task.FactPair{{Var: 0, Value: 1}},
	}
	proxy := taskproxy.NewRoot(tk)
	calls := 0
	lookup := func(packedstate.StateID) []int {
		calls++
		return []int{1}
	}

	binding, err := buildEvaluator(proxy, lookup, "blind()", true)
	require.NoError(t, err)

	require.Equal(t, 0, binding.Eval.Evaluate(0).Value)
	require.Equal(t, 0, binding.Eval.Evaluate(0).Value)
	require.Equal(t, 1, calls, "second evaluation of the same state should hit the cache, not re-lookup")
}

func TestBuildEvaluatorUnknown(t *testing.T) {
	tk := &task.Task{
		Variables:    []task.Variable{{Name: "v", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1}},
		InitialState: []int{0},
		Goal:         []task.FactPair{{Var: 0, Value: 1}},
	}
	proxy := taskproxy.NewRoot(tk)
	lookup := func(packedstate.StateID) []int { return []int{0} }

	_, err := buildEvaluator(proxy, lookup, "nonsense()", false)
	require.Error(t, err)
	require.IsType(t, &search.UnsupportedError{}, err)
}

func TestGateApplies(t *testing.T) {
	gateUnitCost, gateNonUnitCost = false, false
	require.True(t, gateApplies(true))
	require.True(t, gateApplies(false))

	gateUnitCost, gateNonUnitCost = true, false
	require.True(t, gateApplies(true))
	require.False(t, gateApplies(false))

	gateUnitCost, gateNonUnitCost = false, true
	require.False(t, gateApplies(true))
	require.True(t, gateApplies(false))

	gateUnitCost, gateNonUnitCost = false, false
}

func TestEffectiveBound(t *testing.T) {
	bound = -1
	require.Equal(t, int64(search.NoBound), effectiveBound())

	bound = 7
	require.Equal(t, int64(7), effectiveBound())

	bound = -1
}
