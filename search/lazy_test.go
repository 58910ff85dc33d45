package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/heuristic/blind"
	"github.com/lvlath-planner/sasplan/openlist"
	"github.com/lvlath-planner/sasplan/packedstate"
	"github.com/lvlath-planner/sasplan/search"
	"github.com/lvlath-planner/sasplan/searchspace"
	"github.com/lvlath-planner/sasplan/successorgen"
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// TestEngineSolvesChainLazy hand-traces the same 3-step unit-cost chain as
// TestEngineSolvesChain: RunLazy must reach the same plan and cost, even
// though evaluation now happens after each pop rather than before each
// insert.
func TestEngineSolvesChainLazy(t *testing.T) {
	e, _ := newEngine(chainTask())

	result, err := e.RunLazy(context.Background())
	require.NoError(t, err)
	require.Equal(t, search.Solved, result.Status)
	require.Equal(t, int64(3), result.Cost)
	require.Equal(t, []int{0, 1, 2}, result.Plan)
}

func TestEngineReportsUnsolvableLazy(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{
			{Name: "v", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
		},
		Operators: []task.Operator{
			{Name: "dead", Preconditions: []task.FactPair{{Var: 0, Value: 1}}, Effects: []task.Effect{{Fact: task.FactPair{Var: 0, Value: 0}}}, Cost: 1},
		},
		InitialState: []int{0},
		Goal:         []task.FactPair{{Var: 0, Value: 1}},
	}

	e, _ := newEngine(tk)
	result, err := e.RunLazy(context.Background())
	require.NoError(t, err)
	require.Equal(t, search.Unsolvable, result.Status)
}

// TestEngineLazyDiscardsStaleDuplicateWithoutEvaluating builds a chain
// with a duplicate entry edge into its first step: "fast" (cost 1) and
// "slow" (cost 2) both lead from the initial state to the same successor.
// Both edges carry the initial state's key (g=0) and "fast" was queued
// first, so "fast" is resolved first and closes that state at g=1; when
// "slow"'s entry is popped next, the state is already closed at a
// strictly cheaper g, so resolveLazyEntry
// must discard it as stale before ever calling the evaluator — the saving
// that distinguishes lazy from eager search.
func TestEngineLazyDiscardsStaleDuplicateWithoutEvaluating(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{
			{Name: "v", DomainSize: 4, FactNames: []string{"0", "1", "2", "3"}, AxiomLayer: -1},
		},
		Operators: []task.Operator{
			{Name: "fast", Preconditions: []task.FactPair{{Var: 0, Value: 0}}, Effects: []task.Effect{{Fact: task.FactPair{Var: 0, Value: 1}}}, Cost: 1},
			{Name: "slow", Preconditions: []task.FactPair{{Var: 0, Value: 0}}, Effects: []task.Effect{{Fact: task.FactPair{Var: 0, Value: 1}}}, Cost: 2},
			{Name: "step1", Preconditions: []task.FactPair{{Var: 0, Value: 1}}, Effects: []task.Effect{{Fact: task.FactPair{Var: 0, Value: 2}}}, Cost: 1},
			{Name: "step2", Preconditions: []task.FactPair{{Var: 0, Value: 2}}, Effects: []task.Effect{{Fact: task.FactPair{Var: 0, Value: 3}}}, Cost: 1},
		},
		InitialState: []int{0},
		Goal:         []task.FactPair{{Var: 0, Value: 3}},
	}

	proxy := taskproxy.NewRoot(tk)
	registry := packedstate.NewRegistry(tk, nil)
	space := searchspace.NewSpace()
	gen := successorgen.New(proxy.Operators())
	counter := &countingEvaluator{}

	cfg := search.Config{
		Proxy:     proxy,
		Registry:  registry,
		Space:     space,
		Generator: gen,
		OpenList:  openlist.NewStandard(),
		Evaluators: []search.EvaluatorBinding{
			{Eval: search.Direct(counter, registry.LookupValues)},
		},
		Mode:  search.AStar,
		Bound: search.NoBound,
	}

	result, err := search.New(cfg).RunLazy(context.Background())
	require.NoError(t, err)
	require.Equal(t, search.Solved, result.Status)
	require.Equal(t, int64(3), result.Cost)
	require.Equal(t, []int{0, 2, 3}, result.Plan)
	// Evaluated: the initial state, the state after "fast", and the state
	// after "step1" — three calls. "slow"'s duplicate edge and the goal
	// state itself (found via the cheap IsGoalState check, before any
	// evaluator call) are never evaluated.
	require.Equal(t, 3, counter.calls)
}

type countingEvaluator struct{ calls int }

func (c *countingEvaluator) Evaluate(values []int) heuristic.Result {
	c.calls++

	return heuristic.Result{Value: 0}
}

var _ heuristic.Evaluator = (*countingEvaluator)(nil)
