package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/axiom"
	"github.com/lvlath-planner/sasplan/heuristic/blind"
	"github.com/lvlath-planner/sasplan/openlist"
	"github.com/lvlath-planner/sasplan/packedstate"
	"github.com/lvlath-planner/sasplan/pruning"
	"github.com/lvlath-planner/sasplan/search"
	"github.com/lvlath-planner/sasplan/searchspace"
	"github.com/lvlath-planner/sasplan/successorgen"
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

func chainTask() *task.Task {
	return &task.Task{
		Variables: []task.Variable{
			{Name: "v", DomainSize: 4, FactNames: []string{"0", "1", "2", "3"}, AxiomLayer: -1},
		},
		Operators: []task.Operator{
			{Name: "o01", Preconditions: []task.FactPair{{Var: 0, Value: 0}}, Effects: []task.Effect{{Fact: task.FactPair{Var: 0, Value: 1}}}, Cost: 1},
			{Name: "o12", Preconditions: []task.FactPair{{Var: 0, Value: 1}}, Effects: []task.Effect{{Fact: task.FactPair{Var: 0, Value: 2}}}, Cost: 1},
			{Name: "o23", Preconditions: []task.FactPair{{Var: 0, Value: 2}}, Effects: []task.Effect{{Fact: task.FactPair{Var: 0, Value: 3}}}, Cost: 1},
		},
		InitialState: []int{0},
		Goal:         []task.FactPair{{Var: 0, Value: 3}},
	}
}

func newEngine(tk *task.Task) (*search.Engine, *packedstate.Registry) {
	proxy := taskproxy.NewRoot(tk)
	registry := packedstate.NewRegistry(tk, axiom.New(tk))
	space := searchspace.NewSpace()
	gen := successorgen.New(proxy.Operators())
	h := blind.New(proxy)

	cfg := search.Config{
		Proxy:     proxy,
		Registry:  registry,
		Space:     space,
		Generator: gen,
		OpenList:  openlist.NewStandard(),
		Evaluators: []search.EvaluatorBinding{
			{Eval: search.Direct(h, registry.LookupValues)},
		},
		Mode:  search.AStar,
		Bound: search.NoBound,
	}

	return search.New(cfg), registry
}

// TestEngineSolvesChain hand-traces a 3-step unit-cost chain: the optimal
// plan is o01, o12, o23 at total cost 3.
func TestEngineSolvesChain(t *testing.T) {
	e, _ := newEngine(chainTask())

	result, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, search.Solved, result.Status)
	require.Equal(t, int64(3), result.Cost)
	require.Equal(t, []int{0, 1, 2}, result.Plan)
}

// TestEngineReportsUnsolvable: a task whose only operator's precondition
// can never hold leaves the open list exhausted with no goal reached.
func TestEngineReportsUnsolvable(t *testing.T) {
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
	result, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, search.Unsolvable, result.Status)
}

// TestEngineHonoursBound: a bound tighter than the chain's true cost
// admits the first step (g=1) but skips the edge that would reach g=2, so
// the search exhausts the open list without ever reaching the goal.
func TestEngineHonoursBound(t *testing.T) {
	proxy := taskproxy.NewRoot(chainTask())
	registry := packedstate.NewRegistry(chainTask(), nil)
	space := searchspace.NewSpace()
	gen := successorgen.New(proxy.Operators())
	h := blind.New(proxy)

	cfg := search.Config{
		Proxy:     proxy,
		Registry:  registry,
		Space:     space,
		Generator: gen,
		OpenList:  openlist.NewStandard(),
		Evaluators: []search.EvaluatorBinding{
			{Eval: search.Direct(h, registry.LookupValues)},
		},
		Mode:  search.AStar,
		Bound: 2,
	}

	e := search.New(cfg)
	result, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, search.Unsolvable, result.Status)
}

// TestEnginePrunerIsConsulted verifies a pruner that drops every
// applicable operator yields an immediate unsolvable result at the
// initial state, proving Run threads cfg.Pruner into Generate's output.
func TestEnginePrunerIsConsulted(t *testing.T) {
	proxy := taskproxy.NewRoot(chainTask())
	registry := packedstate.NewRegistry(chainTask(), nil)
	space := searchspace.NewSpace()
	gen := successorgen.New(proxy.Operators())
	h := blind.New(proxy)

	cfg := search.Config{
		Proxy:     proxy,
		Registry:  registry,
		Space:     space,
		Generator: gen,
		Pruner:    dropAllPruner{},
		OpenList:  openlist.NewStandard(),
		Evaluators: []search.EvaluatorBinding{
			{Eval: search.Direct(h, registry.LookupValues)},
		},
		Mode:  search.AStar,
		Bound: search.NoBound,
	}

	e := search.New(cfg)
	result, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, search.Unsolvable, result.Status)
	require.Equal(t, 1, result.Expansions)
}

// TestEngineHonoursTimeLimit: a context already past its deadline when Run
// starts must be reported as Timeout on the very first loop iteration,
// before any expansion happens.
func TestEngineHonoursTimeLimit(t *testing.T) {
	e, _ := newEngine(chainTask())

	ctx, cancel := search.WithTimeLimit(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	result, err := e.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, search.Timeout, result.Status)
}

// TestWithTimeLimitZeroIsUnbounded: a non-positive duration must hand back
// ctx unchanged (no deadline), matching search solving normally.
func TestWithTimeLimitZeroIsUnbounded(t *testing.T) {
	ctx, cancel := search.WithTimeLimit(context.Background(), 0)
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	require.False(t, hasDeadline)
}

type dropAllPruner struct{}

func (dropAllPruner) Prune([]int, []int) []int { return nil }

var _ pruning.Pruner = dropAllPruner{}
