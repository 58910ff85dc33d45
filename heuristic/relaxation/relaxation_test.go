package relaxation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/heuristic/relaxation"
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// chainTask builds a 3-step unit-cost chain: v goes 0 -> 1 -> 2 -> 3, goal
// v=3, so the optimal (and only) relaxed plan uses all three operators.
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

func TestAdditiveSumsChainCost(t *testing.T) {
	h := relaxation.NewAdditive(taskproxy.NewRoot(chainTask()))
	r := h.Evaluate([]int{0})
	require.False(t, r.DeadEnd)
	require.Equal(t, 3, r.Value)
}

func TestAdditiveZeroAtGoal(t *testing.T) {
	h := relaxation.NewAdditive(taskproxy.NewRoot(chainTask()))
	r := h.Evaluate([]int{3})
	require.Equal(t, 0, r.Value)
}

func TestFFMarksFirstOperatorPreferred(t *testing.T) {
	h := relaxation.NewFF(taskproxy.NewRoot(chainTask()))
	r := h.Evaluate([]int{0})
	require.False(t, r.DeadEnd)
	require.Equal(t, 3, r.Value)
	require.Contains(t, r.PreferredOps, 0)
	require.NotContains(t, r.PreferredOps, 1)
}

func TestDeadEndWhenGoalUnreachable(t *testing.T) {
	tk := &task.Task{
		Variables:    []task.Variable{{Name: "v", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1}},
		InitialState: []int{0},
		Goal:         []task.FactPair{{Var: 0, Value: 1}},
	}
	h := relaxation.NewAdditive(taskproxy.NewRoot(tk))
	r := h.Evaluate([]int{0})
	require.True(t, r.DeadEnd)
}

func TestTwoIndependentGoalsSumIndependently(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{
			{Name: "a", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
			{Name: "b", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
		},
		Operators: []task.Operator{
			{Name: "set-a", Effects: []task.Effect{{Fact: task.FactPair{Var: 0, Value: 1}}}, Cost: 2},
			{Name: "set-b", Effects: []task.Effect{{Fact: task.FactPair{Var: 1, Value: 1}}}, Cost: 5},
		},
		InitialState: []int{0, 0},
		Goal:         []task.FactPair{{Var: 0, Value: 1}, {Var: 1, Value: 1}},
	}
	h := relaxation.NewAdditive(taskproxy.NewRoot(tk))
	r := h.Evaluate([]int{0, 0})
	require.Equal(t, 7, r.Value)
}
