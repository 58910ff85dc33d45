package pruning_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/pruning"
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

func TestECRetainsOnlyApplicableChainStep(t *testing.T) {
	e := pruning.NewEC(taskproxy.NewRoot(chainTask()))
	got := e.Prune([]int{0}, []int{0})
	require.Equal(t, []int{0}, got)
}

func TestECPrunesIrrelevantOperator(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{
			{Name: "a", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
			{Name: "b", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
		},
		Operators: []task.Operator{
			{Name: "opA", Effects: []task.Effect{{Fact: task.FactPair{Var: 0, Value: 1}}}, Cost: 1},
			{Name: "opB", Effects: []task.Effect{{Fact: task.FactPair{Var: 1, Value: 1}}}, Cost: 1},
		},
		InitialState: []int{0, 0},
		Goal:         []task.FactPair{{Var: 0, Value: 1}},
	}

	e := pruning.NewEC(taskproxy.NewRoot(tk))
	got := e.Prune([]int{0, 0}, []int{0, 1})
	require.Equal(t, []int{0}, got)
}

func TestECReturnsAllAtGoalState(t *testing.T) {
	e := pruning.NewEC(taskproxy.NewRoot(chainTask()))
	got := e.Prune([]int{3}, []int{0, 1, 2})
	require.Equal(t, []int{0, 1, 2}, got)
}

// TestECResolvesInapplicableDisablerThroughNES: opDisabler threatens the
// goal-achiever opGoal but is itself inapplicable; EC must still pull in
// opEnabler (the disabler's own necessary-enabling-set) via rule S4'
// rather than getting stuck.
func TestECResolvesInapplicableDisablerThroughNES(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{
			{Name: "a", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
			{Name: "b", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
			{Name: "c", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
		},
		Operators: []task.Operator{
			{
				Name:          "opGoal",
				Preconditions: []task.FactPair{{Var: 1, Value: 0}},
				Effects:       []task.Effect{{Fact: task.FactPair{Var: 0, Value: 1}}},
				Cost:          1,
			},
			{
				Name:          "opDisabler",
				Preconditions: []task.FactPair{{Var: 2, Value: 1}},
				Effects:       []task.Effect{{Fact: task.FactPair{Var: 1, Value: 1}}},
				Cost:          1,
			},
			{Name: "opEnabler", Effects: []task.Effect{{Fact: task.FactPair{Var: 2, Value: 1}}}, Cost: 1},
		},
		InitialState: []int{0, 0, 0},
		Goal:         []task.FactPair{{Var: 0, Value: 1}},
	}

	e := pruning.NewEC(taskproxy.NewRoot(tk))
	got := e.Prune([]int{0, 0, 0}, []int{0, 2})
	require.Equal(t, []int{0, 2}, got)
}
