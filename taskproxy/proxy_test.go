package taskproxy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

func tinyTask() *task.Task {
	return &task.Task{
		Variables: []task.Variable{
			{Name: "v", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
		},
		Operators: []task.Operator{
			{Name: "o", Cost: 7},
		},
		InitialState: []int{0},
		Goal:         []task.FactPair{{Var: 0, Value: 1}},
	}
}

func TestRootProxyForwardsCost(t *testing.T) {
	tk := tinyTask()
	p := taskproxy.NewRoot(tk)
	require.Equal(t, 7, p.OperatorCost(tk.Operators[0]))
	require.Nil(t, p.Parent())
	require.Same(t, tk, taskproxy.Root(p))
}

func TestCostAdaptedOverridesCostOnly(t *testing.T) {
	tk := tinyTask()
	root := taskproxy.NewRoot(tk)
	unit := taskproxy.WithCostFunction(root, taskproxy.UnitCost)

	require.Equal(t, 1, unit.OperatorCost(tk.Operators[0]))
	require.Equal(t, root.Goal(), unit.Goal())
	require.Same(t, tk, taskproxy.Root(unit))
}

func TestGoalModifiedOverridesGoalOnly(t *testing.T) {
	tk := tinyTask()
	root := taskproxy.NewRoot(tk)
	newGoal := []task.FactPair{{Var: 0, Value: 0}}
	modified := taskproxy.WithGoal(root, newGoal)

	require.True(t, modified.IsGoalState([]int{0}))
	require.False(t, modified.IsGoalState([]int{1}))
	require.Equal(t, 7, modified.OperatorCost(tk.Operators[0]))
}

func TestDecoratorChaining(t *testing.T) {
	tk := tinyTask()
	chain := taskproxy.WithGoal(
		taskproxy.WithCostFunction(taskproxy.NewRoot(tk), taskproxy.ZeroCost),
		[]task.FactPair{{Var: 0, Value: 1}},
	)
	require.Equal(t, 0, chain.OperatorCost(tk.Operators[0]))
	require.True(t, chain.IsGoalState([]int{1}))
	require.Same(t, tk, taskproxy.Root(chain))
}
