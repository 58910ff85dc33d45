package costpartition_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/landmark"
	"github.com/lvlath-planner/sasplan/landmark/costpartition"
	"github.com/lvlath-planner/sasplan/landmark/lpmodel"
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

func TestUniformChainCost(t *testing.T) {
	proxy := taskproxy.NewRoot(chainTask())
	g := landmark.Discover(proxy)
	h := costpartition.NewUniform(proxy, g)

	require.Equal(t, 3, h.Evaluate([]int{0}).Value)
	require.Equal(t, 2, h.Evaluate([]int{1}).Value)
	require.Equal(t, 0, h.Evaluate([]int{3}).Value)
}

func TestOptimalChainCost(t *testing.T) {
	proxy := taskproxy.NewRoot(chainTask())
	g := landmark.Discover(proxy)
	h := costpartition.NewOptimal(proxy, g, lpmodel.BruteForce{})

	require.Equal(t, 3, h.Evaluate([]int{0}).Value)
	require.Equal(t, 0, h.Evaluate([]int{3}).Value)
}

// TestUniformSharedAchieverSplitsCost: two landmarks share a single
// achiever operator, so uniform cost partitioning splits that operator's
// cost between them instead of double-charging it.
func TestUniformSharedAchieverSplitsCost(t *testing.T) {
	tk := &task.Task{
		Variables: []task.Variable{
			{Name: "a", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
			{Name: "b", DomainSize: 2, FactNames: []string{"0", "1"}, AxiomLayer: -1},
		},
		Operators: []task.Operator{
			{
				Name: "opBoth",
				Effects: []task.Effect{
					{Fact: task.FactPair{Var: 0, Value: 1}},
					{Fact: task.FactPair{Var: 1, Value: 1}},
				},
				Cost: 10,
			},
		},
		InitialState: []int{0, 0},
		Goal:         []task.FactPair{{Var: 0, Value: 1}, {Var: 1, Value: 1}},
	}
	proxy := taskproxy.NewRoot(tk)
	g := landmark.Discover(proxy)
	require.Len(t, g.Landmarks, 2)

	h := costpartition.NewUniform(proxy, g)
	require.Equal(t, 10, h.Evaluate([]int{0, 0}).Value)
}
