package combinator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/heuristic/combinator"
)

type fixedEval struct {
	result heuristic.Result
}

func (f fixedEval) Evaluate([]int) heuristic.Result { return f.result }

func TestMaxEvaluatorTakesMaximum(t *testing.T) {
	m := combinator.NewMax(
		fixedEval{heuristic.Result{Value: 3}},
		fixedEval{heuristic.Result{Value: 7}},
		fixedEval{heuristic.Result{Value: 5}},
	)
	require.Equal(t, 7, m.Evaluate(nil).Value)
}

func TestMaxEvaluatorPropagatesDeadEnd(t *testing.T) {
	m := combinator.NewMax(
		fixedEval{heuristic.Result{Value: 3}},
		fixedEval{heuristic.Result{DeadEnd: true}},
	)
	require.True(t, m.Evaluate(nil).DeadEnd)
}

func TestMaxEvaluatorPanicsWithNoChildren(t *testing.T) {
	require.Panics(t, func() { combinator.NewMax() })
}
