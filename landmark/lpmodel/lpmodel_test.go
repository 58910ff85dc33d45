package lpmodel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/landmark/lpmodel"
)

func TestBruteForceMaximizesSubjectToConstraints(t *testing.T) {
	p := lpmodel.Problem{
		Objective: []float64{2, 3},
		Coeffs: [][]float64{
			{1, 0},
			{0, 1},
			{1, 1},
		},
		Bounds: []float64{4, 3, 5},
	}

	sol, err := lpmodel.BruteForce{}.Solve(p)
	require.NoError(t, err)
	require.InDelta(t, 13, sol.Optimal, 1e-6)
	require.InDelta(t, 2, sol.Values[0], 1e-6)
	require.InDelta(t, 3, sol.Values[1], 1e-6)
}

func TestBruteForceSingleConstraint(t *testing.T) {
	p := lpmodel.Problem{
		Objective: []float64{1, 1, 1},
		Coeffs:    [][]float64{{1, 1, 1}},
		Bounds:    []float64{10},
	}

	sol, err := lpmodel.BruteForce{}.Solve(p)
	require.NoError(t, err)
	require.InDelta(t, 10, sol.Optimal, 1e-6)
}

func TestBruteForceZeroBoundPinsVariableToZero(t *testing.T) {
	p := lpmodel.Problem{
		Objective: []float64{5, 1},
		Coeffs: [][]float64{
			{1, 0},
			{0, 1},
		},
		Bounds: []float64{0, 4},
	}

	sol, err := lpmodel.BruteForce{}.Solve(p)
	require.NoError(t, err)
	require.InDelta(t, 4, sol.Optimal, 1e-6)
	require.InDelta(t, 0, sol.Values[0], 1e-6)
	require.InDelta(t, 4, sol.Values[1], 1e-6)
}
