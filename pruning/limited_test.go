package pruning_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/pruning"
)

// dropAllPruner counts its calls and always prunes every operator away,
// so the observed ratio stays 1.0 regardless of input, easing
// deterministic threshold testing.
type dropAllPruner struct{ calls int }

func (d *dropAllPruner) Prune(values []int, applicableOps []int) []int {
	d.calls++

	return nil
}

// keepAllPruner never prunes anything, so the observed ratio is 0.0.
type keepAllPruner struct{ calls int }

func (k *keepAllPruner) Prune(values []int, applicableOps []int) []int {
	k.calls++

	return applicableOps
}

func TestLimitedStaysEnabledAboveThreshold(t *testing.T) {
	inner := &dropAllPruner{}
	l := pruning.NewLimited(inner, 2, 0.5)

	for i := 0; i < 5; i++ {
		got := l.Prune(nil, []int{0, 1, 2})
		require.Empty(t, got)
	}
	require.Equal(t, 5, inner.calls)
}

func TestLimitedDisablesBelowThreshold(t *testing.T) {
	inner := &keepAllPruner{}
	l := pruning.NewLimited(inner, 2, 0.5)

	l.Prune(nil, []int{0, 1})
	l.Prune(nil, []int{0, 1})
	require.Equal(t, 2, inner.calls)

	// The second call reached the threshold (expansions == 2) with ratio
	// 0.0 < 0.5, so inner is disabled from here on: further calls must not
	// reach it.
	got := l.Prune(nil, []int{0, 1, 2})
	require.Equal(t, []int{0, 1, 2}, got)
	require.Equal(t, 2, inner.calls)
}
