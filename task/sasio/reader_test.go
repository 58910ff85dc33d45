package sasio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/task/sasio"
)

// oneStepSAS encodes spec.md §8 end-to-end scenario 2: v:2, initial v=0,
// goal v=1, operator o1 (pre v=0, eff v:=1, cost 3).
const oneStepSAS = `begin_version
3
end_version
begin_metric
1
end_metric
1
begin_variable
var0
-1
2
Atom v(0)
Atom v(1)
end_variable
0
begin_state
0
end_state
begin_goal
1
0 1
end_goal
1
begin_operator
o1
1
0 0
1
0 0 0 1
3
end_operator
0
`

func TestReadOneStepTask(t *testing.T) {
	tk, err := sasio.Read(strings.NewReader(oneStepSAS))
	require.NoError(t, err)

	require.Len(t, tk.Variables, 1)
	require.Equal(t, 2, tk.Variables[0].DomainSize)
	require.True(t, tk.UseMetric)
	require.Equal(t, []int{0}, tk.InitialState)
	require.Equal(t, []task.FactPair{{Var: 0, Value: 1}}, tk.Goal)

	require.Len(t, tk.Operators, 1)
	op := tk.Operators[0]
	require.Equal(t, "o1", op.Name)
	require.Equal(t, 3, op.Cost)
	require.Equal(t, []task.FactPair{{Var: 0, Value: 0}}, op.Preconditions)
	require.Equal(t, []task.Effect{{Fact: task.FactPair{Var: 0, Value: 1}}}, op.Effects)
}

func TestReadRejectsWrongVersion(t *testing.T) {
	bad := strings.Replace(oneStepSAS, "3\nend_version", "2\nend_version", 1)
	_, err := sasio.Read(strings.NewReader(bad))
	require.ErrorIs(t, err, sasio.ErrUnsupportedVersion)
}

func TestReadRejectsMalformedMarker(t *testing.T) {
	bad := strings.Replace(oneStepSAS, "begin_goal", "begin_goalz", 1)
	_, err := sasio.Read(strings.NewReader(bad))
	require.ErrorIs(t, err, sasio.ErrMalformedInput)
}

func TestReadTrivialGoalNoOperators(t *testing.T) {
	const trivial = `begin_version
3
end_version
begin_metric
0
end_metric
1
begin_variable
var0
-1
2
a
b
end_variable
0
begin_state
1
end_state
begin_goal
1
0 1
end_goal
0
0
`
	tk, err := sasio.Read(strings.NewReader(trivial))
	require.NoError(t, err)
	require.True(t, tk.IsGoalState(tk.InitialState))
	require.Empty(t, tk.Operators)
	require.Empty(t, tk.Axioms)
}

// TestReadOperatorEffectPreValBecomesPrecondition covers
// original_source/src/search/tasks/root_task.cc:189-191: an effect's
// pre_val field (here 1, on an operator with no explicit preconditions at
// all) is a real precondition on the affected variable, not documentation —
// the blocks-world stack/unstack shape this guards against writes a
// variable it also requires.
func TestReadOperatorEffectPreValBecomesPrecondition(t *testing.T) {
	const withPreVal = `begin_version
3
end_version
begin_metric
1
end_metric
1
begin_variable
var0
-1
3
Atom v(0)
Atom v(1)
Atom v(2)
end_variable
0
begin_state
1
end_state
begin_goal
1
0 2
end_goal
1
begin_operator
o1
0
1
0 0 1 2
5
end_operator
0
`
	tk, err := sasio.Read(strings.NewReader(withPreVal))
	require.NoError(t, err)

	require.Len(t, tk.Operators, 1)
	op := tk.Operators[0]
	require.Equal(t, []task.FactPair{{Var: 0, Value: 1}}, op.Preconditions)
	require.Equal(t, []task.Effect{{Fact: task.FactPair{Var: 0, Value: 2}}}, op.Effects)
}

// TestReadAxiomPrevValueBecomesPrecondition mirrors the same fix for axiom
// heads (original_source/.../root_task.cc:202-204): a non-(-1) prev_value
// on the derived variable is a precondition on that variable too.
func TestReadAxiomPrevValueBecomesPrecondition(t *testing.T) {
	const withAxiom = `begin_version
3
end_version
begin_metric
1
end_metric
2
begin_variable
var0
-1
2
Atom v(0)
Atom v(1)
end_variable
begin_variable
var1
0
2
Atom d(0)
Atom d(1)
end_variable
0
begin_state
0 0
end_state
begin_goal
1
1 1
end_goal
0
1
begin_rule
0
1 0 1
end_rule
`
	tk, err := sasio.Read(strings.NewReader(withAxiom))
	require.NoError(t, err)

	require.Len(t, tk.Axioms, 1)
	ax := tk.Axioms[0]
	require.Equal(t, []task.FactPair{{Var: 1, Value: 0}}, ax.Preconditions)
	require.Equal(t, []task.Effect{{Fact: task.FactPair{Var: 1, Value: 1}}}, ax.Effects)
}
