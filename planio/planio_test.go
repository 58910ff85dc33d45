package planio_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvlath-planner/sasplan/planio"
	"github.com/lvlath-planner/sasplan/task"
)

func TestWriteFormatsOperatorLinesAndCostComment(t *testing.T) {
	ops := []task.Operator{{Name: "pick-up a"}, {Name: "stack a b"}}
	var buf bytes.Buffer

	require.NoError(t, planio.Write(&buf, ops, []int{0, 1}, 2, true))
	require.Equal(t, "(pick-up a)\n(stack a b)\n; cost = 2 (unit cost)\n", buf.String())
}

func TestWriteGeneralCostLabel(t *testing.T) {
	ops := []task.Operator{{Name: "move"}}
	var buf bytes.Buffer

	require.NoError(t, planio.Write(&buf, ops, []int{0}, 7, false))
	require.Equal(t, "(move)\n; cost = 7 (general cost)\n", buf.String())
}

func TestFileNameAppliesPortfolioSuffix(t *testing.T) {
	require.Equal(t, "sas_plan", planio.FileName("sas_plan", 0))
	require.Equal(t, "sas_plan.3", planio.FileName("sas_plan", 3))
}
