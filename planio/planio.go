// Package planio writes a reconstructed plan to spec.md §6's external plan
// format: one "(operator_name)" line per step, a trailing cost comment,
// default filename "sas_plan", with a ".N" suffix when the caller is part
// of an anytime portfolio. Grounded on the teacher's small single-purpose
// writer files (gridgraph/expand.go's one-function-one-job shape) — a
// plan writer has no state to carry between calls, so it stays a pair of
// free functions rather than a struct.
package planio

import (
	"fmt"
	"io"
	"os"

	"github.com/lvlath-planner/sasplan/task"
)

// DefaultFileName is the plan filename spec.md §6 names when
// --internal-plan-file is not given.
const DefaultFileName = "sas_plan"

// FileName returns base unchanged for n <= 0 (no portfolio numbering), or
// "base.n" otherwise — the anytime-portfolio suffix of spec.md §6.
func FileName(base string, n int) string {
	if n <= 0 {
		return base
	}

	return fmt.Sprintf("%s.%d", base, n)
}

// Write renders one plan (opIndices, in forward order, indexing ops) to w:
// one "(name)" line per step followed by the cost comment. unitCost
// selects the comment's "(unit cost|general cost)" suffix (task.UseMetric
// inverted: a non-metric task is unit cost).
func Write(w io.Writer, ops []task.Operator, opIndices []int, cost int64, unitCost bool) error {
	for _, idx := range opIndices {
		if _, err := fmt.Fprintf(w, "(%s)\n", ops[idx].Name); err != nil {
			return err
		}
	}

	label := "general cost"
	if unitCost {
		label = "unit cost"
	}
	_, err := fmt.Fprintf(w, "; cost = %d (%s)\n", cost, label)

	return err
}

// WriteFile creates FileName(base, portfolioIndex) and writes the plan to
// it, per spec.md's "Plan output" interface.
func WriteFile(base string, portfolioIndex int, ops []task.Operator, opIndices []int, cost int64, unitCost bool) error {
	f, err := os.Create(FileName(base, portfolioIndex))
	if err != nil {
		return fmt.Errorf("planio: %w", err)
	}
	defer f.Close()

	return Write(f, ops, opIndices, cost, unitCost)
}
