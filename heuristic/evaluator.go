// Package heuristic defines the shared evaluator contract every heuristic
// in SPEC_FULL.md §4.4–§4.6, §4.10–§4.11 implements. The trivial blind
// heuristic and the max-evaluator combinator, supplemented from
// original_source/src/search/evaluators/, live in the subpackages
// heuristic/blind and heuristic/combinator.
package heuristic

// Result is the outcome of evaluating a state against one heuristic.
type Result struct {
	// Value is the estimate, meaningful only if !DeadEnd.
	Value int

	// DeadEnd reports that the heuristic proved no goal is reachable from
	// this state (spec.md §4.4 step 4, §4.5 step 3).
	DeadEnd bool

	// PreferredOps lists operator indices this heuristic marked preferred
	// at this state (spec.md glossary); nil for heuristics that don't
	// compute preferred operators.
	PreferredOps []int
}

// Evaluator estimates the cost to the goal from a state, given as a value
// vector (one entry per task variable, same order as task.Task.Variables).
// Implementations hold their own scratch space and must reset it at the
// start of every Evaluate call (spec.md §5: "no cross-heuristic sharing").
type Evaluator interface {
	Evaluate(values []int) Result
}

// MaxCostValue is the overflow sentinel heuristics clamp to rather than
// overflowing an int accumulator (spec.md §4.4).
const MaxCostValue = 1 << 29
