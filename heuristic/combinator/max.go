// Package combinator implements evaluator combinators supplemented from
// original_source/src/search/evaluators/max_evaluator.cc (SPEC_FULL.md
// §10): MaxEvaluator takes the maximum over a list of evaluators, which
// preserves admissibility (the max of admissible lower bounds is itself an
// admissible lower bound).
package combinator

import "github.com/lvlath-planner/sasplan/heuristic"

// MaxEvaluator evaluates every child and returns the maximum value; it
// reports a dead end if any child does (a dead end is a hard 0-reachability
// fact, not a value to be dominated).
type MaxEvaluator struct {
	children []heuristic.Evaluator
}

// NewMax builds a MaxEvaluator over children. Panics if children is empty —
// a combinator with nothing to combine is a caller bug, not a runtime
// condition.
func NewMax(children ...heuristic.Evaluator) *MaxEvaluator {
	if len(children) == 0 {
		panic("combinator: NewMax requires at least one child evaluator")
	}

	return &MaxEvaluator{children: children}
}

func (m *MaxEvaluator) Evaluate(values []int) heuristic.Result {
	best := heuristic.Result{Value: 0}
	first := true
	var preferred []int

	for _, child := range m.children {
		r := child.Evaluate(values)
		if r.DeadEnd {
			return heuristic.Result{DeadEnd: true}
		}
		if first || r.Value > best.Value {
			best = r
			first = false
		}
		preferred = append(preferred, r.PreferredOps...)
	}
	best.PreferredOps = preferred

	return best
}
