// Package blind implements the trivial admissible heuristic supplemented
// from original_source/src/search/heuristics/blind_search_heuristic.cc
// (SPEC_FULL.md §10): 0 at a goal state, otherwise the cheapest non-axiom
// operator cost in the task (admissible since no plan can cost less than
// one cheapest step, and a looser but still admissible stand-in for
// "1" when the task is not unit-cost).
package blind

import (
	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// Heuristic is the blind evaluator.
type Heuristic struct {
	proxy   taskproxy.Proxy
	minCost int
}

// New builds a blind Heuristic over proxy, precomputing the cheapest
// operator cost once.
func New(proxy taskproxy.Proxy) *Heuristic {
	min := 1
	first := true
	for _, op := range proxy.Operators() {
		c := proxy.OperatorCost(op)
		if first || c < min {
			min = c
			first = false
		}
	}
	if len(proxy.Operators()) == 0 {
		min = 0
	}

	return &Heuristic{proxy: proxy, minCost: min}
}

func (h *Heuristic) Evaluate(values []int) heuristic.Result {
	if h.proxy.IsGoalState(values) {
		return heuristic.Result{Value: 0}
	}

	return heuristic.Result{Value: h.minCost}
}
