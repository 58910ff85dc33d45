package pruning

import (
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// Pruner narrows an already-applicable operator list down to a sound
// subset, per spec.md §4.9 step 3 ("Generate applicable operators from the
// Successor Generator; apply Pruning."). Implementations must return a
// subset of applicableOps; the empty result is valid only at a goal state.
type Pruner interface {
	Prune(values []int, applicableOps []int) []int
}

// Simple is the SSS stubborn-set method of spec.md §4.7: seed the stubborn
// set from an unsatisfied goal fact's necessary-enabling-set, then close it
// under interference (for applicable stubborn operators) or further
// necessary-enabling-sets (for inapplicable ones).
type Simple struct {
	proxy taskproxy.Proxy
	in    *interference
	nops  int
}

// NewSimple builds the interference relation once over proxy's (non-axiom)
// operators; the resulting Simple is reused across every state the search
// engine expands.
func NewSimple(proxy taskproxy.Proxy) *Simple {
	ops := proxy.Operators()

	return &Simple{proxy: proxy, in: buildInterference(ops), nops: len(ops)}
}

// Prune implements the SSS algorithm of spec.md §4.7. If values already
// satisfies the goal there is nothing to seed from; every applicable
// operator is returned unpruned (defensive — the search engine goal-checks
// before generating successors, so this path is not normally exercised).
func (s *Simple) Prune(values []int, applicableOps []int) []int {
	seedFact, ok := firstUnsatisfiedGoalFact(s.proxy, values)
	if !ok {
		return applicableOps
	}

	stubborn := newIDSet(s.nops)
	var worklist []int
	for _, achiever := range s.in.necessaryEnablingSet(seedFact) {
		if stubborn.add(achiever) {
			worklist = append(worklist, achiever)
		}
	}

	ops := s.proxy.Operators()
	for len(worklist) > 0 {
		o := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if applicable(ops[o], values) {
			for j := 0; j < s.nops; j++ {
				if j == o || !s.in.interferes(o, j) {
					continue
				}
				if stubborn.add(j) {
					worklist = append(worklist, j)
				}
			}
			continue
		}

		pre, _ := firstUnsatisfiedPrecondition(ops[o], values)
		for _, achiever := range s.in.necessaryEnablingSet(pre) {
			if stubborn.add(achiever) {
				worklist = append(worklist, achiever)
			}
		}
	}

	out := make([]int, 0, len(applicableOps))
	for _, o := range applicableOps {
		if stubborn.has(o) {
			out = append(out, o)
		}
	}

	return out
}

func firstUnsatisfiedGoalFact(proxy taskproxy.Proxy, values []int) (task.FactPair, bool) {
	for _, g := range proxy.Goal() {
		if values[g.Var] != g.Value {
			return g, true
		}
	}

	return task.FactPair{}, false
}
