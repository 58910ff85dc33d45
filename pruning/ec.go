// EC stubborn sets, spec.md §4.7: on top of Simple's seed-and-close
// worklist, EC tracks which variables have already been written by an
// operator placed in the stubborn set (written_vars) and uses that to
// make two of Simple's choices less wasteful:
//
//   - S5: when an inapplicable operator has more than one unsatisfied
//     precondition, prefer picking one whose variable is already in
//     written_vars over always taking the textually-first one — reusing a
//     variable the stubborn set already touches tends to keep the set
//     smaller than introducing a fresh one.
//   - S4': when an applicable operator o is threatened by a disabler d
//     (d's effect would invalidate one of o's preconditions), prefer adding
//     d itself if d is already applicable in the current state (a
//     "v-applicable successor" — firing d now resolves the threat
//     directly); only fall back to d's own necessary-enabling-set when d
//     is not yet applicable.
//
// This is a faithful-in-spirit rendition of Wehrle & Helmert's EC
// stubborn sets, not a reproduction of the original proof-checked
// algorithm in full (which additionally reasons about "active" operator
// membership and per-variable reachability maps at a level of detail this
// module does not replicate); documented here rather than silently
// narrowed, in the same spirit as heuristic/lmcut's and heuristic/cea's
// disclosed simplifications.
package pruning

import (
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// EC is the EC stubborn-set method of spec.md §4.7.
type EC struct {
	proxy taskproxy.Proxy
	in    *interference
	nops  int
}

// NewEC builds the interference relation once over proxy's operators.
func NewEC(proxy taskproxy.Proxy) *EC {
	ops := proxy.Operators()

	return &EC{proxy: proxy, in: buildInterference(ops), nops: len(ops)}
}

// Prune implements EC: Simple's worklist closure, refined by S5's
// written-variable preference and S4''s v-applicable-successor check.
func (e *EC) Prune(values []int, applicableOps []int) []int {
	seedFact, ok := firstUnsatisfiedGoalFact(e.proxy, values)
	if !ok {
		return applicableOps
	}

	stubborn := newIDSet(e.nops)
	writtenVars := make(map[int]bool)
	var worklist []int

	add := func(opIdx int, ops []task.Operator) {
		if !stubborn.add(opIdx) {
			return
		}
		worklist = append(worklist, opIdx)
		for _, eff := range ops[opIdx].Effects {
			writtenVars[eff.Fact.Var] = true
		}
	}

	ops := e.proxy.Operators()
	for _, achiever := range e.in.necessaryEnablingSet(seedFact) {
		add(achiever, ops)
	}

	for len(worklist) > 0 {
		o := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if applicable(ops[o], values) {
			for j := 0; j < e.nops; j++ {
				if j == o || !e.in.interferes(o, j) {
					continue
				}
				// S4': prefer j itself when it is already applicable
				// (a v-applicable successor resolving the threat
				// directly); otherwise fall back to its own NES below,
				// same as the recursive branch an inapplicable op takes.
				if applicable(ops[j], values) {
					add(j, ops)
					continue
				}
				pre, unsatisfied := firstUnsatisfiedPrecondition(ops[j], values)
				if !unsatisfied {
					add(j, ops)
					continue
				}
				for _, achiever := range e.in.necessaryEnablingSet(pre) {
					add(achiever, ops)
				}
			}
			continue
		}

		pre := pickUnsatisfiedPrecondition(ops[o], values, writtenVars)
		for _, achiever := range e.in.necessaryEnablingSet(pre) {
			add(achiever, ops)
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

// pickUnsatisfiedPrecondition implements rule S5: among op's unsatisfied
// preconditions, prefer one whose variable already appears in writtenVars;
// otherwise fall back to the first one, matching Simple's rule.
func pickUnsatisfiedPrecondition(op task.Operator, values []int, writtenVars map[int]bool) task.FactPair {
	first, hasFirst := firstUnsatisfiedPrecondition(op, values)
	for _, pre := range op.Preconditions {
		if values[pre.Var] != pre.Value && writtenVars[pre.Var] {
			return pre
		}
	}
	if hasFirst {
		return first
	}

	return task.FactPair{}
}
