// Package dtg builds per-variable domain-transition graphs: one node per
// value, one arc per operator effect on that variable, labelled with the
// operator's cost and its preconditions on other variables. CG and CEA
// (heuristic/cg, heuristic/cea) both search these graphs instead of the
// full grounded task (spec.md §4.6).
//
// Grounded on the adjacency-list shape of core.Graph, specialised from a
// general string-keyed, mutex-guarded graph to a small int-keyed,
// build-once-per-task structure: a DTG has at most a few hundred nodes,
// is rebuilt only when the task changes, and is walked inside the search
// loop's hot path, so the locking and string-ID marshalling core.Graph
// provides for concurrent general-purpose graphs would only cost cycles
// here without buying anything back.
package dtg

import "github.com/lvlath-planner/sasplan/task"

// Transition is one arc of a domain-transition graph: applying
// Operator's effect moves the variable to ToValue from the value the
// transition is stored under (or from any value, for a wildcard
// transition), provided every condition in Conditions already holds.
type Transition struct {
	ToValue       int
	Cost          int
	Conditions    []task.FactPair // excludes the owning variable itself
	OperatorIndex int             // index into proxy.Operators()
}

// Graph is variable Var's domain-transition graph.
type Graph struct {
	Var        int
	DomainSize int

	// byValue[v] holds transitions that require the variable to already
	// be at value v (the operator has an explicit precondition on Var).
	byValue [][]Transition

	// wildcard holds transitions with no precondition on Var: applicable
	// from whatever value the variable currently holds.
	wildcard []Transition
}

// ConditionFilter reports whether a transition condition on variable
// condVar should be kept during construction. A nil filter keeps every
// condition.
type ConditionFilter func(condVar int) bool

// Build compiles varIdx's domain-transition graph from proxy's operators.
// Axioms are not represented: DTG-based heuristics only model the
// non-derived causal structure (spec.md §4.6 is silent on axioms).
// heuristic/cea and heuristic/cg do not reject tasks with axioms; axiom
// rules simply contribute no transitions.
func Build(ops []task.Operator, costOf func(task.Operator) int, varIdx, domainSize int, keep ConditionFilter) *Graph {
	g := &Graph{Var: varIdx, DomainSize: domainSize, byValue: make([][]Transition, domainSize)}

	for opIdx, op := range ops {
		preVal, hasPre := findPrecondition(op.Preconditions, varIdx)

		for _, eff := range op.Effects {
			if eff.Fact.Var != varIdx {
				continue
			}

			conds := collectConditions(op.Preconditions, eff.Conditions, varIdx, keep)
			t := Transition{ToValue: eff.Fact.Value, Cost: costOf(op), Conditions: conds, OperatorIndex: opIdx}

			if hasPre {
				g.byValue[preVal] = append(g.byValue[preVal], t)
			} else {
				g.wildcard = append(g.wildcard, t)
			}
		}
	}

	return g
}

func findPrecondition(pre []task.FactPair, varIdx int) (value int, ok bool) {
	for _, f := range pre {
		if f.Var == varIdx {
			return f.Value, true
		}
	}

	return 0, false
}

func collectConditions(pre []task.FactPair, effConds []task.FactPair, varIdx int, keep ConditionFilter) []task.FactPair {
	var out []task.FactPair
	add := func(f task.FactPair) {
		if f.Var == varIdx {
			return
		}
		if keep != nil && !keep(f.Var) {
			return
		}
		out = append(out, f)
	}
	for _, f := range pre {
		add(f)
	}
	for _, f := range effConds {
		add(f)
	}

	return out
}

// TransitionsFrom returns every transition applicable when the variable
// currently holds value, combining value-specific and wildcard arcs.
func (g *Graph) TransitionsFrom(value int) []Transition {
	if len(g.wildcard) == 0 {
		return g.byValue[value]
	}
	if len(g.byValue[value]) == 0 {
		return g.wildcard
	}

	out := make([]Transition, 0, len(g.byValue[value])+len(g.wildcard))
	out = append(out, g.byValue[value]...)
	out = append(out, g.wildcard...)

	return out
}
