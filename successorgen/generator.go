// Package successorgen implements SPEC_FULL.md §4.2: a discrimination trie
// (match tree) over operator preconditions keyed by variable, so that
// generate_applicable_ops enumerates applicable operators in time
// proportional to the number of applicable operators, amortised over the
// cost of the fixed number of variable tests on the path to each operator.
//
// Grounded on the "build an index once, query many times" shape of
// matrix/impl_builder.go, generalised from dense numeric indices to a
// branching precondition trie.
package successorgen

import (
	"sort"

	"github.com/lvlath-planner/sasplan/task"
)

// node is one level of the match tree. A node either holds immediate
// (always matched, given the ancestors' tests already passed) operator
// indices, or tests one variable and branches.
type node struct {
	immediate []int

	testVar  int // -1 when this node has no further test (pure leaf)
	children map[int]*node
	dontCare *node
}

// Generator enumerates applicable operators for a state's value vector.
// Built once per operator list (non-axiom operators) and reused for every
// state the search engine expands.
type Generator struct {
	root *node
	nops int
}

// New builds a Generator over ops. Operator i's applicability is tested
// against its Preconditions; Operator index corresponds to its position in
// ops and is what generate_applicable_ops returns.
func New(ops []task.Operator) *Generator {
	remaining := make([][]task.FactPair, len(ops))
	all := make([]int, len(ops))
	for i, op := range ops {
		remaining[i] = op.Preconditions
		all[i] = i
	}

	return &Generator{root: build(all, remaining), nops: len(ops)}
}

func build(opIdx []int, remaining [][]task.FactPair) *node {
	n := &node{testVar: -1}

	var pending []int
	for _, i := range opIdx {
		if len(remaining[i]) == 0 {
			n.immediate = append(n.immediate, i)
		} else {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return n
	}

	testVar := minVar(pending, remaining)
	n.testVar = testVar
	n.children = make(map[int]*node)

	byValue := make(map[int][]int)
	var dontCare []int
	for _, i := range pending {
		val, rest, has := extract(remaining[i], testVar)
		if has {
			remaining[i] = rest
			byValue[val] = append(byValue[val], i)
		} else {
			dontCare = append(dontCare, i)
		}
	}

	for val, group := range byValue {
		n.children[val] = build(group, remaining)
	}
	if len(dontCare) > 0 {
		n.dontCare = build(dontCare, remaining)
	}

	return n
}

// minVar picks the smallest variable index still mentioned by any pending
// operator's remaining preconditions, a deterministic and simple splitting
// rule that keeps tree construction reproducible across runs.
func minVar(opIdx []int, remaining [][]task.FactPair) int {
	best := -1
	for _, i := range opIdx {
		for _, fact := range remaining[i] {
			if best == -1 || fact.Var < best {
				best = fact.Var
			}
		}
	}

	return best
}

// extract removes the precondition on var from facts (if present) and
// reports its required value.
func extract(facts []task.FactPair, v int) (value int, rest []task.FactPair, has bool) {
	for i, f := range facts {
		if f.Var == v {
			rest = make([]task.FactPair, 0, len(facts)-1)
			rest = append(rest, facts[:i]...)
			rest = append(rest, facts[i+1:]...)

			return f.Value, rest, true
		}
	}

	return 0, facts, false
}

// Generate returns the indices (into the operator slice New was built
// from) of every operator applicable in the state described by values.
// The result is always sorted ascending by operator index, matching the
// spec's determinism requirement.
func (g *Generator) Generate(values []int) []int {
	out := make([]int, 0, 8)
	out = g.root.collect(values, out)
	sort.Ints(out)

	return out
}

func (n *node) collect(values []int, out []int) []int {
	out = append(out, n.immediate...)
	if n.testVar == -1 {
		return out
	}

	if child, ok := n.children[values[n.testVar]]; ok {
		out = child.collect(values, out)
	}
	if n.dontCare != nil {
		out = n.dontCare.collect(values, out)
	}

	return out
}
