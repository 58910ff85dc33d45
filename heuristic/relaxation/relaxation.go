// Package relaxation implements the delete-relaxation heuristic family of
// SPEC_FULL.md §4.4: h^add and h^FF, sharing one UnaryOperator/Proposition
// compilation and one relaxed-exploration pass. Grounded on
// dijkstra/dijkstra.go's single-source-shortest-path structure (a
// Dijkstra-like monotone relaxation over a priority queue), generalised
// here from a graph's edges to the AND/OR bipartite proposition/operator
// graph of the delete relaxation.
package relaxation

import (
	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/intpq"
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// unaryOperator is one add-effect of one ground operator (or axiom),
// reformulated so it has exactly one effect proposition. An operator with
// k unconditional-after-relaxation effects compiles into k unaryOperators.
type unaryOperator struct {
	sourceOp      int // index into the combined operators+axioms slice
	preconditions []int
	effect        int
	baseCost      int
}

// Heuristic evaluates h^add (ff == false) or h^FF (ff == true) against a
// task's delete relaxation.
type Heuristic struct {
	proxy taskproxy.Proxy
	ff    bool

	sourceOps []task.Operator // combined Operators() ++ Axioms(), indexed by unaryOperator.sourceOp

	offsets  []int // per-variable proposition-id base offset
	numProps int

	unaryOps       []unaryOperator
	preconditionOf [][]int // propID -> indices into unaryOps naming it as a precondition
	noPrecondOps   []int   // unaryOps with zero preconditions, enqueued unconditionally

	// scratch, reset at the start of every Evaluate call
	propCost    []int
	reachedBy   []int // propID -> unaryOps index that first achieved it, or -1
	marked      []bool
	opCost      []int
	unsatisfied []int
	queue       *intpq.Queue
}

// NewAdditive returns the h^add heuristic over proxy.
func NewAdditive(proxy taskproxy.Proxy) *Heuristic { return build(proxy, false) }

// NewFF returns the h^FF heuristic (relaxed-plan cost plus preferred
// operators) over proxy.
func NewFF(proxy taskproxy.Proxy) *Heuristic { return build(proxy, true) }

func build(proxy taskproxy.Proxy, ff bool) *Heuristic {
	h := &Heuristic{proxy: proxy, ff: ff, queue: intpq.New()}

	h.offsets = make([]int, proxy.NumVariables())
	offset := 0
	for i := 0; i < proxy.NumVariables(); i++ {
		h.offsets[i] = offset
		offset += proxy.Variable(i).DomainSize
	}
	h.numProps = offset

	h.sourceOps = append(append([]task.Operator{}, proxy.Operators()...), proxy.Axioms()...)
	h.preconditionOf = make([][]int, h.numProps)

	for srcIdx, op := range h.sourceOps {
		cost := proxy.OperatorCost(op)
		if op.IsAxiom {
			cost = 0
		}
		for _, eff := range op.Effects {
			u := unaryOperator{
				sourceOp:      srcIdx,
				preconditions: mergeConditions(op.Preconditions, eff.Conditions, h),
				effect:        h.propID(eff.Fact),
				baseCost:      cost,
			}
			idx := len(h.unaryOps)
			h.unaryOps = append(h.unaryOps, u)
			if len(u.preconditions) == 0 {
				h.noPrecondOps = append(h.noPrecondOps, idx)

				continue
			}
			for _, p := range u.preconditions {
				h.preconditionOf[p] = append(h.preconditionOf[p], idx)
			}
		}
	}

	return h
}

func (h *Heuristic) propID(f task.FactPair) int { return h.offsets[f.Var] + f.Value }

// mergeConditions combines an operator's preconditions with one effect's
// conditions into a single proposition-id list, the unary operator's full
// precondition set.
func mergeConditions(pre []task.FactPair, conds []task.FactPair, h *Heuristic) []int {
	seen := make(map[int]struct{}, len(pre)+len(conds))
	ids := make([]int, 0, len(pre)+len(conds))
	add := func(f task.FactPair) {
		id := h.propID(f)
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, f := range pre {
		add(f)
	}
	for _, f := range conds {
		add(f)
	}

	return ids
}

const unreached = -1

// Evaluate runs one relaxed exploration from values and reports h^add or
// h^FF plus, for h^FF, the preferred operators (spec.md §4.4 steps 1-5).
func (h *Heuristic) Evaluate(values []int) heuristic.Result {
	h.reset(len(h.unaryOps))

	for i, u := range h.unaryOps {
		h.unsatisfied[i] = len(u.preconditions)
		h.opCost[i] = u.baseCost
	}

	for i := 0; i < h.proxy.NumVariables(); i++ {
		p := h.offsets[i] + values[i]
		h.enqueue(p, 0, unreached)
	}
	for _, idx := range h.noPrecondOps {
		h.enqueue(h.unaryOps[idx].effect, h.opCost[idx], idx)
	}

	h.relax()

	total := 0
	for _, g := range h.proxy.Goal() {
		c := h.propCost[h.propID(g)]
		if c < 0 {
			return heuristic.Result{DeadEnd: true}
		}
		total = saturatingAdd(total, c)
	}

	if !h.ff {
		return heuristic.Result{Value: total}
	}

	return h.extractRelaxedPlan(values)
}

func (h *Heuristic) reset(numOps int) {
	if cap(h.propCost) < h.numProps {
		h.propCost = make([]int, h.numProps)
		h.reachedBy = make([]int, h.numProps)
		h.marked = make([]bool, h.numProps)
	} else {
		h.propCost = h.propCost[:h.numProps]
		h.reachedBy = h.reachedBy[:h.numProps]
		h.marked = h.marked[:h.numProps]
	}
	for i := 0; i < h.numProps; i++ {
		h.propCost[i] = -1
		h.reachedBy[i] = unreached
		h.marked[i] = false
	}

	if cap(h.opCost) < numOps {
		h.opCost = make([]int, numOps)
		h.unsatisfied = make([]int, numOps)
	} else {
		h.opCost = h.opCost[:numOps]
		h.unsatisfied = h.unsatisfied[:numOps]
	}

	h.queue.Reset()
}

// enqueue records a candidate cost for reaching proposition p via unary
// operator opIdx (unreached for the initial-state seed) and pushes it if
// it improves on any previously-known cost; the queue itself may still
// carry stale entries, discarded lazily in relax.
func (h *Heuristic) enqueue(p, cost, opIdx int) {
	if h.propCost[p] != -1 && h.propCost[p] <= cost {
		return
	}
	h.propCost[p] = cost
	h.reachedBy[p] = opIdx
	h.queue.Push(cost, p)
}

func (h *Heuristic) relax() {
	for {
		cost, v, ok := h.queue.Pop()
		if !ok {
			return
		}
		p := v.(int)
		if cost > h.propCost[p] {
			continue // stale entry, a cheaper path already settled p
		}
		if h.allGoalsFinite() {
			return
		}
		for _, opIdx := range h.preconditionOf[p] {
			h.opCost[opIdx] = saturatingAdd(h.opCost[opIdx], h.propCost[p])
			h.unsatisfied[opIdx]--
			if h.unsatisfied[opIdx] == 0 {
				u := h.unaryOps[opIdx]
				h.enqueue(u.effect, h.opCost[opIdx], opIdx)
			}
		}
	}
}

func (h *Heuristic) allGoalsFinite() bool {
	for _, g := range h.proxy.Goal() {
		if h.propCost[h.propID(g)] < 0 {
			return false
		}
	}

	return true
}

// extractRelaxedPlan walks back from each goal proposition through
// reachedBy pointers, counting each supporting ground operator's cost at
// most once, and marks as preferred every operator directly applicable in
// values whose relaxed-plan preconditions are themselves root-reached
// (spec.md §4.4 step 5).
func (h *Heuristic) extractRelaxedPlan(values []int) heuristic.Result {
	visitedOp := make(map[int]bool)
	var preferred []int
	total := 0

	var visit func(p int)
	visit = func(p int) {
		if h.marked[p] {
			return
		}
		h.marked[p] = true

		opIdx := h.reachedBy[p]
		if opIdx == unreached {
			return // seeded from the initial state, no supporter
		}
		u := h.unaryOps[opIdx]
		for _, pre := range u.preconditions {
			visit(pre)
		}
		if !visitedOp[u.sourceOp] {
			visitedOp[u.sourceOp] = true
			total = saturatingAdd(total, h.proxy.OperatorCost(h.sourceOps[u.sourceOp]))
			if u.sourceOp < len(h.proxy.Operators()) && h.applicable(u.sourceOp, values) {
				preferred = append(preferred, u.sourceOp)
			}
		}
	}

	for _, g := range h.proxy.Goal() {
		visit(h.propID(g))
	}

	if total > heuristic.MaxCostValue {
		total = heuristic.MaxCostValue
	}

	return heuristic.Result{Value: total, PreferredOps: preferred}
}

// applicable reports whether sourceOps[opIdx]'s own preconditions (not the
// unary operator's effect-specific conditions) already hold in values, the
// real-world test for whether the ground action is preferred right now.
func (h *Heuristic) applicable(opIdx int, values []int) bool {
	for _, pre := range h.sourceOps[opIdx].Preconditions {
		if values[pre.Var] != pre.Value {
			return false
		}
	}

	return true
}

func saturatingAdd(a, b int) int {
	sum := a + b
	if sum < a || sum > heuristic.MaxCostValue {
		return heuristic.MaxCostValue
	}

	return sum
}
