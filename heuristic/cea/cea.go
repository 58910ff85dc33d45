// Package cea implements the context-enhanced additive heuristic of
// SPEC_FULL.md §4.6: like heuristic/cg, a Dijkstra search per goal
// variable over a domain-transition graph whose edges recursively cost in
// their conditions on other variables, but without CG's "var <= cond_var"
// acyclicity restriction — real causal graphs are not acyclic in
// general, so cea guards against recursion cycles at call time instead of
// pruning conditions away at construction time — and additionally
// recovers the cheapest path's ground operators as preferred operators,
// the same walk-back technique heuristic/relaxation uses for h^FF.
//
// Full context-enhancement (Helmert et al.'s per-node context splitting,
// so the same local value reached via two different supporting paths can
// carry two different costs depending on what the rest of the state would
// need to look like) is not implemented; every recursive local-problem
// call instead reads the real, current state for its conditions, which is
// simpler than context-splitting but loses its precision when the same
// variable needs to change value twice along a plan. This is recorded as
// a deliberate simplification in DESIGN.md, not a silent omission.
package cea

import (
	"github.com/lvlath-planner/sasplan/dijkstra"
	"github.com/lvlath-planner/sasplan/dtg"
	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// Heuristic is the context-enhanced additive heuristic over one Proxy.
type Heuristic struct {
	proxy  taskproxy.Proxy
	graphs []*dtg.Graph
}

// New compiles proxy's domain-transition graphs for CEA. Conditions are
// kept unrestricted (see package doc); recursion cycles are broken at
// evaluation time via an in-progress guard.
func New(proxy taskproxy.Proxy) *Heuristic {
	h := &Heuristic{proxy: proxy, graphs: make([]*dtg.Graph, proxy.NumVariables())}
	for v := 0; v < proxy.NumVariables(); v++ {
		h.graphs[v] = dtg.Build(proxy.Operators(), proxy.OperatorCost, v, proxy.Variable(v).DomainSize, nil)
	}

	return h
}

// predecessor records, for one settled DTG node, the transition and prior
// value that reached it at the lowest known cost — used afterwards to
// walk the cheapest path back to the variable's start value.
type predecessor struct {
	fromValue int
	op        int
	condOps   []int // operators used to satisfy this transition's conditions
	hasOp     bool
}

// Evaluate sums, over every goal fact, the cheapest context-sensitive path
// cost in that variable's DTG, and marks as preferred every ground
// operator on one of those cheapest paths that is already applicable in
// values (spec.md §4.6's "helpful transitions... recorded along the
// cheapest path... back toward the start").
func (h *Heuristic) Evaluate(values []int) heuristic.Result {
	total := 0
	preferredSet := make(map[int]bool)

	for _, g := range h.proxy.Goal() {
		cost, path, ok := h.shortestPath(g.Var, values[g.Var], g.Value, values, make(map[int]bool))
		if !ok {
			return heuristic.Result{DeadEnd: true}
		}
		total = saturatingAdd(total, cost)

		for _, opIdx := range path {
			if h.applicable(opIdx, values) {
				preferredSet[opIdx] = true
			}
		}
	}

	var preferred []int
	for opIdx := range preferredSet {
		preferred = append(preferred, opIdx)
	}

	return heuristic.Result{Value: total, PreferredOps: preferred}
}

// shortestPath is localCost's Dijkstra from heuristic/cg, extended to
// also reconstruct the operator sequence of the cheapest path and to
// guard against recursion cycles (inProgress) instead of relying on an
// acyclicity restriction applied at construction time.
func (h *Heuristic) shortestPath(varIdx, from, to int, state []int, inProgress map[int]bool) (int, []int, bool) {
	if from == to {
		return 0, nil, true
	}
	if inProgress[varIdx] {
		return 0, nil, false
	}
	inProgress[varIdx] = true
	defer delete(inProgress, varIdx)

	g := h.graphs[varIdx]
	dist := make([]int, g.DomainSize)
	settled := make([]bool, g.DomainSize)
	pred := make([]predecessor, g.DomainSize)
	for i := range dist {
		dist[i] = -1
	}
	dist[from] = 0

	pq := dijkstra.NewQueue()
	pq.Push(from, 0)
	for pq.Len() > 0 {
		cur, _ := pq.Pop()
		if settled[cur.Value] {
			continue
		}
		settled[cur.Value] = true
		if cur.Value == to {
			return cur.Cost, reconstruct(pred, from, to), true
		}

		for _, t := range g.TransitionsFrom(cur.Value) {
			condCost, condPath, ok := h.conditionsCost(t.Conditions, state, inProgress)
			if !ok {
				continue
			}
			edgeCost := saturatingAdd(t.Cost, condCost)
			next := saturatingAdd(cur.Cost, edgeCost)
			if dist[t.ToValue] == -1 || next < dist[t.ToValue] {
				dist[t.ToValue] = next
				pred[t.ToValue] = predecessor{fromValue: cur.Value, op: t.OperatorIndex, condOps: condPath, hasOp: true}
				pq.Push(t.ToValue, next)
			}
		}
	}

	return 0, nil, false
}

func (h *Heuristic) conditionsCost(conds []task.FactPair, state []int, inProgress map[int]bool) (int, []int, bool) {
	total := 0
	var path []int
	for _, c := range conds {
		cost, sub, ok := h.shortestPath(c.Var, state[c.Var], c.Value, state, inProgress)
		if !ok {
			return 0, nil, false
		}
		total = saturatingAdd(total, cost)
		path = append(path, sub...)
	}

	return total, path, true
}

func reconstruct(pred []predecessor, from, to int) []int {
	var ops []int
	for v := to; v != from; {
		p := pred[v]
		if !p.hasOp {
			break
		}
		ops = append(ops, p.op)
		ops = append(ops, p.condOps...)
		v = p.fromValue
	}

	return ops
}

func (h *Heuristic) applicable(opIdx int, values []int) bool {
	for _, pre := range h.proxy.Operators()[opIdx].Preconditions {
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
