// Package costpartition implements SPEC_FULL.md §4.11's two cost-
// partitioning algorithms over a landmark.Graph: Uniform (fully computed
// here) and Optimal (expressed down to landmark/lpmodel's Problem/Solver
// seam, with lpmodel.BruteForce as the reference backend — spec.md's
// Non-goal "we do not specify a specific LP backend" applies to the real
// simplex/interior-point implementation, not to this seam).
//
// Both heuristics implement heuristic.Evaluator's stateless
// Evaluate(values []int) contract, which has no way to learn whether a
// landmark fact that is now false was true earlier on this search path.
// The reference landmark.StatusManager (landmark/status.go) computes the
// monotone "past" bitset correctly when the search engine threads it
// through explicitly; absent that, both heuristics here fall back to
// treating "past" as "true in the given state right now" — a simplified,
// disclosed degradation for the common case where landmark facts are not
// deleted once achieved, rather than the fully general monotone history.
package costpartition

import (
	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/landmark"
	"github.com/lvlath-planner/sasplan/landmark/lpmodel"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// Uniform is spec.md §4.7's uniform cost-partitioning heuristic: every
// operator's cost is divided equally among the landmarks it achieves
// (achievedCount), and a landmark's cost is the sum of its achievers'
// shares. An "action landmark" (single achiever, per spec.md §4.7) is the
// degenerate case where that achiever's achievedCount is 1, so it
// naturally receives the achiever's full cost under the same formula —
// not a separately special-cased branch, since special-casing "landmark
// has one achiever" without also requiring that achiever to be unshared
// would double-count an achiever serving more than one landmark.
type Uniform struct {
	proxy taskproxy.Proxy
	graph *landmark.Graph
	cost  []float64 // per-landmark-ID cost, precomputed once (task-invariant)
}

// NewUniform precomputes every landmark's cost share once; proxy supplies
// operator costs (cost-adapted proxies are honoured).
func NewUniform(proxy taskproxy.Proxy, graph *landmark.Graph) *Uniform {
	ops := proxy.Operators()

	achievedCount := make(map[int]int) // operator index -> landmarks it achieves
	for _, lm := range graph.Landmarks {
		for _, op := range graph.Achievers(lm.ID) {
			achievedCount[op]++
		}
	}

	cost := make([]float64, len(graph.Landmarks))
	for _, lm := range graph.Landmarks {
		var sum float64
		for _, op := range graph.Achievers(lm.ID) {
			sum += float64(proxy.OperatorCost(ops[op])) / float64(achievedCount[op])
		}
		cost[lm.ID] = sum
	}

	return &Uniform{proxy: proxy, graph: graph, cost: cost}
}

// Evaluate sums the cost of every landmark not yet true in values (see
// package doc for the stateless "past" simplification). A goal state
// always evaluates to zero regardless of per-variable landmark snapshot
// staleness, since a value that has moved past a single-fact landmark's
// value on a multi-valued variable is indistinguishable, from a bare
// value vector, from never having passed through it at all.
func (u *Uniform) Evaluate(values []int) heuristic.Result {
	if u.proxy.IsGoalState(values) {
		return heuristic.Result{Value: 0}
	}

	total := 0.0
	for _, lm := range u.graph.Landmarks {
		if lm.Kind == landmark.FactLandmark && values[lm.Fact.Var] == lm.Fact.Value {
			continue
		}
		total += u.cost[lm.ID]
	}

	return heuristic.Result{Value: int(total + 0.5)}
}

// Optimal is spec.md §4.7's optimal cost-partitioning heuristic: one LP
// variable per future landmark, one constraint per operator (the sum of
// costs assigned to landmarks that operator achieves must not exceed the
// operator's own cost), maximising the total assigned cost.
type Optimal struct {
	graph  *landmark.Graph
	proxy  taskproxy.Proxy
	solver lpmodel.Solver
}

// NewOptimal builds an Optimal heuristic solving each query via solver
// (lpmodel.BruteForce is the reference backend for small problems).
func NewOptimal(proxy taskproxy.Proxy, graph *landmark.Graph, solver lpmodel.Solver) *Optimal {
	return &Optimal{graph: graph, proxy: proxy, solver: solver}
}

// Evaluate builds and solves the LP over the landmarks not yet true in
// values (see package doc for the stateless "past" simplification, and
// Uniform.Evaluate's doc for why goal states short-circuit to zero).
func (o *Optimal) Evaluate(values []int) heuristic.Result {
	if o.proxy.IsGoalState(values) {
		return heuristic.Result{Value: 0}
	}

	ops := o.proxy.Operators()

	var futureIDs []int
	idxOf := make(map[int]int) // landmark ID -> column index in the LP
	for _, lm := range o.graph.Landmarks {
		if lm.Kind == landmark.FactLandmark && values[lm.Fact.Var] == lm.Fact.Value {
			continue
		}
		idxOf[lm.ID] = len(futureIDs)
		futureIDs = append(futureIDs, lm.ID)
	}
	if len(futureIDs) == 0 {
		return heuristic.Result{Value: 0}
	}

	objective := make([]float64, len(futureIDs))
	for i := range objective {
		objective[i] = 1
	}

	var coeffs [][]float64
	var bounds []float64
	for opIdx, op := range ops {
		row := make([]float64, len(futureIDs))
		used := false
		for _, lmID := range futureIDs {
			for _, a := range o.graph.Achievers(lmID) {
				if a == opIdx {
					row[idxOf[lmID]] = 1
					used = true
					break
				}
			}
		}
		if !used {
			continue
		}
		coeffs = append(coeffs, row)
		bounds = append(bounds, float64(o.proxy.OperatorCost(op)))
	}

	if len(coeffs) == 0 {
		// No operator achieves any remaining landmark: unreachable, but
		// Evaluate has no dead-end signal from an LP infeasibility here
		// (every future landmark is reachable by construction — Discover
		// only ever adds facts relaxed-reachable from the initial state).
		return heuristic.Result{Value: 0}
	}

	sol, err := o.solver.Solve(lpmodel.Problem{Objective: objective, Coeffs: coeffs, Bounds: bounds})
	if err != nil {
		return heuristic.Result{Value: 0}
	}

	return heuristic.Result{Value: int(sol.Optimal + 0.5)}
}
