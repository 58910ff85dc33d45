package search

import (
	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/packedstate"
)

// StateEvaluator evaluates a registered state directly by its StateID.
// *heuristic/cache.Cache already satisfies this; Direct adapts a plain
// heuristic.Evaluator (which only knows value vectors) to the same shape.
type StateEvaluator interface {
	Evaluate(id packedstate.StateID) heuristic.Result
}

// direct wraps a heuristic.Evaluator with a StateID-to-values resolver,
// for callers who have not wrapped the evaluator in heuristic/cache.
type direct struct {
	inner  heuristic.Evaluator
	lookup func(packedstate.StateID) []int
}

// Direct adapts ev into a StateEvaluator by resolving StateIDs via lookup
// (typically registry.LookupValues).
func Direct(ev heuristic.Evaluator, lookup func(packedstate.StateID) []int) StateEvaluator {
	return &direct{inner: ev, lookup: lookup}
}

func (d *direct) Evaluate(id packedstate.StateID) heuristic.Result {
	return d.inner.Evaluate(d.lookup(id))
}

// EvaluatorBinding pairs a StateEvaluator with whether its PreferredOps
// contribute to preferred-operator routing (spec.md glossary; consumed by
// openlist.Alternation's PreferredOnly children and Boostable).
type EvaluatorBinding struct {
	Eval      StateEvaluator
	Preferred bool
}
