// Package axiom implements SPEC_FULL.md §4.3: closing a state under
// stratified axiom rules. Each layer is a fixed-point closure evaluated in
// increasing layer order; values determined in a lower layer are frozen
// for higher layers.
package axiom

import (
	"sort"

	"github.com/lvlath-planner/sasplan/task"
)

// rule is an axiom compiled for fast repeated evaluation: preconditions
// plus the (var, value) it derives.
type rule struct {
	preconditions []task.FactPair
	effectVar     int
	effectValue   int
}

// Evaluator closes value vectors under a task's axiom rules. Built once per
// Task and shared (read-only) across every state closure, the same way the
// relaxation heuristics share their compiled UnaryOperator tables.
type Evaluator struct {
	layers       []int // distinct axiom layers, ascending
	rulesByLayer map[int][]rule
	derivedVars  []int // variables with AxiomLayer >= 0
	defaultValue map[int]int
	derivedLayer map[int]int
}

// New compiles t's axioms into an Evaluator. Safe to call once per Task and
// reuse across every successor computed by the State Registry.
func New(t *task.Task) *Evaluator {
	e := &Evaluator{
		rulesByLayer: make(map[int][]rule),
		defaultValue: make(map[int]int),
		derivedLayer: make(map[int]int),
	}

	layerSet := make(map[int]struct{})
	for i, v := range t.Variables {
		if !v.IsDerived() {
			continue
		}
		e.derivedVars = append(e.derivedVars, i)
		e.defaultValue[i] = v.DefaultAxiomValue
		e.derivedLayer[i] = v.AxiomLayer
		layerSet[v.AxiomLayer] = struct{}{}
	}

	for _, ax := range t.Axioms {
		eff := ax.Effects[0].Fact
		layer := t.Variables[eff.Var].AxiomLayer
		r := rule{
			preconditions: append([]task.FactPair{}, ax.Preconditions...),
			effectVar:     eff.Var,
			effectValue:   eff.Value,
		}
		e.rulesByLayer[layer] = append(e.rulesByLayer[layer], r)
		layerSet[layer] = struct{}{}
	}

	for l := range layerSet {
		e.layers = append(e.layers, l)
	}
	sort.Ints(e.layers)

	return e
}

// Close evaluates every axiom layer in increasing order against values (one
// entry per variable, indexed as in task.Task.Variables), mutating values
// in place. Each layer resets its own derived variables to their default
// before iterating its rules to a fixed point; once a layer is closed its
// values are frozen for every higher layer.
func (e *Evaluator) Close(values []int) {
	for _, layer := range e.layers {
		for v, dv := range e.defaultValue {
			if e.derivedLayer[v] == layer {
				values[v] = dv
			}
		}

		e.closeLayer(e.rulesByLayer[layer], values)
	}
}

// closeLayer repeatedly fires rules whose body is satisfied until no rule
// changes a value (quiescence). Firing a rule whose head is already at the
// target value is a no-op, so this always terminates since each variable's
// possible values are finite and once set to 1, a 0-1 derived variable
// reformulation only flips upward within a layer (standard stratified-axiom
// semantics: bodies reference lower or equal layers already frozen or being
// monotonically derived).
func (e *Evaluator) closeLayer(rules []rule, values []int) {
	for {
		changed := false
		for _, r := range rules {
			if !satisfied(r.preconditions, values) {
				continue
			}
			if values[r.effectVar] != r.effectValue {
				values[r.effectVar] = r.effectValue
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func satisfied(conds []task.FactPair, values []int) bool {
	for _, c := range conds {
		if values[c.Var] != c.Value {
			return false
		}
	}

	return true
}
