package packedstate

import "github.com/lvlath-planner/sasplan/task"

// StateID is a dense identifier assigned in registration order, starting
// at 0 for the initial state.
type StateID int

// AxiomCloser closes a value vector under a task's stratified axioms. The
// axiom package's *Evaluator satisfies this; Registry depends on the
// interface (not the concrete type) to keep packedstate free of an import
// on axiom and let tests substitute a no-op closer for axiom-free tasks.
type AxiomCloser interface {
	Close(values []int)
}

type noopCloser struct{}

func (noopCloser) Close([]int) {}

// Registry owns the growing arena of packed states and hash-conses them:
// register(values) returns an existing id if the packed representation is
// already present, otherwise appends and returns a fresh id. State ids are
// dense, starting at 0.
type Registry struct {
	task   *task.Task
	layout *Layout
	axioms AxiomCloser

	states []Packed
	index  map[string]StateID
}

// NewRegistry builds a Registry for t. If axioms is nil, successor states
// are registered without axiom closure (valid for axiom-free tasks; the
// search engine must not pass nil for tasks where t.HasAxioms()).
func NewRegistry(t *task.Task, axioms AxiomCloser) *Registry {
	if axioms == nil {
		axioms = noopCloser{}
	}

	return &Registry{
		task:   t,
		layout: NewLayout(t),
		axioms: axioms,
		index:  make(map[string]StateID),
	}
}

// Layout exposes the registry's packing layout, e.g. for components that
// pack/unpack states without registering them (search-node reconstruction).
func (r *Registry) Layout() *Layout { return r.layout }

// register returns the StateID for values, reusing an existing id when the
// packed representation is already present (hash-consing) and otherwise
// appending a fresh one. Spec property: register(v) == register(v) for
// identical value vectors; distinct vectors yield distinct ids.
func (r *Registry) register(values []int) StateID {
	packed := r.layout.Pack(values)
	key := packed.Key()
	if id, ok := r.index[key]; ok {
		return id
	}

	id := StateID(len(r.states))
	r.states = append(r.states, packed)
	r.index[key] = id

	return id
}

// GetInitialState returns id 0, lazily materialised from the task's initial
// values on first call (subsequent calls are idempotent since register is
// hash-consed).
func (r *Registry) GetInitialState() StateID {
	values := append([]int{}, r.task.InitialState...)
	r.axioms.Close(values)

	return r.register(values)
}

// LookupValues unpacks the state's value vector on demand.
func (r *Registry) LookupValues(id StateID) []int {
	return r.layout.Unpack(r.states[id])
}

// Size reports how many distinct states have been registered so far.
func (r *Registry) Size() int { return len(r.states) }

// GetSuccessorState applies op's effects against parent's unpacked values,
// closes the result under axioms, and registers it. Every effect's
// condition is evaluated against the parent's values as they stood before
// op fired (spec.md §4.1's simultaneous-effect semantics), not against a
// vector already mutated by an earlier effect in the same op — so one
// effect's write can never change whether a later effect's condition
// holds. Conditional effects whose condition is not satisfied in the
// parent are skipped. The engine must only ever call this with operators
// whose add/del sets are disjoint (conflict detection is validated once at
// task construction, see task.Task.Validate / ErrConflictingEffects for
// the unconditional case; simultaneous conflicting *conditional* effects
// are a grounder invariant this engine trusts without checking: if two
// fire in one parent state, the later effect in op.Effects wins).
func (r *Registry) GetSuccessorState(parent StateID, op task.Operator) StateID {
	parentValues := r.LookupValues(parent)
	values := append([]int{}, parentValues...)

	for _, eff := range op.Effects {
		if conditionsHold(eff.Conditions, parentValues) {
			values[eff.Fact.Var] = eff.Fact.Value
		}
	}

	r.axioms.Close(values)

	return r.register(values)
}

func conditionsHold(conds []task.FactPair, values []int) bool {
	for _, c := range conds {
		if values[c.Var] != c.Value {
			return false
		}
	}

	return true
}
