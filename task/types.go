package task

import "fmt"

// FactPair is an atomic proposition (var, value). Invariant: within any
// Task t, 0 <= value < t.Variables[var].DomainSize.
type FactPair struct {
	Var   int
	Value int
}

// String renders the pair as "var=value" for diagnostics and test failures.
func (f FactPair) String() string {
	return fmt.Sprintf("%d=%d", f.Var, f.Value)
}

// Variable is a finite-domain SAS+ variable.
type Variable struct {
	Name string

	// DomainSize is the number of values this variable can take, >= 1.
	DomainSize int

	// FactNames holds one human-readable name per value, len == DomainSize.
	FactNames []string

	// AxiomLayer is -1 for non-derived variables, or the stratification
	// layer (>= 0) for variables whose value is computed by axioms.
	AxiomLayer int

	// DefaultAxiomValue is the value assumed before any axiom in this
	// variable's layer fires. Only meaningful when AxiomLayer >= 0.
	DefaultAxiomValue int
}

// IsDerived reports whether this variable's value is computed by axioms
// rather than set directly by operator effects.
func (v Variable) IsDerived() bool { return v.AxiomLayer >= 0 }

// EffectCondition is a precondition on a variable other than the one the
// owning Effect writes to.
type EffectCondition = FactPair

// Effect is a single conditional write: if every condition holds in the
// state the effect is applied against, Fact.Var is set to Fact.Value.
type Effect struct {
	Fact       FactPair
	Conditions []EffectCondition // sorted by Var, unique Vars
}

// Operator is a grounded ground action (or, when IsAxiom is true, a single
// axiom rule reformulated as a cost-0 operator).
type Operator struct {
	Name string

	// Preconditions is sorted by Var, with unique Vars (invariant enforced
	// by the sasio reader and checked by Task.Validate).
	Preconditions []FactPair

	Effects []Effect

	Cost int

	IsAxiom bool
}

// Task is the grounded, read-only SAS+ planning task. All fields are set
// once at construction (by sasio.Read or a composite literal) and never mutated
// afterwards; heuristics and the search engine hold shared references.
type Task struct {
	Variables []Variable

	Operators []Operator // IsAxiom == false
	Axioms    []Operator // IsAxiom == true

	InitialState []int // len == len(Variables); closed under axioms by packedstate.Registry.GetInitialState

	Goal []FactPair

	// UseMetric mirrors the SAS+ "begin_metric" flag: false means every
	// operator's declared cost is overridden to 1 for heuristic purposes
	// that care about unit cost, though Operators[i].Cost keeps the
	// original value so cost-adapted proxies can still see it.
	UseMetric bool

	// Mutexes is symmetric and irreflexive: mutexes[f1][f2] present implies
	// no reachable state satisfies both f1 and f2.
	Mutexes map[FactPair]map[FactPair]struct{}
}

// NumVariables returns len(Variables).
func (t *Task) NumVariables() int { return len(t.Variables) }

// IsGoalState reports whether values (one entry per variable, the same
// shape as InitialState) satisfies every goal fact.
func (t *Task) IsGoalState(values []int) bool {
	for _, g := range t.Goal {
		if values[g.Var] != g.Value {
			return false
		}
	}

	return true
}

// IsMutex reports whether f1 and f2 are a recorded mutex pair.
func (t *Task) IsMutex(f1, f2 FactPair) bool {
	if t.Mutexes == nil {
		return false
	}
	row, ok := t.Mutexes[f1]
	if !ok {
		return false
	}
	_, ok = row[f2]

	return ok
}

// HasAxioms reports whether the task carries any axiom rules. LM-cut (and
// any heuristic documented as axiom-incompatible) must reject tasks where
// this is true.
func (t *Task) HasAxioms() bool { return len(t.Axioms) > 0 }

// HasConditionalEffects reports whether any non-axiom operator has an
// effect with a non-empty condition list.
func (t *Task) HasConditionalEffects() bool {
	for _, op := range t.Operators {
		for _, eff := range op.Effects {
			if len(eff.Conditions) > 0 {
				return true
			}
		}
	}

	return false
}

// IsUnitCost reports whether every non-axiom operator has cost exactly 1.
// This mirrors the "--if-unit-cost" CLI gate (spec §6) and the unit-cost
// fast path some pruning methods rely on.
func (t *Task) IsUnitCost() bool {
	for _, op := range t.Operators {
		if op.Cost != 1 {
			return false
		}
	}

	return true
}
