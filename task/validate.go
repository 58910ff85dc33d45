package task

import "fmt"

// Validate checks the invariants spec'd in SPEC_FULL.md §3 against an
// already-built Task. sasio.Read calls this after parsing; constructors in
// tests call it directly against hand-built Tasks.
//
// Checked, in order:
//  1. Every variable has DomainSize >= 1 and len(FactNames) == DomainSize.
//  2. The initial state has one entry per variable, each in range.
//  3. The goal is non-empty and every goal fact is in range.
//  4. Per operator and axiom: axiom costs are exactly 0 and operator costs
//     are >= 0; preconditions are in range, sorted by Var with no
//     duplicate Var; effects and their conditions are in range; no two
//     unconditional effects write different values to one variable.
//  5. Every mutex fact is in range.
func (t *Task) Validate() error {
	for i, v := range t.Variables {
		if v.DomainSize < 1 {
			return fmt.Errorf("%w: variable %d (%s)", ErrInvalidDomainSize, i, v.Name)
		}
		if len(v.FactNames) != v.DomainSize {
			return fmt.Errorf("%w: variable %d fact-name count mismatch", ErrFactOutOfRange, i)
		}
	}

	if len(t.InitialState) != len(t.Variables) {
		return fmt.Errorf("%w: got %d, want %d", ErrInitialStateSize, len(t.InitialState), len(t.Variables))
	}
	for varIdx, val := range t.InitialState {
		if err := t.checkFact(FactPair{Var: varIdx, Value: val}); err != nil {
			return err
		}
	}

	if len(t.Goal) == 0 {
		return ErrEmptyGoal
	}
	for _, g := range t.Goal {
		if err := t.checkFact(g); err != nil {
			return err
		}
	}

	for _, op := range append(append([]Operator{}, t.Operators...), t.Axioms...) {
		if err := t.validateOperator(op); err != nil {
			return err
		}
	}

	for f1, row := range t.Mutexes {
		if err := t.checkFact(f1); err != nil {
			return fmt.Errorf("mutex: %w", err)
		}
		for f2 := range row {
			if err := t.checkFact(f2); err != nil {
				return fmt.Errorf("mutex: %w", err)
			}
		}
	}

	return nil
}

func (t *Task) checkFact(f FactPair) error {
	if f.Var < 0 || f.Var >= len(t.Variables) {
		return fmt.Errorf("%w: var %d", ErrFactOutOfRange, f.Var)
	}
	if f.Value < 0 || f.Value >= t.Variables[f.Var].DomainSize {
		return fmt.Errorf("%w: %s", ErrFactOutOfRange, f)
	}

	return nil
}

func (t *Task) validateOperator(op Operator) error {
	if op.IsAxiom && op.Cost != 0 {
		return fmt.Errorf("%w: axiom %q cost=%d", ErrAxiomNonZeroCost, op.Name, op.Cost)
	}
	if op.Cost < 0 {
		return fmt.Errorf("%w: operator %q cost=%d", ErrNegativeCost, op.Name, op.Cost)
	}

	seen := make(map[int]struct{}, len(op.Preconditions))
	prevVar := -1
	for _, pre := range op.Preconditions {
		if err := t.checkFact(pre); err != nil {
			return fmt.Errorf("operator %q: %w", op.Name, err)
		}
		if _, dup := seen[pre.Var]; dup {
			return fmt.Errorf("%w: operator %q var %d", ErrDuplicatePreconditionVar, op.Name, pre.Var)
		}
		seen[pre.Var] = struct{}{}
		if pre.Var < prevVar {
			return fmt.Errorf("task: operator %q preconditions not sorted by var", op.Name)
		}
		prevVar = pre.Var
	}

	writtenUnconditional := make(map[int]int)
	for _, eff := range op.Effects {
		if err := t.checkFact(eff.Fact); err != nil {
			return fmt.Errorf("operator %q effect: %w", op.Name, err)
		}
		for _, c := range eff.Conditions {
			if err := t.checkFact(c); err != nil {
				return fmt.Errorf("operator %q effect condition: %w", op.Name, err)
			}
		}
		if len(eff.Conditions) == 0 {
			if prev, dup := writtenUnconditional[eff.Fact.Var]; dup && prev != eff.Fact.Value {
				return fmt.Errorf("%w: operator %q var %d", ErrConflictingEffects, op.Name, eff.Fact.Var)
			}
			writtenUnconditional[eff.Fact.Var] = eff.Fact.Value
		}
	}

	return nil
}
