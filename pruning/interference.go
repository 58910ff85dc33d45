package pruning

import "github.com/lvlath-planner/sasplan/task"

// interference precomputes, over a fixed operator list, the relations the
// stubborn-set rules need: which operators achieve a given fact, and
// whether two operators conflict, or one disables the other.
type interference struct {
	ops []task.Operator

	// achievers[fact] lists operator indices with an effect writing that
	// fact — the necessary-enabling-set for fact.
	achievers map[task.FactPair][]int
}

func buildInterference(ops []task.Operator) *interference {
	in := &interference{ops: ops, achievers: make(map[task.FactPair][]int)}
	for i, op := range ops {
		for _, eff := range op.Effects {
			in.achievers[eff.Fact] = append(in.achievers[eff.Fact], i)
		}
	}

	return in
}

// necessaryEnablingSet returns the operators that can establish fact,
// spec.md §4.7's "necessary-enabling-set for the first unsatisfied
// precondition of o".
func (in *interference) necessaryEnablingSet(fact task.FactPair) []int {
	return in.achievers[fact]
}

// conflicts reports whether i and j write the same variable to different
// values, or one's effect disagrees with the other's precondition on the
// same variable — the two operators can never fire in either order without
// one invalidating the other.
func (in *interference) conflicts(i, j int) bool {
	return in.writesDisagree(i, j) || in.disables(i, j) || in.disables(j, i)
}

func (in *interference) writesDisagree(i, j int) bool {
	a, b := in.ops[i], in.ops[j]
	for _, ea := range a.Effects {
		for _, eb := range b.Effects {
			if ea.Fact.Var == eb.Fact.Var && ea.Fact.Value != eb.Fact.Value {
				return true
			}
		}
	}

	return false
}

// disables reports whether i's effect sets a variable that j requires to
// hold a different value for its own precondition — i.e. firing i first
// would disable j (spec.md §4.7's "disabler" relation).
func (in *interference) disables(i, j int) bool {
	a, b := in.ops[i], in.ops[j]
	for _, ea := range a.Effects {
		for _, pre := range b.Preconditions {
			if ea.Fact.Var == pre.Var && ea.Fact.Value != pre.Value {
				return true
			}
		}
	}

	return false
}

// interferes is the union spec.md §4.7 names: "conflict, disabler, or
// disabled-by" — i.e. conflicts is already symmetric in the disabler
// direction, so this is just a readable alias at call sites.
func (in *interference) interferes(i, j int) bool { return in.conflicts(i, j) }

// firstUnsatisfiedPrecondition returns the first precondition of op not
// met by values, used to pick the NES target when op is inapplicable.
func firstUnsatisfiedPrecondition(op task.Operator, values []int) (task.FactPair, bool) {
	for _, pre := range op.Preconditions {
		if values[pre.Var] != pre.Value {
			return pre, true
		}
	}

	return task.FactPair{}, false
}

func applicable(op task.Operator, values []int) bool {
	_, unsatisfied := firstUnsatisfiedPrecondition(op, values)

	return !unsatisfied
}
