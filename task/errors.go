// Package task defines the grounded SAS+ task: the read-only data model the
// rest of the planner consumes. See sasio for the on-disk format reader.
package task

import "errors"

// Sentinel errors for task construction and validation. Callers MUST use
// errors.Is to branch on semantics; sentinels are never wrapped at the
// definition site, only at call sites via fmt.Errorf("%w: ...", ErrX).
var (
	// ErrInvalidDomainSize indicates a Variable was built with domain_size < 1.
	ErrInvalidDomainSize = errors.New("task: domain size must be >= 1")

	// ErrFactOutOfRange indicates a FactPair references a value outside the
	// variable's domain, or a variable index outside the task's variable list.
	ErrFactOutOfRange = errors.New("task: fact value out of domain range")

	// ErrDuplicatePreconditionVar indicates an operator's precondition list
	// mentions the same variable twice.
	ErrDuplicatePreconditionVar = errors.New("task: duplicate precondition variable")

	// ErrConflictingEffects indicates two effects of the same operator (under
	// the same evaluated conditions) write different values to one variable.
	ErrConflictingEffects = errors.New("task: conflicting simultaneous effects")

	// ErrNegativeCost indicates an operator or axiom was given a negative cost.
	ErrNegativeCost = errors.New("task: operator cost must be >= 0")

	// ErrAxiomNonZeroCost indicates an axiom operator was given a non-zero cost.
	ErrAxiomNonZeroCost = errors.New("task: axiom cost must be 0")

	// ErrEmptyGoal indicates a task was built with zero goal facts.
	ErrEmptyGoal = errors.New("task: goal must be non-empty")

	// ErrInitialStateSize indicates the initial state vector's length does not
	// match the number of variables.
	ErrInitialStateSize = errors.New("task: initial state size mismatch")
)
