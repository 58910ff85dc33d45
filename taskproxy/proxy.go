// Package taskproxy implements SPEC_FULL.md §4.taskproxy: a read-only view
// of the grounded task that supports cost adaptation and goal modification
// as a lazy decorator chain over the root task (no domain-abstraction
// decorator is provided), grounded on matrix/api.go's
// thin-facade-over-a-canonical-kernel pattern.
//
// The core search/heuristic packages depend only on the Proxy interface,
// never on *task.Task directly, so a cost-adapted or goal-modified view is
// interchangeable with the root task everywhere.
package taskproxy

import "github.com/lvlath-planner/sasplan/task"

// Proxy is the read-only view every search/heuristic component consumes.
// Every method must be O(1) or O(decorator chain depth); none may mutate
// the underlying *task.Task.
type Proxy interface {
	NumVariables() int
	Variable(i int) task.Variable
	InitialState() []int
	Goal() []task.FactPair
	Operators() []task.Operator
	Axioms() []task.Operator
	OperatorCost(op task.Operator) int
	IsGoalState(values []int) bool
	IsMutex(f1, f2 task.FactPair) bool
	HasAxioms() bool
	HasConditionalEffects() bool

	// Parent returns the wrapped Proxy, or nil at the root. Components that
	// need to walk the decorator chain (e.g. to find the root *task.Task for
	// packedstate.NewRegistry) use this instead of a type assertion.
	Parent() Proxy
}

// root wraps a *task.Task directly with no adaptation.
type root struct {
	t *task.Task
}

// NewRoot returns the base Proxy for t with no cost adaptation or goal
// modification applied.
func NewRoot(t *task.Task) Proxy { return &root{t: t} }

func (r *root) NumVariables() int                 { return r.t.NumVariables() }
func (r *root) Variable(i int) task.Variable      { return r.t.Variables[i] }
func (r *root) InitialState() []int               { return r.t.InitialState }
func (r *root) Goal() []task.FactPair             { return r.t.Goal }
func (r *root) Operators() []task.Operator        { return r.t.Operators }
func (r *root) Axioms() []task.Operator           { return r.t.Axioms }
func (r *root) OperatorCost(op task.Operator) int { return op.Cost }
func (r *root) IsGoalState(values []int) bool     { return r.t.IsGoalState(values) }
func (r *root) IsMutex(f1, f2 task.FactPair) bool { return r.t.IsMutex(f1, f2) }
func (r *root) HasAxioms() bool                   { return r.t.HasAxioms() }
func (r *root) HasConditionalEffects() bool       { return r.t.HasConditionalEffects() }
func (r *root) Parent() Proxy                     { return nil }

// Root walks p's decorator chain and returns the underlying *task.Task.
func Root(p Proxy) *task.Task {
	for {
		if r, ok := p.(*root); ok {
			return r.t
		}
		parent := p.Parent()
		if parent == nil {
			return nil
		}
		p = parent
	}
}
