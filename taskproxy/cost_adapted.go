package taskproxy

import "github.com/lvlath-planner/sasplan/task"

// CostFunction remaps an operator's declared cost, e.g. "unit cost" (always
// 1), "zero cost" (always 0, used by some landmark-generation passes), or a
// plugged-in per-operator override table.
type CostFunction func(op task.Operator) int

// UnitCost always returns 1, ignoring the operator's declared cost.
func UnitCost(task.Operator) int { return 1 }

// ZeroCost always returns 0.
func ZeroCost(task.Operator) int { return 0 }

type costAdapted struct {
	parent Proxy
	costFn CostFunction
}

// WithCostFunction wraps parent so that OperatorCost is computed by fn
// instead of being forwarded to the wrapped proxy. All other methods
// (including Goal/IsGoalState) are forwarded unchanged — "the core never
// recomputes costs itself" (spec.md §4.4): every heuristic and the search
// engine read operator cost exclusively through Proxy.OperatorCost, so
// swapping this decorator in changes every cost-aware computation without
// touching their code.
func WithCostFunction(parent Proxy, fn CostFunction) Proxy {
	return &costAdapted{parent: parent, costFn: fn}
}

func (c *costAdapted) NumVariables() int                 { return c.parent.NumVariables() }
func (c *costAdapted) Variable(i int) task.Variable      { return c.parent.Variable(i) }
func (c *costAdapted) InitialState() []int               { return c.parent.InitialState() }
func (c *costAdapted) Goal() []task.FactPair             { return c.parent.Goal() }
func (c *costAdapted) Operators() []task.Operator        { return c.parent.Operators() }
func (c *costAdapted) Axioms() []task.Operator           { return c.parent.Axioms() }
func (c *costAdapted) OperatorCost(op task.Operator) int { return c.costFn(op) }
func (c *costAdapted) IsGoalState(values []int) bool     { return c.parent.IsGoalState(values) }
func (c *costAdapted) IsMutex(f1, f2 task.FactPair) bool { return c.parent.IsMutex(f1, f2) }
func (c *costAdapted) HasAxioms() bool                   { return c.parent.HasAxioms() }
func (c *costAdapted) HasConditionalEffects() bool       { return c.parent.HasConditionalEffects() }
func (c *costAdapted) Parent() Proxy                     { return c.parent }
