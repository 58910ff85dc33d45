package taskproxy

import "github.com/lvlath-planner/sasplan/task"

type goalModified struct {
	parent Proxy
	goal   []task.FactPair
}

// WithGoal wraps parent so that Goal()/IsGoalState() use goal instead of
// the wrapped proxy's goal. Used by landmark generation (which evaluates
// reachability toward synthetic single-fact goals) and by cost-partitioning
// heuristics that restrict the goal to "future" landmarks only.
func WithGoal(parent Proxy, goal []task.FactPair) Proxy {
	return &goalModified{parent: parent, goal: goal}
}

func (g *goalModified) NumVariables() int                 { return g.parent.NumVariables() }
func (g *goalModified) Variable(i int) task.Variable      { return g.parent.Variable(i) }
func (g *goalModified) InitialState() []int               { return g.parent.InitialState() }
func (g *goalModified) Goal() []task.FactPair             { return g.goal }
func (g *goalModified) Operators() []task.Operator        { return g.parent.Operators() }
func (g *goalModified) Axioms() []task.Operator           { return g.parent.Axioms() }
func (g *goalModified) OperatorCost(op task.Operator) int { return g.parent.OperatorCost(op) }
func (g *goalModified) IsMutex(f1, f2 task.FactPair) bool { return g.parent.IsMutex(f1, f2) }
func (g *goalModified) HasAxioms() bool                   { return g.parent.HasAxioms() }
func (g *goalModified) HasConditionalEffects() bool       { return g.parent.HasConditionalEffects() }
func (g *goalModified) Parent() Proxy                     { return g.parent }

func (g *goalModified) IsGoalState(values []int) bool {
	for _, f := range g.goal {
		if values[f.Var] != f.Value {
			return false
		}
	}

	return true
}
