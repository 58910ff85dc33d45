// Package cache implements SPEC_FULL.md §4.10's evaluator cache: memoises
// (StateID) -> heuristic.Result per task, cleared whenever the underlying
// task changes (in practice: never reused across distinct Cache instances,
// since a Cache is always constructed fresh for one task+heuristic pair).
package cache

import (
	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/packedstate"
)

// ValuesFunc resolves a StateID to its value vector, typically
// registry.LookupValues from packedstate.
type ValuesFunc func(packedstate.StateID) []int

// Cache wraps an Evaluator with a StateID-keyed memo table. Lookup is O(1)
// amortised via a Go map.
type Cache struct {
	inner  heuristic.Evaluator
	values ValuesFunc
	memo   map[packedstate.StateID]heuristic.Result
}

// New wraps inner, resolving uncached StateIDs via values.
func New(inner heuristic.Evaluator, values ValuesFunc) *Cache {
	return &Cache{inner: inner, values: values, memo: make(map[packedstate.StateID]heuristic.Result)}
}

// Evaluate returns the cached result for id, computing and storing it on
// first access.
func (c *Cache) Evaluate(id packedstate.StateID) heuristic.Result {
	if r, ok := c.memo[id]; ok {
		return r
	}

	r := c.inner.Evaluate(c.values(id))
	c.memo[id] = r

	return r
}

// Len reports how many states currently hold a memoised result.
func (c *Cache) Len() int { return len(c.memo) }
