// Package openlist implements SPEC_FULL.md §4.8's open list family: keyed
// priority/tie-breaking containers presenting a uniform contract —
// Insert, Pop, Empty, IsDeadEndReliable, and BoostPreferred where
// applicable — over (key, StateID[, creating operator]) entries.
//
// Every open list that samples (type-based, weighted, pareto) is seeded
// deterministically (see rng.go): given identical task, configuration and
// PRNG seed, pop order is fully reproducible (spec.md §5, §8).
package openlist

import "github.com/lvlath-planner/sasplan/packedstate"

// Entry is one unit of work waiting in an open list.
type Entry struct {
	// Key is the evaluator key tuple: Key[0] is the primary evaluator's
	// value, Key[1:] are tie-breakers in priority order.
	Key []int64

	State packedstate.StateID

	// CreatingOp is the operator that produced State from its parent, or
	// -1 for the initial state. Edge-based open lists key on this too.
	CreatingOp int

	// Preferred marks an entry produced via a preferred operator (spec.md
	// glossary); alternation lists use it to route/boost.
	Preferred bool
}

// OpenList is the contract every variant in this package satisfies.
type OpenList interface {
	// Insert adds entry under its Key.
	Insert(entry Entry)

	// Pop removes and returns the minimum entry. ok is false iff Empty().
	Pop() (Entry, bool)

	// Empty reports whether the list holds no entries.
	Empty() bool

	// Len reports the number of entries currently held.
	Len() int

	// IsDeadEndReliable reports whether Empty() here is sound evidence
	// that an enclosing search is a genuine dead end (spec.md §4.9 step 1)
	// — false for lists fed by heuristics that can return fallible
	// estimates no caller has flagged as inadmissible-but-safe.
	IsDeadEndReliable() bool
}

// Boostable is implemented by open lists that support a boost signal for
// preferred-operator entries (the alternation variant).
type Boostable interface {
	BoostPreferred()
}

// compareKeys performs the lexicographic tuple comparison every
// keyed/tiebreaking variant needs: -1 if a<b, 0 if equal, 1 if a>b.
func compareKeys(a, b []int64) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	if len(a) < len(b) {
		return -1
	}
	if len(a) > len(b) {
		return 1
	}

	return 0
}
