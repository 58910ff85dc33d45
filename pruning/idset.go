// Package pruning implements SPEC_FULL.md §4.7: the stubborn-set pruning
// layer that narrows the successor generator's applicable-operator list
// down to a sound subset that still preserves at least one optimal plan.
//
// Grounded on tsp/bb.go's pruning-by-admissible-bound idiom (a dedicated
// engine struct holding precomputed indices, walked once per node instead
// of recomputed from scratch) generalised from numeric bound pruning to
// operator-set pruning.
package pruning

// idSet is a compact, dense-backed integer set over [0, n), grounded on
// original_source/src/search/algorithms/int_hash_set.h's role: a boolean
// array sized to the known universe plus a member list, instead of a
// generic map[int]bool, used on the stubborn-set worklist's hot path where
// membership is checked and inserted far more often than the set is
// iterated.
type idSet struct {
	present []bool
	members []int
}

func newIDSet(universe int) *idSet {
	return &idSet{present: make([]bool, universe)}
}

// add inserts id and reports whether it was newly added.
func (s *idSet) add(id int) bool {
	if s.present[id] {
		return false
	}
	s.present[id] = true
	s.members = append(s.members, id)

	return true
}

func (s *idSet) has(id int) bool { return s.present[id] }

func (s *idSet) reset() {
	for _, id := range s.members {
		s.present[id] = false
	}
	s.members = s.members[:0]
}
