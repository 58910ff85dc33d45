package landmark

// StatusManager tracks, per search node, which landmarks have ever been
// achieved on the path so far (`past`, monotone — once true, always true,
// per spec.md §4.11) and which remain needed (`future`). It is not wired
// into the search engine: searchspace.Node carries no past bitset, and the
// cost-partitioning heuristics count a landmark as past only when it is
// true in the evaluated state.
type StatusManager struct {
	graph *Graph
}

// NewStatusManager builds a manager over graph's landmark set.
func NewStatusManager(graph *Graph) *StatusManager {
	return &StatusManager{graph: graph}
}

// Progress computes a child node's past/future bitsets from its parent's
// past bitset (nil for the root node) and the child's own state values.
// A landmark enters past once it is true in values, or was already true
// in the parent's past (monotonicity) or is a disjunctive action landmark
// whose operator set includes creatingOp.
func (m *StatusManager) Progress(parentPast []bool, values []int, creatingOp int, hasCreatingOp bool) []bool {
	past := make([]bool, len(m.graph.Landmarks))
	if parentPast != nil {
		copy(past, parentPast)
	}

	for i, lm := range m.graph.Landmarks {
		if past[i] {
			continue
		}
		switch lm.Kind {
		case FactLandmark:
			if values[lm.Fact.Var] == lm.Fact.Value {
				past[i] = true
			}
		case DisjunctiveActionLandmark:
			if hasCreatingOp {
				for _, op := range lm.Operators {
					if op == creatingOp {
						past[i] = true
						break
					}
				}
			}
		}
	}

	return past
}

// Future returns, for a given past bitset, the IDs still needed.
func (m *StatusManager) Future(past []bool) []int {
	var future []int
	for i, p := range past {
		if !p {
			future = append(future, i)
		}
	}

	return future
}
