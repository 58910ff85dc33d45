// Package searchspace implements SPEC_FULL.md §4.9's per-state bookkeeping:
// parent pointers, g-values and the creating operator, stored in a
// state-data pool indexed by packedstate.StateID and used to reconstruct a
// plan once a goal state is popped. Grounded on dijkstra's `prev`
// predecessor map plus path-reconstruction idiom, generalised from a plain
// map to a dense slice pool keyed by dense StateIDs.
package searchspace

import (
	"math"

	"github.com/lvlath-planner/sasplan/packedstate"
)

// Status is the lifecycle stage of a Node.
type Status int

const (
	// New is the status of a state the instant it is first registered.
	New Status = iota
	Open
	Closed
	DeadEnd
)

func (s Status) String() string {
	switch s {
	case New:
		return "NEW"
	case Open:
		return "OPEN"
	case Closed:
		return "CLOSED"
	case DeadEnd:
		return "DEAD_END"
	default:
		return "UNKNOWN"
	}
}

// InfiniteG marks a node that has never been reached.
const InfiniteG = math.MaxInt64

// Node is the logical record associated with each registered state.
type Node struct {
	Status Status

	G      int64 // accumulated cost under the (possibly cost-adapted) proxy
	RealG  int64 // accumulated cost under the root task, when cost-adapted

	Parent          packedstate.StateID
	HasParent       bool
	CreatingOpIndex int // index into the operator slice; -1 if none
}

// Space owns the state-data pool: one Node per StateID, growing as the
// registry registers new states.
type Space struct {
	nodes []Node
}

// NewSpace returns an empty Space.
func NewSpace() *Space { return &Space{} }

// Node returns a pointer to id's node, growing the pool (with fresh NEW
// nodes at InfiniteG) if id has not been seen before. The returned pointer
// is only valid until the next growth of the underlying slice — callers
// must not retain it across further Node() calls with a larger id.
func (s *Space) Node(id packedstate.StateID) *Node {
	for int(id) >= len(s.nodes) {
		s.nodes = append(s.nodes, Node{Status: New, G: InfiniteG, RealG: InfiniteG, CreatingOpIndex: -1})
	}

	return &s.nodes[id]
}

// Reconstruct walks parent pointers from goal back to the initial state and
// returns the operator indices in forward (initial-to-goal) order, along
// with the total accumulated cost (Node.G at goal).
func (s *Space) Reconstruct(goal packedstate.StateID) (opIndices []int, cost int64) {
	cost = s.Node(goal).G

	var reversed []int
	cur := goal
	for {
		n := s.Node(cur)
		if !n.HasParent {
			break
		}
		reversed = append(reversed, n.CreatingOpIndex)
		cur = n.Parent
	}

	opIndices = make([]int, len(reversed))
	for i, op := range reversed {
		opIndices[len(reversed)-1-i] = op
	}

	return opIndices, cost
}
