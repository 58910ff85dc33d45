// Package dijkstra implements the min-heap priority queue that drives the
// per-variable domain-transition-graph searches of heuristic/cg and
// heuristic/cea (spec.md §4.6). Both heuristics solve a single-source
// shortest-value problem over one variable's domain-transition graph, but
// neither has fixed edge weights the way a plain graph shortest-path does:
// a transition's cost recursively folds in the cost of satisfying its
// conditions against the live state, so the relaxation loop itself has to
// stay with each heuristic. What is genuinely shared is the queue those
// loops pop from, so that is what this package provides.
//
// Notes on implementation choices, carried over from the original
// graph-wide Dijkstra this package used to implement:
//
//   - We use a "lazy" decrease-key strategy: pushing duplicates into the
//     queue and ignoring stale entries once a value has settled, rather
//     than mutating an existing entry in place.
//   - Complexity is the same shape: O((V + E) log V) time, O(V + E)
//     space, for V domain values and E transitions in the caller's graph.
package dijkstra

import "container/heap"

// Item is one entry of a Queue: reaching Value costs Cost.
type Item struct {
	Value int
	Cost  int
}

// Queue is a min-heap of Items ordered by Cost. Callers push a new Item
// every time they find a cheaper way to reach Value rather than looking
// up and mutating an existing entry, and treat a popped Item as stale
// once Value has already settled at a lower cost.
type Queue struct {
	heap innerHeap
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push adds value at cost.
func (q *Queue) Push(value, cost int) {
	heap.Push(&q.heap, Item{Value: value, Cost: cost})
}

// Pop removes and returns the minimum-cost Item. ok is false iff the
// queue is empty.
func (q *Queue) Pop() (Item, bool) {
	if len(q.heap) == 0 {
		return Item{}, false
	}

	return heap.Pop(&q.heap).(Item), true
}

// Len reports the number of items currently queued, including any stale
// duplicates not yet popped.
func (q *Queue) Len() int {
	return len(q.heap)
}

type innerHeap []Item

func (h innerHeap) Len() int            { return len(h) }
func (h innerHeap) Less(i, j int) bool  { return h[i].Cost < h[j].Cost }
func (h innerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *innerHeap) Push(x interface{}) { *h = append(*h, x.(Item)) }
func (h *innerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
