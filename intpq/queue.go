// Package intpq implements the adaptive bucket-then-heap priority queue
// design note from spec.md §9: a bucket keyed by small integer cost,
// backed by a min-heap over only the distinct costs currently present, so
// pushing many entries at a handful of duplicate costs (the common case
// for unit-cost relaxation heuristics) stays O(1) amortised per push while
// popping the next-cheapest bucket stays O(log D) in the number of
// distinct costs D rather than O(log N) in the number of entries N.
//
// Grounded on dijkstra/dijkstra.go's container/heap min-heap usage,
// generalised from single-entry pushes to a duplicate-friendly bucket
// queue — the relaxation (h^add/h^FF) and LM-cut routines depend on this
// for performance on unit-cost tasks (spec.md §9).
package intpq

import "container/heap"

// Queue is a min-priority queue over (cost int, value any) pairs.
type Queue struct {
	buckets map[int][]interface{}
	keys    costHeap
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{buckets: make(map[int][]interface{})}
}

// Push adds value at the given cost. cost must be >= 0.
func (q *Queue) Push(cost int, value interface{}) {
	if _, ok := q.buckets[cost]; !ok {
		heap.Push(&q.keys, cost)
	}
	q.buckets[cost] = append(q.buckets[cost], value)
}

// Pop removes and returns the value with the smallest cost currently
// queued (FIFO among equal costs). ok is false iff the queue is empty.
func (q *Queue) Pop() (cost int, value interface{}, ok bool) {
	for q.keys.Len() > 0 {
		cost = q.keys[0]
		bucket := q.buckets[cost]
		if len(bucket) == 0 {
			heap.Pop(&q.keys)
			delete(q.buckets, cost)

			continue
		}
		value = bucket[0]
		q.buckets[cost] = bucket[1:]
		if len(q.buckets[cost]) == 0 {
			heap.Pop(&q.keys)
			delete(q.buckets, cost)
		}

		return cost, value, true
	}

	return 0, nil, false
}

// Empty reports whether no entries remain.
func (q *Queue) Empty() bool {
	for _, bucket := range q.buckets {
		if len(bucket) > 0 {
			return false
		}
	}

	return true
}

// Reset discards all entries, reusing the underlying maps/slices.
func (q *Queue) Reset() {
	for k := range q.buckets {
		delete(q.buckets, k)
	}
	q.keys = q.keys[:0]
}

type costHeap []int

func (h costHeap) Len() int            { return len(h) }
func (h costHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h costHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *costHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *costHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]

	return v
}
