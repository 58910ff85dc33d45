package openlist

import "container/heap"

// Heap is a min-heap open list ordered by Entry.Key, lexicographically,
// with FIFO tie-break by insertion order appended as the final key
// component. This single implementation serves both the "standard scalar"
// variant (Key has one evaluator component) and the "tiebreaking" variant
// (Key already carries a fixed sequence of evaluators) from spec.md
// §4.8 — tiebreaking is exactly lexicographic-over-evaluators-then-FIFO,
// which is what appending the insertion counter already gives a plain
// scalar list for free. Grounded on dijkstra/dijkstra.go's container/heap
// min-heap usage.
type Heap struct {
	inner    innerHeap
	inserted int64
}

type heapItem struct {
	entry Entry
	seq   int64
}

// innerHeap implements container/heap.Interface; Heap wraps it so the
// public OpenList contract (Pop() (Entry, bool)) doesn't collide with
// heap.Interface's Pop() any.
type innerHeap []heapItem

func (h innerHeap) Len() int { return len(h) }

func (h innerHeap) Less(i, j int) bool {
	if c := compareKeys(h[i].entry.Key, h[j].entry.Key); c != 0 {
		return c < 0
	}

	return h[i].seq < h[j].seq
}

func (h innerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *innerHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }

func (h *innerHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// NewStandard returns an empty single-evaluator open list.
func NewStandard() *Heap { return &Heap{} }

// NewTiebreaking returns an empty open list whose Entry.Key is expected to
// already hold the full lexicographic evaluator sequence.
func NewTiebreaking() *Heap { return &Heap{} }

func (h *Heap) Insert(e Entry) {
	heap.Push(&h.inner, heapItem{entry: e, seq: h.inserted})
	h.inserted++
}

func (h *Heap) Pop() (Entry, bool) {
	if h.Empty() {
		return Entry{}, false
	}

	return heap.Pop(&h.inner).(heapItem).entry, true
}

func (h *Heap) Empty() bool { return h.inner.Len() == 0 }
func (h *Heap) Len() int    { return h.inner.Len() }

// IsDeadEndReliable is true for the plain heap: it carries no fallible
// heuristic opinion of its own, only whatever the caller inserted.
func (h *Heap) IsDeadEndReliable() bool { return true }
