package openlist

import (
	"math"
	"math/rand"
	"sort"
)

// WeightedMode selects how Weighted draws a bucket among the distinct
// heuristic values currently present.
type WeightedMode int

const (
	// Softmin draws a bucket with probability proportional to
	// exp(-value / temperature), biasing strongly toward low values.
	Softmin WeightedMode = iota
	// Linear draws a bucket with probability linearly interpolated
	// between 1 (at the minimum present value) and 0 (at the maximum).
	Linear
)

// Weighted buckets entries by their primary evaluator value (Entry.Key[0])
// and draws a bucket with probability proportional to either a softmin
// over the heuristic values or a linear interpolation between the min and
// max values currently present — spec.md §4.8's "weighted variants".
type Weighted struct {
	rng         *rand.Rand
	mode        WeightedMode
	temperature float64
	buckets     map[int64][]Entry
	count       int
}

// NewWeighted returns an empty weighted list. temperature is only used in
// Softmin mode and must be > 0 (a caller-supplied non-positive value is
// replaced by 1.0).
func NewWeighted(seed int64, mode WeightedMode, temperature float64) *Weighted {
	if temperature <= 0 {
		temperature = 1.0
	}

	return &Weighted{rng: rngFromSeed(seed), mode: mode, temperature: temperature, buckets: make(map[int64][]Entry)}
}

func (w *Weighted) Insert(e Entry) {
	var v int64
	if len(e.Key) > 0 {
		v = e.Key[0]
	}
	w.buckets[v] = append(w.buckets[v], e)
	w.count++
}

func (w *Weighted) Empty() bool { return w.count == 0 }
func (w *Weighted) Len() int    { return w.count }

func (w *Weighted) IsDeadEndReliable() bool { return true }

func (w *Weighted) Pop() (Entry, bool) {
	if w.Empty() {
		return Entry{}, false
	}

	values := make([]int64, 0, len(w.buckets))
	for v, bucket := range w.buckets {
		if len(bucket) > 0 {
			values = append(values, v)
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	weights := w.weights(values)
	chosen := values[sampleWeighted(w.rng, weights)]

	bucket := w.buckets[chosen]
	e := bucket[0]
	w.buckets[chosen] = bucket[1:]
	w.count--

	return e, true
}

func (w *Weighted) weights(values []int64) []float64 {
	out := make([]float64, len(values))
	switch w.mode {
	case Softmin:
		var sum float64
		for i, v := range values {
			weight := math.Exp(-float64(v) / w.temperature)
			out[i] = weight
			sum += weight
		}
		if sum == 0 {
			for i := range out {
				out[i] = 1
			}
		}
	case Linear:
		min, max := values[0], values[0]
		for _, v := range values {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		span := float64(max - min)
		for i, v := range values {
			if span == 0 {
				out[i] = 1
				continue
			}
			out[i] = 1 - float64(v-min)/span
		}
	}

	return out
}

// sampleWeighted draws an index in [0, len(weights)) with probability
// proportional to weights[i]. Falls back to uniform if every weight is
// non-positive (degenerate input).
func sampleWeighted(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}

	r := rng.Float64() * total
	var running float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		running += w
		if r < running {
			return i
		}
	}

	return len(weights) - 1
}
