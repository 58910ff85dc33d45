package openlist

import (
	"math/rand"
	"sort"
)

type paretoKey struct{ a, b int64 }

// Pareto maintains buckets over a pair of evaluators (Entry.Key[0],
// Entry.Key[1]) and samples uniformly among the Pareto-optimal buckets —
// spec.md §4.8's "pareto" variant. A bucket is Pareto-optimal if no other
// non-empty bucket dominates it (has both coordinates <= and at least one
// strictly <).
type Pareto struct {
	rng     *rand.Rand
	buckets map[paretoKey][]Entry
	count   int
}

// NewPareto returns an empty pareto list seeded from seed.
func NewPareto(seed int64) *Pareto {
	return &Pareto{rng: rngFromSeed(seed), buckets: make(map[paretoKey][]Entry)}
}

func (p *Pareto) Insert(e Entry) {
	var k paretoKey
	if len(e.Key) > 0 {
		k.a = e.Key[0]
	}
	if len(e.Key) > 1 {
		k.b = e.Key[1]
	}
	p.buckets[k] = append(p.buckets[k], e)
	p.count++
}

func (p *Pareto) Empty() bool { return p.count == 0 }
func (p *Pareto) Len() int    { return p.count }

func (p *Pareto) IsDeadEndReliable() bool { return true }

func (p *Pareto) Pop() (Entry, bool) {
	if p.Empty() {
		return Entry{}, false
	}

	keys := make([]paretoKey, 0, len(p.buckets))
	for k, bucket := range p.buckets {
		if len(bucket) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}

		return keys[i].b < keys[j].b
	})

	frontier := paretoFrontier(keys)
	chosen := frontier[p.rng.Intn(len(frontier))]

	bucket := p.buckets[chosen]
	e := bucket[0]
	p.buckets[chosen] = bucket[1:]
	p.count--

	return e, true
}

func paretoFrontier(keys []paretoKey) []paretoKey {
	var frontier []paretoKey
	for _, k := range keys {
		dominated := false
		for _, other := range keys {
			if other == k {
				continue
			}
			if other.a <= k.a && other.b <= k.b && (other.a < k.a || other.b < k.b) {
				dominated = true

				break
			}
		}
		if !dominated {
			frontier = append(frontier, k)
		}
	}

	return frontier
}
