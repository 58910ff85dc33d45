// Package packedstate implements the bit-packed state representation and
// the hash-consed state registry of SPEC_FULL.md §4.1: packing reduces
// memory for the closed list to approximately ceil(log2(domain_size)) bits
// per variable, laid out as contiguous uint64 words with a precomputed
// (word, shift, mask) triple per variable.
package packedstate

import (
	"fmt"
	"math/bits"

	"github.com/lvlath-planner/sasplan/task"
)

const wordBits = 64

// varSlot is the precomputed packing location for one variable.
type varSlot struct {
	word  int
	shift uint
	mask  uint64 // unshifted mask, e.g. domain_size=5 -> bits needed=3 -> mask=0b111
	bits  uint
}

// Layout assigns every task variable a fixed bit range within a sequence of
// uint64 words, computed once per Task and shared by every Packed value and
// by the Registry.
type Layout struct {
	slots    []varSlot
	numWords int
}

// NewLayout computes the packing layout for t. Variables are packed in
// order; each gets ceil(log2(domain_size)) bits (at least 1), never
// straddling a word boundary, matching the "contiguous words with
// precomputed (word, shift, mask) per variable" design note (spec.md §9).
func NewLayout(t *task.Task) *Layout {
	l := &Layout{slots: make([]varSlot, len(t.Variables))}

	word := 0
	bitOffset := uint(0)
	for i, v := range t.Variables {
		need := bitsFor(v.DomainSize)
		if bitOffset+need > wordBits {
			word++
			bitOffset = 0
		}
		l.slots[i] = varSlot{
			word:  word,
			shift: bitOffset,
			mask:  (uint64(1) << need) - 1,
			bits:  need,
		}
		bitOffset += need
	}
	l.numWords = word + 1
	if len(t.Variables) == 0 {
		l.numWords = 0
	}

	return l
}

func bitsFor(domainSize int) uint {
	if domainSize <= 1 {
		return 1
	}

	return uint(bits.Len(uint(domainSize - 1)))
}

// Packed is a bit-packed value vector: len(Words) == Layout.numWords.
type Packed struct {
	Words []uint64
}

// Key returns a comparable representation suitable for use as a map key by
// the Registry (hash-consing needs value equality, not pointer equality).
func (p Packed) Key() string {
	buf := make([]byte, len(p.Words)*8)
	for i, w := range p.Words {
		for b := 0; b < 8; b++ {
			buf[i*8+b] = byte(w >> (8 * b))
		}
	}

	return string(buf)
}

// Pack encodes values (one entry per variable, in task.Task.Variables
// order) into a fresh Packed using l's layout. Caller must ensure
// len(values) == number of variables l was built from.
func (l *Layout) Pack(values []int) Packed {
	words := make([]uint64, l.numWords)
	for i, v := range values {
		s := l.slots[i]
		words[s.word] |= (uint64(v) & s.mask) << s.shift
	}

	return Packed{Words: words}
}

// Unpack decodes p back into a value vector in variable order. Unpack is
// the exact inverse of Pack: Unpack(Pack(v)) == v for any v respecting
// variable domains (spec.md §8 round-trip law).
func (l *Layout) Unpack(p Packed) []int {
	values := make([]int, len(l.slots))
	for i, s := range l.slots {
		values[i] = int((p.Words[s.word] >> s.shift) & s.mask)
	}

	return values
}

// Value extracts a single variable's value from p without a full unpack,
// used by the successor generator and heuristics that only need a few
// variables of a state.
func (l *Layout) Value(p Packed, varIdx int) int {
	s := l.slots[varIdx]

	return int((p.Words[s.word] >> s.shift) & s.mask)
}

// String renders the layout's per-variable slot assignment for diagnostics.
func (l *Layout) String() string {
	return fmt.Sprintf("packedstate.Layout{vars=%d words=%d}", len(l.slots), l.numWords)
}
