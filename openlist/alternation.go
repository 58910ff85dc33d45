package openlist

// ChildSpec configures one child list under an Alternation.
type ChildSpec struct {
	List OpenList

	// PreferredOnly restricts this child to receiving only Preferred
	// entries; other entries are silently dropped for this child (they
	// still reach every other child that accepts them).
	PreferredOnly bool
}

// Alternation round-robins over a list of child open lists, with optional
// boost for preferred-operator lists — spec.md §4.8's "alternation"
// variant. Boost works by granting preferred children extra consecutive
// turns the next time Pop is called, per BoostPreferred.
type Alternation struct {
	children []ChildSpec
	next     int
	boost    int // remaining extra preferred-only turns
	boostAmt int
}

// NewAlternation builds an Alternation over children in order. boostAmount
// is how many consecutive extra turns BoostPreferred grants to the
// preferred-only children the next time they would otherwise not be due.
func NewAlternation(children []ChildSpec, boostAmount int) *Alternation {
	return &Alternation{children: children, boostAmt: boostAmount}
}

func (a *Alternation) Insert(e Entry) {
	for i := range a.children {
		if a.children[i].PreferredOnly && !e.Preferred {
			continue
		}
		a.children[i].List.Insert(e)
	}
}

// BoostPreferred grants preferred-only children extra consecutive turns on
// the next Pop calls, used by the search engine when a preferred operator
// was just used to reach the incumbent best heuristic value.
func (a *Alternation) BoostPreferred() {
	a.boost += a.boostAmt
}

func (a *Alternation) Empty() bool {
	for _, c := range a.children {
		if !c.List.Empty() {
			return false
		}
	}

	return true
}

func (a *Alternation) Len() int {
	total := 0
	for _, c := range a.children {
		total += c.List.Len()
	}

	return total
}

// IsDeadEndReliable is true only if every child agrees dead-end evidence
// from emptiness is reliable.
func (a *Alternation) IsDeadEndReliable() bool {
	for _, c := range a.children {
		if !c.List.IsDeadEndReliable() {
			return false
		}
	}

	return true
}

func (a *Alternation) Pop() (Entry, bool) {
	if a.Empty() {
		return Entry{}, false
	}

	n := len(a.children)
	for tries := 0; tries < n; tries++ {
		idx := a.next % n

		preferTurn := a.boost > 0
		candidate := a.children[idx]
		if preferTurn && !candidate.PreferredOnly {
			// Consume a boost turn by scanning ahead for a preferred-only
			// child with work available; if none has work, fall through
			// to normal round-robin for this turn.
			if e, ok := a.popFromPreferred(); ok {
				a.boost--

				return e, true
			}
		}

		a.next++
		if e, ok := candidate.List.Pop(); ok {
			return e, true
		}
	}

	return Entry{}, false
}

func (a *Alternation) popFromPreferred() (Entry, bool) {
	for i := range a.children {
		if a.children[i].PreferredOnly && !a.children[i].List.Empty() {
			return a.children[i].List.Pop()
		}
	}

	return Entry{}, false
}
