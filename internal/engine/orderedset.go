package engine

import "sort"

// OrderedInstanceSet is a growable, sortable sequence of packed instances
// with cursor semantics (spec.md §4.2). It is owned by exactly one stage
// and reused across pulls: Clear resets length and cursor without
// reallocating the backing array.
type OrderedInstanceSet struct {
	items   []Instance
	cursor  int
	nextSeq int
}

// NewOrderedInstanceSet returns an empty set with room for n instances —
// a year of daily candidates is the typical upper bound (§4.2).
func NewOrderedInstanceSet(capacityHint int) *OrderedInstanceSet {
	return &OrderedInstanceSet{items: make([]Instance, 0, capacityHint)}
}

// Append adds an instance to the set, stamping it with the next insertion
// sequence number so a later BYSETPOS selection can break ties between
// instances that land on the same calendar value within a single batch.
func (s *OrderedInstanceSet) Append(inst Instance) {
	s.items = append(s.items, inst.WithSeq(s.nextSeq))
	s.nextSeq++
}

// Clear empties the set and resets the cursor, keeping the backing array.
func (s *OrderedInstanceSet) Clear() {
	s.items = s.items[:0]
	s.cursor = 0
	s.nextSeq = 0
}

// Len reports the number of instances currently held.
func (s *OrderedInstanceSet) Len() int {
	return len(s.items)
}

// Sort orders the set ascending by chronological value, sequence as
// tie-break. Once sorted, HasNext/Next walk in non-decreasing order —
// the mandated ordering contract between stages (§4.4).
func (s *OrderedInstanceSet) Sort() {
	sort.Slice(s.items, func(i, j int) bool { return s.items[i].Less(s.items[j]) })
	s.cursor = 0
}

// HasNext reports whether the cursor has more instances to walk.
func (s *OrderedInstanceSet) HasNext() bool {
	return s.cursor < len(s.items)
}

// Next returns the instance at the cursor and advances it.
func (s *OrderedInstanceSet) Next() Instance {
	v := s.items[s.cursor]
	s.cursor++
	return v
}

// All returns the full backing slice, in its current order. Callers must
// not retain it past the current pull — the next Clear reuses the array.
func (s *OrderedInstanceSet) All() []Instance {
	return s.items
}

// At returns the element at the 0-indexed position without disturbing the
// cursor, used by BYSETPOS to pick arbitrary positions out of a sorted
// batch.
func (s *OrderedInstanceSet) At(i int) Instance {
	return s.items[i]
}
