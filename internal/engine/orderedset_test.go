package engine

import "testing"

func TestOrderedSetSortAndCursor(t *testing.T) {
	set := NewOrderedInstanceSet(4)
	set.Append(Make(2020, 3, 1, 0, 0, 0))
	set.Append(Make(2020, 1, 1, 0, 0, 0))
	set.Append(Make(2020, 2, 1, 0, 0, 0))
	set.Sort()

	var months []int
	for set.HasNext() {
		months = append(months, set.Next().Month())
	}
	if len(months) != 3 || months[0] != 1 || months[1] != 2 || months[2] != 3 {
		t.Errorf("cursor walk = %v, want [1 2 3]", months)
	}
}

func TestOrderedSetClearReuses(t *testing.T) {
	set := NewOrderedInstanceSet(2)
	set.Append(Make(2020, 1, 1, 0, 0, 0))
	set.Append(Make(2020, 1, 2, 0, 0, 0))
	set.Clear()
	if set.Len() != 0 || set.HasNext() {
		t.Errorf("Clear left %d items, HasNext=%v", set.Len(), set.HasNext())
	}
	// Seq restarts from zero after Clear so re-used batches stay
	// byte-identical across pulls.
	set.Append(Make(2020, 2, 1, 0, 0, 0))
	if got := set.At(0).Seq(); got != 0 {
		t.Errorf("Seq after Clear = %d, want 0", got)
	}
}

func TestOrderedSetDuplicatesPermitted(t *testing.T) {
	set := NewOrderedInstanceSet(2)
	v := Make(2020, 1, 1, 9, 0, 0)
	set.Append(v)
	set.Append(v)
	set.Sort()
	if set.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (duplicates are permitted at this layer)", set.Len())
	}
	if !set.At(0).SameCalendarValue(set.At(1)) {
		t.Errorf("expected both entries to share a calendar value")
	}
	if set.At(0).Seq() >= set.At(1).Seq() {
		t.Errorf("insertion order not preserved among duplicates: %d vs %d", set.At(0).Seq(), set.At(1).Seq())
	}
}
