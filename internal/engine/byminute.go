package engine

// ByMinute implements §4.10: EXPAND when the base frequency is coarser
// than MINUTELY, LIMIT otherwise.
type ByMinute struct {
	minutes []int
}

func NewByMinute(minutes []int) *ByMinute { return &ByMinute{minutes: minutes} }

func (b *ByMinute) Filter(inst Instance) bool {
	return !contains(b.minutes, inst.Minute())
}

func (b *ByMinute) Expand(out *OrderedInstanceSet, inst Instance, start Instance) {
	for _, m := range b.minutes {
		out.Append(inst.WithMinute(m))
	}
}
