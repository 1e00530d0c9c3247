package engine

// BySecond implements §4.10: EXPAND when the base frequency is coarser
// than SECONDLY, LIMIT otherwise.
type BySecond struct {
	seconds []int
}

func NewBySecond(seconds []int) *BySecond { return &BySecond{seconds: seconds} }

func (b *BySecond) Filter(inst Instance) bool {
	return !contains(b.seconds, inst.Second())
}

func (b *BySecond) Expand(out *OrderedInstanceSet, inst Instance, start Instance) {
	for _, s := range b.seconds {
		out.Append(inst.WithSecond(s))
	}
}
