package engine

// ByYearDay implements §4.7. Positive values count from the start of the
// year, negative from the end (-1 = Dec 31). Values outside
// [-366,-1]∪[1,366] are pruned, and day 366 is pruned on non-leap years
// simply because it never resolves to a valid (month, day) in that year.
type ByYearDay struct {
	yeardays []int
	metrics  CalendarMetrics
}

func NewByYearDay(yeardays []int, metrics CalendarMetrics) *ByYearDay {
	return &ByYearDay{yeardays: yeardays, metrics: metrics}
}

func (b *ByYearDay) resolve(year int) []int {
	n := b.metrics.DaysInYear(year)
	var out []int
	for _, v := range b.yeardays {
		var yday int
		switch {
		case v > 0 && v <= 366:
			yday = v
		case v < 0 && v >= -366:
			yday = n + v + 1
		default:
			continue
		}
		if yday >= 1 && yday <= n {
			out = append(out, yday)
		}
	}
	return out
}

func (b *ByYearDay) Filter(inst Instance) bool {
	yday := b.metrics.DayOfYear(inst.Year(), inst.Month(), inst.Day())
	return !contains(b.resolve(inst.Year()), yday)
}

func (b *ByYearDay) Expand(out *OrderedInstanceSet, inst Instance, start Instance) {
	year := inst.Year()
	for _, yday := range b.resolve(year) {
		m, d := b.metrics.FromDayOfYear(year, yday)
		out.Append(Make(year, m, d, inst.Hour(), inst.Minute(), inst.Second()))
	}
}
