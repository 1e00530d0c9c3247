package engine

// ByEaster implements the non-standard RFC 2445 BYEASTER extension the
// teacher carries as `Byeaster`/`eastermask`: each configured value is an
// offset in days from the Western (Gregorian) Easter Sunday of the
// candidate's year. With a YEARLY base and no other date-level part it
// EXPANDS, emitting the offset dates within each seed's year — the
// teacher's eastermask over the whole-year dayset behaves the same way.
// With companion date parts (or a finer base frequency) it LIMITS,
// matching how the teacher ANDs eastermask with the other masks.
type ByEaster struct {
	offsets []int
	metrics CalendarMetrics
}

func NewByEaster(offsets []int, metrics CalendarMetrics) *ByEaster {
	return &ByEaster{offsets: offsets, metrics: metrics}
}

func (b *ByEaster) Filter(inst Instance) bool {
	yd := b.metrics.DayOfYear(inst.Year(), inst.Month(), inst.Day())
	easterYd := easterYearDay(inst.Year())
	for _, off := range b.offsets {
		if yd == easterYd+off {
			return false
		}
	}
	return true
}

func (b *ByEaster) Expand(out *OrderedInstanceSet, inst Instance, start Instance) {
	year := inst.Year()
	easterYd := easterYearDay(year)
	n := b.metrics.DaysInYear(year)
	for _, off := range b.offsets {
		yd := easterYd + off
		if yd < 1 || yd > n {
			continue
		}
		m, d := b.metrics.FromDayOfYear(year, yd)
		out.Append(Make(year, m, d, inst.Hour(), inst.Minute(), inst.Second()))
	}
}

// easterYearDay returns the 1-based day-of-year of Western Easter Sunday
// for year, via the anonymous Gregorian algorithm (Meeus/Jones/Butcher).
func easterYearDay(year int) int {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	cm := CalendarMetrics{}
	return cm.DayOfYear(year, month, day)
}
