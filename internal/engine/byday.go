package engine

// ByDay implements §4.9. Expansion and limit both depend on Scope, which
// the pipeline derives once at construction time (§3) from the base
// frequency and sibling BYMONTH/BYWEEKNO presence.
type ByDay struct {
	days    []WeekdayNum
	packed  []int // Pack()ed days, for the LIMIT-mode membership scan
	scope   Scope
	bymonth []int // only consulted in ScopeWeeklyAndMonthly
	metrics CalendarMetrics
}

func NewByDay(days []WeekdayNum, scope Scope, bymonth []int, metrics CalendarMetrics) *ByDay {
	packed := make([]int, len(days))
	for i, wn := range days {
		packed[i] = wn.Pack()
	}
	return &ByDay{days: days, packed: packed, scope: scope, bymonth: bymonth, metrics: metrics}
}

// ---- EXPAND ----

func (b *ByDay) Expand(out *OrderedInstanceSet, inst Instance, start Instance) {
	switch b.scope {
	case ScopeWeekly:
		b.expandWeekly(out, inst)
	case ScopeWeeklyAndMonthly:
		b.expandWeeklyAndMonthly(out, inst)
	case ScopeMonthly:
		b.expandMonthly(out, inst)
	case ScopeYearly:
		b.expandYearly(out, inst)
	}
}

// weekStartOf returns the (year, month, day) of the first day (the
// rule's WeekStart weekday) of the ISO-style week containing inst.
func (b *ByDay) weekStartOf(inst Instance) (int, int, int) {
	wd := b.metrics.DayOfWeek(inst.Year(), inst.Month(), inst.Day())
	back := pymod(wd-b.metrics.WeekStart, 7)
	return b.metrics.AddDays(inst.Year(), inst.Month(), inst.Day(), -back)
}

func (b *ByDay) expandWeekly(out *OrderedInstanceSet, inst Instance) {
	y, m, d := b.weekStartOf(inst)
	for _, wn := range b.days {
		// Non-zero positions are ignored at WEEKLY scope: a position,
		// if given at all, is treated as pos=0 (§4.9).
		off := pymod(wn.Weekday-b.metrics.WeekStart, 7)
		yy, mm, dd := b.metrics.AddDays(y, m, d, off)
		cand := Make(yy, mm, dd, inst.Hour(), inst.Minute(), inst.Second())
		// BYWEEKNO hands this stage all 7 days of its configured week as
		// distinct upstream candidates (byweekno.go's Expand), so a plain
		// FREQ=YEARLY;BYWEEKNO=...;BYDAY=... rule calls this once per day
		// of the same week, each time re-deriving the identical weekday
		// set from that week's start. Skip a candidate already present
		// in this batch rather than emit it once per upstream seed.
		if containsCalendarValue(out, cand) {
			continue
		}
		out.Append(cand)
	}
}

// containsCalendarValue reports whether out already holds an instance
// naming the same calendar value as cand, ignoring the sequence tag.
func containsCalendarValue(out *OrderedInstanceSet, cand Instance) bool {
	for _, existing := range out.All() {
		if existing.SameCalendarValue(cand) {
			return true
		}
	}
	return false
}

func (b *ByDay) expandWeeklyAndMonthly(out *OrderedInstanceSet, inst Instance) {
	y, m, d := b.weekStartOf(inst)
	keepMonth := inst.Month()
	for _, wn := range b.days {
		off := pymod(wn.Weekday-b.metrics.WeekStart, 7)
		yy, mm, dd := b.metrics.AddDays(y, m, d, off)
		cand := Make(yy, mm, dd, inst.Hour(), inst.Minute(), inst.Second())
		if len(b.bymonth) > 0 {
			if !contains(b.bymonth, mm) {
				continue
			}
		} else if mm != keepMonth {
			continue
		}
		out.Append(cand)
	}
}

// monthWeekdayDays returns the sorted days-of-month on which `weekday`
// falls in (year, month).
func (b *ByDay) monthWeekdayDays(year, month, weekday int) []int {
	dim := b.metrics.DaysInMonth(year, month)
	first := b.metrics.DayOfWeek(year, month, 1)
	offset := pymod(weekday-first, 7)
	var days []int
	for d := 1 + offset; d <= dim; d += 7 {
		days = append(days, d)
	}
	return days
}

func (b *ByDay) expandMonthly(out *OrderedInstanceSet, inst Instance) {
	year, month := inst.Year(), inst.Month()
	for _, wn := range b.days {
		days := b.monthWeekdayDays(year, month, wn.Weekday)
		if wn.Pos == 0 {
			for _, d := range days {
				out.Append(inst.WithDay(d))
			}
			continue
		}
		if idx := resolveOrdinal(wn.Pos, len(days)); idx >= 0 {
			out.Append(inst.WithDay(days[idx]))
		}
	}
}

// yearWeekdayDays returns the sorted 1-based year-days on which weekday
// falls within year.
func (b *ByDay) yearWeekdayDays(year, weekday int) []int {
	n := b.metrics.DaysInYear(year)
	first := b.metrics.WeekdayOfFirstYearDay(year)
	offset := pymod(weekday-first, 7)
	var ydays []int
	for yd := 1 + offset; yd <= n; yd += 7 {
		ydays = append(ydays, yd)
	}
	return ydays
}

func (b *ByDay) expandYearly(out *OrderedInstanceSet, inst Instance) {
	year := inst.Year()
	for _, wn := range b.days {
		ydays := b.yearWeekdayDays(year, wn.Weekday)
		emit := func(yd int) {
			m, d := b.metrics.FromDayOfYear(year, yd)
			out.Append(Make(year, m, d, inst.Hour(), inst.Minute(), inst.Second()))
		}
		if wn.Pos == 0 {
			for _, yd := range ydays {
				emit(yd)
			}
			continue
		}
		if idx := resolveOrdinal(wn.Pos, len(ydays)); idx >= 0 {
			emit(ydays[idx])
		}
	}
}

// resolveOrdinal converts a 1-based (pos>0) or from-the-end (pos<0)
// ordinal into a 0-based index into a slice of length n, or -1 if it
// doesn't exist.
func resolveOrdinal(pos, n int) int {
	var idx int
	if pos > 0 {
		idx = pos - 1
	} else {
		idx = n + pos
	}
	if idx < 0 || idx >= n {
		return -1
	}
	return idx
}

// ---- LIMIT ----

func (b *ByDay) Filter(inst Instance) bool {
	wd := b.metrics.DayOfWeek(inst.Year(), inst.Month(), inst.Day())
	var positive, negative int
	switch b.scope {
	case ScopeMonthly, ScopeWeeklyAndMonthly:
		days := b.monthWeekdayDays(inst.Year(), inst.Month(), wd)
		positive, negative = ordinalPositions(days, inst.Day())
	default: // ScopeYearly and ScopeWeekly both fall back to the yearly count
		ydays := b.yearWeekdayDays(inst.Year(), wd)
		yd := b.metrics.DayOfYear(inst.Year(), inst.Month(), inst.Day())
		positive, negative = ordinalPositions(ydays, yd)
	}
	if contains(b.packed, WeekdayNum{Weekday: wd}.Pack()) {
		return false
	}
	if positive != 0 && contains(b.packed, WeekdayNum{Pos: positive, Weekday: wd}.Pack()) {
		return false
	}
	if negative != 0 && contains(b.packed, WeekdayNum{Pos: negative, Weekday: wd}.Pack()) {
		return false
	}
	return true
}

// ordinalPositions returns both the positive (1-indexed from start) and
// negative (from-end, -1 = last) ordinal of value within the sorted
// occurrences slice. spec.md §9 flags the original BYDAY limit code as
// having "a non-obvious off-by-one" against this exact computation, to
// be reproduced rather than silently fixed — but original_source carried
// no retrievable files for this rule (see DESIGN.md), so there was no
// concrete off-by-one to port faithfully. This implementation uses the
// textbook "-1 = last" convention rather than guess at an unverified
// quirk; see DESIGN.md's Open Question entry for that call.
func ordinalPositions(occurrences []int, value int) (positive, negative int) {
	for i, v := range occurrences {
		if v == value {
			positive = i + 1
			negative = i - len(occurrences)
			return positive, negative
		}
	}
	return 0, 0
}
