package engine

// CalendarMetrics is the stateless Gregorian-calendar collaborator spec.md
// §3/§6 describes: every method is a pure function of its arguments, safe
// to call from any stage without synchronization, for the lifetime of one
// pipeline. The teacher keeps the equivalent tables (M366MASK, MDAY366MASK,
// isLeap, daysIn) as package-level globals mutated through a scratch
// iterInfo; per spec.md §9's "Helper Calendar mutation pattern" note, this
// rewrite replaces that scratch-object pattern with pure functions instead
// of carrying it forward.
type CalendarMetrics struct {
	// WeekStart is the rule's configured week-start weekday (0=Monday..
	// 6=Sunday, RFC 5545 convention), used by WeekOfYear.
	WeekStart int
}

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in the given 1-based month of
// year.
func (CalendarMetrics) DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthLengths[month-1]
}

// DaysInYear returns 365 or 366.
func (CalendarMetrics) DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DayOfWeek returns the RFC 5545 weekday index (0=Monday..6=Sunday) of the
// given Gregorian date, via Zeller-congruence-equivalent arithmetic
// (Sakamoto's method), so the metrics collaborator never needs a
// time.Time round trip for dates outside its representable window.
func (CalendarMetrics) DayOfWeek(year, month, day int) int {
	// t[] adjusts month to align January/February after shifting the
	// "year" back for those two months, a standard Sakamoto table.
	t := [...]int{0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4}
	y := year
	if month < 3 {
		y--
	}
	sunday0 := (y + y/4 - y/100 + y/400 + t[month-1] + day) % 7
	// sunday0: 0=Sunday..6=Saturday. Convert to RFC 5545: 0=Monday.
	return (sunday0 + 6) % 7
}

// DayOfYear returns the 1-based ordinal day within year for month/day.
func (cm CalendarMetrics) DayOfYear(year, month, day int) int {
	n := day
	for m := 1; m < month; m++ {
		n += cm.DaysInMonth(year, m)
	}
	return n
}

// FromDayOfYear inverts DayOfYear: given a 1-based ordinal day within
// year (which may be 1..366), returns the (month, day) pair.
func (cm CalendarMetrics) FromDayOfYear(year, yday int) (month, day int) {
	for m := 1; m <= 12; m++ {
		dim := cm.DaysInMonth(year, m)
		if yday <= dim {
			return m, yday
		}
		yday -= dim
	}
	// Unreachable for a valid yday within [1, DaysInYear(year)]; a
	// programmer error per §7 if it happens.
	return 12, cm.DaysInMonth(year, 12)
}

// WeekdayOfFirstYearDay returns the RFC 5545 weekday (0=Monday..6=Sunday)
// of January 1st of year.
func (cm CalendarMetrics) WeekdayOfFirstYearDay(year int) int {
	return cm.DayOfWeek(year, 1, 1)
}

// WeekOfYear computes the ISO-style week number ("minimum 4 days in the
// first week") of the given date, honouring cm.WeekStart instead of
// always anchoring to Monday. Returns the week number and the calendar
// year the week is considered to belong to (which may differ from `year`
// at the boundaries — §4.6's cross-year overlap).
func (cm CalendarMetrics) WeekOfYear(year, month, day int) (week, weekYear int) {
	yday := cm.DayOfYear(year, month, day) - 1 // 0-based
	jan1Wday := cm.WeekdayOfFirstYearDay(year)
	// Offset of the first occurrence of WeekStart on/after Jan 1.
	firstWkst := pymod(7-jan1Wday+cm.WeekStart, 7)
	// no1wkst is the 0-based yday on which week 1 begins. When 4 or more
	// days precede the first WeekStart, they already form week 1, which
	// therefore began on the WeekStart day in the prior December.
	no1wkst := firstWkst
	yearlen := cm.DaysInYear(year)
	if no1wkst >= 4 {
		no1wkst -= 7
	}
	// Days before no1wkst belong to the last week of the previous year.
	if yday < no1wkst {
		return cm.WeeksInYear(year - 1), year - 1
	}
	week = (yday-no1wkst)/7 + 1
	// A trailing partial week with fewer than 4 days belongs to next
	// year's week 1.
	remaining := yearlen - (no1wkst + (week-1)*7)
	if remaining < 4 {
		return 1, year + 1
	}
	return week, year
}

// WeeksInYear returns the number of ISO-style weeks (minimum 4 days in
// the first week) in year, honouring cm.WeekStart — used to resolve
// negative BYWEEKNO values ("from end").
func (cm CalendarMetrics) WeeksInYear(year int) int {
	jan1Wday := cm.WeekdayOfFirstYearDay(year)
	firstWkst := pymod(7-jan1Wday+cm.WeekStart, 7)
	no1wkst := firstWkst
	yearlen := cm.DaysInYear(year)
	var wyearlen int
	if no1wkst >= 4 {
		no1wkst = 0
		wyearlen = yearlen + pymod(jan1Wday-cm.WeekStart, 7)
	} else {
		wyearlen = yearlen - no1wkst
	}
	div, mod := divmod(wyearlen, 7)
	return div + mod/4
}

// AddDays returns the Gregorian date n days after (year, month, day); n
// may be negative. This is the only date-arithmetic primitive the BYxxx
// stages need for cross-year overlap (§4.6, §4.9's week-crosses-year
// handling) — a carry loop over DaysInMonth, never a time.Time round
// trip, keeping the core free of time-zone-aware arithmetic (§1
// Non-goals).
func (cm CalendarMetrics) AddDays(year, month, day, n int) (int, int, int) {
	day += n
	for day < 1 {
		month--
		if month < 1 {
			month = 12
			year--
		}
		day += cm.DaysInMonth(year, month)
	}
	for day > cm.DaysInMonth(year, month) {
		day -= cm.DaysInMonth(year, month)
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return year, month, day
}

// WeekStartOffsets resolves the configured BYWEEKNO values for year into
// 0-based yday offsets (from Jan 1 of year, possibly negative or beyond
// DaysInYear(year) — AddDays resolves the overlap) marking the first day
// of each requested ISO-style week. The offset arithmetic follows the
// teacher's iterInfo.rebuild wnomask construction, with one change: the
// week-start correction is applied to week 1 as well, so a week 1 that
// begins in the prior December yields a negative offset instead of Jan 1.
// The teacher's mask representation never needed this (its mask fill
// stops at the next week-start day), but a stage that always emits a full
// 7-day window does — see DESIGN.md's Open Question entry.
func (cm CalendarMetrics) WeekStartOffsets(year int, byweekno []int) (offsets []int, numweeks int) {
	yearlen := cm.DaysInYear(year)
	jan1Wday := cm.WeekdayOfFirstYearDay(year)
	firstWkst := pymod(7-jan1Wday+cm.WeekStart, 7)
	no1wkst := firstWkst
	var wyearlen int
	if no1wkst >= 4 {
		no1wkst = 0
		wyearlen = yearlen + pymod(jan1Wday-cm.WeekStart, 7)
	} else {
		wyearlen = yearlen - no1wkst
	}
	div, mod := divmod(wyearlen, 7)
	numweeks = div + mod/4

	for _, n := range byweekno {
		if n < 0 {
			n += numweeks + 1
		}
		if !(n > 0 && n <= numweeks) {
			continue
		}
		i := no1wkst + (n-1)*7
		if no1wkst != firstWkst {
			i -= 7 - firstWkst
		}
		offsets = append(offsets, i)
	}
	return offsets, numweeks
}

func pymod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func divmod(a, b int) (int, int) {
	m := pymod(a, b)
	return (a - m) / b, m
}
