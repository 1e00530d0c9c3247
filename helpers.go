package rrule

import (
	"sort"
	"time"
)

// Next returns the next occurrence and true, or the zero time and false
// once the rule is exhausted.
type Next func() (time.Time, bool)

// timeSlice adapts []time.Time to sort.Interface, as the teacher does in
// its own gettimeset/generate sorting.
type timeSlice []time.Time

func (s timeSlice) Len() int           { return len(s) }
func (s timeSlice) Less(i, j int) bool { return s[i].Before(s[j]) }
func (s timeSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

func toPyWeekday(from time.Weekday) int {
	// time.Weekday is 0=Sunday..6=Saturday; RFC 5545/python-dateutil
	// convention used throughout this package is 0=Monday..6=Sunday.
	return int(pymod(int(from)-1, 7))
}

func pymod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// all drains iter into a slice.
func all(iter Next) []time.Time {
	var result []time.Time
	for {
		t, ok := iter()
		if !ok {
			return result
		}
		result = append(result, t)
	}
}

// between collects every occurrence strictly between after and before
// (or inclusive of either endpoint when inc is true).
func between(iter Next, afterT, beforeT time.Time, inc bool) []time.Time {
	var result []time.Time
	for {
		t, ok := iter()
		if !ok {
			return result
		}
		if inc {
			if t.After(beforeT) {
				return result
			}
			if !t.Before(afterT) {
				result = append(result, t)
			}
		} else {
			if !t.Before(beforeT) {
				return result
			}
			if t.After(afterT) {
				result = append(result, t)
			}
		}
	}
}

// before returns the last occurrence strictly before dt (or on dt when
// inc is true).
func before(iter Next, dt time.Time, inc bool) time.Time {
	var last time.Time
	for {
		t, ok := iter()
		if !ok {
			return last
		}
		if inc {
			if t.After(dt) {
				return last
			}
		} else if !t.Before(dt) {
			return last
		}
		last = t
	}
}

// after returns the first occurrence strictly after dt (or on dt when
// inc is true).
func after(iter Next, dt time.Time, inc bool) time.Time {
	for {
		t, ok := iter()
		if !ok {
			return time.Time{}
		}
		if inc {
			if !t.Before(dt) {
				return t
			}
		} else if t.After(dt) {
			return t
		}
	}
}

func timeToStr(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func sortTimes(ts []time.Time) {
	sort.Sort(timeSlice(ts))
}
