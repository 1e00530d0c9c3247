package rrule

import (
	"container/heap"
	"fmt"
	"strings"
	"time"
)

// genHeapItem pairs a generator's next pending value with the generator
// itself, so popping it can pull and repush the generator's following
// value.
type genHeapItem struct {
	t    time.Time
	next Next
}

type genHeap []genHeapItem

func (h genHeap) Len() int            { return len(h) }
func (h genHeap) Less(i, j int) bool  { return h[i].t.Before(h[j].t) }
func (h genHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *genHeap) Push(x interface{}) { *h = append(*h, x.(genHeapItem)) }
func (h *genHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// mergeNext k-way merges a set of Next streams into one ascending stream.
func mergeNext(iters []Next) Next {
	h := &genHeap{}
	heap.Init(h)
	for _, it := range iters {
		if t, ok := it(); ok {
			heap.Push(h, genHeapItem{t: t, next: it})
		}
	}
	return func() (time.Time, bool) {
		if h.Len() == 0 {
			return time.Time{}, false
		}
		item := heap.Pop(h).(genHeapItem)
		if t, ok := item.next(); ok {
			heap.Push(h, genHeapItem{t: t, next: item.next})
		}
		return item.t, true
	}
}

// sliceNext adapts a sorted []time.Time to Next.
func sliceNext(ts []time.Time) Next {
	i := 0
	return func() (time.Time, bool) {
		if i >= len(ts) {
			return time.Time{}, false
		}
		t := ts[i]
		i++
		return t, true
	}
}

// Set is a combination of RRULEs, EXRULEs, RDATEs and EXDATEs, as a
// single VEVENT's recurrence would carry them.
type Set struct {
	dtstart time.Time
	rrules  []*RRule
	exrules []*RRule
	rdates  []time.Time
	exdates []time.Time
}

// NewSet returns an empty Set.
func NewSet() *Set { return &Set{} }

// DTStart sets the set's start time. Any RRULE/EXRULE already added is
// resynced to it, and any later RRule/ExRule call syncs against it too —
// mirroring how a VEVENT's DTSTART line governs every RRULE line below it.
func (s *Set) DTStart(dt time.Time) {
	s.dtstart = dt
	for _, r := range s.rrules {
		r.DTStart(dt)
	}
	for _, r := range s.exrules {
		r.DTStart(dt)
	}
}

// GetDTStart returns the set's start time.
func (s *Set) GetDTStart() time.Time { return s.dtstart }

// RRule adds a recurrence rule to the set.
func (s *Set) RRule(r *RRule) {
	if !s.dtstart.IsZero() {
		r.DTStart(s.dtstart)
	}
	s.rrules = append(s.rrules, r)
}

// ExRule adds an exclusion rule to the set.
func (s *Set) ExRule(r *RRule) {
	if !s.dtstart.IsZero() {
		r.DTStart(s.dtstart)
	}
	s.exrules = append(s.exrules, r)
}

// RDate adds a single recurrence date to the set.
func (s *Set) RDate(t time.Time) { s.rdates = append(s.rdates, t) }

// ExDate adds a single exclusion date to the set.
func (s *Set) ExDate(t time.Time) { s.exdates = append(s.exdates, t) }

// GetRRule returns the set's recurrence rules.
func (s *Set) GetRRule() []*RRule { return s.rrules }

// GetExRule returns the set's exclusion rules.
func (s *Set) GetExRule() []*RRule { return s.exrules }

// GetRDate returns the set's recurrence dates.
func (s *Set) GetRDate() []time.Time { return s.rdates }

// GetExDate returns the set's exclusion dates.
func (s *Set) GetExDate() []time.Time { return s.exdates }

// Iterator returns a lazy, deduplicated, exclusion-filtered merge of every
// RRULE/RDATE in the set, minus every EXRULE/EXDATE occurrence.
func (s *Set) Iterator() Next {
	included := make([]Next, 0, len(s.rrules)+1)
	for _, r := range s.rrules {
		included = append(included, r.Iterator())
	}
	sortedRDates := append([]time.Time{}, s.rdates...)
	sortTimes(sortedRDates)
	included = append(included, sliceNext(sortedRDates))
	in := mergeNext(included)

	excluded := make([]Next, 0, len(s.exrules)+1)
	for _, r := range s.exrules {
		excluded = append(excluded, r.Iterator())
	}
	sortedExDates := append([]time.Time{}, s.exdates...)
	sortTimes(sortedExDates)
	excluded = append(excluded, sliceNext(sortedExDates))
	ex := mergeNext(excluded)

	var exCache *time.Time
	var last *time.Time

	return func() (time.Time, bool) {
		for {
			t, ok := in()
			if !ok {
				return time.Time{}, false
			}
			if last != nil && t.Equal(*last) {
				continue
			}
			for {
				if exCache == nil {
					if v, ok := ex(); ok {
						vv := v
						exCache = &vv
					}
				}
				if exCache == nil || !exCache.Before(t) {
					break
				}
				exCache = nil
			}
			if exCache != nil && exCache.Equal(t) {
				continue
			}
			tt := t
			last = &tt
			return t, true
		}
	}
}

func (s *Set) All() []time.Time { return all(s.Iterator()) }
func (s *Set) Between(afterT, beforeT time.Time, inc bool) []time.Time {
	return between(s.Iterator(), afterT, beforeT, inc)
}
func (s *Set) Before(dt time.Time, inc bool) time.Time { return before(s.Iterator(), dt, inc) }
func (s *Set) After(dt time.Time, inc bool) time.Time  { return after(s.Iterator(), dt, inc) }

// String renders the set as a multi-line iCalendar recurrence block:
// DTSTART, then one line per RRULE/EXRULE, then a joined EXDATE line and
// a joined RDATE line.
func (s *Set) String() string {
	var lines []string

	if !s.dtstart.IsZero() {
		loc := s.dtstart.Location()
		if loc.String() == "UTC" {
			lines = append(lines, "DTSTART:"+timeToStr(s.dtstart))
		} else {
			lines = append(lines, "DTSTART;TZID="+loc.String()+":"+s.dtstart.Format("20060102T150405"))
		}
	}
	for _, r := range s.rrules {
		lines = append(lines, "RRULE:"+r.rfcString())
	}
	for _, r := range s.exrules {
		lines = append(lines, "EXRULE:"+r.rfcString())
	}
	if len(s.exdates) > 0 {
		lines = append(lines, "EXDATE:"+joinTimes(s.exdates))
	}
	if len(s.rdates) > 0 {
		lines = append(lines, "RDATE:"+joinTimes(s.rdates))
	}
	return strings.Join(lines, "\n")
}

func joinTimes(ts []time.Time) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = timeToStr(t)
	}
	return strings.Join(parts, ",")
}

// StrToRRuleSet parses a multi-line iCalendar recurrence block (DTSTART,
// RRULE, EXRULE, RDATE and EXDATE lines separated by "\n") using UTC as
// the default time zone for any date-time lacking its own TZID.
func StrToRRuleSet(s string) (*Set, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty recurrence set string")
	}
	return StrSliceToRRuleSetInLoc(strings.Split(s, "\n"), time.UTC)
}

// StrSliceToRRuleSet parses one recurrence component per line, using UTC
// as the default time zone.
func StrSliceToRRuleSet(lines []string) (*Set, error) {
	return StrSliceToRRuleSetInLoc(lines, time.UTC)
}

// StrSliceToRRuleSetInLoc parses one recurrence component per line,
// defaulting to defaultLoc for any date-time lacking its own TZID — or to
// the set's own DTSTART time zone once a DTSTART line has been seen.
func StrSliceToRRuleSetInLoc(lines []string, defaultLoc *time.Location) (*Set, error) {
	set := NewSet()
	loc := defaultLoc

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, rest, err := splitComponentLine(line)
		if err != nil {
			return nil, err
		}
		switch name {
		case "DTSTART":
			dt, err := strToDtStart(rest, loc)
			if err != nil {
				return nil, err
			}
			set.DTStart(dt)
			loc = dt.Location()
		case "RRULE":
			r, err := StrToRRule(rest)
			if err != nil {
				return nil, err
			}
			set.RRule(r)
		case "EXRULE":
			r, err := StrToRRule(rest)
			if err != nil {
				return nil, err
			}
			set.ExRule(r)
		case "RDATE":
			dates, err := StrToDatesInLoc(rest, loc)
			if err != nil {
				return nil, err
			}
			for _, d := range dates {
				set.RDate(d)
			}
		case "EXDATE":
			dates, err := StrToDatesInLoc(rest, loc)
			if err != nil {
				return nil, err
			}
			for _, d := range dates {
				set.ExDate(d)
			}
		}
	}

	return set, nil
}
