package policy

import (
	"time"

	"github.com/rs/zerolog"

	rrule "github.com/arrowloop/rrulecore"
)

// Options wraps rrule.ROption with the holiday/business-day policy
// extensions a calendar-aware scheduler needs on top of a bare RFC 5545
// rule: shifting occurrences off weekends/holidays, restricting them to
// only weekends/holidays, a named observance fallback, a custom
// caller-supplied predicate, and an explicit calendar.
type Options struct {
	rrule.ROption

	ShiftOffWeekend     bool
	ShiftOffHolidays    bool
	ValidOnlyOnHolidays bool
	ValidOnlyOnWeekends bool
	ISOCode             string
	Observance          ObservanceMode
	CustomFilter        func(time.Time) bool
	Calendar            ICalendar
}

// RulePlus wraps an *rrule.RRule and applies the Options policy on top of
// its raw occurrences.
type RulePlus struct {
	base     *rrule.RRule
	calendar ICalendar
	options  Options
	log      zerolog.Logger
}

// NewRulePlus builds a RulePlus from Options. If Calendar is nil and
// ISOCode is set, the calendar is resolved from the package registry,
// building and registering one on first use.
func NewRulePlus(opt Options) (*RulePlus, error) {
	base, err := rrule.NewRRule(opt.ROption)
	if err != nil {
		return nil, err
	}

	var calendar ICalendar
	if opt.Calendar != nil {
		calendar = opt.Calendar
	} else if opt.ISOCode != "" {
		c, err := GetCalendar(opt.ISOCode)
		if err != nil || c == nil {
			c, err = NewCalendar(opt.ISOCode)
			if err != nil {
				return nil, err
			}
			SetCalendar(opt.ISOCode, c)
		}
		calendar = c
	}

	return &RulePlus{base: base, calendar: calendar, options: opt}, nil
}

// IsPlusMode reports whether any policy extension is active; when false,
// RulePlus is a pure passthrough to the wrapped RRule.
func (rp *RulePlus) IsPlusMode() bool {
	opt := rp.options
	return opt.ShiftOffWeekend ||
		opt.ShiftOffHolidays ||
		opt.ValidOnlyOnHolidays ||
		opt.ValidOnlyOnWeekends ||
		!opt.Observance.IsEmpty() ||
		opt.CustomFilter != nil ||
		opt.ISOCode != ""
}

func (rp *RulePlus) isValid(t time.Time) bool {
	opt := rp.options

	if opt.CustomFilter != nil && !opt.CustomFilter(t) {
		return false
	}

	weekend := isWeekend(t)
	var holiday bool
	if rp.calendar != nil {
		actual, observed, _ := rp.calendar.IsHoliday(t)
		holiday = actual || observed
	}

	if opt.ValidOnlyOnWeekends && !weekend {
		return false
	}
	if opt.ValidOnlyOnHolidays && !holiday {
		return false
	}
	if weekend && !opt.ShiftOffWeekend && !opt.ValidOnlyOnWeekends {
		return false
	}
	if holiday && !opt.ShiftOffHolidays && !opt.ValidOnlyOnHolidays {
		return false
	}
	return true
}

// applyShift relocates t per ShiftOffWeekend/ShiftOffHolidays/Observance,
// in that order.
func (rp *RulePlus) applyShift(t time.Time) time.Time {
	opt := rp.options

	if opt.ShiftOffWeekend {
		switch t.Weekday() {
		case time.Saturday:
			t = t.AddDate(0, 0, 2)
		case time.Sunday:
			t = t.AddDate(0, 0, 1)
		}
	}

	if opt.ShiftOffHolidays && rp.calendar != nil {
		for attempts := 0; attempts < 366; attempts++ {
			actual, observed, _ := rp.calendar.IsHoliday(t)
			if !actual && !observed {
				break
			}
			t = t.AddDate(0, 0, 1)
		}
	}

	if !opt.Observance.IsEmpty() && rp.calendar != nil {
		var step int
		switch opt.Observance.TrimSpace() {
		case ObservanceNextBizDay:
			step = 1
		case ObservancePreviousBizDay:
			step = -1
		default:
			// ObservanceNone and unrecognized modes leave t where it is.
			return t
		}
		for attempts := 0; attempts < 366; attempts++ {
			actual, observed, _ := rp.calendar.IsHoliday(t)
			if !actual && !observed && !isWeekend(t) {
				break
			}
			t = t.AddDate(0, 0, step)
		}
	}

	return t
}

// scan walks the base rule's raw occurrences from t, applying shifts and
// the validity filter, until it finds one that survives or gives up
// after a bounded number of attempts — mirroring the engine's own
// over-constrained safety bound rather than looping forever on a policy
// that excludes every candidate.
func (rp *RulePlus) scan(forward bool, t time.Time, inclusive bool) time.Time {
	cursor := t
	step := time.Second
	if !forward {
		step = -step
	}

	for attempts := 0; attempts < 1000; attempts++ {
		var next time.Time
		if forward {
			next = rp.base.After(cursor, inclusive)
		} else {
			next = rp.base.Before(cursor, inclusive)
		}
		if next.IsZero() {
			return time.Time{}
		}
		adjusted := rp.applyShift(next)
		if rp.isValid(adjusted) {
			return adjusted
		}
		cursor = next.Add(step)
		inclusive = false
	}
	rp.log.Debug().Msg("policy: scan gave up after 1000 attempts without a valid occurrence")
	return time.Time{}
}

// After returns the first valid occurrence after (or on, if inclusive) t.
func (rp *RulePlus) After(t time.Time, inclusive bool) time.Time {
	if !rp.IsPlusMode() {
		return rp.base.After(t, inclusive)
	}
	return rp.scan(true, t, inclusive)
}

// Before returns the last valid occurrence before (or on, if inclusive) t.
func (rp *RulePlus) Before(t time.Time, inclusive bool) time.Time {
	if !rp.IsPlusMode() {
		return rp.base.Before(t, inclusive)
	}
	return rp.scan(false, t, inclusive)
}

// Between returns every valid, shifted occurrence in (after, before).
func (rp *RulePlus) Between(after, before time.Time, inclusive bool) []time.Time {
	if !rp.IsPlusMode() {
		return rp.base.Between(after, before, inclusive)
	}

	var results []time.Time
	for _, t := range rp.base.Between(after, before, inclusive) {
		adjusted := rp.applyShift(t)
		if rp.isValid(adjusted) && adjusted.After(after) && adjusted.Before(before) {
			results = append(results, adjusted)
		}
	}
	return results
}

// SetLogger attaches a logger RulePlus uses to report degraded scans
// (e.g. a policy that excludes every candidate in the attempt bound).
func (rp *RulePlus) SetLogger(l zerolog.Logger) { rp.log = l }
