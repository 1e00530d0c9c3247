package rrule

import (
	"fmt"
	"time"

	"github.com/arrowloop/rrulecore/internal/engine"
)

// Frequency denotes the period on which the rule is evaluated.
type Frequency int

// Constants
const (
	YEARLY Frequency = iota
	MONTHLY
	WEEKLY
	DAILY
	HOURLY
	MINUTELY
	SECONDLY
)

// Weekday specifying the nth weekday.
// Field N could be positive or negative (like MO(+2) or MO(-3).
// Not specifying N (0) means every occurrence of the weekday in the
// period; NewRRule also ignores N for frequencies finer than MONTHLY.
type Weekday struct {
	weekday int
	n       int
}

// Nth return the nth weekday
func (wday Weekday) Nth(n int) Weekday {
	return Weekday{wday.weekday, n}
}

// N returns index of the week, e.g. for 3MO, N() will return 3
func (wday Weekday) N() int {
	return wday.n
}

// Day returns index of the day in a week (0 for MO, 6 for SU)
func (wday Weekday) Day() int {
	return wday.weekday
}

// Weekdays
var (
	MO = Weekday{weekday: 0}
	TU = Weekday{weekday: 1}
	WE = Weekday{weekday: 2}
	TH = Weekday{weekday: 3}
	FR = Weekday{weekday: 4}
	SA = Weekday{weekday: 5}
	SU = Weekday{weekday: 6}
)

// ROption offers options to construct a RRule instance
type ROption struct {
	Freq       Frequency
	Dtstart    time.Time
	Interval   int
	Wkst       Weekday
	Count      int
	Until      time.Time
	Bysetpos   []int
	Bymonth    []int
	Bymonthday []int
	Byyearday  []int
	Byweekno   []int
	Byweekday  []Weekday
	Byhour     []int
	Byminute   []int
	Bysecond   []int
	Byeaster   []int
	RFC        bool
}

// RRule offers a small, complete implementation of the recurrence rules
// documented in the iCalendar RFC. Iteration is delegated to the pipeline
// in internal/engine; this type is the public, time.Time-facing shell
// around it.
type RRule struct {
	OrigOptions             ROption
	Options                 ROption
	Freq                    Frequency
	DateStart               time.Time
	Interval                int
	Wkst                    int
	Count                   int
	UntilTime               time.Time
	Bysetpos                []int
	Bymonth                 []int
	Bymonthday, Bynmonthday []int
	Byyearday               []int
	Byweekno                []int
	Byweekday               []int
	Bynweekday              []Weekday
	Byhour                  []int
	Byminute                []int
	Bysecond                []int
	Byeaster                []int
	Timeset                 []time.Time
	Len                     int
}

// NewRRule construct a new RRule instance
func NewRRule(arg ROption) (*RRule, error) {
	if err := validateBounds(arg); err != nil {
		return nil, err
	}
	r := RRule{}
	r.OrigOptions = arg
	if arg.Dtstart.IsZero() {
		arg.Dtstart = time.Now().UTC()
	}
	arg.Dtstart = arg.Dtstart.Truncate(time.Second)
	r.DateStart = arg.Dtstart
	r.Freq = arg.Freq
	if arg.Interval == 0 {
		r.Interval = 1
	} else {
		r.Interval = arg.Interval
	}
	r.Count = arg.Count
	r.UntilTime = arg.Until
	r.Wkst = arg.Wkst.weekday
	r.Bysetpos = arg.Bysetpos
	if len(arg.Byweekno) == 0 &&
		len(arg.Byyearday) == 0 &&
		len(arg.Bymonthday) == 0 &&
		len(arg.Byweekday) == 0 &&
		len(arg.Byeaster) == 0 {
		if r.Freq == YEARLY {
			if len(arg.Bymonth) == 0 {
				arg.Bymonth = []int{int(r.DateStart.Month())}
			}
			arg.Bymonthday = []int{r.DateStart.Day()}
		} else if r.Freq == MONTHLY {
			arg.Bymonthday = []int{r.DateStart.Day()}
		} else if r.Freq == WEEKLY {
			arg.Byweekday = []Weekday{{weekday: toPyWeekday(r.DateStart.Weekday())}}
		}
	}
	r.Bymonth = arg.Bymonth
	r.Byyearday = arg.Byyearday
	r.Byeaster = arg.Byeaster
	for _, mday := range arg.Bymonthday {
		if mday > 0 {
			r.Bymonthday = append(r.Bymonthday, mday)
		} else if mday < 0 {
			r.Bynmonthday = append(r.Bynmonthday, mday)
		}
	}
	r.Byweekno = arg.Byweekno
	for _, wday := range arg.Byweekday {
		if wday.n == 0 || r.Freq > MONTHLY {
			r.Byweekday = append(r.Byweekday, wday.weekday)
		} else {
			r.Bynweekday = append(r.Bynweekday, wday)
		}
	}
	if len(arg.Byhour) == 0 {
		if r.Freq < HOURLY {
			r.Byhour = []int{r.DateStart.Hour()}
		}
	} else {
		r.Byhour = arg.Byhour
	}
	if len(arg.Byminute) == 0 {
		if r.Freq < MINUTELY {
			r.Byminute = []int{r.DateStart.Minute()}
		}
	} else {
		r.Byminute = arg.Byminute
	}
	if len(arg.Bysecond) == 0 {
		if r.Freq < SECONDLY {
			r.Bysecond = []int{r.DateStart.Second()}
		}
	} else {
		r.Bysecond = arg.Bysecond
	}

	r.Options = arg
	r.calculateTimeset()

	return &r, nil
}

// validateBounds checks the RRule's options are within the boundaries
// defined in RFC 5545. This is useful to ensure that the RRule can even
// have any times, as going outside these bounds trivially will never
// have any dates. This can catch obvious user error.
func validateBounds(arg ROption) error {
	bounds := []struct {
		field     []int
		param     string
		bound     []int
		plusMinus bool // If the bound also applies for -x to -y.
	}{
		{arg.Bysecond, "Bysecond", []int{0, 59}, false},
		{arg.Byminute, "Byminute", []int{0, 59}, false},
		{arg.Byhour, "Byhour", []int{0, 23}, false},
		{arg.Bymonthday, "Bymonthday", []int{1, 31}, true},
		{arg.Byyearday, "Byyearday", []int{1, 366}, true},
		{arg.Byweekno, "Byweekno", []int{1, 53}, true},
		{arg.Bymonth, "Bymonth", []int{1, 12}, false},
		{arg.Bysetpos, "Bysetpos", []int{1, 366}, true},
	}

	checkBounds := func(param string, value int, bounds []int, plusMinus bool) error {
		if !(value >= bounds[0] && value <= bounds[1]) && (!plusMinus || !(value <= -bounds[0] && value >= -bounds[1])) {
			plusMinusBounds := ""
			if plusMinus {
				plusMinusBounds = fmt.Sprintf(" or %d and %d", -bounds[0], -bounds[1])
			}
			return fmt.Errorf("%w: %s must be between %d and %d%s", ErrInvalidOption, param, bounds[0], bounds[1], plusMinusBounds)
		}
		return nil
	}

	for _, b := range bounds {
		for _, value := range b.field {
			if err := checkBounds(b.param, value, b.bound, b.plusMinus); err != nil {
				return err
			}
		}
	}

	// Days can optionally specify weeks, like BYDAY=+2MO for the 2nd
	// Monday of the month/year.
	for _, w := range arg.Byweekday {
		if w.n > 53 || w.n < -53 {
			return fmt.Errorf("%w: byday must be between 1 and 53 or -1 and -53", ErrInvalidOption)
		}
	}

	if arg.Interval < 0 {
		return fmt.Errorf("%w: Interval must be greater than 0", ErrInvalidOption)
	}

	return nil
}

// toEngineRule translates the wrapper's expanded field set into the
// pipeline's ParsedRule descriptor (§3/§6 of the engine contract).
func (r *RRule) toEngineRule() *engine.ParsedRule {
	byday := make([]engine.WeekdayNum, 0, len(r.Byweekday)+len(r.Bynweekday))
	for _, w := range r.Byweekday {
		byday = append(byday, engine.WeekdayNum{Weekday: w})
	}
	for _, wn := range r.Bynweekday {
		byday = append(byday, engine.WeekdayNum{Pos: wn.n, Weekday: wn.weekday})
	}
	bymonthday := make([]int, 0, len(r.Bymonthday)+len(r.Bynmonthday))
	bymonthday = append(bymonthday, r.Bymonthday...)
	bymonthday = append(bymonthday, r.Bynmonthday...)

	return &engine.ParsedRule{
		Freq:        engine.Frequency(r.Freq),
		Interval:    r.Interval,
		WeekStart:   r.Wkst,
		Bymonth:     r.Bymonth,
		Byweekno:    r.Byweekno,
		Byyearday:   r.Byyearday,
		Bymonthday:  bymonthday,
		Byday:       byday,
		Byhour:      r.Byhour,
		Byminute:    r.Byminute,
		Bysecond:    r.Bysecond,
		Bysetpos:    r.Bysetpos,
		Byeaster:    r.Byeaster,
		StartYear:   r.DateStart.Year(),
		StartMonth:  int(r.DateStart.Month()),
		StartDay:    r.DateStart.Day(),
		StartHour:   r.DateStart.Hour(),
		StartMinute: r.DateStart.Minute(),
		StartSecond: r.DateStart.Second(),
	}
}

func instanceToTime(inst engine.Instance, loc *time.Location) time.Time {
	return time.Date(inst.Year(), time.Month(inst.Month()), inst.Day(),
		inst.Hour(), inst.Minute(), inst.Second(), 0, loc)
}

// Iterator return an iterator for RRule
func (r *RRule) Iterator() Next {
	pipeline := engine.NewPipeline(r.toEngineRule())
	loc := r.DateStart.Location()
	counted := 0
	done := false
	return func() (time.Time, bool) {
		if done {
			return time.Time{}, false
		}
		for {
			inst, err := pipeline.Next()
			if err != nil {
				done = true
				return time.Time{}, false
			}
			t := instanceToTime(inst, loc)
			// The first period's EXPAND stages backfill candidates
			// earlier than DTSTART within that period; they are not
			// occurrences and must not consume COUNT slots.
			if t.Before(r.DateStart) {
				continue
			}
			if !r.UntilTime.IsZero() && t.After(r.UntilTime) {
				done = true
				return time.Time{}, false
			}
			if r.Count > 0 && counted >= r.Count {
				done = true
				return time.Time{}, false
			}
			counted++
			return t, true
		}
	}
}

// All returns all occurrences of the RRule.
func (r *RRule) All() []time.Time {
	return all(r.Iterator())
}

// AllWithLimit returns up to n occurrences of the rule, stopping early on
// COUNT/UNTIL exhaustion the same way Iterator does. Unlike All, it
// surfaces the engine's own over-constrained failure (a rule like "the
// 31st of every February") as an error satisfying
// errors.Is(err, ErrOverConstrained) instead of silently truncating —
// useful for a CLI or batch job that wants to report a malformed rule
// rather than emit a quietly short result.
func (r *RRule) AllWithLimit(n int) ([]time.Time, error) {
	pipeline := engine.NewPipeline(r.toEngineRule())
	loc := r.DateStart.Location()
	out := make([]time.Time, 0, n)
	for len(out) < n {
		inst, err := pipeline.Next()
		if err != nil {
			if isOverConstrained(err) {
				return out, newRuleError("AllWithLimit", fmt.Errorf("%w: %v", ErrOverConstrained, err))
			}
			return out, newRuleError("AllWithLimit", err)
		}
		t := instanceToTime(inst, loc)
		if t.Before(r.DateStart) {
			continue
		}
		if !r.UntilTime.IsZero() && t.After(r.UntilTime) {
			break
		}
		if r.Count > 0 && len(out) >= r.Count {
			break
		}
		out = append(out, t)
	}
	return out, nil
}

// Between returns all the occurrences of the RRule between after and
// before. The inc keyword defines what happens if after and/or before
// are themselves occurrences. With inc == True, they will be included in
// the list, if they are found in the recurrence set.
func (r *RRule) Between(afterT, beforeT time.Time, inc bool) []time.Time {
	return between(r.Iterator(), afterT, beforeT, inc)
}

// Before returns the last recurrence before the given datetime instance,
// or time.Time's zero value if no recurrence match. The inc keyword
// defines what happens if dt is an occurrence. With inc == True, if dt
// itself is an occurrence, it will be returned.
func (r *RRule) Before(dt time.Time, inc bool) time.Time {
	return before(r.Iterator(), dt, inc)
}

// After returns the first recurrence after the given datetime instance,
// or time.Time's zero value if no recurrence match. The inc keyword
// defines what happens if dt is an occurrence. With inc == True, if dt
// itself is an occurrence, it will be returned.
func (r *RRule) After(dt time.Time, inc bool) time.Time {
	return after(r.Iterator(), dt, inc)
}

// DTStart set a new DTStart for the rule and recalculates the Timeset if
// needed.
func (r *RRule) DTStart(dt time.Time) {
	r.DateStart = dt.Truncate(time.Second)
	r.Options.Dtstart = r.DateStart

	if len(r.Options.Byhour) == 0 && r.Freq < HOURLY {
		r.Byhour = []int{r.DateStart.Hour()}
	}
	if len(r.Options.Byminute) == 0 && r.Freq < MINUTELY {
		r.Byminute = []int{r.DateStart.Minute()}
	}
	if len(r.Options.Bysecond) == 0 && r.Freq < SECONDLY {
		r.Bysecond = []int{r.DateStart.Second()}
	}
	r.calculateTimeset()
}

// Until sets a new UNTIL bound for the rule.
func (r *RRule) Until(ut time.Time) {
	r.UntilTime = ut
	r.Options.Until = ut
}

// calculateTimeset recomputes the exported Timeset field: the sorted
// BYHOUR x BYMINUTE x BYSECOND combinations for frequencies coarser than
// HOURLY. Neither iteration nor String() reads it.
func (r *RRule) calculateTimeset() {
	r.Timeset = []time.Time{}

	if r.Freq < HOURLY {
		for _, hour := range r.Byhour {
			for _, minute := range r.Byminute {
				for _, second := range r.Bysecond {
					r.Timeset = append(r.Timeset, time.Date(1, 1, 1, hour, minute, second, 0, r.DateStart.Location()))
				}
			}
		}
		sortTimes(r.Timeset)
	}
}
