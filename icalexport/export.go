// Package icalexport renders an RRule (and the recurrence sets built on
// top of it) into the RFC 5545 text a VEVENT carries: an RRULE value line
// plus, optionally, RDATE/EXDATE lines for a caller that has already
// expanded a rule into concrete instances it wants echoed verbatim.
//
// Encoding of the RRULE value itself is delegated to
// github.com/dolanor/caldav-go's icalendar/values.RecurrenceRule, the same
// encoder amandahla/calendar-client vendors for its own CalDAV client —
// this package only translates this module's RRule into that value type
// and assembles the surrounding VEVENT text.
package icalexport

import (
	"fmt"
	"strings"
	"time"

	"github.com/dolanor/caldav-go/icalendar/values"

	rrule "github.com/arrowloop/rrulecore"
)

var freqToCaldav = [...]values.RecurrenceFrequency{
	values.YearRecurrenceFrequency,
	values.MonthRecurrenceFrequency,
	values.WeekRecurrenceFrequency,
	values.DayRecurrenceFrequency,
	values.HourRecurrenceFrequency,
	values.MinuteRecurrenceFrequency,
	values.SecondRecurrenceFrequency,
}

var weekdayToCaldav = [...]values.RecurrenceWeekday{
	values.MondayRecurrenceWeekday,
	values.TuesdayRecurrenceWeekday,
	values.WednesdayRecurrenceWeekday,
	values.ThursdayRecurrenceWeekday,
	values.FridayRecurrenceWeekday,
	values.SaturdayRecurrenceWeekday,
	values.SundayRecurrenceWeekday,
}

// ToRecurrenceRule translates an *rrule.RRule into caldav-go's
// values.RecurrenceRule, the value type its encoder walks to produce an
// RRULE property string.
func ToRecurrenceRule(r *rrule.RRule) (*values.RecurrenceRule, error) {
	if r == nil {
		return nil, fmt.Errorf("icalexport: nil rule")
	}
	freq := r.OrigOptions.Freq
	if int(freq) < 0 || int(freq) >= len(freqToCaldav) {
		return nil, fmt.Errorf("icalexport: unsupported frequency %d", freq)
	}

	out := values.NewRecurrenceRule(freqToCaldav[freq])
	out.Interval = r.Interval
	out.Count = r.Count
	if !r.UntilTime.IsZero() {
		until := new(values.DateTime)
		if err := until.DecodeICalValue(formatDateTime(r.UntilTime)); err != nil {
			return nil, fmt.Errorf("icalexport: encoding UNTIL: %w", err)
		}
		out.Until = until
	}
	out.BySecond = r.Bysecond
	out.ByMinute = r.Byminute
	out.ByHour = r.Byhour
	out.ByMonthDay = append(append([]int{}, r.Bymonthday...), r.Bynmonthday...)
	out.ByYearDay = r.Byyearday
	out.ByWeekNumber = r.Byweekno
	out.ByMonth = r.Bymonth
	out.BySetPosition = r.Bysetpos

	for _, w := range r.Byweekday {
		out.ByDay = append(out.ByDay, weekdayToCaldav[w])
	}
	for _, wn := range r.Bynweekday {
		out.ByDay = append(out.ByDay, values.RecurrenceWeekday(fmt.Sprintf("%d%s", wn.N(), weekdayToCaldav[wn.Day()])))
	}
	if r.Wkst != 0 {
		out.WeekStart = weekdayToCaldav[r.Wkst]
	}

	if err := out.ValidateICalValue(); err != nil {
		return nil, fmt.Errorf("icalexport: %w", err)
	}
	return out, nil
}

// EncodeRRule renders just the RRULE value ("FREQ=WEEKLY;BYDAY=MO,WE,FR",
// with no leading "RRULE:" property name) for embedding in a larger
// VEVENT document a caller already assembles.
func EncodeRRule(r *rrule.RRule) (string, error) {
	caldavRule, err := ToRecurrenceRule(r)
	if err != nil {
		return "", err
	}
	return caldavRule.EncodeICalValue()
}

// VEvent describes the fields this package knows how to render into a
// minimal standalone VEVENT block: a summary, a DTSTART, and a recurrence
// rule plus any extra RDATE/EXDATE instances the caller wants listed
// explicitly (e.g. exceptions carried alongside an rrule.Set).
type VEvent struct {
	UID     string
	Summary string
	DTStart time.Time
	Rule    *rrule.RRule
	RDates  []time.Time
	EXDates []time.Time
}

// Render produces the VEVENT text block for e: BEGIN/END:VEVENT,
// UID, DTSTART, RRULE, and any RDATE/EXDATE lines, in that order.
func Render(e VEvent) (string, error) {
	var b strings.Builder
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:%s\r\n", e.UID)
	if e.Summary != "" {
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeText(e.Summary))
	}
	fmt.Fprintf(&b, "DTSTART:%s\r\n", formatDateTime(e.DTStart))

	if e.Rule != nil {
		encoded, err := EncodeRRule(e.Rule)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "RRULE:%s\r\n", encoded)
	}
	if len(e.RDates) > 0 {
		fmt.Fprintf(&b, "RDATE:%s\r\n", joinDateTimes(e.RDates))
	}
	if len(e.EXDates) > 0 {
		fmt.Fprintf(&b, "EXDATE:%s\r\n", joinDateTimes(e.EXDates))
	}
	b.WriteString("END:VEVENT\r\n")
	return b.String(), nil
}

// RenderInstances expands r to n occurrences via AllWithLimit and renders
// them as RDATE values instead of an RRULE line, for callers that want a
// fully materialized, rule-free VEVENT (e.g. handing off to a calendar
// client that does not itself understand RRULE).
func RenderInstances(uid, summary string, r *rrule.RRule, n int) (string, error) {
	instances, err := r.AllWithLimit(n)
	if err != nil {
		return "", fmt.Errorf("icalexport: %w", err)
	}
	return Render(VEvent{
		UID:     uid,
		Summary: summary,
		DTStart: r.DateStart,
		RDates:  instances,
	})
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func joinDateTimes(ts []time.Time) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = formatDateTime(t)
	}
	return strings.Join(parts, ",")
}

func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`;`, `\;`,
		`,`, `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
