package rrule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var freqNames = [...]string{"YEARLY", "MONTHLY", "WEEKLY", "DAILY", "HOURLY", "MINUTELY", "SECONDLY"}
var weekdayCodes = [...]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

func weekdayCodeOf(w int) string { return weekdayCodes[w] }

func parseFreq(val string) (Frequency, error) {
	for i, name := range freqNames {
		if name == val {
			return Frequency(i), nil
		}
	}
	return 0, fmt.Errorf("invalid FREQ value %q", val)
}

func parseWeekdayCode(code string) (int, error) {
	for i, c := range weekdayCodes {
		if c == code {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday code %q", code)
}

func parseInts(val string) ([]int, error) {
	parts := strings.Split(val, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid integer list %q", val)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q in %q", p, val)
		}
		out = append(out, n)
	}
	return out, nil
}

func intsToStr(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// parseByDay parses a comma-separated BYDAY value ("MO,+2FR,-1SU") into
// Weekday values, preserving the original order so String() can echo it
// back unchanged.
func parseByDay(val string) ([]Weekday, error) {
	tokens := strings.Split(val, ",")
	out := make([]Weekday, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			return nil, fmt.Errorf("invalid BYDAY value %q", val)
		}
		i := 0
		signed := false
		if tok[0] == '+' || tok[0] == '-' {
			signed = true
			i = 1
		}
		digitsStart := i
		for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
			i++
		}
		numStr := tok[digitsStart:i]
		if signed && numStr == "" {
			return nil, fmt.Errorf("invalid BYDAY value %q: sign without ordinal", tok)
		}
		code := tok[i:]
		if len(code) != 2 {
			return nil, fmt.Errorf("invalid BYDAY value %q: bad weekday code", tok)
		}
		wd, err := parseWeekdayCode(code)
		if err != nil {
			return nil, fmt.Errorf("invalid BYDAY value %q: %w", tok, err)
		}
		n := 0
		if numStr != "" {
			num, err := strconv.Atoi(numStr)
			if err != nil {
				return nil, fmt.Errorf("invalid BYDAY value %q: %w", tok, err)
			}
			if tok[0] == '-' {
				n = -num
			} else {
				n = num
			}
		}
		out = append(out, Weekday{weekday: wd, n: n})
	}
	return out, nil
}

func byDayToStr(days []Weekday) string {
	parts := make([]string, len(days))
	for i, w := range days {
		if w.n == 0 {
			parts[i] = weekdayCodeOf(w.weekday)
		} else if w.n > 0 {
			parts[i] = fmt.Sprintf("+%d%s", w.n, weekdayCodeOf(w.weekday))
		} else {
			parts[i] = fmt.Sprintf("%d%s", w.n, weekdayCodeOf(w.weekday))
		}
	}
	return strings.Join(parts, ",")
}

// parseDateTimeValue parses a single RRULE date-time token: either a bare
// date ("20180520"), a bare local date-time ("19970714T133000"), or a
// UTC date-time ("19970714T173000Z").
func parseDateTimeValue(val string, loc *time.Location) (time.Time, error) {
	switch {
	case strings.HasSuffix(val, "Z"):
		return time.Parse("20060102T150405Z", val)
	case strings.Contains(val, "T"):
		return time.ParseInLocation("20060102T150405", val, loc)
	default:
		return time.ParseInLocation("20060102", val, loc)
	}
}

// strToDtStart parses a DTSTART value (with the leading "DTSTART" name and
// separator already stripped): a bare local date-time, a UTC date-time, or
// a "TZID=<zone>:<date-time>" form.
func strToDtStart(val string, defaultLoc *time.Location) (time.Time, error) {
	if strings.Contains(val, ";") {
		return time.Time{}, fmt.Errorf("invalid DTSTART value %q", val)
	}
	if strings.HasPrefix(val, "TZID=") {
		colon := strings.IndexByte(val, ':')
		if colon < 0 {
			return time.Time{}, fmt.Errorf("invalid DTSTART value %q: missing ':'", val)
		}
		zone := val[len("TZID="):colon]
		if zone == "" {
			return time.Time{}, fmt.Errorf("invalid DTSTART value %q: empty TZID", val)
		}
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid DTSTART value %q: %w", val, err)
		}
		return time.ParseInLocation("20060102T150405", val[colon+1:], loc)
	}
	return parseDateTimeValue(val, defaultLoc)
}

// StrToDates parses an RDATE/EXDATE value (without the component name) in
// UTC as the default time zone.
func StrToDates(val string) ([]time.Time, error) {
	return StrToDatesInLoc(val, time.UTC)
}

// StrToDatesInLoc parses an RDATE/EXDATE value using defaultLoc for any
// date-time that doesn't name its own TZID.
func StrToDatesInLoc(val string, defaultLoc *time.Location) ([]time.Time, error) {
	s := strings.TrimSpace(val)
	if s == "" {
		return nil, errors.New("empty date value")
	}

	valueType := "DATE-TIME"
	loc := defaultLoc
	rest := s

	if strings.HasPrefix(s, "VALUE=") {
		colon := strings.IndexByte(s, ':')
		if colon < 0 {
			return nil, fmt.Errorf("invalid date value %q: missing ':'", s)
		}
		params := s[len("VALUE="):colon]
		rest = s[colon+1:]
		parts := strings.Split(params, ";")
		valueType = parts[0]
		for _, p := range parts[1:] {
			if !strings.HasPrefix(p, "TZID=") {
				continue
			}
			zone := p[len("TZID="):]
			if zone == "" {
				return nil, fmt.Errorf("invalid date value %q: empty TZID", s)
			}
			l, err := time.LoadLocation(zone)
			if err != nil {
				return nil, fmt.Errorf("invalid date value %q: %w", s, err)
			}
			loc = l
		}
	} else if strings.ContainsAny(s, ";:") {
		return nil, fmt.Errorf("invalid date value %q", s)
	}

	switch valueType {
	case "DATE-TIME", "DATE":
	default:
		return nil, fmt.Errorf("unsupported VALUE type %q", valueType)
	}

	tokens := strings.Split(rest, ",")
	out := make([]time.Time, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			return nil, fmt.Errorf("invalid date value %q: empty token", s)
		}
		t, err := parseDateTimeValue(tok, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid date value %q: %w", s, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// splitComponentLine strips a recognized iCalendar component name
// ("DTSTART", "RRULE", "EXRULE", "RDATE", "EXDATE") and its separator
// from the front of a line, returning the component name and the
// remainder.
func splitComponentLine(s string) (name, rest string, err error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", "", errors.New("empty component")
	}
	sep := strings.IndexAny(trimmed, ";:")
	if sep <= 0 {
		return "", "", fmt.Errorf("invalid component %q: missing name", trimmed)
	}
	name = trimmed[:sep]
	switch name {
	case "DTSTART", "RRULE", "EXRULE", "RDATE", "EXDATE":
	default:
		return "", "", fmt.Errorf("invalid component %q: unknown name %q", trimmed, name)
	}
	return name, trimmed[sep+1:], nil
}

// processRRuleName validates and strips a component name from a single
// line, per the same grammar splitComponentLine uses.
func processRRuleName(s string) (string, error) {
	_, rest, err := splitComponentLine(s)
	if err != nil {
		return "", err
	}
	return rest, nil
}

// StrToRRule converts a string in the RRULE format to an RRule object.
// If the string contains an embedded DTSTART value, the resulting rule's
// OrigOptions.RFC is false (matching the format String() uses outside of
// an RFC component line); otherwise it is true.
func StrToRRule(rfcString string) (*RRule, error) {
	s := strings.TrimSpace(rfcString)
	if s == "" {
		return nil, fmt.Errorf("%w: empty RRULE string", ErrInvalidRRuleString)
	}

	opt := ROption{RFC: true}
	sawFreq := false

	for _, part := range strings.Split(s, ";") {
		if part == "" {
			return nil, fmt.Errorf("invalid RRULE component in %q: empty segment", s)
		}
		eq := strings.IndexByte(part, '=')
		if eq < 0 {
			return nil, fmt.Errorf("invalid RRULE component %q: missing '='", part)
		}
		key, val := part[:eq], part[eq+1:]
		if val == "" {
			return nil, fmt.Errorf("invalid RRULE component %q: empty value", part)
		}
		var err error
		switch key {
		case "FREQ":
			opt.Freq, err = parseFreq(val)
			sawFreq = true
		case "DTSTART":
			opt.Dtstart, err = strToDtStart(val, time.UTC)
			opt.RFC = false
		case "INTERVAL":
			opt.Interval, err = strconv.Atoi(val)
		case "WKST":
			var wd int
			wd, err = parseWeekdayCode(val)
			opt.Wkst = Weekday{weekday: wd}
		case "COUNT":
			opt.Count, err = strconv.Atoi(val)
		case "UNTIL":
			opt.Until, err = parseDateTimeValue(val, time.UTC)
		case "BYSETPOS":
			opt.Bysetpos, err = parseInts(val)
		case "BYMONTH":
			opt.Bymonth, err = parseInts(val)
		case "BYMONTHDAY":
			opt.Bymonthday, err = parseInts(val)
		case "BYYEARDAY":
			opt.Byyearday, err = parseInts(val)
		case "BYWEEKNO":
			opt.Byweekno, err = parseInts(val)
		case "BYDAY":
			opt.Byweekday, err = parseByDay(val)
		case "BYHOUR":
			opt.Byhour, err = parseInts(val)
		case "BYMINUTE":
			opt.Byminute, err = parseInts(val)
		case "BYSECOND":
			opt.Bysecond, err = parseInts(val)
		case "BYEASTER":
			opt.Byeaster, err = parseInts(val)
		default:
			err = fmt.Errorf("unknown RRULE component %q", key)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRRuleString, err)
		}
	}

	if !sawFreq {
		return nil, fmt.Errorf("%w: RRULE string missing FREQ", ErrInvalidRRuleString)
	}

	return NewRRule(opt)
}

// String returns the RFC 5545 text representation of the rule. When
// OrigOptions.RFC is true, DTSTART is omitted (it belongs on its own
// component line, e.g. inside a Set); otherwise it is embedded as a UTC
// date-time so the string alone round-trips through StrToRRule.
func (r *RRule) String() string {
	return r.ruleString(!r.OrigOptions.RFC)
}

// rfcString renders the rule without an embedded DTSTART regardless of
// OrigOptions.RFC — the form a Set uses for its own RRULE/EXRULE lines,
// since the set's DTSTART line already carries that information.
func (r *RRule) rfcString() string {
	return r.ruleString(false)
}

func (r *RRule) ruleString(withDTStart bool) string {
	opt := r.OrigOptions
	var b strings.Builder
	b.WriteString("FREQ=")
	b.WriteString(freqNames[opt.Freq])

	if withDTStart {
		dtstart := opt.Dtstart
		if dtstart.IsZero() {
			dtstart = r.DateStart
		}
		b.WriteString(";DTSTART=")
		b.WriteString(timeToStr(dtstart))
	}
	if opt.Interval > 1 {
		fmt.Fprintf(&b, ";INTERVAL=%d", opt.Interval)
	}
	if opt.Wkst.weekday != 0 {
		b.WriteString(";WKST=")
		b.WriteString(weekdayCodeOf(opt.Wkst.weekday))
	}
	if opt.Count > 0 {
		fmt.Fprintf(&b, ";COUNT=%d", opt.Count)
	}
	if !opt.Until.IsZero() {
		b.WriteString(";UNTIL=")
		b.WriteString(timeToStr(opt.Until))
	}
	if len(opt.Bysetpos) > 0 {
		b.WriteString(";BYSETPOS=")
		b.WriteString(intsToStr(opt.Bysetpos))
	}
	if len(opt.Bymonth) > 0 {
		b.WriteString(";BYMONTH=")
		b.WriteString(intsToStr(opt.Bymonth))
	}
	if len(opt.Bymonthday) > 0 {
		b.WriteString(";BYMONTHDAY=")
		b.WriteString(intsToStr(opt.Bymonthday))
	}
	if len(opt.Byyearday) > 0 {
		b.WriteString(";BYYEARDAY=")
		b.WriteString(intsToStr(opt.Byyearday))
	}
	if len(opt.Byweekno) > 0 {
		b.WriteString(";BYWEEKNO=")
		b.WriteString(intsToStr(opt.Byweekno))
	}
	if len(opt.Byweekday) > 0 {
		b.WriteString(";BYDAY=")
		b.WriteString(byDayToStr(opt.Byweekday))
	}
	if len(opt.Byhour) > 0 {
		b.WriteString(";BYHOUR=")
		b.WriteString(intsToStr(opt.Byhour))
	}
	if len(opt.Byminute) > 0 {
		b.WriteString(";BYMINUTE=")
		b.WriteString(intsToStr(opt.Byminute))
	}
	if len(opt.Bysecond) > 0 {
		b.WriteString(";BYSECOND=")
		b.WriteString(intsToStr(opt.Bysecond))
	}
	if len(opt.Byeaster) > 0 {
		b.WriteString(";BYEASTER=")
		b.WriteString(intsToStr(opt.Byeaster))
	}
	return b.String()
}
