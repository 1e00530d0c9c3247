package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	rrule "github.com/arrowloop/rrulecore"
)

var describeCmd = &cobra.Command{
	Use:   "describe <RRULE-string>",
	Short: "Print a human-readable summary of a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rrule.StrToRRule(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), describe(r))
		return nil
	},
}

// describe renders a short plain-language summary of a rule's shape:
// frequency, interval, bound (COUNT/UNTIL), and configured BY-parts.
// It does not attempt full RFC 5545 prose generation, only an at-a-glance
// summary for a human skimming CLI output.
func describe(r *rrule.RRule) string {
	var b strings.Builder

	freqWord := []string{"year", "month", "week", "day", "hour", "minute", "second"}[r.Freq]
	if r.Interval > 1 {
		fmt.Fprintf(&b, "Every %s %s", humanize.Ordinal(r.Interval), freqWord)
	} else {
		fmt.Fprintf(&b, "Every %s", freqWord)
	}

	var parts []string
	if len(r.Bymonth) > 0 {
		parts = append(parts, fmt.Sprintf("in month(s) %v", r.Bymonth))
	}
	if len(r.Byweekno) > 0 {
		parts = append(parts, fmt.Sprintf("in week(s) %v", r.Byweekno))
	}
	if len(r.Byyearday) > 0 {
		parts = append(parts, fmt.Sprintf("on year-day(s) %v", r.Byyearday))
	}
	if len(r.Bymonthday) > 0 || len(r.Bynmonthday) > 0 {
		parts = append(parts, fmt.Sprintf("on day(s) %v", append(append([]int{}, r.Bymonthday...), r.Bynmonthday...)))
	}
	if len(r.Byweekday) > 0 || len(r.Bynweekday) > 0 {
		parts = append(parts, "on specific weekdays")
	}
	if len(r.Bysetpos) > 0 {
		parts = append(parts, fmt.Sprintf("keeping position(s) %v", r.Bysetpos))
	}
	if len(parts) > 0 {
		b.WriteString(", " + strings.Join(parts, ", "))
	}

	if r.Count > 0 {
		fmt.Fprintf(&b, ", for %s", humanize.Comma(int64(r.Count)))
		if r.Count == 1 {
			b.WriteString(" occurrence")
		} else {
			b.WriteString(" occurrences")
		}
	} else if !r.UntilTime.IsZero() {
		fmt.Fprintf(&b, ", until %s", r.UntilTime.Format("2006-01-02"))
	}

	fmt.Fprintf(&b, ", starting %s", humanize.Time(r.DateStart))
	return b.String()
}
