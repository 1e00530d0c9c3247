package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	rrule "github.com/arrowloop/rrulecore"
)

var (
	expandCount   int
	expandDtstart string
)

var expandCmd = &cobra.Command{
	Use:   "expand <RRULE-string>",
	Short: "Print the next N occurrences of a rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rrule.StrToRRule(args[0])
		if err != nil {
			return err
		}
		if expandDtstart != "" {
			dt, err := time.Parse(time.RFC3339, expandDtstart)
			if err != nil {
				return fmt.Errorf("--dtstart: %w", err)
			}
			r.DTStart(dt)
		}

		n := expandCount
		if n <= 0 {
			n = 10
		}
		occurrences, err := r.AllWithLimit(n)
		if err != nil {
			return err
		}

		for _, t := range occurrences {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%s)\n", t.Format(time.RFC3339), humanize.Time(t))
		}
		return nil
	},
}

func init() {
	expandCmd.Flags().IntVarP(&expandCount, "count", "n", 10, "number of occurrences to print")
	expandCmd.Flags().StringVar(&expandDtstart, "dtstart", "", "override DTSTART (RFC3339), e.g. 2024-01-31T09:00:00Z")
}
