package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	rrule "github.com/arrowloop/rrulecore"
	"github.com/arrowloop/rrulecore/icalexport"
)

var (
	exportUID     string
	exportSummary string
	exportCount   int
)

var exportCmd = &cobra.Command{
	Use:   "export <RRULE-string>",
	Short: "Render a rule as an iCalendar VEVENT block",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rrule.StrToRRule(args[0])
		if err != nil {
			return err
		}

		uid := exportUID
		if uid == "" {
			uid = uuid.NewString()
		}

		var text string
		if exportCount > 0 {
			text, err = icalexport.RenderInstances(uid, exportSummary, r, exportCount)
		} else {
			text, err = icalexport.Render(icalexport.VEvent{
				UID:     uid,
				Summary: exportSummary,
				DTStart: r.DateStart,
				Rule:    r,
			})
		}
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportUID, "uid", "", "VEVENT UID (default: a freshly generated UUID)")
	exportCmd.Flags().StringVar(&exportSummary, "summary", "", "VEVENT SUMMARY text")
	exportCmd.Flags().IntVar(&exportCount, "instances", 0, "expand to N materialized RDATEs instead of an RRULE line")
}
