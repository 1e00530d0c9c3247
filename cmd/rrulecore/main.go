// Command rrulecore is a small CLI over this module's recurrence-rule
// engine: expand a rule string into concrete occurrences, describe it in
// plain language, or export it as an iCalendar VEVENT.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	rrule "github.com/arrowloop/rrulecore"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rrulecore",
	Short: "Expand, describe, and export RFC 5545 recurrence rules",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.Disabled
		if verbose {
			level = zerolog.DebugLevel
		}
		rrule.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging to stderr")
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(registryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
