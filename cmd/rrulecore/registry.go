package main

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	rrule "github.com/arrowloop/rrulecore"
)

// namedRule is a rule string kept in the CLI's in-memory registry so a
// later invocation in the same process (or, for a scripted session, a
// REPL-style embedding of this package) can refer back to it by a short
// stable ID instead of re-typing the RRULE string.
type namedRule struct {
	ID    string
	Label string
	Raw   string
	Rule  *rrule.RRule
}

// ruleRegistry is a process-local, mutex-guarded store of named rules,
// keyed by a google/uuid identifier minted at registration time.
type ruleRegistry struct {
	mu    sync.RWMutex
	byID  map[string]*namedRule
	order []string
}

func newRuleRegistry() *ruleRegistry {
	return &ruleRegistry{byID: make(map[string]*namedRule)}
}

// Register parses raw as an RRULE string and stores it under a fresh
// UUID, returning the minted ID.
func (reg *ruleRegistry) Register(label, raw string) (string, error) {
	r, err := rrule.StrToRRule(raw)
	if err != nil {
		return "", fmt.Errorf("registry: %w", err)
	}

	id := uuid.NewString()
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.byID[id] = &namedRule{ID: id, Label: label, Raw: raw, Rule: r}
	reg.order = append(reg.order, id)
	return id, nil
}

// Get looks up a registered rule by its UUID.
func (reg *ruleRegistry) Get(id string) (*namedRule, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	nr, ok := reg.byID[id]
	return nr, ok
}

// List returns every registered rule in registration order.
func (reg *ruleRegistry) List() []*namedRule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]*namedRule, 0, len(reg.order))
	for _, id := range reg.order {
		out = append(out, reg.byID[id])
	}
	return out
}

// globalRegistry backs the `rrulecore registry` subcommand; a single
// process invocation of the CLI only ever registers the rules passed on
// that invocation's command line, so this is deliberately process-local
// rather than persisted.
var globalRegistry = newRuleRegistry()

var registryLabel string

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Register and list named rules for this invocation",
}

var registryAddCmd = &cobra.Command{
	Use:   "add <RRULE-string>",
	Short: "Parse and register a rule, printing the ID it was assigned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := globalRegistry.Register(registryLabel, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every rule registered so far in this invocation",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, nr := range globalRegistry.List() {
			label := nr.Label
			if label == "" {
				label = "(unlabeled)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", nr.ID, label, nr.Raw)
		}
		return nil
	},
}

func init() {
	registryAddCmd.Flags().StringVar(&registryLabel, "label", "", "a human-readable label for the rule")
	registryCmd.AddCommand(registryAddCmd)
	registryCmd.AddCommand(registryListCmd)
}
