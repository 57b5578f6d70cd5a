package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newCheckCmd creates the check command, which reports configuration
// stats and the feasibility verdict without drawing.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <config.toml>",
		Short: "Check whether a configuration can possibly produce a draw",
		Long: `Check loads a configuration and runs the feasibility pre-check.

The check is a fast necessary condition, not a guarantee: a feasible
configuration can still fail to produce a sequence when constraints are
dense. An infeasible configuration can never produce one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(c.Context(), args[0])
		},
	}
}

func runCheck(ctx context.Context, path string) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(path, logger)
	if err != nil {
		return err
	}

	engine := newEngine(cfg, logger)
	recipients := engine.Recipients()
	forbidden := engine.Forbidden()

	constraints := 0
	for _, banned := range forbidden {
		constraints += len(banned)
	}

	printKeyValue("Participants", fmt.Sprintf("%d", len(recipients)))
	printKeyValue("Constraints", fmt.Sprintf("%d", constraints))
	if len(recipients) > 0 {
		most := recipients[0] // working order is most-constrained first
		printKeyValue("Tightest", fmt.Sprintf("%s (may not give to: %s)", most, orNone(forbidden[most])))
	}

	if !engine.Feasible() {
		printError("Infeasible: no valid sequence can exist")
		return fmt.Errorf("configuration is infeasible")
	}
	printSuccess("Feasible: a valid sequence may exist")
	return nil
}

func orNone(names []string) string {
	if len(names) == 0 {
		return "nobody"
	}
	return strings.Join(names, ", ")
}
