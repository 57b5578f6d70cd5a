// Package cli implements the santaomatic command-line interface.
//
// This package provides commands for drawing secret santa gift-giving
// sequences from a TOML configuration, checking whether a configuration
// can possibly produce a valid draw, and visualizing the constraint
// graph. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - draw: Draw a gift-giving sequence and optionally write letters
//   - check: Report configuration stats and the feasibility verdict
//   - visualize: Render the constraint graph as DOT or SVG
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context so every command sees the same
// configured instance.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/santaomatic/santaomatic/pkg/buildinfo"
)

// Execute runs the santaomatic CLI and returns an error if any command
// fails. The context is used for cancellation (Ctrl-C via main).
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:           "santaomatic",
		Short:         "Santaomatic draws secret santa gift-giving sequences",
		Long:          `Santaomatic generates a randomized gift-giving cycle over a set of participants, honoring per-participant forbidden-recipient constraints, and writes one letter per gifter telling them who they drew.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDrawCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVisualizeCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
