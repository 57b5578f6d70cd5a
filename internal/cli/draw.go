package cli

import (
	"context"
	"fmt"
	randv2 "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/santaomatic/santaomatic/pkg/config"
	"github.com/santaomatic/santaomatic/pkg/letter"
	"github.com/santaomatic/santaomatic/pkg/santa"
)

// drawOpts holds the command-line flags for the draw command.
// Non-zero values override the corresponding configuration fields.
type drawOpts struct {
	out         string // output directory override
	write       bool   // write letters instead of only printing
	overwrite   bool   // replace existing letters
	maxTries    int    // retry bound override
	seed        uint64 // deterministic draws when non-zero
	interactive bool   // review the draw in a TUI before writing
}

// newDrawCmd creates the draw command.
func newDrawCmd() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw <config.toml>",
		Short: "Draw a gift-giving sequence and optionally write letters",
		Long: `Draw a randomized gift-giving sequence from a TOML configuration.

By default the sequence is only printed. Pass --write to emit one letter
file per gifter into the configured output directory.

Examples:
  santaomatic draw santa.toml                 # print the sequence
  santaomatic draw santa.toml --write         # also write letters
  santaomatic draw santa.toml --seed 42       # reproducible draw
  santaomatic draw santa.toml -i --write      # review before writing`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDraw(c.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (overrides config)")
	cmd.Flags().BoolVar(&opts.write, "write", false, "write letter files")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "replace existing letter files")
	cmd.Flags().IntVar(&opts.maxTries, "max-tries", 0, "maximum draw attempts (overrides config)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible draws (overrides config)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "review the draw before accepting it")

	return cmd
}

func runDraw(ctx context.Context, path string, opts drawOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(path, logger)
	if err != nil {
		return err
	}
	if opts.out != "" {
		cfg.OutPath = opts.out
	}
	if opts.overwrite {
		cfg.Overwrite = true
	}
	if opts.maxTries > 0 {
		cfg.MaxTries = opts.maxTries
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}

	runID := uuid.NewString()
	logger.Debugf("draw %s: %d candidates, max tries %d", runID, len(cfg.Candidates), cfg.MaxTries)

	engine := newEngine(cfg, logger)

	prog := newProgress(logger)
	seq := engine.Generate()
	if len(seq) == 0 {
		if !engine.Feasible() {
			return fmt.Errorf("no sequence possible with the configured candidates, please reconfigure")
		}
		return fmt.Errorf("no valid sequence found; the constraints may make a cycle impossible")
	}
	prog.done(fmt.Sprintf("Drew sequence for %d participants", len(seq)-1))

	if opts.interactive {
		seq, err = reviewSequence(engine, seq)
		if err != nil {
			return err
		}
		if seq == nil {
			printInfo("draw discarded")
			return nil
		}
	}

	printSequence(seq)

	if !opts.write {
		printNextStep("Write letters", fmt.Sprintf("santaomatic draw %s --write", path))
		return nil
	}

	w := &letter.Writer{Dir: cfg.OutPath, Overwrite: cfg.Overwrite, ArtPath: cfg.ArtPath}
	written, err := w.WriteSequence(seq)
	if err != nil {
		return fmt.Errorf("write letters: %w", err)
	}
	printSuccess("Wrote %d letters to %s", len(written), cfg.OutPath)
	for _, p := range written {
		printFile(p)
	}
	return nil
}

// loadConfig loads the run configuration and warns about forbidden-list
// entries that reference unknown participants.
func loadConfig(path string, logger *log.Logger) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if unknown := cfg.UnknownNames(); len(unknown) > 0 {
		logger.Warnf("forbidden lists reference unknown participants: %s", strings.Join(unknown, ", "))
	}
	return cfg, nil
}

// newEngine builds the drawing engine from a configuration. Engine
// progress messages go to the debug log.
func newEngine(cfg *config.Config, logger *log.Logger) *santa.Santa {
	opts := santa.Options{
		MaxTries: cfg.MaxTries,
		Logf:     logger.Debugf,
	}
	if cfg.Seed != 0 {
		opts.Rand = randv2.New(randv2.NewPCG(cfg.Seed, cfg.Seed))
	}
	return santa.NewWithOptions(cfg.Candidates, opts)
}
