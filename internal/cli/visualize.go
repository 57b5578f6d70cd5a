package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/santaomatic/santaomatic/pkg/render"
)

// visualizeOpts holds the command-line flags for the visualize command.
type visualizeOpts struct {
	output   string // output file, stdout if empty (DOT only)
	format   string // dot or svg
	withDraw bool   // overlay a drawn cycle on the constraint graph
}

// newVisualizeCmd creates the visualize command.
func newVisualizeCmd() *cobra.Command {
	var opts visualizeOpts

	cmd := &cobra.Command{
		Use:   "visualize <config.toml>",
		Short: "Render the constraint graph as Graphviz DOT or SVG",
		Long: `Visualize renders the participants and their forbidden pairings as a
Graphviz graph. Forbidden pairs appear as red dashed arrows. With
--with-draw a sequence is drawn first and overlaid as green arrows.

Examples:
  santaomatic visualize santa.toml                      # DOT to stdout
  santaomatic visualize santa.toml -f svg -o santa.svg  # SVG file
  santaomatic visualize santa.toml --with-draw          # include a draw`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runVisualize(c.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().BoolVar(&opts.withDraw, "with-draw", false, "overlay a drawn sequence")

	return cmd
}

func runVisualize(ctx context.Context, path string, opts visualizeOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(path, logger)
	if err != nil {
		return err
	}
	engine := newEngine(cfg, logger)

	var renderOpts render.Options
	if opts.withDraw {
		renderOpts.Cycle = engine.Generate()
		if len(renderOpts.Cycle) == 0 {
			logger.Warn("no valid sequence found, rendering constraints only")
		}
	}

	dot := render.ToDOT(engine.Recipients(), engine.Forbidden(), renderOpts)

	var out []byte
	switch strings.ToLower(opts.format) {
	case "dot":
		out = []byte(dot)
	case "svg":
		out, err = render.RenderSVG(dot)
		if err != nil {
			return err
		}
		if opts.output == "" {
			opts.output = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".svg"
		}
	default:
		return fmt.Errorf("unknown format %q (available: dot, svg)", opts.format)
	}

	if opts.output == "" {
		fmt.Print(dot)
		return nil
	}
	if err := os.WriteFile(opts.output, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Wrote %s graph", opts.format)
	printFile(opts.output)
	return nil
}
