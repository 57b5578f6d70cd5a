// Package render visualizes the participant constraint graph and drawn
// gift-giving cycles as Graphviz DOT and SVG.
package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// Options configures constraint-graph rendering.
type Options struct {
	// Cycle is a drawn sequence (first and last element identical). When
	// non-empty, its gifting edges are drawn solid green alongside the
	// forbidden edges.
	Cycle []string
}

// ToDOT converts participants and their forbidden pairings to Graphviz
// DOT format. Forbidden pairs appear as red dashed arrows; the gifting
// edges of opts.Cycle, when present, as bold green arrows. The result
// can be rasterized with [RenderSVG].
//
// Output is deterministic: nodes and edges are emitted in sorted order.
func ToDOT(participants []string, forbidden map[string][]string, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph santa {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, name := range slices.Sorted(slices.Values(participants)) {
		fmt.Fprintf(&buf, "  %q;\n", name)
	}

	buf.WriteString("\n")
	for _, gifter := range slices.Sorted(maps.Keys(forbidden)) {
		for _, giftee := range slices.Sorted(slices.Values(forbidden[gifter])) {
			fmt.Fprintf(&buf, "  %q -> %q [color=red, style=dashed];\n", gifter, giftee)
		}
	}

	if len(opts.Cycle) > 1 {
		buf.WriteString("\n")
		for i := 0; i < len(opts.Cycle)-1; i++ {
			fmt.Fprintf(&buf, "  %q -> %q [color=green, penwidth=2];\n", opts.Cycle[i], opts.Cycle[i+1])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the outer svg tag so the viewBox starts at
// the origin, which keeps browsers from clipping the graph.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
