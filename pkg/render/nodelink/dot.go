package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/quote"
	"github.com/matzehuels/influencegraph/pkg/scene"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the category caption and, for enterprises, the quote
	// line to node labels. When false, only the label is shown.
	Detailed bool

	// Selected highlights one node with the accent border.
	Selected string

	// Palette overrides the node colours. The zero value uses
	// scene.DefaultPalette.
	Palette *scene.Palette
}

// ToDOT converts graph data to Graphviz DOT format. Lanes become ranks laid
// out left to right, so the diagram reads in the same order as the lane
// view. Nodes of unknown category and edges with a missing endpoint are
// left out.
func ToDOT(data graph.Data, opts Options) string {
	pal := scene.DefaultPalette()
	if opts.Palette != nil {
		pal = *opts.Palette
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	fmt.Fprintf(&buf, "  edge [color=%q, style=dashed, arrowsize=0.7];\n", pal.Edge)
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.3;\n")

	present := make(map[string]bool, len(data.Nodes))
	for _, cat := range graph.Categories {
		nodes := data.NodesIn(cat)
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph lane_%s {\n    rank=same;\n", cat)
		for _, n := range nodes {
			if present[n.ID] {
				continue
			}
			present[n.ID] = true
			attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), pal, n.ID == opts.Selected)
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range data.Edges {
		if !present[e.Source] || !present[e.Target] {
			continue
		}
		if e.HasEvidence() {
			fmt.Fprintf(&buf, "  %q -> %q [penwidth=2];\n", e.Source, e.Target)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	parts := []string{n.Label, scene.Caption(n.Category)}
	if q := n.Data.Quote; q != nil {
		v := quote.Format(*q)
		parts = append(parts, v.Price+" "+v.Text())
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n graph.Node, label string, pal scene.Palette, selected bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", pal.Fill(n.Category)),
	}
	if selected {
		attrs = append(attrs, fmt.Sprintf("color=%q", pal.Accent), "penwidth=3")
	} else {
		attrs = append(attrs, "color=white", "penwidth=1.5")
	}
	if n.Data.Description != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Data.Description))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

// normalizeViewBox replaces Graphviz's pt-based svg element with a plain
// pixel-sized one so the output scales like the lane view.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
