// Package nodelink renders influence graphs as Graphviz node-link diagrams.
//
// # Overview
//
// This is the alternative to the lane view. Nodes appear as rounded boxes
// in the category colours, one rank per lane, connected by dashed arrows.
// Edges that carry evidence are drawn thicker.
//
// # Usage
//
// Convert graph data to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(data, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
