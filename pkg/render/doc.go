// Package render provides the output formats for influence graphs.
//
// # Overview
//
// Rendering turns a [scene.Scene] into bytes. This package holds what the
// sinks share:
//
//   - [Format]: the supported output formats and their content types
//   - [ElementID]: stable, DOM-safe element ids derived from node ids
//
// The sinks live in subpackages:
//
//   - [sink]: interactive SVG, standalone HTML page, PNG snapshot and JSON
//     layout export of the lane view
//   - [nodelink]: Graphviz node-link rendering of the same graph
//
// Lane view usage:
//
//	sc := scene.New(data, scene.WithViewport(vp))
//	svg := sink.RenderSVG(sc)
//	page := sink.RenderHTML(data, sink.WithTitle("Report"))
//
// Node-link usage:
//
//	dot := nodelink.ToDOT(data, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [scene.Scene]: github.com/matzehuels/influencegraph/pkg/scene.Scene
// [sink]: github.com/matzehuels/influencegraph/pkg/render/sink
// [nodelink]: github.com/matzehuels/influencegraph/pkg/render/nodelink
package render
