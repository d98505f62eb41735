// Package sink provides output format renderers for influence graph scenes.
//
// # Overview
//
// A "sink" turns a [scene.Scene] into a final output format:
//
//   - SVG: the lane view with hover tooltips and click selection
//   - HTML: a standalone page holding a wide and a compact drawing
//   - PNG: a static raster snapshot
//   - JSON: the computed layout plus the drawn geometry
//
// # SVG Output
//
// [RenderSVG] produces an SVG document with:
//
//   - Dashed edges with arrowheads, trimmed at the target node
//   - Evidence markers at edge midpoints
//   - Rounded node boxes in category colours with truncated labels
//   - Hidden tooltip groups shown by an embedded script
//
// Basic usage:
//
//	svg := sink.RenderSVG(sc, sink.WithTitle("Lee Jae-myung"))
//
// Use [WithStatic] to drop tooltips and scripts, e.g. for documents that are
// embedded where scripts do not run.
//
// # HTML Output
//
// [RenderHTML] inlines two drawings of the same data and lets a CSS media
// query pick one, so the page follows the compact breakpoint without a
// server round trip. [PageScenes] derives both scenes from one.
//
// # PNG Output
//
// [RenderPNG] rasterizes in-process with gg. It uses a bitmap font that
// covers ASCII only; Hangul labels need the SVG or HTML output.
//
// # JSON Output
//
// [RenderJSON] exports the layout in the [graph.Layout] format extended with
// node boxes and edge segments. It reads back with [graph.UnmarshalLayout].
package sink
