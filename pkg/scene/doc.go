// Package scene holds the interactive state of one rendered influence graph
// and turns it into draw lists for the render sinks.
//
// # State
//
// A [Scene] owns the graph snapshot, the current viewport, the computed
// node positions and the selected node. It is a plain value passed
// explicitly to whoever draws it; there is no package-level state.
//
// Positions are recomputed on change: [Scene.SetData], [Scene.Resize] and
// [Scene.SetViewport] mark the scene dirty, and the next call that needs
// positions runs [layout.Compute] once.
//
// # Selection
//
// [Scene.Toggle] implements click semantics. Clicking the selected node
// clears the selection; clicking any other node replaces it. At most one
// node is selected at a time.
//
// # Draw lists
//
// [Scene.Nodes] returns one [NodeBox] per positioned node and [Scene.Edges]
// one [EdgeSegment] per edge whose endpoints are both positioned. Elements
// without positions are omitted silently, so a dangling edge or a node of
// unknown category never causes an error.
//
// Edge segments start at the source centre and end at the target boundary
// (see [layout.Shorten]). Edges carrying evidence get a marker at the
// midpoint of the two centres.
//
// # Tooltips
//
// [NodeTooltipFor] and [EdgeTooltipFor] build the hover content: title,
// category caption, formatted quote, description and citations. Citation
// links always open in a new browsing context ([LinkTarget], [LinkRel]).
//
// [layout.Compute]: github.com/matzehuels/influencegraph/pkg/layout.Compute
// [layout.Shorten]: github.com/matzehuels/influencegraph/pkg/layout.Shorten
package scene
