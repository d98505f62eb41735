package layout

import (
	"fmt"

	"github.com/matzehuels/influencegraph/pkg/graph"
)

// Export converts an internal layout to the serialization format.
//
// Use this when the layout needs to outlive the process:
//   - JSON file output (via graph.WriteLayoutFile)
//   - preview server responses
//   - caching
func (l Layout) Export(selected string) graph.Layout {
	out := graph.Layout{
		VizType:   graph.VizTypeLanes,
		Width:     l.Viewport.Width,
		Height:    l.Viewport.Height,
		Compact:   l.Viewport.Compact,
		Selected:  selected,
		Positions: make(map[string]graph.Point, len(l.Positions)),
	}
	for id, p := range l.Positions {
		out.Positions[id] = graph.Point{X: p.X, Y: p.Y}
	}
	return out
}

// Parse converts a serialized layout back to the internal representation.
// Returns an error for non-lane layouts.
func Parse(gl graph.Layout) (Layout, error) {
	if gl.VizType != "" && gl.VizType != graph.VizTypeLanes {
		return Layout{}, fmt.Errorf("invalid viz_type for lane layout: %q", gl.VizType)
	}
	l := Layout{
		Viewport:  Viewport{Width: gl.Width, Height: gl.Height, Compact: gl.Compact},
		Positions: make(Positions, len(gl.Positions)),
	}
	for id, p := range gl.Positions {
		l.Positions[id] = Position{X: p.X, Y: p.Y}
	}
	return l, nil
}
