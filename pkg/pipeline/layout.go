package pipeline

import (
	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout generates a serializable layout for any visualization type.
//
// Lane layouts carry the canvas, the responsive mode and every placed
// node's centre. Node-link layouts carry only the canvas; Graphviz positions
// the nodes at render time.
func GenerateLayout(data graph.Data, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	vp := opts.Viewport()
	if opts.IsNodelink() {
		return graph.Layout{
			VizType:   graph.VizTypeNodelink,
			Width:     vp.Width,
			Height:    vp.Height,
			Compact:   vp.Compact,
			Positions: map[string]graph.Point{},
		}, nil
	}
	return layout.New(data.Nodes, vp).Export(""), nil
}
