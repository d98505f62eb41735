package layout

import "github.com/matzehuels/influencegraph/pkg/graph"

// Padding insets the lane axis from the canvas edges.
const (
	PaddingNormal  = 80.0
	PaddingCompact = 40.0
)

// Position is a node centre in canvas coordinates.
type Position struct {
	X, Y float64
}

// Positions maps node id to its computed centre.
type Positions map[string]Position

// Viewport is the canvas a layout is computed for.
type Viewport struct {
	Width   float64
	Height  float64
	Compact bool
}

// Padding returns the lane-axis inset for the viewport's mode.
func (v Viewport) Padding() float64 {
	if v.Compact {
		return PaddingCompact
	}
	return PaddingNormal
}

// Layout pairs a set of positions with the viewport they were computed for.
type Layout struct {
	Viewport  Viewport
	Positions Positions
}

// New computes a layout for nodes on vp.
func New(nodes []graph.Node, vp Viewport) Layout {
	return Layout{Viewport: vp, Positions: Compute(nodes, vp)}
}

// Compute places every node with a known category and returns the complete
// position map. Nodes with an unknown category are left out; callers skip
// them when drawing. Empty lanes produce no positions.
func Compute(nodes []graph.Node, vp Viewport) Positions {
	lanes := make([][]graph.Node, len(graph.Categories))
	for _, n := range nodes {
		if k := n.Category.Lane(); k >= 0 {
			lanes[k] = append(lanes[k], n)
		}
	}

	positions := make(Positions, len(nodes))
	for k, lane := range lanes {
		along := laneCenter(k, vp)
		if graph.Categories[k] == graph.CategoryInput {
			// Several inputs share the one centred slot.
			across := offAxisSpan(vp) / 2
			for _, n := range lane {
				positions[n.ID] = place(along, across, vp.Compact)
			}
			continue
		}
		for i, across := range Spread(offAxisSpan(vp), len(lane)) {
			positions[lane[i].ID] = place(along, across, vp.Compact)
		}
	}
	return positions
}

// Spread returns n coordinates that divide span into n+1 equal segments,
// one per interior segment boundary. The result is strictly increasing and
// symmetric about span/2. Spread returns nil for n <= 0.
func Spread(span float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	step := span / float64(n+1)
	out := make([]float64, n)
	for i := range out {
		out[i] = step * float64(i+1)
	}
	return out
}

// laneCenter returns the lane-axis coordinate of lane k.
func laneCenter(k int, vp Viewport) float64 {
	p := vp.Padding()
	band := (laneAxisSpan(vp) - 2*p) / float64(len(graph.Categories))
	return p + band*(float64(k)+0.5)
}

// laneAxisSpan is the canvas extent along which lanes progress.
func laneAxisSpan(vp Viewport) float64 {
	if vp.Compact {
		return vp.Height
	}
	return vp.Width
}

// offAxisSpan is the canvas extent along which nodes in a lane are spread.
func offAxisSpan(vp Viewport) float64 {
	if vp.Compact {
		return vp.Width
	}
	return vp.Height
}

func place(along, across float64, compact bool) Position {
	if compact {
		return Position{X: across, Y: along}
	}
	return Position{X: along, Y: across}
}
