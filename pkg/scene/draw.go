package scene

import (
	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/layout"
)

const (
	compactScale = 0.8
	cornerRadius = 12.0

	// LabelMaxNormal and LabelMaxCompact bound the visible label length.
	LabelMaxNormal  = 18
	LabelMaxCompact = 12

	// MarkerRadius is the radius of the evidence marker on edges.
	MarkerRadius = 8.0

	strokeSelected = 3.0
	strokeNormal   = 1.5
)

// NodeBox is a rounded rectangle centred on a node's position.
type NodeBox struct {
	ID       string
	Category graph.Category
	Label    string // full label
	Text     string // label as drawn, possibly truncated

	X, Y   float64 // top-left corner
	W, H   float64
	CX, CY float64 // centre
	Radius float64 // corner radius

	Fill        string
	Stroke      string
	StrokeWidth float64
	Selected    bool

	Tooltip NodeTooltip
}

// EdgeSegment is a drawn edge from the source centre to the target boundary.
type EdgeSegment struct {
	ID             string
	Source, Target string

	X1, Y1 float64 // source centre
	X2, Y2 float64 // possibly shortened end, where the arrowhead sits

	// HasMarker is set for edges with evidence; MX, MY is the midpoint of
	// the two node centres.
	HasMarker bool
	MX, MY    float64

	Tooltip EdgeTooltip
}

// NodeSize returns the box size for category c. Input nodes are the
// largest, enterprise nodes the smallest.
func NodeSize(c graph.Category, compact bool) (w, h float64) {
	switch c {
	case graph.CategoryInput:
		w, h = 160, 80
	case graph.CategoryEnterprise:
		w, h = 130, 65
	default:
		w, h = 140, 70
	}
	if compact {
		w, h = w*compactScale, h*compactScale
	}
	return w, h
}

// LabelMax returns the label truncation limit for the mode.
func LabelMax(compact bool) int {
	if compact {
		return LabelMaxCompact
	}
	return LabelMaxNormal
}

// Nodes returns the node boxes in input order. Nodes without a position
// are omitted.
func (s *Scene) Nodes() []NodeBox {
	pos := s.Positions()
	compact := s.viewport.Compact
	scale := 1.0
	if compact {
		scale = compactScale
	}

	boxes := make([]NodeBox, 0, len(s.data.Nodes))
	for _, n := range s.data.Nodes {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		w, h := NodeSize(n.Category, compact)
		b := NodeBox{
			ID:          n.ID,
			Category:    n.Category,
			Label:       n.Label,
			Text:        Truncate(n.Label, LabelMax(compact)),
			X:           p.X - w/2,
			Y:           p.Y - h/2,
			W:           w,
			H:           h,
			CX:          p.X,
			CY:          p.Y,
			Radius:      cornerRadius * scale,
			Fill:        s.palette.Fill(n.Category),
			Stroke:      s.palette.Outline,
			StrokeWidth: strokeNormal,
			Tooltip:     NodeTooltipFor(n),
		}
		if s.IsSelected(n.ID) {
			b.Selected = true
			b.Stroke = s.palette.Accent
			b.StrokeWidth = strokeSelected
		}
		boxes = append(boxes, b)
	}
	return boxes
}

// Edges returns the edge segments in input order. Edges with an endpoint
// that has no position are omitted.
func (s *Scene) Edges() []EdgeSegment {
	pos := s.Positions()
	radius := layout.NodeRadius(s.viewport.Compact)

	segs := make([]EdgeSegment, 0, len(s.data.Edges))
	for _, e := range s.data.Edges {
		src, okS := pos[e.Source]
		dst, okD := pos[e.Target]
		if !okS || !okD {
			continue
		}
		end := layout.Shorten(src, dst, radius)
		seg := EdgeSegment{
			ID:      e.ID,
			Source:  e.Source,
			Target:  e.Target,
			X1:      src.X,
			Y1:      src.Y,
			X2:      end.X,
			Y2:      end.Y,
			Tooltip: EdgeTooltipFor(e),
		}
		if e.HasEvidence() {
			mid := layout.Midpoint(src, dst)
			seg.HasMarker = true
			seg.MX, seg.MY = mid.X, mid.Y
		}
		segs = append(segs, seg)
	}
	return segs
}
