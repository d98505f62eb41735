package sink

import (
	"github.com/goccy/go-json"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/scene"
)

type jsonOutput struct {
	graph.Layout
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Label    string  `json:"label"`
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Selected bool    `json:"selected,omitempty"`
}

type jsonEdge struct {
	ID     string       `json:"id"`
	Source string       `json:"source"`
	Target string       `json:"target"`
	X1     float64      `json:"x1"`
	Y1     float64      `json:"y1"`
	X2     float64      `json:"x2"`
	Y2     float64      `json:"y2"`
	Marker *graph.Point `json:"marker,omitempty"`
}

// RenderJSON exports the scene as a pretty-printed JSON document: the
// serialized layout (canvas, mode, selection, positions) plus the node
// boxes and edge segments as drawn.
//
// The document can be read back with graph.UnmarshalLayout, which ignores
// the draw lists, to redraw the graph without recomputing positions.
func RenderJSON(sc *scene.Scene) ([]byte, error) {
	out := jsonOutput{
		Layout: sc.Layout().Export(sc.Selected()),
		Nodes:  []jsonNode{},
		Edges:  []jsonEdge{},
	}
	for _, b := range sc.Nodes() {
		out.Nodes = append(out.Nodes, jsonNode{
			ID:       b.ID,
			Type:     string(b.Category),
			Label:    b.Label,
			Text:     b.Text,
			X:        b.X,
			Y:        b.Y,
			Width:    b.W,
			Height:   b.H,
			Selected: b.Selected,
		})
	}
	for _, e := range sc.Edges() {
		je := jsonEdge{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			X1:     e.X1,
			Y1:     e.Y1,
			X2:     e.X2,
			Y2:     e.Y2,
		}
		if e.HasMarker {
			je.Marker = &graph.Point{X: e.MX, Y: e.MY}
		}
		out.Edges = append(out.Edges, je)
	}
	return json.MarshalIndent(out, "", "  ")
}
