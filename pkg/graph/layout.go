package graph

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// =============================================================================
// Layout - Serialized Positions
// =============================================================================

// Layout is the serialization format for a computed layout.
//
// It captures everything needed to redraw a graph without recomputing
// positions: the canvas size, the responsive mode the positions were
// computed for, the position of every placed node and the selection at the
// time of export. Nodes missing from Positions were not placed (unknown
// category) and are skipped by renderers.
//
// For computation, use the internal representation in pkg/layout and
// convert with layout.Export / layout.Parse.
type Layout struct {
	VizType   string           `json:"viz_type"`
	Width     float64          `json:"width"`
	Height    float64          `json:"height"`
	Compact   bool             `json:"compact"`
	Selected  string           `json:"selected,omitempty"`
	Positions map[string]Point `json:"positions"`
}

// Point is a serialized 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsLanes returns true if this is a lane layout.
func (l Layout) IsLanes() bool { return l.VizType == VizTypeLanes }

// IsNodelink returns true if this is a Graphviz node-link layout.
func (l Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// A missing viz_type defaults to lanes.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.VizType == "" {
		l.VizType = VizTypeLanes
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout must have a positive canvas size, got %gx%g", l.Width, l.Height)
	}
	if l.Positions == nil {
		l.Positions = map[string]Point{}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
