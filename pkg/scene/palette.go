package scene

import "github.com/matzehuels/influencegraph/pkg/graph"

// Palette holds the colours of a scene. Values are CSS colour strings.
type Palette struct {
	Input      string
	Policy     string
	Sector     string
	Enterprise string
	Fallback   string

	Outline string // node border when not selected
	Accent  string // node border when selected
	Edge    string
	Muted   string // evidence marker fill
	Up      string
	Down    string
}

// DefaultPalette returns the standard colours. Rising quotes are red and
// falling ones blue, as on Korean exchanges.
func DefaultPalette() Palette {
	return Palette{
		Input:      "#4f46e5",
		Policy:     "#0891b2",
		Sector:     "#059669",
		Enterprise: "#d97706",
		Fallback:   "#334155",
		Outline:    "white",
		Accent:     "#e11d48",
		Edge:       "#94a3b8",
		Muted:      "#f1f5f9",
		Up:         "#dc2626",
		Down:       "#2563eb",
	}
}

// Fill returns the node fill for category c.
func (p Palette) Fill(c graph.Category) string {
	switch c {
	case graph.CategoryInput:
		return p.Input
	case graph.CategoryPolicy:
		return p.Policy
	case graph.CategorySector:
		return p.Sector
	case graph.CategoryEnterprise:
		return p.Enterprise
	default:
		return p.Fallback
	}
}

// Trend returns the colour for a quote direction.
func (p Palette) Trend(direction string) string {
	if direction == graph.DirectionUp {
		return p.Up
	}
	return p.Down
}
