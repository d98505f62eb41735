package layout

import "math"

// Approximate node half-widths used to trim edges.
const (
	NodeRadiusNormal  = 65.0
	NodeRadiusCompact = 45.0
)

// NodeRadius returns the edge trim distance for the given mode.
func NodeRadius(compact bool) float64 {
	if compact {
		return NodeRadiusCompact
	}
	return NodeRadiusNormal
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Position) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Shorten returns the drawn end point of a line from src to dst.
//
// When the segment is longer than radius, the end is pulled back along the
// line so it stops radius units short of dst. Otherwise dst is returned
// unchanged, so very close nodes are connected centre to centre.
func Shorten(src, dst Position, radius float64) Position {
	dx, dy := dst.X-src.X, dst.Y-src.Y
	length := math.Hypot(dx, dy)
	if length <= radius {
		return dst
	}
	ratio := (length - radius) / length
	return Position{X: src.X + dx*ratio, Y: src.Y + dy*ratio}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Position) Position {
	return Position{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
