package layout

import "math"

// Responsive sizing constants.
const (
	// Breakpoint is the viewport width below which compact mode is used.
	Breakpoint = 768.0

	// MinHeightNormal and MinHeightCompact bound the canvas height from below.
	MinHeightNormal  = 600.0
	MinHeightCompact = 800.0

	// HeightFraction is the share of the viewport height given to the canvas.
	HeightFraction = 0.7

	// DefaultWidth and DefaultHeight are used before the container is measured.
	DefaultWidth  = 1000.0
	DefaultHeight = 600.0
)

// IsCompact reports whether a viewport of the given width uses compact mode.
func IsCompact(viewportWidth float64) bool {
	return viewportWidth < Breakpoint
}

// Canvas returns the drawing size for a container of containerWidth inside a
// viewport of viewportHeight. The width tracks the container; the height is
// the larger of the mode's minimum and a fraction of the viewport height.
func Canvas(containerWidth, viewportHeight float64, compact bool) (width, height float64) {
	minHeight := MinHeightNormal
	if compact {
		minHeight = MinHeightCompact
	}
	return containerWidth, math.Max(minHeight, viewportHeight*HeightFraction)
}

// ViewportFor derives the full viewport from window and container metrics.
func ViewportFor(containerWidth, windowWidth, windowHeight float64) Viewport {
	compact := IsCompact(windowWidth)
	w, h := Canvas(containerWidth, windowHeight, compact)
	return Viewport{Width: w, Height: h, Compact: compact}
}
