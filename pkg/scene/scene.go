package scene

import (
	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/layout"
)

// Scene is the state holder of a single rendered diagram.
//
// A Scene is not safe for concurrent use. Render sinks that run in
// parallel should each work on a [Scene.Snapshot].
type Scene struct {
	data      graph.Data
	viewport  layout.Viewport
	palette   Palette
	selected  string
	positions layout.Positions
	dirty     bool

	computed int // number of layout passes, for tests
}

// Option configures a Scene.
type Option func(*Scene)

// WithViewport sets the initial viewport.
func WithViewport(vp layout.Viewport) Option {
	return func(s *Scene) {
		s.viewport = vp
		s.dirty = true
	}
}

// WithLayout seeds the scene with precomputed positions, e.g. a cached
// layout. The positions are used until something changes.
func WithLayout(l layout.Layout) Option {
	return func(s *Scene) {
		s.viewport = l.Viewport
		s.positions = l.Positions
		s.dirty = false
	}
}

// WithPalette overrides the default colours.
func WithPalette(p Palette) Option { return func(s *Scene) { s.palette = p } }

// WithSelected pre-selects a node.
func WithSelected(id string) Option { return func(s *Scene) { s.selected = id } }

// New creates a scene for data. Without [WithViewport] the scene starts at
// the default wide canvas.
func New(data graph.Data, opts ...Option) *Scene {
	s := &Scene{
		data: data,
		viewport: layout.Viewport{
			Width:  layout.DefaultWidth,
			Height: layout.DefaultHeight,
		},
		palette: DefaultPalette(),
		dirty:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Data returns the graph snapshot.
func (s *Scene) Data() graph.Data { return s.data }

// Viewport returns the current viewport.
func (s *Scene) Viewport() layout.Viewport { return s.viewport }

// Palette returns the colours used for draw lists.
func (s *Scene) Palette() Palette { return s.palette }

// Compact reports whether the scene is in compact mode.
func (s *Scene) Compact() bool { return s.viewport.Compact }

// SetData replaces the graph snapshot. The selection is kept even if the
// selected id no longer exists; it then simply highlights nothing.
func (s *Scene) SetData(data graph.Data) {
	s.data = data
	s.dirty = true
}

// SetViewport changes the viewport. Setting an identical viewport is a
// no-op.
func (s *Scene) SetViewport(vp layout.Viewport) {
	if vp == s.viewport {
		return
	}
	s.viewport = vp
	s.dirty = true
}

// Resize derives the viewport from host measurements: the width of the
// containing element and the window size.
func (s *Scene) Resize(containerWidth, windowWidth, windowHeight float64) {
	s.SetViewport(layout.ViewportFor(containerWidth, windowWidth, windowHeight))
}

// Positions returns the node positions for the current data and viewport,
// recomputing them first if anything changed. The returned map must not
// be modified.
func (s *Scene) Positions() layout.Positions {
	if s.dirty || s.positions == nil {
		s.positions = layout.Compute(s.data.Nodes, s.viewport)
		s.dirty = false
		s.computed++
	}
	return s.positions
}

// Layout returns the current viewport together with its positions.
func (s *Scene) Layout() layout.Layout {
	return layout.Layout{Viewport: s.viewport, Positions: s.Positions()}
}

// =============================================================================
// Selection
// =============================================================================

// Toggle applies a click on node id and reports whether id is selected
// afterwards.
func (s *Scene) Toggle(id string) bool {
	if s.selected == id {
		s.selected = ""
		return false
	}
	s.selected = id
	return true
}

// Selected returns the selected node id, or "" if none.
func (s *Scene) Selected() string { return s.selected }

// IsSelected reports whether id is the selected node.
func (s *Scene) IsSelected(id string) bool { return id != "" && s.selected == id }

// Clear removes the selection.
func (s *Scene) Clear() { s.selected = "" }

// Snapshot returns an independent copy sharing the immutable graph data.
// Positions are computed before copying.
func (s *Scene) Snapshot() *Scene {
	pos := s.Positions()
	cp := *s
	cp.positions = make(layout.Positions, len(pos))
	for id, p := range pos {
		cp.positions[id] = p
	}
	return &cp
}
