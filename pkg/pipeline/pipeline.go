// Package pipeline turns an input file into drawings. The CLI commands and
// the preview server share it, so both read reports, size the canvas and
// name artifacts the same way.
//
// A run has three stages, each cached on its own by the [Runner]:
//
//  1. Load reads graph data or an analysis report and attaches quotes from
//     the quote book to enterprise nodes.
//  2. Layout places nodes in their lanes for the viewport, or records the
//     canvas for Graphviz node-link output.
//  3. Render writes SVG, HTML, PNG or JSON.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "report.yaml",
//	    Formats: []string{"svg", "html"},
//	})
//	if err != nil {
//	    return err
//	}
//	page := result.Artifacts["html"]
package pipeline

import (
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/influencegraph/pkg/cache"
	"github.com/matzehuels/influencegraph/pkg/errors"
	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/layout"
	"github.com/matzehuels/influencegraph/pkg/quote"
	"github.com/matzehuels/influencegraph/pkg/render"
)

// Defaults applied by the Options methods.
const (
	DefaultWidth   = layout.DefaultWidth
	DefaultScale   = 2.0 // PNG pixels per layout unit
	DefaultVizType = graph.VizTypeLanes

	// DefaultCompactWidth is the width of the compact drawing embedded in
	// HTML pages next to the wide one.
	DefaultCompactWidth = 390.0
)

// Limits on requested sizes. Canvases and PNG bitmaps are allocated from
// these values, so requests beyond them are rejected.
const (
	MaxDimension = 10000.0    // width, height and viewport sides
	MaxScale     = 4.0        // PNG pixels per layout unit
	MaxPNGPixels = 64_000_000 // width × height × scale²
)

// discard is the logger used when none is configured.
var discard = log.NewWithOptions(io.Discard, log.Options{})

// ValidVizTypes lists the accepted Options.VizType values.
var ValidVizTypes = map[string]bool{
	graph.VizTypeLanes:    true,
	graph.VizTypeNodelink: true,
}

// Options configures a pipeline run. The serialized fields are logged at
// debug level; cache keys are built from the stage-specific subsets.
type Options struct {
	Input   string `json:"input,omitempty"`  // graph or report file
	Quotes  string `json:"quotes,omitempty"` // quote book file; empty uses the built-in sample
	Refresh bool   `json:"refresh,omitempty"`


	VizType        string  `json:"viz_type,omitempty"`
	Width          float64 `json:"width,omitempty"`           // container width
	Height         float64 `json:"height,omitempty"`          // explicit canvas height; 0 derives it
	ViewportWidth  float64 `json:"viewport_width,omitempty"`  // window width; decides compact mode
	ViewportHeight float64 `json:"viewport_height,omitempty"` // window height; scales the canvas
	Compact        bool    `json:"compact,omitempty"`         // force compact mode


	Formats  []string `json:"formats,omitempty"`
	Selected string   `json:"selected,omitempty"`
	Static   bool     `json:"static,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // node-link labels with caption and quote
	Title    string   `json:"title,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Notes    string   `json:"notes,omitempty"`


	InputData []byte      `json:"-"` // used instead of reading Input
	Book      *quote.Book `json:"-"` // used instead of loading Quotes
	Logger    *log.Logger `json:"-"`

	validated bool
}

// Result is the output of [Runner.Execute].
type Result struct {
	Data      graph.Data
	Source    string // "report" or "graph"
	GraphHash string

	// Issues are integrity findings such as dangling edges. Rendering
	// continues without the affected elements.
	Issues []graph.Issue

	Layout    graph.Layout
	Artifacts map[string][]byte // keyed by format
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds graph size and stage durations.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache. RenderHit is
// set only when every requested format was cached.
type CacheInfo struct {
	LoadHit   bool
	LayoutHit bool
	RenderHit bool
}

// ValidateVizType rejects unknown visualization types.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: lanes, nodelink)", vizType)
	}
	return nil
}

// ValidateFormats rejects unknown output formats.
func ValidateFormats(formats []string) error {
	_, err := render.ParseFormats(formats)
	return err
}

// ValidateAndSetDefaults prepares o for a full run. Repeated calls are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad requires an input path or inline input data.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && len(o.InputData) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if o.Logger == nil {
		o.Logger = discard
	}
	return nil
}

// SetLayoutDefaults fills in the visualization type and container width.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = discard
	}
}

// ValidateForLayout applies layout defaults and rejects sizes that are not
// finite, negative, above MaxDimension or that leave an empty canvas.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"width", o.Width},
		{"height", o.Height},
		{"viewport width", o.ViewportWidth},
		{"viewport height", o.ViewportHeight},
	} {
		if err := checkDimension(d.name, d.v); err != nil {
			return err
		}
	}
	vp := o.Viewport()
	if vp.Width <= 0 || vp.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidViewport, "canvas must be positive, got %gx%g", vp.Width, vp.Height)
	}
	return nil
}

// SetRenderDefaults fills in the format list and PNG scale.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(render.FormatSVG)}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = discard
	}
}

// ValidateForRender runs the layout checks, normalizes format names and
// validates the selected node id.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	formats, err := render.ParseFormats(o.Formats)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	o.Formats = names
	if math.IsNaN(o.Scale) || o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidViewport, "scale must be between 0 and %g, got %g", MaxScale, o.Scale)
	}
	if slices.Contains(o.Formats, string(render.FormatPNG)) {
		vp := o.Viewport()
		if px := vp.Width * vp.Height * o.Scale * o.Scale; px > MaxPNGPixels {
			return errors.New(errors.ErrCodeInvalidViewport,
				"png of %gx%g at scale %g exceeds %d pixels", vp.Width, vp.Height, o.Scale, MaxPNGPixels)
		}
	}
	return errors.ValidateNodeID(o.Selected)
}

func checkDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > MaxDimension {
		return errors.New(errors.ErrCodeInvalidViewport, "%s must be between 0 and %g, got %g", name, MaxDimension, v)
	}
	return nil
}

// Viewport returns the canvas the layout is computed for. Compact mode is
// forced by Compact or derived from ViewportWidth (the container width when
// no window width is given). An explicit Height overrides the derived one.
func (o *Options) Viewport() layout.Viewport {
	width := o.Width
	if width == 0 {
		width = DefaultWidth
	}
	window := o.ViewportWidth
	if window == 0 {
		window = width
	}
	compact := o.Compact || layout.IsCompact(window)
	w, h := layout.Canvas(width, o.ViewportHeight, compact)
	if o.Height > 0 {
		h = o.Height
	}
	return layout.Viewport{Width: w, Height: h, Compact: compact}
}

// IsLanes reports whether the lane chart is requested.
func (o *Options) IsLanes() bool {
	return o.VizType == "" || o.VizType == graph.VizTypeLanes
}

// IsNodelink reports whether Graphviz node-link output is requested.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// LayoutKeyOpts returns the options that identify a cached layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	vp := o.Viewport()
	return cache.LayoutKeyOpts{
		VizType: o.VizType,
		Width:   vp.Width,
		Height:  vp.Height,
		Compact: vp.Compact,
	}
}

// ArtifactKeyOpts returns the options that identify a cached artifact of
// format. Titles and notes only matter for the formats that print them.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		Selected: o.Selected,
		Static:   o.Static,
		Detailed: o.Detailed,
	}
	if format == string(render.FormatPNG) {
		k.Scale = o.Scale
	}
	if format == string(render.FormatHTML) || format == string(render.FormatSVG) {
		k.Title = o.Title + "\x00" + o.Subtitle + "\x00" + o.Notes
	}
	return k
}
