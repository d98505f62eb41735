package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/influencegraph/pkg/errors"
	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/layout"
	"github.com/matzehuels/influencegraph/pkg/render"
	"github.com/matzehuels/influencegraph/pkg/render/nodelink"
	"github.com/matzehuels/influencegraph/pkg/render/sink"
	"github.com/matzehuels/influencegraph/pkg/scene"
)

// RenderFromLayout renders every requested format from a serialized layout.
// Formats render concurrently; each sink reads its own scene snapshot.
func RenderFromLayout(ctx context.Context, gl graph.Layout, data graph.Data, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if gl.IsNodelink() {
		return renderNodelink(ctx, gl, data, opts)
	}

	l, err := layout.Parse(gl)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidVizType, err, "convert layout")
	}
	sc := scene.New(data, scene.WithLayout(l), scene.WithSelected(opts.Selected))

	// snapshots are taken up front; sc itself is never shared
	snaps := make([]*scene.Scene, len(opts.Formats))
	for i := range snaps {
		snaps[i] = sc.Snapshot()
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range opts.Formats {
		snap := snaps[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := renderLanes(render.Format(name), snap, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", name, err)
			}
			mu.Lock()
			artifacts[name] = out
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderLanes(format render.Format, sc *scene.Scene, opts Options) ([]byte, error) {
	switch format {
	case render.FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.Static {
			svgOpts = append(svgOpts, sink.WithStatic())
		}
		if opts.Title != "" {
			svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
		}
		return sink.RenderSVG(sc, svgOpts...), nil
	case render.FormatHTML:
		wide, compact := sink.PageScenes(sc, sc.Viewport().Width, DefaultCompactWidth)
		htmlOpts := []sink.HTMLOption{
			sink.WithSubtitle(opts.Subtitle),
			sink.WithNotes(opts.Notes),
		}
		if opts.Title != "" {
			htmlOpts = append(htmlOpts, sink.WithPageTitle(opts.Title))
		}
		if opts.Static {
			htmlOpts = append(htmlOpts, sink.WithStaticPage())
		}
		return sink.RenderHTML(wide, compact, htmlOpts...)
	case render.FormatPNG:
		return sink.RenderPNG(sc, sink.WithScale(opts.Scale))
	case render.FormatJSON:
		return sink.RenderJSON(sc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported lanes format: %s", format)
	}
}

// renderNodelink renders the Graphviz view. Only SVG and the JSON layout
// are available for it.
func renderNodelink(ctx context.Context, gl graph.Layout, data graph.Data, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, name := range opts.Formats {
		var (
			out []byte
			err error
		)
		switch render.Format(name) {
		case render.FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(data, nodelink.Options{Detailed: opts.Detailed, Selected: opts.Selected})
			}
			out, err = nodelink.RenderSVG(ctx, dot)
		case render.FormatJSON:
			gl.Selected = opts.Selected
			out, err = graph.MarshalLayout(gl)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "format %s is not available for nodelink", name)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		artifacts[name] = out
	}
	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, data graph.Data, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse layout")
	}
	return RenderFromLayout(ctx, parsed, data, opts)
}
