package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/influencegraph/pkg/scene"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background color.Color
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithBackground sets the background colour (default white).
func WithBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG draws a static snapshot of the scene: dashed edges with
// arrowheads, evidence markers and labelled node boxes. Tooltips are not
// drawn. Labels use a fixed bitmap font, so characters outside its range
// are not shown.
func RenderPNG(sc *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: color.White}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, fmt.Errorf("invalid PNG scale %v", r.scale)
	}

	vp := sc.Viewport()
	pal := sc.Palette()
	w := int(math.Ceil(vp.Width * r.scale))
	h := int(math.Ceil(vp.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas size %vx%v", vp.Width, vp.Height)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(r.background)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.SetFontFace(basicfont.Face7x13)

	edgeColor := parseColor(pal.Edge)
	for _, e := range sc.Edges() {
		dc.SetColor(edgeColor)
		dc.SetLineWidth(2)
		dc.SetDash(5, 5)
		dc.DrawLine(e.X1, e.Y1, e.X2, e.Y2)
		dc.Stroke()
		dc.SetDash()
		drawArrowhead(dc, e)

		if e.HasMarker {
			dc.DrawCircle(e.MX, e.MY, scene.MarkerRadius)
			dc.SetColor(parseColor(pal.Muted))
			dc.FillPreserve()
			dc.SetColor(edgeColor)
			dc.SetLineWidth(2)
			dc.Stroke()
		}
	}

	for _, b := range sc.Nodes() {
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, b.Radius)
		dc.SetColor(parseColor(b.Fill))
		dc.FillPreserve()
		dc.SetColor(parseColor(b.Stroke))
		dc.SetLineWidth(b.StrokeWidth)
		dc.Stroke()

		dc.SetColor(color.White)
		dc.DrawStringAnchored(b.Text, b.CX, b.CY, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawArrowhead draws a filled triangle at the segment end pointing along
// the segment.
func drawArrowhead(dc *gg.Context, e scene.EdgeSegment) {
	dx, dy := e.X2-e.X1, e.Y2-e.Y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	const size = 8.0
	bx, by := e.X2-ux*size, e.Y2-uy*size
	ox, oy := -uy*size/2, ux*size/2

	dc.NewSubPath()
	dc.MoveTo(e.X2, e.Y2)
	dc.LineTo(bx+ox, by+oy)
	dc.LineTo(bx-ox, by-oy)
	dc.ClosePath()
	dc.Fill()
}

// parseColor converts a CSS colour ("#rgb", "#rrggbb" or a named colour)
// to a color.Color. Unknown values become black.
func parseColor(s string) color.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
