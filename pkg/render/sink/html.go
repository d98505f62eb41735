package sink

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/matzehuels/influencegraph/pkg/layout"
	"github.com/matzehuels/influencegraph/pkg/scene"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="ko">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 24px; background: #f8fafc; color: #0f172a; font-family: 'Pretendard', 'Apple SD Gothic Neo', 'Noto Sans KR', system-ui, sans-serif; }
    header h1 { font-size: 1.5rem; margin: 0 0 4px; }
    header p { margin: 0 0 16px; color: #64748b; }
    .graph { width: 100%; overflow-x: auto; }
    .graph svg { display: block; min-width: 100%; }
    .graph .wide svg { min-width: 800px; }
    .graph .compact { display: none; }
    @media (max-width: {{.MaxCompact}}px) {
      body { padding: 12px; }
      .graph .wide { display: none; }
      .graph .compact { display: block; }
    }
    footer { margin-top: 16px; font-size: 0.875rem; color: #475569; white-space: pre-line; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    {{- if .Subtitle}}
    <p>{{.Subtitle}}</p>
    {{- end}}
  </header>
  <main class="graph">
    <div class="wide">{{.Wide}}</div>
    <div class="compact">{{.Compact}}</div>
  </main>
  {{- if .Notes}}
  <footer>{{.Notes}}</footer>
  {{- end}}
</body>
</html>
`))

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title    string
	subtitle string
	notes    string
	static   bool
}

// WithPageTitle sets the page title and heading.
func WithPageTitle(t string) HTMLOption { return func(r *htmlRenderer) { r.title = t } }

// WithSubtitle sets the line below the heading, e.g. the report time range.
func WithSubtitle(s string) HTMLOption { return func(r *htmlRenderer) { r.subtitle = s } }

// WithNotes sets the footer text.
func WithNotes(n string) HTMLOption { return func(r *htmlRenderer) { r.notes = n } }

// WithStaticPage renders both drawings without tooltips and scripts.
func WithStaticPage() HTMLOption { return func(r *htmlRenderer) { r.static = true } }

type pageData struct {
	Title      string
	Subtitle   string
	Notes      string
	MaxCompact string
	Wide       template.HTML
	Compact    template.HTML
}

// RenderHTML renders a standalone page with a wide and a compact drawing of
// the same graph. A media query at the compact breakpoint shows exactly one
// of them, so the page follows the viewport without re-rendering.
func RenderHTML(wide, compact *scene.Scene, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{title: "Influence Graph"}
	for _, opt := range opts {
		opt(&r)
	}

	svgOpts := func(prefix string) []SVGOption {
		o := []SVGOption{WithoutProlog(), WithIDPrefix(prefix)}
		if r.static {
			o = append(o, WithStatic())
		}
		return o
	}

	data := pageData{
		Title:      r.title,
		Subtitle:   r.subtitle,
		Notes:      r.notes,
		MaxCompact: strconv.FormatFloat(layout.Breakpoint-0.02, 'f', 2, 64),
		Wide:       template.HTML(RenderSVG(wide, svgOpts("w")...)),
		Compact:    template.HTML(RenderSVG(compact, svgOpts("c")...)),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// PageScenes builds the wide and compact scenes of a page from one scene's
// data, palette and selection. Both canvases use the default minimum
// heights; the widths are the wide container width and the compact one.
func PageScenes(sc *scene.Scene, wideWidth, compactWidth float64) (wide, compact *scene.Scene) {
	mk := func(width float64, isCompact bool) *scene.Scene {
		w, h := layout.Canvas(width, 0, isCompact)
		return scene.New(sc.Data(),
			scene.WithViewport(layout.Viewport{Width: w, Height: h, Compact: isCompact}),
			scene.WithPalette(sc.Palette()),
			scene.WithSelected(sc.Selected()),
		)
	}
	return mk(wideWidth, false), mk(compactWidth, true)
}
