package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/influencegraph/pkg/render"
	"github.com/matzehuels/influencegraph/pkg/scene"
)

const interactionJS = `
    (function () {
      const root = document.currentScript ? document.currentScript.closest('svg') : document.querySelector('svg');
      if (!root) return;
      const vb = root.viewBox.baseVal;
      let active = null;
      let hideTimer = null;
      function show(trigger, tip) {
        clearTimeout(hideTimer);
        if (active && active !== tip) active.setAttribute('visibility', 'hidden');
        root.appendChild(tip);
        const box = trigger.getBBox();
        const tb = tip.getBBox();
        let x = box.x + box.width / 2 - tb.width / 2;
        let y = box.y + box.height + 10;
        if (y + tb.height > vb.y + vb.height - 10) y = box.y - tb.height - 10;
        if (y < vb.y + 10) y = vb.y + 10;
        x = Math.max(vb.x + 10, Math.min(x, vb.x + vb.width - tb.width - 10));
        tip.setAttribute('transform', 'translate(' + x.toFixed(1) + ',' + y.toFixed(1) + ')');
        tip.setAttribute('visibility', 'visible');
        active = tip;
      }
      function hide() {
        clearTimeout(hideTimer);
        hideTimer = setTimeout(() => {
          if (active) active.setAttribute('visibility', 'hidden');
          active = null;
        }, 200);
      }
      root.querySelectorAll('[data-tooltip]').forEach(el => {
        const tip = root.querySelector('#' + el.getAttribute('data-tooltip'));
        if (!tip) return;
        el.addEventListener('mouseenter', () => show(el, tip));
        el.addEventListener('mouseleave', hide);
      });
      root.querySelectorAll('.tooltip').forEach(tip => {
        tip.addEventListener('mouseenter', () => clearTimeout(hideTimer));
        tip.addEventListener('mouseleave', hide);
      });
      root.querySelectorAll('.node').forEach(node => {
        node.addEventListener('click', () => {
          const was = node.classList.contains('selected');
          root.querySelectorAll('.node.selected').forEach(n => n.classList.remove('selected'));
          if (!was) node.classList.add('selected');
        });
      });
    })();`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	static   bool
	prolog   bool
	title    string
	idPrefix string
}

// WithStatic omits tooltips and scripts. Selection styling is kept.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.static = true } }

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithIDPrefix namespaces element ids so several drawings can share one
// HTML document.
func WithIDPrefix(p string) SVGOption { return func(r *svgRenderer) { r.idPrefix = p } }

// WithoutProlog drops the XML declaration for inline embedding.
func WithoutProlog() SVGOption { return func(r *svgRenderer) { r.prolog = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{prolog: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r svgRenderer) id(kind, id string) string {
	if r.idPrefix != "" {
		kind = r.idPrefix + "-" + kind
	}
	return render.ElementID(kind, id)
}

// RenderSVG renders the scene as an SVG document.
//
// Edges come first so that node boxes cover their start points. Every node
// and every evidence marker references a hidden tooltip group that the
// embedded script shows on hover. Clicking a node toggles its selection.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	vp := sc.Viewport()
	pal := sc.Palette()
	nodes := sc.Nodes()
	edges := sc.Edges()

	w, h := px(vp.Width), px(vp.Height)
	arrowID := r.id("arrow", "")

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(w, h,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h),
		fmt.Sprintf(`class="influence-graph%s"`, modeClass(vp.Compact)),
	)
	if r.title != "" {
		canvas.Title(r.title)
	}

	canvas.Def()
	canvas.Marker(arrowID, 9, 5, 6, 6, `viewBox="0 0 10 10"`, `orient="auto"`)
	canvas.Path("M 0 0 L 10 5 L 0 10 z", attr("fill", pal.Edge))
	canvas.MarkerEnd()
	canvas.DefEnd()

	canvas.Group(`class="edges"`)
	for _, e := range edges {
		canvas.Line(px(e.X1), px(e.Y1), px(e.X2), px(e.Y2),
			`class="edge"`,
			attr("stroke", pal.Edge),
			`stroke-width="2"`,
			`stroke-dasharray="5,5"`,
			fmt.Sprintf(`marker-end="url(#%s)"`, arrowID),
			attr("data-edge", e.ID),
		)
		if e.HasMarker {
			marker := []string{
				`class="evidence-marker"`,
				attr("fill", pal.Muted),
				attr("stroke", pal.Edge),
				`stroke-width="2"`,
			}
			if !r.static {
				marker = append(marker, attr("data-tooltip", r.id("tip-edge", e.ID)))
			}
			canvas.Circle(px(e.MX), px(e.MY), int(scene.MarkerRadius), marker...)
		}
	}
	canvas.Gend()

	canvas.Group(`class="nodes"`)
	for _, b := range nodes {
		group := []string{
			attr("id", r.id("node", b.ID)),
			attr("class", nodeClass(b)),
			attr("data-node", b.ID),
		}
		if !r.static {
			group = append(group, attr("data-tooltip", r.id("tip-node", b.ID)))
		}
		canvas.Group(group...)
		canvas.Roundrect(px(b.X), px(b.Y), px(b.W), px(b.H), px(b.Radius), px(b.Radius),
			`class="node-shape"`,
			attr("fill", b.Fill),
			attr("stroke", b.Stroke),
			attr("stroke-width", trimFloat(b.StrokeWidth)),
		)
		canvas.Text(px(b.CX), px(b.CY), b.Text,
			`class="node-label"`,
			`text-anchor="middle"`,
			`dominant-baseline="middle"`,
			fmt.Sprintf("fill:white;font-size:%dpx;font-weight:500;font-family:%s;pointer-events:none;user-select:none",
				labelFontSize(vp.Compact), fontFamily),
		)
		canvas.Gend()
	}
	canvas.Gend()

	renderStyle(&buf, pal)

	if !r.static {
		tw := tooltipWidth(vp.Compact)
		canvas.Group(`class="tooltips"`)
		for _, b := range nodes {
			renderNodeTooltip(&buf, r.id("tip-node", b.ID), b.Tooltip, pal, tw)
		}
		for _, e := range edges {
			if e.HasMarker {
				renderEdgeTooltip(&buf, r.id("tip-edge", e.ID), e.Tooltip, tw)
			}
		}
		canvas.Gend()
		canvas.Script("text/javascript", interactionJS)
	}

	canvas.End()

	out := buf.Bytes()
	if !r.prolog {
		if i := bytes.Index(out, []byte("<svg")); i > 0 {
			out = out[i:]
		}
	}
	return out
}

const fontFamily = `'Pretendard', 'Apple SD Gothic Neo', 'Noto Sans KR', system-ui, sans-serif`

func renderStyle(buf *bytes.Buffer, pal scene.Palette) {
	fmt.Fprintf(buf, `  <style>
    .node { cursor: pointer; transition: transform 0.3s ease-out; }
    .node:hover { transform: translateY(-4px); }
    .node .node-shape { stroke: %[1]s; stroke-width: 1.5px; transition: all 0.3s ease-in-out; filter: drop-shadow(0 4px 6px rgb(0 0 0 / 0.1)); }
    .node.selected .node-shape { stroke: %[2]s; stroke-width: 3px; }
    .edge { transition: all 0.2s ease; }
    .edge:hover { stroke: %[2]s; stroke-width: 3px; }
    .evidence-marker { cursor: help; }
    .evidence-marker:hover { fill: %[3]s; }
    .tooltip { transition: opacity 0.15s ease; }
    .tooltip[visibility="hidden"] { opacity: 0; }
    .tooltip[visibility="visible"] { opacity: 1; }
    .tooltip a { cursor: pointer; }
    .tooltip a:hover .link-title { fill: %[2]s; text-decoration: underline; }
  </style>
`, html.EscapeString(pal.Outline), html.EscapeString(pal.Accent), html.EscapeString(pal.Muted))
}

func nodeClass(b scene.NodeBox) string {
	c := "node node-" + string(b.Category)
	if b.Selected {
		c += " selected"
	}
	return c
}

func modeClass(compact bool) string {
	if compact {
		return " compact"
	}
	return ""
}

func labelFontSize(compact bool) int {
	if compact {
		return 12
	}
	return 14
}

// attr formats an escaped XML attribute. svgo passes strings containing
// "=" through as raw attributes.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func px(v float64) int { return int(math.Round(v)) }

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
