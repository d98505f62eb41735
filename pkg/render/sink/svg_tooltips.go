package sink

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/scene"
)

const (
	tooltipPad      = 12.0
	tooltipCellPx   = 6.5 // average advance of one terminal cell at 12px
	tooltipWide     = 340.0
	tooltipCompact  = 260.0
	colorText       = "#0f172a"
	colorMutedText  = "#64748b"
	colorBorder     = "#e2e8f0"
	colorBackground = "rgba(255,255,255,0.92)"
)

func tooltipWidth(compact bool) float64 {
	if compact {
		return tooltipCompact
	}
	return tooltipWide
}

// tooltipWriter lays out tooltip lines top to bottom and buffers them until
// the final height is known.
type tooltipWriter struct {
	body  bytes.Buffer
	width float64
	cols  int
	y     float64
}

func newTooltipWriter(width float64) *tooltipWriter {
	return &tooltipWriter{
		width: width,
		cols:  int((width - 2*tooltipPad) / tooltipCellPx),
		y:     tooltipPad,
	}
}

func (t *tooltipWriter) line(text string, size int, weight int, fill, class string) {
	t.y += float64(size) + 4
	cls := ""
	if class != "" {
		cls = fmt.Sprintf(` class="%s"`, class)
	}
	fmt.Fprintf(&t.body, `      <text x="%.0f" y="%.1f"%s font-size="%d" font-weight="%d" fill="%s">%s</text>`+"\n",
		tooltipPad, t.y, cls, size, weight, html.EscapeString(fill), html.EscapeString(text))
}

func (t *tooltipWriter) wrapped(text string, size int, weight int, fill string) {
	for _, para := range strings.Split(text, "\n") {
		if strings.TrimSpace(para) == "" {
			t.y += 6
			continue
		}
		for _, l := range strings.Split(runewidth.Wrap(para, t.cols), "\n") {
			t.line(l, size, weight, fill, "")
		}
	}
}

func (t *tooltipWriter) separator() {
	t.y += 8
	fmt.Fprintf(&t.body, `      <line x1="%.0f" y1="%.1f" x2="%.0f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		tooltipPad, t.y, t.width-tooltipPad, t.y, colorBorder)
	t.y += 2
}

func (t *tooltipWriter) link(ev graph.Evidence, withURL bool) {
	fmt.Fprintf(&t.body, `      <a href="%[1]s" xlink:href="%[1]s" target="%[2]s" rel="%[3]s">`+"\n",
		html.EscapeString(ev.URL), scene.LinkTarget, scene.LinkRel)
	title := ev.Title
	if title == "" {
		title = ev.URL
	}
	for _, l := range strings.Split(runewidth.Wrap(title, t.cols), "\n") {
		t.line(l, 12, 500, colorText, "link-title")
	}
	if withURL && ev.URL != "" {
		t.line("↗ "+runewidth.Truncate(ev.URL, t.cols-2, "..."), 11, 400, colorMutedText, "")
	}
	t.body.WriteString("      </a>\n")
	t.y += 2
}

func (t *tooltipWriter) flush(buf *bytes.Buffer, id string) {
	height := t.y + tooltipPad
	fmt.Fprintf(buf, `    <g id="%s" class="tooltip" visibility="hidden" font-family="%s">`+"\n",
		html.EscapeString(id), html.EscapeString(fontFamily))
	fmt.Fprintf(buf, `      <rect width="%.0f" height="%.1f" rx="8" ry="8" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		t.width, height, colorBackground, colorBorder)
	buf.Write(t.body.Bytes())
	buf.WriteString("    </g>\n")
}

func renderNodeTooltip(buf *bytes.Buffer, id string, tip scene.NodeTooltip, pal scene.Palette, width float64) {
	t := newTooltipWriter(width)
	t.wrapped(tip.Title, 15, 600, colorText)
	if tip.Caption != "" {
		t.line(tip.Caption, 11, 400, colorMutedText, "")
	}

	if q := tip.Quote; q != nil {
		t.separator()
		t.line(scene.PriceLabel+"  "+q.Price, 14, 700, colorText, "")
		arrow := "▼"
		if q.Up() {
			arrow = "▲"
		}
		t.line(q.Symbol+"  "+arrow+" "+q.Text(), 12, 500, pal.Trend(q.Direction), "quote-change")
	}

	if tip.Description != "" {
		t.separator()
		t.wrapped(tip.Description, 12, 400, colorText)
	}

	if len(tip.Evidence) > 0 {
		t.separator()
		t.line(tip.EvidenceHeading, 11, 500, colorMutedText, "")
		for _, ev := range tip.Evidence {
			t.link(ev, true)
		}
	}
	t.flush(buf, id)
}

func renderEdgeTooltip(buf *bytes.Buffer, id string, tip scene.EdgeTooltip, width float64) {
	t := newTooltipWriter(width)
	t.line(tip.Title, 13, 500, colorText, "")
	if tip.Description != "" {
		t.wrapped(tip.Description, 12, 400, colorText)
	}
	if len(tip.Evidence) > 0 {
		t.separator()
		t.line(tip.EvidenceHeading, 11, 500, colorMutedText, "")
		for _, ev := range tip.Evidence {
			t.link(ev, false)
		}
	}
	t.flush(buf, id)
}
