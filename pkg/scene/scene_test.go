package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/layout"
)

func testData() graph.Data {
	ev := []graph.Evidence{{Title: "Disclosure", URL: "https://example.com/a.pdf"}}
	return graph.Data{
		Nodes: []graph.Node{
			{ID: "input-1", Category: graph.CategoryInput, Label: "Lee Jae-myung"},
			{ID: "policy-1", Category: graph.CategoryPolicy, Label: "Regional development projects", Data: graph.NodeData{Evidence: ev}},
			{ID: "sector-1", Category: graph.CategorySector, Label: "Construction"},
			{ID: "enterprise-1", Category: graph.CategoryEnterprise, Label: "POSCO", Data: graph.NodeData{
				Description: "Steel",
				Evidence:    ev,
				Quote:       &graph.StockQuote{Symbol: "005490", Price: 385000, Change: 5500, ChangePercent: 1.45},
			}},
			{ID: "enterprise-2", Category: graph.CategoryEnterprise, Label: "SK Group"},
			{ID: "other-1", Category: "unknown", Label: "Stray"},
		},
		Edges: []graph.Edge{
			{ID: "edge-1", Source: "input-1", Target: "policy-1", Data: graph.EdgeData{Description: "d", Evidence: ev}},
			{ID: "edge-2", Source: "policy-1", Target: "sector-1"},
			{ID: "edge-3", Source: "sector-1", Target: "enterprise-9"},
			{ID: "edge-4", Source: "other-1", Target: "sector-1"},
		},
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestToggle(t *testing.T) {
	s := New(testData())

	if !s.Toggle("policy-1") || s.Selected() != "policy-1" {
		t.Fatalf("first click: selected = %q", s.Selected())
	}
	if s.Toggle("policy-1") || s.Selected() != "" {
		t.Fatalf("second click: selected = %q, want none", s.Selected())
	}

	s.Toggle("policy-1")
	s.Toggle("sector-1")
	if s.Selected() != "sector-1" {
		t.Errorf("after A then B: selected = %q, want sector-1", s.Selected())
	}
	if s.IsSelected("policy-1") {
		t.Error("policy-1 still selected")
	}

	s.Clear()
	if s.Selected() != "" {
		t.Errorf("after Clear: selected = %q", s.Selected())
	}
}

func TestRecomputeOnChange(t *testing.T) {
	s := New(testData())

	s.Positions()
	s.Positions()
	if s.computed != 1 {
		t.Fatalf("computed = %d after two reads, want 1", s.computed)
	}

	s.SetViewport(s.Viewport())
	s.Positions()
	if s.computed != 1 {
		t.Errorf("identical viewport triggered recompute")
	}

	s.Resize(400, 400, 900)
	if !s.Compact() {
		t.Error("narrow window should be compact")
	}
	s.Positions()
	if s.computed != 2 {
		t.Errorf("computed = %d after resize, want 2", s.computed)
	}

	s.SetData(testData())
	s.Positions()
	if s.computed != 3 {
		t.Errorf("computed = %d after SetData, want 3", s.computed)
	}
}

func TestEdges(t *testing.T) {
	s := New(testData(), WithViewport(layout.Viewport{Width: 1000, Height: 600}))
	segs := s.Edges()

	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2 (dangling and unpositioned edges skipped)", len(segs))
	}

	e1 := segs[0]
	if e1.ID != "edge-1" {
		t.Fatalf("first segment = %s", e1.ID)
	}
	if !near(e1.X1, 185) || !near(e1.Y1, 300) {
		t.Errorf("start = (%v, %v), want (185, 300)", e1.X1, e1.Y1)
	}
	if !near(e1.X2, 395-65) || !near(e1.Y2, 300) {
		t.Errorf("end = (%v, %v), want (330, 300)", e1.X2, e1.Y2)
	}
	if !e1.HasMarker || !near(e1.MX, 290) || !near(e1.MY, 300) {
		t.Errorf("marker = %v (%v, %v), want (290, 300)", e1.HasMarker, e1.MX, e1.MY)
	}
	if e1.Tooltip.Title != EdgeTitle || e1.Tooltip.EvidenceHeading != EdgeEvidence {
		t.Errorf("tooltip = %+v", e1.Tooltip)
	}

	if segs[1].HasMarker {
		t.Error("edge without evidence should have no marker")
	}
}

func TestEdgesCompactRadius(t *testing.T) {
	s := New(testData(), WithViewport(layout.Viewport{Width: 400, Height: 800, Compact: true}))
	segs := s.Edges()
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	// policy (200, 310) -> sector (200, 490): 180 long, trimmed by 45.
	e2 := segs[1]
	if !near(e2.X2, 200) || !near(e2.Y2, 490-45) {
		t.Errorf("end = (%v, %v), want (200, 445)", e2.X2, e2.Y2)
	}
}

func TestNodes(t *testing.T) {
	s := New(testData(), WithViewport(layout.Viewport{Width: 1000, Height: 600}), WithSelected("enterprise-1"))
	boxes := s.Nodes()

	if len(boxes) != 5 {
		t.Fatalf("got %d boxes, want 5 (unknown category omitted)", len(boxes))
	}

	in := boxes[0]
	if in.W != 160 || in.H != 80 || !near(in.X, 105) || !near(in.Y, 260) || in.Radius != 12 {
		t.Errorf("input box = %+v", in)
	}
	if in.StrokeWidth != 1.5 || in.Stroke != "white" || in.Selected {
		t.Errorf("unselected stroke = %v %q", in.StrokeWidth, in.Stroke)
	}

	pol := boxes[1]
	if pol.Text != "Regional developme..." {
		t.Errorf("policy text = %q", pol.Text)
	}
	if pol.W != 140 || pol.H != 70 {
		t.Errorf("policy size = %vx%v", pol.W, pol.H)
	}

	ent := boxes[3]
	if !ent.Selected || ent.StrokeWidth != 3 || ent.Stroke != s.Palette().Accent {
		t.Errorf("selected box = %+v", ent)
	}
	if ent.W != 130 || ent.H != 65 {
		t.Errorf("enterprise size = %vx%v", ent.W, ent.H)
	}
}

func TestNodesCompact(t *testing.T) {
	s := New(testData(), WithViewport(layout.Viewport{Width: 400, Height: 800, Compact: true}))
	boxes := s.Nodes()

	in := boxes[0]
	if !near(in.W, 128) || !near(in.H, 64) || !near(in.Radius, 9.6) {
		t.Errorf("compact input box = %vx%v r=%v", in.W, in.H, in.Radius)
	}
	if got := boxes[1].Text; got != "Regional dev..." {
		t.Errorf("compact policy text = %q", got)
	}
}

func TestEmptyScene(t *testing.T) {
	s := New(graph.Data{})
	if len(s.Positions()) != 0 || len(s.Nodes()) != 0 || len(s.Edges()) != 0 {
		t.Error("empty scene should draw nothing")
	}
}

func TestSnapshot(t *testing.T) {
	s := New(testData())
	snap := s.Snapshot()
	s.Toggle("input-1")
	s.Resize(400, 400, 900)

	if snap.Selected() != "" {
		t.Error("snapshot selection changed")
	}
	if snap.Compact() {
		t.Error("snapshot viewport changed")
	}
	if p := snap.Positions()["input-1"]; !near(p.X, 185) {
		t.Errorf("snapshot input x = %v, want 185", p.X)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{"longer", strings.Repeat("a", 20), 12, strings.Repeat("a", 12) + "..."},
		{"shorter", strings.Repeat("b", 10), 12, strings.Repeat("b", 10)},
		{"exact", strings.Repeat("c", 12), 12, strings.Repeat("c", 12)},
		{"runes", "동신건설 주식회사 본사", 4, "동신건설..."},
		{"zero", "abc", 0, "..."},
		{"empty", "", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.limit); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}

	if got := Truncate(strings.Repeat("x", 20), 12); len(got) != 15 {
		t.Errorf("len = %d, want 15", len(got))
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"bool", false, "false"},
		{"map", map[string]int{"a": 1}, `{"a":1}`},
		{"slice", []string{"x", "y"}, `["x","y"]`},
		{"func", func() {}, ObjectPlaceholder},
		{"chan", make(chan int), ObjectPlaceholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.in); got != tt.want {
				t.Errorf("Stringify(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNodeTooltip(t *testing.T) {
	d := testData()

	pol := NodeTooltipFor(d.Nodes[1])
	if pol.Caption != "관련 정책" || pol.EvidenceHeading != PolicyEvidence {
		t.Errorf("policy tooltip = %+v", pol)
	}
	if pol.HasQuote() {
		t.Error("policy tooltip should have no quote")
	}

	ent := NodeTooltipFor(d.Nodes[3])
	if ent.Caption != "관련 기업" || ent.EvidenceHeading != DefaultEvidenceCap {
		t.Errorf("enterprise tooltip = %+v", ent)
	}
	if !ent.HasQuote() || ent.Quote.Price != "385,000원" || ent.Quote.Text() != "+5,500(+1.45%)" {
		t.Errorf("quote = %+v", ent.Quote)
	}

	in := NodeTooltipFor(d.Nodes[0])
	if in.EvidenceHeading != "" || len(in.Evidence) != 0 {
		t.Error("input tooltip should have no evidence section")
	}

	edge := EdgeTooltipFor(d.Edges[1])
	if edge.EvidenceHeading != "" {
		t.Error("edge without evidence should have no heading")
	}
}

func TestZeroChangeIsDown(t *testing.T) {
	n := graph.Node{ID: "enterprise-1", Category: graph.CategoryEnterprise, Label: "Seongnam Development Co.",
		Data: graph.NodeData{Quote: &graph.StockQuote{Symbol: "N/A"}}}
	tip := NodeTooltipFor(n)
	if tip.Quote.Up() {
		t.Error("zero change classified as up")
	}
	if got := DefaultPalette().Trend(tip.Quote.Direction); got != DefaultPalette().Down {
		t.Errorf("Trend = %q, want down colour", got)
	}
}
