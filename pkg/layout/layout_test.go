package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/influencegraph/pkg/graph"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nodes(defs ...string) []graph.Node {
	// defs entries are "id:category"
	out := make([]graph.Node, 0, len(defs))
	for _, s := range defs {
		if id, cat, ok := strings.Cut(s, ":"); ok {
			out = append(out, graph.Node{ID: id, Category: graph.Category(cat), Label: id})
		}
	}
	return out
}

func TestComputeNormal(t *testing.T) {
	ns := nodes("in:input", "p1:policy", "p2:policy", "s1:sector", "e1:enterprise", "e2:enterprise", "e3:enterprise")
	pos := Compute(ns, Viewport{Width: 1000, Height: 600})

	// band = (1000 - 2*80) / 4 = 210
	tests := []struct {
		id   string
		x, y float64
	}{
		{"in", 185, 300},
		{"p1", 395, 200},
		{"p2", 395, 400},
		{"s1", 605, 300},
		{"e1", 815, 150},
		{"e2", 815, 300},
		{"e3", 815, 450},
	}
	for _, tt := range tests {
		got, ok := pos[tt.id]
		if !ok {
			t.Errorf("%s: no position", tt.id)
			continue
		}
		if !near(got.X, tt.x) || !near(got.Y, tt.y) {
			t.Errorf("%s = (%g, %g), want (%g, %g)", tt.id, got.X, got.Y, tt.x, tt.y)
		}
	}
}

func TestComputeCompact(t *testing.T) {
	ns := nodes("in:input", "p1:policy", "s1:sector", "s2:sector", "s3:sector", "e1:enterprise")
	pos := Compute(ns, Viewport{Width: 400, Height: 800, Compact: true})

	// band = (800 - 2*40) / 4 = 180
	tests := []struct {
		id   string
		x, y float64
	}{
		{"in", 200, 130},
		{"p1", 200, 310},
		{"s1", 100, 490},
		{"s2", 200, 490},
		{"s3", 300, 490},
		{"e1", 200, 670},
	}
	for _, tt := range tests {
		got := pos[tt.id]
		if !near(got.X, tt.x) || !near(got.Y, tt.y) {
			t.Errorf("%s = (%g, %g), want (%g, %g)", tt.id, got.X, got.Y, tt.x, tt.y)
		}
	}
}

func TestComputeEmptyLane(t *testing.T) {
	ns := nodes("in:input", "e1:enterprise")
	pos := Compute(ns, Viewport{Width: 1000, Height: 600})
	if len(pos) != 2 {
		t.Errorf("len(pos) = %d, want 2", len(pos))
	}
	if got := Compute(nil, Viewport{Width: 1000, Height: 600}); len(got) != 0 {
		t.Errorf("empty input produced %d positions", len(got))
	}
}

func TestComputeUnknownCategorySkipped(t *testing.T) {
	ns := nodes("in:input", "x:person")
	pos := Compute(ns, Viewport{Width: 1000, Height: 600})
	if _, ok := pos["x"]; ok {
		t.Error("node with unknown category should not be placed")
	}
}

func TestComputeMultipleInputsShareSlot(t *testing.T) {
	ns := nodes("a:input", "b:input", "c:input")
	pos := Compute(ns, Viewport{Width: 1000, Height: 600})
	if pos["a"] != pos["b"] || pos["b"] != pos["c"] {
		t.Errorf("inputs should collapse to one slot: %v", pos)
	}
	if !near(pos["a"].Y, 300) {
		t.Errorf("input Y = %g, want 300", pos["a"].Y)
	}
}

func TestComputeRecomputesWholesale(t *testing.T) {
	ns := nodes("in:input", "p1:policy")
	a := Compute(ns, Viewport{Width: 1000, Height: 600})
	b := Compute(ns, Viewport{Width: 1000, Height: 600})
	a["in"] = Position{}
	if b["in"] == (Position{}) {
		t.Error("Compute results must not share state")
	}
}

func TestSpread(t *testing.T) {
	tests := []struct {
		span float64
		n    int
		want []float64
	}{
		{600, 0, nil},
		{600, -1, nil},
		{600, 1, []float64{300}},
		{600, 2, []float64{200, 400}},
		{1000, 4, []float64{200, 400, 600, 800}},
	}
	for _, tt := range tests {
		got := Spread(tt.span, tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("Spread(%g, %d) = %v, want %v", tt.span, tt.n, got, tt.want)
			continue
		}
		for i := range got {
			if !near(got[i], tt.want[i]) {
				t.Errorf("Spread(%g, %d)[%d] = %g, want %g", tt.span, tt.n, i, got[i], tt.want[i])
			}
		}
	}
}

func TestIsCompact(t *testing.T) {
	tests := []struct {
		width float64
		want  bool
	}{
		{320, true},
		{767.9, true},
		{768, false},
		{1440, false},
	}
	for _, tt := range tests {
		if got := IsCompact(tt.width); got != tt.want {
			t.Errorf("IsCompact(%g) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestCanvas(t *testing.T) {
	tests := []struct {
		name          string
		container, vh float64
		compact       bool
		wantW, wantH  float64
	}{
		{"normal min height", 1200, 700, false, 1200, 600},
		{"normal tall viewport", 1200, 1000, false, 1200, 700},
		{"compact min height", 375, 812, true, 375, 800},
		{"compact tall viewport", 375, 2000, true, 375, 1400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Canvas(tt.container, tt.vh, tt.compact)
			if !near(w, tt.wantW) || !near(h, tt.wantH) {
				t.Errorf("Canvas = %gx%g, want %gx%g", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestViewportFor(t *testing.T) {
	vp := ViewportFor(375, 375, 812)
	if !vp.Compact || vp.Width != 375 || vp.Height != 800 {
		t.Errorf("ViewportFor(mobile) = %+v", vp)
	}
	vp = ViewportFor(1100, 1280, 900)
	if vp.Compact || vp.Width != 1100 || !near(vp.Height, 630) {
		t.Errorf("ViewportFor(desktop) = %+v", vp)
	}
}

func TestExportParse(t *testing.T) {
	ns := nodes("in:input", "p1:policy")
	l := New(ns, Viewport{Width: 1000, Height: 600})
	gl := l.Export("p1")
	if gl.Selected != "p1" || gl.VizType != graph.VizTypeLanes {
		t.Errorf("Export = %+v", gl)
	}
	back, err := Parse(gl)
	if err != nil {
		t.Fatal(err)
	}
	if back.Positions["p1"] != l.Positions["p1"] || back.Viewport != l.Viewport {
		t.Errorf("round trip mismatch: %+v vs %+v", back, l)
	}

	if _, err := Parse(graph.Layout{VizType: graph.VizTypeNodelink}); err == nil {
		t.Error("Parse should reject nodelink layouts")
	}
}
