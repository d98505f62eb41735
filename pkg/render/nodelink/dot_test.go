package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/influencegraph/pkg/graph"
)

func testData() graph.Data {
	return graph.Data{
		Nodes: []graph.Node{
			{ID: "enterprise-1", Category: graph.CategoryEnterprise, Label: "POSCO",
				Data: graph.NodeData{Quote: &graph.StockQuote{Symbol: "005490", Price: 385000, Change: 5500, ChangePercent: 1.45}}},
			{ID: "input-1", Category: graph.CategoryInput, Label: "Lee"},
			{ID: "sector-1", Category: graph.CategorySector, Label: "Steel"},
			{ID: "x-1", Category: "other", Label: "Stray"},
		},
		Edges: []graph.Edge{
			{ID: "edge-1", Source: "sector-1", Target: "enterprise-1",
				Data: graph.EdgeData{Evidence: []graph.Evidence{{Title: "t", URL: "https://x"}}}},
			{ID: "edge-2", Source: "input-1", Target: "policy-9"},
			{ID: "edge-3", Source: "x-1", Target: "sector-1"},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testData(), Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("ToDOT() output not left to right")
	}
	if !strings.Contains(dot, `"sector-1" -> "enterprise-1" [penwidth=2]`) {
		t.Error("ToDOT() output missing evidence edge")
	}
	if strings.Contains(dot, "policy-9") {
		t.Error("ToDOT() output contains dangling edge")
	}
	if strings.Contains(dot, `"x-1"`) {
		t.Error("ToDOT() output contains node of unknown category")
	}
}

func TestToDOT_LaneOrder(t *testing.T) {
	dot := ToDOT(testData(), Options{})

	in := strings.Index(dot, "subgraph lane_input")
	sec := strings.Index(dot, "subgraph lane_sector")
	ent := strings.Index(dot, "subgraph lane_enterprise")
	if in < 0 || sec < 0 || ent < 0 {
		t.Fatalf("missing lane subgraphs:\n%s", dot)
	}
	if !(in < sec && sec < ent) {
		t.Error("lanes not in category order")
	}
	if strings.Contains(dot, "lane_policy") {
		t.Error("empty lane emitted")
	}
}

func TestToDOT_Selected(t *testing.T) {
	dot := ToDOT(testData(), Options{Selected: "input-1"})
	if !strings.Contains(dot, "penwidth=3") {
		t.Error("selected node not highlighted")
	}
}

func TestFmtLabel(t *testing.T) {
	n := testData().Nodes[0]

	if got := fmtLabel(n, false); got != "POSCO" {
		t.Errorf("fmtLabel() simple mode = %q, want %q", got, "POSCO")
	}

	want := "POSCO\n관련 기업\n385,000원 +5,500(+1.45%)"
	if got := fmtLabel(n, true); got != want {
		t.Errorf("fmtLabel() detailed mode = %q, want %q", got, want)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if strings.Contains(out, "pt") {
		t.Errorf("normalizeViewBox() kept pt units: %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Error("normalizeViewBox() changed svg without viewBox")
	}
}
