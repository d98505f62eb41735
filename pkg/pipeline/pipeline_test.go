package pipeline

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/influencegraph/pkg/cache"
	"github.com/matzehuels/influencegraph/pkg/errors"
	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/quote"
	"github.com/matzehuels/influencegraph/pkg/report"
)

func sampleInput(t *testing.T) []byte {
	t.Helper()
	data, err := report.Marshal(report.Sample())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	return data
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"lanes", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidVizType) {
			t.Errorf("ValidateVizType(%q) code = %v", tt.vizType, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png", "html", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "pdf"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestViewport(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		wantW       float64
		wantH       float64
		wantCompact bool
	}{
		{"defaults", Options{}, 1000, 600, false},
		{"narrow container", Options{Width: 400}, 400, 800, true},
		{"narrow window", Options{Width: 900, ViewportWidth: 500}, 900, 800, true},
		{"breakpoint is wide", Options{Width: 768}, 768, 600, false},
		{"tall window", Options{Width: 1200, ViewportHeight: 1000}, 1200, 700, false},
		{"forced compact", Options{Width: 1200, Compact: true}, 1200, 800, true},
		{"explicit height", Options{Width: 1200, Height: 900}, 1200, 900, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := tt.opts.Viewport()
			if vp.Width != tt.wantW || vp.Height != tt.wantH || vp.Compact != tt.wantCompact {
				t.Errorf("Viewport() = %+v, want %vx%v compact=%v", vp, tt.wantW, tt.wantH, tt.wantCompact)
			}
		})
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var empty Options
	if err := empty.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing input: err = %v", err)
	}

	opts := Options{Input: "x.json", Formats: []string{"SVG,png", "svg"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if strings.Join(opts.Formats, ",") != "svg,png" {
		t.Errorf("Formats = %v, want [svg png]", opts.Formats)
	}
	if opts.VizType != DefaultVizType || opts.Scale != DefaultScale || opts.Logger == nil {
		t.Errorf("defaults not applied: %+v", opts)
	}

	for _, id := range []string{"정책-1", "in 1"} {
		sel := Options{Input: "x.json", Selected: id}
		if err := sel.ValidateAndSetDefaults(); err != nil {
			t.Errorf("selected %q: %v", id, err)
		}
	}
	ctrl := Options{Input: "x.json", Selected: "policy\n1"}
	if err := ctrl.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("selected with newline: err = %v", err)
	}
}

func TestValidateSizeLimits(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		ok   bool
	}{
		{"defaults", Options{}, true},
		{"largest width", Options{Width: MaxDimension, Formats: []string{"svg"}}, true},
		{"negative width", Options{Width: -5}, false},
		{"NaN width", Options{Width: math.NaN()}, false},
		{"infinite viewport height", Options{ViewportHeight: math.Inf(1)}, false},
		{"width above max", Options{Width: 60000}, false},
		{"height above max", Options{Height: MaxDimension + 1}, false},
		{"viewport width above max", Options{ViewportWidth: 1e9}, false},
		{"scale above max", Options{Scale: MaxScale * 2, Formats: []string{"png"}}, false},
		{"NaN scale", Options{Scale: math.NaN()}, false},
		{"huge png", Options{Width: MaxDimension, ViewportHeight: MaxDimension, Formats: []string{"png"}}, false},
		{"huge svg", Options{Width: MaxDimension, ViewportHeight: MaxDimension, Formats: []string{"svg"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Input = "report.yaml"
			err := opts.ValidateAndSetDefaults()
			if tt.ok {
				if err != nil {
					t.Errorf("ValidateAndSetDefaults() error: %v", err)
				}
				return
			}
			if !errors.Is(err, errors.ErrCodeInvalidViewport) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidViewport)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	loaded, err := Decode(sampleInput(t), quote.Sample())
	if err != nil {
		t.Fatalf("Decode(report) error: %v", err)
	}
	if loaded.Source != SourceReport || loaded.Title == "" {
		t.Errorf("report: source=%q title=%q", loaded.Source, loaded.Title)
	}
	if len(loaded.Data.Nodes) != 17 {
		t.Errorf("report nodes = %d, want 17", len(loaded.Data.Nodes))
	}

	g := []byte(`{"nodes":[{"id":"input-1","type":"input","label":"A"}],"edges":[]}`)
	loaded, err = Decode(g, nil)
	if err != nil {
		t.Fatalf("Decode(graph) error: %v", err)
	}
	if loaded.Source != SourceGraph || len(loaded.Data.Nodes) != 1 {
		t.Errorf("graph: %+v", loaded)
	}

	y := []byte("nodes:\n  - id: input-1\n    type: input\n    label: A\nedges: []\n")
	if loaded, err = Decode(y, nil); err != nil || len(loaded.Data.Nodes) != 1 {
		t.Errorf("Decode(yaml) = %+v, %v", loaded, err)
	}

	if _, err := Decode([]byte("{not json"), nil); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("garbage: err = %v", err)
	}
	if _, err := Decode([]byte(`{"report_title":"x","influence_chains":[]}`), nil); !errors.Is(err, errors.ErrCodeInvalidReport) {
		t.Errorf("empty report: err = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, err := Load(ctx, Options{Input: filepath.Join(dir, "missing.json")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing input: err = %v", err)
	}

	in := filepath.Join(dir, "in.json")
	if err := os.WriteFile(in, sampleInput(t), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(ctx, Options{Input: in, Quotes: filepath.Join(dir, "missing.toml")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing quotes: err = %v", err)
	}
}

func TestGenerateLayout(t *testing.T) {
	data, _ := Decode(sampleInput(t), quote.Sample())

	gl, err := GenerateLayout(data.Data, Options{})
	if err != nil {
		t.Fatalf("GenerateLayout() error: %v", err)
	}
	if !gl.IsLanes() || len(gl.Positions) != 17 {
		t.Errorf("lanes layout: viz=%s positions=%d", gl.VizType, len(gl.Positions))
	}
	if p := gl.Positions["input-1"]; p.X != 185 || p.Y != 300 {
		t.Errorf("input-1 at %+v, want (185,300)", p)
	}

	gl, err = GenerateLayout(data.Data, Options{VizType: graph.VizTypeNodelink})
	if err != nil {
		t.Fatalf("GenerateLayout(nodelink) error: %v", err)
	}
	if !gl.IsNodelink() || len(gl.Positions) != 0 {
		t.Errorf("nodelink layout: %+v", gl)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	opts := Options{
		InputData: sampleInput(t),
		Formats:   []string{"svg", "html", "png", "json"},
		Selected:  "policy-2",
	}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.LoadHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit cache: %+v", first.CacheInfo)
	}
	if first.Source != SourceReport || first.Stats.NodeCount != 17 || first.Stats.EdgeCount != 16 {
		t.Errorf("result = source %s, %d nodes, %d edges", first.Source, first.Stats.NodeCount, first.Stats.EdgeCount)
	}
	if len(first.Issues) != 0 {
		t.Errorf("issues = %v", first.Issues)
	}
	for _, f := range opts.Formats {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(first.Artifacts["svg"]), `class="node node-policy selected"`) {
		t.Error("selection not rendered")
	}
	if !strings.Contains(string(first.Artifacts["html"]), report.Sample().Title) {
		t.Error("report title not on page")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.LoadHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed cache: %+v", second.CacheInfo)
	}
	if string(second.Artifacts["svg"]) != string(first.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if third.CacheInfo.LoadHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh hit cache: %+v", third.CacheInfo)
	}
}

func TestRunnerNodelink(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	res, err := r.Execute(ctx, Options{InputData: sampleInput(t), VizType: "nodelink", Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	gl, err := graph.UnmarshalLayout(res.Artifacts["json"])
	if err != nil || !gl.IsNodelink() {
		t.Errorf("nodelink json = %+v, %v", gl, err)
	}

	_, err = r.Execute(ctx, Options{InputData: sampleInput(t), VizType: "nodelink", Formats: []string{"png"}})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("nodelink png: err = %v", err)
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	ctx := context.Background()
	data, _ := Decode(sampleInput(t), quote.Sample())
	gl, _ := GenerateLayout(data.Data, Options{Width: 500})
	encoded, _ := graph.MarshalLayout(gl)

	out, err := RenderFromLayoutData(ctx, encoded, data.Data, Options{Formats: []string{"json"}})
	if err != nil {
		t.Fatalf("RenderFromLayoutData() error: %v", err)
	}
	back, _ := graph.UnmarshalLayout(out["json"])
	if !back.Compact || back.Width != 500 {
		t.Errorf("layout not reused: %+v", back)
	}

	if _, err := RenderFromLayoutData(ctx, []byte("{}"), data.Data, Options{}); err == nil {
		t.Error("expected error for empty layout")
	}
}

func TestExampleInputs(t *testing.T) {
	examples := filepath.Join("..", "..", "examples")
	tests := []struct {
		input  string
		source string
		nodes  int
		edges  int
	}{
		{"report.yaml", SourceReport, 11, 10},
		{"graph.json", SourceGraph, 4, 3},
	}

	r := NewRunner(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := r.Execute(context.Background(), Options{
				Input:   filepath.Join(examples, tt.input),
				Quotes:  filepath.Join(examples, "quotes.toml"),
				Formats: []string{"svg"},
			})
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if res.Source != tt.source || res.Stats.NodeCount != tt.nodes || res.Stats.EdgeCount != tt.edges {
				t.Errorf("result = source %s, %d nodes, %d edges", res.Source, res.Stats.NodeCount, res.Stats.EdgeCount)
			}
			if len(res.Issues) != 0 {
				t.Errorf("issues = %v", res.Issues)
			}
		})
	}
}

func TestRunnerSelectsAnyNodeID(t *testing.T) {
	input := []byte(`{"nodes":[
		{"id":"in 1","type":"input","label":"의원"},
		{"id":"정책-1","type":"policy","label":"정책"}
	],"edges":[{"id":"e","source":"in 1","target":"정책-1"}]}`)

	r := NewRunner(nil, nil, nil)
	for _, sel := range []string{"정책-1", "in 1"} {
		res, err := r.Execute(context.Background(), Options{
			InputData: input,
			Selected:  sel,
			Formats:   []string{"svg", "json"},
		})
		if err != nil {
			t.Fatalf("Execute(selected %q) error: %v", sel, err)
		}
		gl, err := graph.UnmarshalLayout(res.Artifacts["json"])
		if err != nil {
			t.Fatalf("UnmarshalLayout() error: %v", err)
		}
		if gl.Selected != sel {
			t.Errorf("exported selection = %q, want %q", gl.Selected, sel)
		}
		if len(res.Artifacts["svg"]) == 0 {
			t.Errorf("selected %q: no svg", sel)
		}
	}
}
