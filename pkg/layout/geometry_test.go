package layout

import "testing"

func TestShorten(t *testing.T) {
	tests := []struct {
		name     string
		src, dst Position
		radius   float64
		want     Position
	}{
		{"trims to boundary", Position{0, 0}, Position{100, 0}, 65, Position{35, 0}},
		{"short edge keeps target", Position{0, 0}, Position{50, 0}, 65, Position{50, 0}},
		{"length equal to radius keeps target", Position{0, 0}, Position{65, 0}, 65, Position{65, 0}},
		{"vertical", Position{10, 10}, Position{10, 110}, 45, Position{10, 65}},
		{"diagonal 3-4-5", Position{0, 0}, Position{300, 400}, 250, Position{150, 200}},
		{"coincident", Position{5, 5}, Position{5, 5}, 65, Position{5, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shorten(tt.src, tt.dst, tt.radius)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Shorten = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShortenStopsRadiusShort(t *testing.T) {
	src, dst := Position{80, 300}, Position{395, 150}
	end := Shorten(src, dst, NodeRadiusNormal)
	if d := Distance(end, dst); !near(d, NodeRadiusNormal) {
		t.Errorf("distance from end to target = %g, want %g", d, NodeRadiusNormal)
	}
}

func TestNodeRadius(t *testing.T) {
	if NodeRadius(false) != 65 || NodeRadius(true) != 45 {
		t.Errorf("NodeRadius = %g/%g, want 65/45", NodeRadius(false), NodeRadius(true))
	}
}

func TestMidpoint(t *testing.T) {
	got := Midpoint(Position{0, 0}, Position{100, 50})
	if got != (Position{50, 25}) {
		t.Errorf("Midpoint = %+v", got)
	}
}
