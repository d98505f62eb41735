package layout_test

import (
	"fmt"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/layout"
)

func ExampleCompute() {
	nodes := []graph.Node{
		{ID: "lee", Category: graph.CategoryInput},
		{ID: "ubi", Category: graph.CategoryPolicy},
		{ID: "rnd", Category: graph.CategoryPolicy},
	}

	pos := layout.Compute(nodes, layout.Viewport{Width: 1000, Height: 600})
	for _, n := range nodes {
		fmt.Printf("%s (%.0f, %.0f)\n", n.ID, pos[n.ID].X, pos[n.ID].Y)
	}
	// Output:
	// lee (185, 300)
	// ubi (395, 200)
	// rnd (395, 400)
}

func ExampleShorten() {
	end := layout.Shorten(layout.Position{X: 0, Y: 0}, layout.Position{X: 100, Y: 0}, 65)
	fmt.Printf("(%.0f, %.0f)\n", end.X, end.Y)
	// Output: (35, 0)
}
