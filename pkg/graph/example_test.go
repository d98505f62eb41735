package graph_test

import (
	"fmt"

	"github.com/matzehuels/influencegraph/pkg/graph"
)

func ExampleCheck() {
	d := graph.Data{
		Nodes: []graph.Node{
			{ID: "input-1", Category: graph.CategoryInput, Label: "Lee Jae-myung"},
			{ID: "policy-1", Category: graph.CategoryPolicy, Label: "UBI pilot"},
		},
		Edges: []graph.Edge{
			{ID: "edge-1", Source: "input-1", Target: "policy-1"},
			{ID: "edge-2", Source: "policy-1", Target: "sector-9"},
		},
	}

	for _, issue := range graph.Check(d) {
		fmt.Println(issue)
	}
	// Output:
	// dangling_edge edge-2: target "sector-9" not found
}

func ExampleStockQuote_Direction() {
	for _, change := range []float64{5500, 0, -350} {
		q := graph.StockQuote{Change: change}
		fmt.Println(change, q.Direction())
	}
	// Output:
	// 5500 up
	// 0 down
	// -350 down
}
