package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Category classifies a node into one of the four layout lanes.
type Category string

// Node categories.
const (
	CategoryInput      Category = "input"
	CategoryPolicy     Category = "policy"
	CategorySector     Category = "sector"
	CategoryEnterprise Category = "enterprise"
)

// Categories lists the lanes in layout order.
var Categories = []Category{
	CategoryInput,
	CategoryPolicy,
	CategorySector,
	CategoryEnterprise,
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	return c.Lane() >= 0
}

// Lane returns the zero-based lane index of c, or -1 for unknown categories.
func (c Category) Lane() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

// Quote directions.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Visualization types.
const (
	VizTypeLanes    = "lanes"
	VizTypeNodelink = "nodelink"
)

// =============================================================================
// Data - Graph Snapshot
// =============================================================================

// Data is a complete graph snapshot: two ordered sequences supplied wholesale
// by the producer. Order is significant; it drives within-lane placement.
type Data struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node returns the first node with the given id.
func (d Data) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodesIn returns the nodes of category c in input order.
func (d Data) NodesIn(c Category) []Node {
	var out []Node
	for _, n := range d.Nodes {
		if n.Category == c {
			out = append(out, n)
		}
	}
	return out
}

// =============================================================================
// Node, Edge - Graph Elements
// =============================================================================

// Node is a labeled element of the influence graph.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Category Category `json:"type" yaml:"type"`
	Label    string   `json:"label" yaml:"label"`
	Data     NodeData `json:"data" yaml:"data"`
}

// NodeData is the tooltip payload attached to a node.
type NodeData struct {
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Evidence    []Evidence  `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Quote       *StockQuote `json:"stockData,omitempty" yaml:"stockData,omitempty"`
}

// Edge is a directed influence relation between two nodes.
type Edge struct {
	ID     string   `json:"id" yaml:"id"`
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Data   EdgeData `json:"data" yaml:"data"`
}

// EdgeData is the tooltip payload attached to an edge.
type EdgeData struct {
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Evidence    []Evidence `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// HasEvidence reports whether the edge carries at least one citation.
func (e Edge) HasEvidence() bool { return len(e.Data.Evidence) > 0 }

// Evidence is a citation substantiating a node or relation.
// The URL is carried as-is; it is never validated.
type Evidence struct {
	Title string `json:"source_title" yaml:"source_title" toml:"source_title"`
	URL   string `json:"url" yaml:"url" toml:"url"`
}

// StockQuote is static market data attached to enterprise nodes.
type StockQuote struct {
	Symbol        string  `json:"symbol" yaml:"symbol" toml:"symbol"`
	Price         float64 `json:"price" yaml:"price" toml:"price"`
	Change        float64 `json:"change" yaml:"change" toml:"change"`
	ChangePercent float64 `json:"changePercent" yaml:"changePercent" toml:"change_percent"`
}

// Up reports whether the quote gets "up" styling. Only a strictly positive
// change counts; a zero change is down.
func (q StockQuote) Up() bool { return q.Change > 0 }

// Direction returns DirectionUp or DirectionDown.
func (q StockQuote) Direction() string {
	if q.Up() {
		return DirectionUp
	}
	return DirectionDown
}
