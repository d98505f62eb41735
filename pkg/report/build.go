package report

import (
	"strconv"
	"strings"

	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/quote"
)

// Build turns r into graph data. Nodes are deduplicated by category and
// name, edges by endpoint pair, and both are numbered in order of first
// appearance. Enterprise nodes get the chain's impact description, its
// evidence and the company's quote from book (nil book means no quotes).
// Policy nodes get the chain evidence.
//
// Blank names are skipped together with the edges touching them.
func Build(r Report, book *quote.Book) graph.Data {
	b := newBuilder(book)
	for _, c := range r.Chains {
		in := b.node(graph.CategoryInput, c.Politician)
		pol := b.node(graph.CategoryPolicy, c.Policy)
		sec := b.node(graph.CategorySector, c.Sector)

		b.annotate(pol, "", c.Evidence)
		b.edge(in, pol, "", c.Evidence)
		b.edge(pol, sec, "", c.Evidence)

		for _, company := range c.Companies {
			ent := b.node(graph.CategoryEnterprise, company)
			b.annotate(ent, c.Impact, c.Evidence)
			b.edge(sec, ent, c.Impact, c.Evidence)
		}
	}
	return graph.Data{Nodes: b.nodes, Edges: b.edges}
}

type nodeKey struct {
	cat  graph.Category
	name string
}

type edgeKey struct{ from, to string }

type builder struct {
	book   *quote.Book
	nodes  []graph.Node
	edges  []graph.Edge
	nodeAt map[nodeKey]int
	edgeAt map[edgeKey]int
	counts map[graph.Category]int
}

func newBuilder(book *quote.Book) *builder {
	return &builder{
		book:   book,
		nodeAt: make(map[nodeKey]int),
		edgeAt: make(map[edgeKey]int),
		counts: make(map[graph.Category]int),
	}
}

// node returns the index of the node for (cat, name), creating it on first
// use. It returns -1 for blank names.
func (b *builder) node(cat graph.Category, name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1
	}
	key := nodeKey{cat, name}
	if i, ok := b.nodeAt[key]; ok {
		return i
	}
	b.counts[cat]++
	n := graph.Node{
		ID:       string(cat) + "-" + strconv.Itoa(b.counts[cat]),
		Category: cat,
		Label:    name,
	}
	if cat == graph.CategoryEnterprise {
		if q, ok := b.book.Lookup(name); ok {
			n.Data.Quote = &q
		}
	}
	b.nodes = append(b.nodes, n)
	b.nodeAt[key] = len(b.nodes) - 1
	return len(b.nodes) - 1
}

func (b *builder) annotate(i int, desc string, ev []graph.Evidence) {
	if i < 0 {
		return
	}
	d := &b.nodes[i].Data
	d.Description = appendDescription(d.Description, desc)
	d.Evidence = mergeEvidence(d.Evidence, ev)
}

func (b *builder) edge(from, to int, desc string, ev []graph.Evidence) {
	if from < 0 || to < 0 {
		return
	}
	src, dst := b.nodes[from].ID, b.nodes[to].ID
	key := edgeKey{src, dst}
	if i, ok := b.edgeAt[key]; ok {
		d := &b.edges[i].Data
		d.Description = appendDescription(d.Description, desc)
		d.Evidence = mergeEvidence(d.Evidence, ev)
		return
	}
	b.edges = append(b.edges, graph.Edge{
		ID:     "edge-" + strconv.Itoa(len(b.edges)+1),
		Source: src,
		Target: dst,
		Data: graph.EdgeData{
			Description: strings.TrimSpace(desc),
			Evidence:    mergeEvidence(nil, ev),
		},
	})
	b.edgeAt[key] = len(b.edges) - 1
}

// appendDescription adds desc on a new paragraph unless it is blank or
// already present.
func appendDescription(existing, desc string) string {
	desc = strings.TrimSpace(desc)
	switch {
	case desc == "":
		return existing
	case existing == "":
		return desc
	case strings.Contains(existing, desc):
		return existing
	default:
		return existing + "\n\n" + desc
	}
}

// mergeEvidence appends the citations of add whose URL is not yet in dst.
// Citations without URL are compared by title.
func mergeEvidence(dst, add []graph.Evidence) []graph.Evidence {
	seen := make(map[string]bool, len(dst)+len(add))
	for _, e := range dst {
		seen[evidenceKey(e)] = true
	}
	for _, e := range add {
		k := evidenceKey(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		dst = append(dst, e)
	}
	return dst
}

func evidenceKey(e graph.Evidence) string {
	if e.URL != "" {
		return "u:" + e.URL
	}
	return "t:" + e.Title
}
