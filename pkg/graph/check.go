package graph

import "fmt"

// Issue describes a referential or classification problem found by Check.
type Issue struct {
	Kind    string // one of the Issue* constants
	ID      string // offending node or edge id
	Message string
}

// Issue kinds.
const (
	IssueDuplicateNode   = "duplicate_node"
	IssueDuplicateEdge   = "duplicate_edge"
	IssueUnknownCategory = "unknown_category"
	IssueDanglingEdge    = "dangling_edge"
)

func (i Issue) String() string { return fmt.Sprintf("%s %s: %s", i.Kind, i.ID, i.Message) }

// Check reports integrity problems in d without rejecting it.
//
// Ids are assumed globally unique and edges referentially consistent, but the
// data is rendered regardless: dangling edges and unplaceable nodes are
// skipped at draw time. Check exists so callers can log what will be dropped.
func Check(d Data) []Issue {
	var issues []Issue

	nodes := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if nodes[n.ID] {
			issues = append(issues, Issue{IssueDuplicateNode, n.ID, "node id is not unique"})
		}
		nodes[n.ID] = true
		if !n.Category.Valid() {
			issues = append(issues, Issue{IssueUnknownCategory, n.ID, fmt.Sprintf("unknown category %q", n.Category)})
		}
	}

	edges := make(map[string]bool, len(d.Edges))
	for _, e := range d.Edges {
		if edges[e.ID] {
			issues = append(issues, Issue{IssueDuplicateEdge, e.ID, "edge id is not unique"})
		}
		edges[e.ID] = true
		if !nodes[e.Source] {
			issues = append(issues, Issue{IssueDanglingEdge, e.ID, fmt.Sprintf("source %q not found", e.Source)})
		}
		if !nodes[e.Target] {
			issues = append(issues, Issue{IssueDanglingEdge, e.ID, fmt.Sprintf("target %q not found", e.Target)})
		}
	}

	return issues
}
