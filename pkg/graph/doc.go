// Package graph provides the data model and serialization types for
// influence graphs and their layouts.
//
// This package defines the canonical wire format for influencegraph's data,
// used for input files, cache entries, the preview server and the JSON layout
// export.
//
// # Core Types
//
//   - [Data]: an ordered snapshot of nodes and edges
//   - [Node], [Edge]: graph elements with their tooltip payloads
//   - [Evidence]: a citation (title + URL)
//   - [StockQuote]: optional quote attached to enterprise nodes
//   - [Layout]: serialized node positions for one viewport
//
// # Categories
//
// Every node belongs to one of four fixed lanes, in this order:
//
//	graph.CategoryInput       // "input"      searched politician
//	graph.CategoryPolicy      // "policy"     related policy
//	graph.CategorySector      // "sector"     industry sector
//	graph.CategoryEnterprise  // "enterprise" related company
//
// # Graph Serialization
//
// Graphs use the node-link format of the web front end:
//
//	{
//	  "nodes": [{"id": "input-1", "type": "input", "label": "Lee", "data": {}}],
//	  "edges": [{"id": "edge-1", "source": "input-1", "target": "policy-1", "data": {}}]
//	}
//
// Both JSON and YAML are accepted by [ReadFile]; the format is chosen by
// file extension.
//
// # Integrity
//
// Edge endpoints are expected to reference existing nodes, but nothing here
// enforces it. [Check] reports problems without rejecting the data; renderers
// skip elements they cannot place.
//
// # Concurrency
//
// A [Data] value is treated as immutable once constructed and is safe for
// concurrent reads.
package graph
