// Package pkg provides the core libraries for influencegraph.
//
// # Overview
//
// influencegraph draws the connections between a search input, the policies
// it touches, the industry sectors those policies affect and the companies
// in each sector. Nodes sit in four fixed lanes; stock quotes and cited
// evidence hang off nodes and edges as tooltips. The pkg directory is
// organized into these areas:
//
//  1. [graph] - Graph data, layout serialization and integrity checks
//  2. [report] - Analysis reports and their conversion to graph data
//  3. [quote] - Static stock quote book, formatting and the lookup response
//  4. [layout] - Lane layout and the responsive viewport
//  5. [scene] - Selection state, tooltips and draw lists
//  6. [render] - Output formats and sinks (lanes, Graphviz node-link)
//  7. [pipeline] - Orchestration (load → layout → render) with caching
//  8. [cache] - File, Redis and null cache backends
//
// # Architecture
//
// The typical data flow:
//
//	Analysis report / graph data (JSON or YAML)
//	         ↓
//	    [report] package (chains → nodes and edges, quotes from [quote])
//	         ↓
//	    [layout] package (lane positions for the viewport)
//	         ↓
//	    [scene] package (selection, highlighting, tooltips)
//	         ↓
//	    [render] sinks → SVG/HTML/PNG/JSON output
//
// # Quick Start
//
// Render the built-in sample report:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/influencegraph/pkg/pipeline"
//	    "github.com/matzehuels/influencegraph/pkg/report"
//	)
//
//	data, _ := report.Marshal(report.Sample())
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    InputData: data,
//	    Formats:   []string{"svg", "html"},
//	})
//
// # Supporting Packages
//
// [errors] - Coded errors mapped to HTTP statuses and user messages.
//
// [observability] - Hooks for pipeline, cache and HTTP events, with a
// Prometheus implementation.
//
// [buildinfo] - Version information set at build time.
//
// [graph]: github.com/matzehuels/influencegraph/pkg/graph
// [report]: github.com/matzehuels/influencegraph/pkg/report
// [quote]: github.com/matzehuels/influencegraph/pkg/quote
// [layout]: github.com/matzehuels/influencegraph/pkg/layout
// [scene]: github.com/matzehuels/influencegraph/pkg/scene
// [render]: github.com/matzehuels/influencegraph/pkg/render
// [pipeline]: github.com/matzehuels/influencegraph/pkg/pipeline
// [cache]: github.com/matzehuels/influencegraph/pkg/cache
// [errors]: github.com/matzehuels/influencegraph/pkg/errors
// [observability]: github.com/matzehuels/influencegraph/pkg/observability
// [buildinfo]: github.com/matzehuels/influencegraph/pkg/buildinfo
package pkg
