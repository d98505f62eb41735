// Package report reads analysis reports and builds influence graphs from
// them.
//
// An analysis report lists influence chains. Each chain links one
// politician to one policy, one industry sector and one or more companies,
// with an impact description and supporting evidence:
//
//	{
//	  "report_title": "...",
//	  "time_range": "2018–2025",
//	  "influence_chains": [{
//	    "politician": "...",
//	    "policy": "...",
//	    "industry_or_sector": "...",
//	    "companies": ["..."],
//	    "impact_description": "...",
//	    "evidence": [{"source_title": "...", "url": "..."}]
//	  }],
//	  "notes": "..."
//	}
//
// [Build] folds the chains into a graph with one node per distinct name and
// category, numbered in order of first appearance (input-1, policy-1, ...),
// and one edge per distinct endpoint pair. Quotes from a [quote.Book] are
// attached to enterprise nodes.
//
// Reports are validated with go-playground/validator before building.
// Evidence URLs are carried as-is and never validated.
//
// [quote.Book]: github.com/matzehuels/influencegraph/pkg/quote.Book
package report
