package scene

import (
	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/quote"
)

// Citation links open in a new browsing context without referrer.
const (
	LinkTarget = "_blank"
	LinkRel    = "noopener noreferrer"
)

// Tooltip captions.
const (
	PriceLabel         = "현재가"
	EdgeTitle          = "연결 관계"
	EdgeEvidence       = "근거"
	PolicyEvidence     = "관련 근거"
	DefaultEvidenceCap = "출처"
)

// Caption returns the display caption of category c.
func Caption(c graph.Category) string {
	switch c {
	case graph.CategoryInput:
		return "검색 입력"
	case graph.CategoryPolicy:
		return "관련 정책"
	case graph.CategorySector:
		return "산업 분야"
	case graph.CategoryEnterprise:
		return "관련 기업"
	default:
		return ""
	}
}

// NodeTooltip is the hover content of a node. Empty sections are omitted
// when drawn.
type NodeTooltip struct {
	Title           string
	Caption         string
	Quote           *quote.View
	Description     string
	EvidenceHeading string
	Evidence        []graph.Evidence
}

// HasQuote reports whether the tooltip shows a quote block.
func (t NodeTooltip) HasQuote() bool { return t.Quote != nil }

// EdgeTooltip is the hover content of an edge's evidence marker.
type EdgeTooltip struct {
	Title           string
	Description     string
	EvidenceHeading string
	Evidence        []graph.Evidence
}

// NodeTooltipFor builds the tooltip of n.
func NodeTooltipFor(n graph.Node) NodeTooltip {
	t := NodeTooltip{
		Title:       n.Label,
		Caption:     Caption(n.Category),
		Description: n.Data.Description,
		Evidence:    n.Data.Evidence,
	}
	if n.Data.Quote != nil {
		v := quote.Format(*n.Data.Quote)
		t.Quote = &v
	}
	if len(t.Evidence) > 0 {
		t.EvidenceHeading = DefaultEvidenceCap
		if n.Category == graph.CategoryPolicy {
			t.EvidenceHeading = PolicyEvidence
		}
	}
	return t
}

// EdgeTooltipFor builds the tooltip of e.
func EdgeTooltipFor(e graph.Edge) EdgeTooltip {
	t := EdgeTooltip{
		Title:       EdgeTitle,
		Description: e.Data.Description,
		Evidence:    e.Data.Evidence,
	}
	if len(t.Evidence) > 0 {
		t.EvidenceHeading = EdgeEvidence
	}
	return t
}
