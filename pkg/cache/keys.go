package cache

// Key prefixes, also used as the key type reported to cache hooks.
const (
	KeyTypeGraph    = "graph"
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	GraphKey(inputHash string, opts GraphKeyOpts) string
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts holds the inputs, besides the file content, that change the
// built graph.
type GraphKeyOpts struct {
	QuotesHash string `json:"quotes_hash,omitempty"`
	FromReport bool   `json:"from_report,omitempty"`
}

// LayoutKeyOpts holds the inputs that change node positions.
type LayoutKeyOpts struct {
	VizType string  `json:"viz_type"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Compact bool    `json:"compact"`
}

// ArtifactKeyOpts holds the inputs that change rendered bytes for a layout.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Selected string  `json:"selected,omitempty"`
	Static   bool    `json:"static,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Title    string  `json:"title,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer produces "type:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey returns the key of a built graph.
func (DefaultKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return hashKey(KeyTypeGraph, inputHash, opts)
}

// LayoutKey returns the key of a computed layout.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, graphHash, opts)
}

// ArtifactKey returns the key of a rendered artifact.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, layoutHash, opts)
}

// KeyType returns the type prefix of a key built by DefaultKeyer, or
// "other" for foreign keys. Namespace prefixes such as "ig:" are skipped.
func KeyType(key string) string {
	for _, t := range []string{KeyTypeGraph, KeyTypeLayout, KeyTypeArtifact} {
		if hasTypePrefix(key, t) {
			return t
		}
	}
	return "other"
}

func hasTypePrefix(key, t string) bool {
	// keys end in ":<64 hex chars>"; the type sits right before it
	const tail = 1 + 64
	if len(key) < len(t)+tail {
		return false
	}
	head := key[:len(key)-tail]
	if len(head) < len(t) || head[len(head)-len(t):] != t {
		return false
	}
	return len(head) == len(t) || head[len(head)-len(t)-1] == ':'
}
