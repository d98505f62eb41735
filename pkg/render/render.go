package render

import (
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/influencegraph/pkg/errors"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)

// Formats lists all formats in their canonical order.
var Formats = []Format{FormatSVG, FormatHTML, FormatPNG, FormatJSON}

// ParseFormat parses a format name, ignoring case and a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q (want svg, html, png or json)", s)
}

// ParseFormats parses a list of format names, dropping duplicates.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := ParseFormat(part)
			if err != nil {
				return nil, err
			}
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// Ext returns the file extension of f including the dot.
func (f Format) Ext() string { return "." + string(f) }

// idNamespace scopes element ids so they never collide with other documents
// that derive ids the same way.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/influencegraph"))

// ElementID returns a DOM-safe id for a node or edge id. Ids are
// deterministic: the same prefix and id always produce the same result,
// whatever characters the id contains.
func ElementID(prefix, id string) string {
	return prefix + "-" + uuid.NewSHA1(idNamespace, []byte(id)).String()
}
