package scene

import (
	"strconv"

	"github.com/goccy/go-json"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// ObjectPlaceholder is what [Stringify] returns for values that cannot be
// encoded.
const ObjectPlaceholder = "[Object]"

// Truncate cuts text to at most limit characters and appends [Ellipsis] if
// anything was cut. The cut counts runes and ignores word boundaries.
func Truncate(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i] + Ellipsis
		}
		n++
	}
	return text
}

// Stringify renders an arbitrary payload value as display text. Scalars
// print as themselves, nil prints as "", and everything else is JSON
// encoded, falling back to [ObjectPlaceholder] when encoding fails.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ObjectPlaceholder
	}
	return string(data)
}
