package errors

import (
	"strings"
	"unicode"
)

const maxNameLength = 256

// ValidateName validates a free-text name used as a lookup key, such as a
// company name in a stock-price request. Blank names are rejected, as are
// names that fail the node id checks.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}
	return checkText(ErrCodeInvalidName, "name", name)
}

// ValidateNodeID validates a node identifier received from outside, e.g. a
// selection query parameter. Node ids are arbitrary strings, so only the
// length and control characters are checked. An empty id means no
// selection.
func ValidateNodeID(id string) error {
	if id == "" {
		return nil
	}
	return checkText(ErrCodeInvalidInput, "node id", id)
}

func checkText(code Code, what, s string) error {
	if len(s) > maxNameLength {
		return New(code, "%s too long (max %d characters)", what, maxNameLength)
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return New(code, "%s contains control characters", what)
	}
	return nil
}
