package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/influencegraph/pkg/errors"
	"github.com/matzehuels/influencegraph/pkg/graph"
)

// Report is an analysis report.
type Report struct {
	Title     string  `json:"report_title" yaml:"report_title" validate:"required"`
	TimeRange string  `json:"time_range" yaml:"time_range"`
	Chains    []Chain `json:"influence_chains" yaml:"influence_chains" validate:"required,min=1,dive"`
	Notes     string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Chain is one politician → policy → sector → companies relation.
type Chain struct {
	Politician string           `json:"politician" yaml:"politician" validate:"required"`
	Policy     string           `json:"policy" yaml:"policy" validate:"required"`
	Sector     string           `json:"industry_or_sector" yaml:"industry_or_sector" validate:"required"`
	Companies  []string         `json:"companies" yaml:"companies" validate:"required,min=1,dive,required"`
	Impact     string           `json:"impact_description" yaml:"impact_description"`
	Evidence   []graph.Evidence `json:"evidence" yaml:"evidence"`
}

// Decode parses a report from JSON or YAML. Input starting with '{' is
// treated as JSON.
func Decode(data []byte) (Report, error) {
	var r Report
	var err error
	if isJSON(data) {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode report")
	}
	return r, nil
}

// ReadFile reads and validates a report file.
func ReadFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Report{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Report{}, fmt.Errorf("read %s: %w", path, err)
	}
	r, err := Decode(data)
	if err != nil {
		return Report{}, err
	}
	if err := Validate(r); err != nil {
		return Report{}, err
	}
	return r, nil
}

// Marshal encodes r as indented JSON.
func Marshal(r Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// IsReport reports whether data looks like an analysis report rather than
// graph data, i.e. whether it has a top-level "influence_chains" key.
func IsReport(data []byte) bool {
	var probe map[string]any
	if isJSON(data) {
		if json.Unmarshal(data, &probe) != nil {
			return false
		}
	} else if yaml.Unmarshal(data, &probe) != nil {
		return false
	}
	_, ok := probe["influence_chains"]
	return ok
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	return len(trimmed) > 0 && trimmed[0] == '{'
}
