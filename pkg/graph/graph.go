package graph

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal converts graph data to indented JSON bytes.
func Marshal(d Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into graph data.
func Unmarshal(data []byte) (Data, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes graph data as JSON to w.
func Write(d Data, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes JSON graph data from r.
func Read(r io.Reader) (Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Data{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// ReadYAML decodes YAML graph data from r.
func ReadYAML(r io.Reader) (Data, error) {
	var d Data
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return Data{}, fmt.Errorf("decode yaml: %w", err)
	}
	return d, nil
}

// ReadFile reads graph data from a .json, .yaml or .yml file.
// Files without a recognized extension are decoded as JSON.
func ReadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if IsYAMLPath(path) {
		return ReadYAML(f)
	}
	return Read(f)
}

// WriteFile writes graph data to a JSON file with 0644 permissions.
func WriteFile(d Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// IsYAMLPath reports whether path has a YAML extension.
func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
