// Package graphio serializes genealogy graphs to and from a JSON wire
// format.
//
// The format lets the build command persist a fetched genealogy and the dot
// command re-render it later without touching the network:
//
//	{
//	  "heads": [18231],
//	  "nodes": [
//	    {"id": 18231, "name": "Carl Friedrich Gauß",
//	     "institution": "Universität Helmstedt", "year": 1799,
//	     "advisors": [57670]}
//	  ]
//	}
//
// Output is deterministic: nodes sorted by id, heads in original order.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mklemetti/geneagraph/pkg/genealogy"
)

// Marshal converts a graph to JSON bytes.
func Marshal(g *genealogy.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a graph as indented JSON to w.
func Write(g *genealogy.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a graph to a JSON file created with 0644 permissions.
func WriteFile(g *genealogy.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a JSON graph from r.
func Read(r io.Reader) (*genealogy.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(data)
}

// ReadFile reads a JSON file and returns the decoded graph.
func ReadFile(path string) (*genealogy.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
