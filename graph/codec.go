package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// FormatVersion is the graph file version this build reads and writes
const FormatVersion = 1

// ErrUnsupportedVersion is returned for graph files from another format version
var ErrUnsupportedVersion = errors.New("unsupported graph version")

type fileFormat struct {
	Version int `json:"version"`
	*Graph
}

// Load decodes a graph and rebuilds its variable table.
// Structural consistency is not checked here; lowering reports dangling IDs.
func Load(r io.Reader) (*Graph, error) {
	f := fileFormat{Graph: &Graph{}}
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	if f.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, f.Version, FormatVersion)
	}
	f.Graph.RefreshVariables()
	return f.Graph, nil
}

// Save encodes the graph as indented JSON
func (g *Graph) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fileFormat{Version: FormatVersion, Graph: g}); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// LoadFile reads a graph from path
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// SaveFile writes the graph to path, replacing any existing file
func (g *Graph) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
