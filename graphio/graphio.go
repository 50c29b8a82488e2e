// Package graphio persists graphs as JSON documents so topologies can
// be saved, inspected, and restored across simulator runs.
//
// The document stores the node count, the link list in ascending
// (a, b) order, and, when positions are enabled, one [x, y, z]
// kilometer triple per node. Node ids are dense, so the node count
// plus the link list reconstruct the topology exactly.
package graphio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/graphnet/routesim/core"
)

// ErrMalformed indicates a document whose links or positions do not fit
// its declared node count.
var ErrMalformed = errors.New("graphio: malformed graph document")

// document is the JSON layout of a stored graph.
type document struct {
	Nodes     int          `json:"nodes"`
	Links     [][2]uint32  `json:"links"`
	Positions [][3]float64 `json:"positions,omitempty"`
}

// Write encodes g onto w.
func Write(g *core.Graph, w io.Writer) error {
	doc := document{
		Nodes: g.NodeCount(),
		Links: make([][2]uint32, 0, g.LinkCount()),
	}
	g.EachLink(func(a, b core.NodeID) {
		doc.Links = append(doc.Links, [2]uint32{uint32(a), uint32(b)})
	})
	if g.HasPositions() {
		doc.Positions = make([][3]float64, 0, g.NodeCount())
		for _, p := range g.Positions() {
			doc.Positions = append(doc.Positions, [3]float64{p.X, p.Y, p.Z})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// Read decodes a document from r into g, replacing its entire content.
// On a decode or validation error g is left cleared rather than half
// restored.
func Read(g *core.Graph, r io.Reader) error {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("graphio: decode: %w", err)
	}
	if doc.Nodes < 0 {
		return fmt.Errorf("%w: negative node count %d", ErrMalformed, doc.Nodes)
	}
	if doc.Positions != nil && len(doc.Positions) != doc.Nodes {
		return fmt.Errorf("%w: %d positions for %d nodes", ErrMalformed, len(doc.Positions), doc.Nodes)
	}

	g.Clear()
	g.AddNodes(doc.Nodes)
	for _, l := range doc.Links {
		if err := g.AddLink(core.NodeID(l[0]), core.NodeID(l[1])); err != nil {
			g.Clear()

			return fmt.Errorf("%w: link %d-%d: %v", ErrMalformed, l[0], l[1], err)
		}
	}
	if doc.Positions != nil {
		g.EnablePositions()
		for i, p := range doc.Positions {
			_ = g.SetPosition(core.NodeID(i), r3.Vec{X: p[0], Y: p[1], Z: p[2]})
		}
	}

	return nil
}

// Export writes g to the file at path, creating or truncating it.
func Export(g *core.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("graphio: %w", err)
	}
	if err := Write(g, f); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

// Import replaces g with the document stored at path.
func Import(g *core.Graph, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("graphio: %w", err)
	}
	defer f.Close()

	return Read(g, f)
}
