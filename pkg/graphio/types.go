package graphio

import (
	"fmt"
	"slices"

	"github.com/mklemetti/geneagraph/pkg/genealogy"
)

// Graph is the canonical serialization format for genealogy graphs.
// It is designed for round-trip fidelity: export followed by import yields a
// graph that renders identically.
type Graph struct {
	// Heads lists head ids in their original order; traversal order
	// depends on it, so it is preserved verbatim.
	Heads []int  `json:"heads"`
	Nodes []Node `json:"nodes"`
}

// Node is the wire form of one mathematician and their relations.
// Institution and Year use pointers so that "absent" and "zero value"
// survive the round trip as distinct states.
type Node struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Institution *string `json:"institution,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Advisors    []int   `json:"advisors,omitempty"`
	Students    []int   `json:"students,omitempty"`
}

// FromGraph converts an in-memory graph to its serialization format.
// Nodes are sorted by id for deterministic output; head order is kept as-is.
func FromGraph(g *genealogy.Graph) Graph {
	nodes := g.Nodes()
	slices.SortFunc(nodes, (*genealogy.Node).Compare)

	out := Graph{
		Heads: g.Heads(),
		Nodes: make([]Node, len(nodes)),
	}
	for i, n := range nodes {
		out.Nodes[i] = nodeFromGraph(n)
	}
	return out
}

// ToGraph reconstructs an in-memory graph from its serialization format.
// Heads are inserted first, in order, so the first head is again the
// graph's implicit head; remaining nodes follow in file order.
func ToGraph(gj Graph) (*genealogy.Graph, error) {
	g, err := genealogy.New()
	if err != nil {
		return nil, err
	}

	heads := make(map[int]bool, len(gj.Heads))
	for _, id := range gj.Heads {
		heads[id] = true
	}
	byID := make(map[int]Node, len(gj.Nodes))
	for _, nj := range gj.Nodes {
		byID[nj.ID] = nj
	}

	insert := func(nj Node, isHead bool) error {
		opts := []genealogy.RecordOption{genealogy.WithID(nj.ID)}
		if nj.Institution != nil {
			opts = append(opts, genealogy.WithInstitution(*nj.Institution))
		}
		if nj.Year != nil {
			opts = append(opts, genealogy.WithYear(*nj.Year))
		}
		record, err := genealogy.NewRecord(nj.Name, opts...)
		if err != nil {
			return fmt.Errorf("node %d: %w", nj.ID, err)
		}
		if err := g.AddNode(record, nj.Advisors, nj.Students, isHead); err != nil {
			return fmt.Errorf("add node %d: %w", nj.ID, err)
		}
		return nil
	}

	for _, id := range gj.Heads {
		nj, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("head %d has no node entry", id)
		}
		if err := insert(nj, true); err != nil {
			return nil, err
		}
	}
	for _, nj := range gj.Nodes {
		if heads[nj.ID] {
			continue
		}
		if err := insert(nj, false); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func nodeFromGraph(n *genealogy.Node) Node {
	id, _ := n.ID()
	nj := Node{
		ID:       id,
		Name:     n.Record.Name(),
		Advisors: n.Ancestors,
		Students: n.Descendants,
	}
	if n.Record.HasInstitution() {
		inst := n.Record.Institution()
		nj.Institution = &inst
	}
	if n.Record.HasYear() {
		year := n.Record.Year()
		nj.Year = &year
	}
	return nj
}
