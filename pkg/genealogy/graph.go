package genealogy

// Graph stores a genealogy as nodes keyed by id. It enforces id uniqueness,
// assigns synthetic ids to id-less nodes, and tracks the ordered list of
// head nodes that seed rendering.
//
// A Graph only grows: there is no node removal. Use [New] to create one; the
// zero value is not usable.
type Graph struct {
	nodes map[int]*Node
	heads []int

	// nextSyntheticID is handed to the next id-less node, then decremented.
	// Starting at -1 keeps synthetic ids disjoint from real (positive) ones.
	nextSyntheticID int
}

// New creates an empty graph. Optional head nodes are inserted in order; the
// first becomes the implicit head of the graph, the rest are appended as
// additional heads. Fails with *DuplicateNodeError if the seeds collide.
func New(heads ...*Node) (*Graph, error) {
	g := &Graph{
		nodes:           make(map[int]*Node),
		nextSyntheticID: -1,
	}
	for _, h := range heads {
		if err := g.AddNodeObject(h, true); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// HasNode reports whether a node with the given id is present.
func (g *Graph) HasNode(id int) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with the given id. The second return value is false
// when no such node exists; an absent id is an expected condition during
// traversal, not an error.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Nodes returns all nodes in the graph in unspecified order. Callers that
// need determinism must sort; rendering never goes through this accessor.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// Heads returns the ids of the graph's head nodes in insertion order.
// The returned slice is a copy.
func (g *Graph) Heads() []int {
	heads := make([]int, len(g.heads))
	copy(heads, g.heads)
	return heads
}

// AddNode constructs a node from record and its adjacency lists and inserts
// it. See [Graph.AddNodeObject] for the insertion rules.
func (g *Graph) AddNode(record *Record, ancestors, descendants []int, isHead bool) error {
	n, err := NewNode(record, ancestors, descendants)
	if err != nil {
		return err
	}
	return g.AddNodeObject(n, isHead)
}

// AddNodeObject inserts node into the graph.
//
// If the node's id is already present, insertion fails with
// *DuplicateNodeError and the graph is unchanged. If the node has no id, it
// is assigned the next synthetic id. The first node inserted into a head-less
// graph becomes the implicit head; later nodes become heads only when isHead
// is true.
func (g *Graph) AddNodeObject(node *Node, isHead bool) error {
	id, ok := node.ID()
	if ok && g.HasNode(id) {
		return &DuplicateNodeError{ID: id}
	}
	if !ok {
		id = g.nextSyntheticID
		g.nextSyntheticID--
		node.SetID(id)
	}
	g.nodes[id] = node

	if len(g.heads) == 0 || isHead {
		g.heads = append(g.heads, id)
	}
	return nil
}
