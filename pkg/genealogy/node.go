package genealogy

// Node is one vertex of the genealogy graph: a [Record] plus the ids of its
// ancestors and descendants. The adjacency ids may reference mathematicians
// that were never fetched; such frontier references are skipped during
// rendering rather than treated as errors.
//
// A Node belongs to exactly one [Graph] after insertion and is never removed.
type Node struct {
	// Record is the mathematician this node represents. Owned exclusively
	// by the node.
	Record *Record

	// Ancestors lists advisor ids in their stored order. The order is part
	// of the rendering contract: edge lines are emitted in this order.
	Ancestors []int

	// Descendants lists student ids in their stored order.
	Descendants []int

	// visited marks the node as emitted by GenerateDot. The transition is
	// one-way; no reset exists.
	visited bool
}

// NewNode creates a Node wrapping record with the given adjacency lists.
// Returns a *ValidationError if record is nil. The slices are retained, not
// copied; nil slices are valid and mean "no known relations".
func NewNode(record *Record, ancestors, descendants []int) (*Node, error) {
	if record == nil {
		return nil, &ValidationError{Field: "record", Reason: "must not be nil"}
	}
	return &Node{Record: record, Ancestors: ancestors, Descendants: descendants}, nil
}

// ID returns the id of the underlying record and whether one is assigned.
func (n *Node) ID() (int, bool) { return n.Record.ID() }

// SetID assigns the underlying record's id. The graph uses this to hand out
// synthetic ids at insertion time.
func (n *Node) SetID(id int) { n.Record.setID(id) }

// AddAncestor appends an advisor id to the ancestor list.
func (n *Node) AddAncestor(id int) {
	n.Ancestors = append(n.Ancestors, id)
}

// Equal reports whether two nodes wrap records with the same id.
func (n *Node) Equal(other *Node) bool {
	return n.Record.Equal(other.Record)
}

// Compare orders two nodes by their record ids.
func (n *Node) Compare(other *Node) int {
	return n.Record.Compare(other.Record)
}

// Label renders the node's record as a dot label body.
func (n *Node) Label() string { return n.Record.Label() }
