package genealogy

import "fmt"

// ValidationError is returned by constructors when a field value violates a
// constraint the type system cannot express (for example an empty name).
type ValidationError struct {
	Field  string // Name of the offending field
	Reason string // Human-readable constraint description
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateNodeError is returned by [Graph.AddNode] and [Graph.AddNodeObject]
// when a node's resolved id is already present in the graph. The insert has
// no effect in that case.
type DuplicateNodeError struct {
	ID int // The colliding id
}

// Error implements the error interface.
func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node with id %d already exists", e.ID)
}
