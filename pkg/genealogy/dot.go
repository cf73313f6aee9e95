package genealogy

import (
	"bytes"
	"fmt"
)

// dotPreamble opens every rendered document: a directed graph with plaintext
// node labels and bold edges, declared UTF-8 for non-ASCII names.
const dotPreamble = `digraph genealogy {
    graph [charset="utf-8"];
    node [shape=plaintext];
    edge [style=bold];

`

// GenerateDot serializes the graph to Graphviz dot text.
//
// The traversal is depth-first over an explicit stack seeded with the head
// ids in order. Popping the top of the stack means the last head, and the
// last-pushed ancestor of each node, is visited first; downstream output is
// byte-compared against this ordering, so it is a contract, not an artifact.
//
// For each unvisited node popped from the stack, a definition line is
// emitted and, when requested, its ancestor and descendant ids are pushed.
// Ids with no node in the graph are dropped silently; that is how references
// to never-fetched mathematicians vanish from the output. Edge lines are
// accumulated separately, in each node's stored ancestor order, and appended
// after all definition lines.
//
// Visited marks persist on the nodes, so a second call on the same graph
// finds nothing left to emit and returns "". Callers that need to render
// again must rebuild the graph.
func (g *Graph) GenerateDot(includeAncestors, includeDescendants bool) string {
	if len(g.heads) == 0 {
		return ""
	}

	stack := make([]int, len(g.heads))
	copy(stack, g.heads)

	var body, edges bytes.Buffer
	body.WriteString(dotPreamble)

	emitted := 0
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node, ok := g.nodes[id]
		if !ok {
			continue
		}
		if node.visited {
			continue
		}
		node.visited = true
		emitted++

		if includeAncestors {
			stack = append(stack, node.Ancestors...)
		}
		if includeDescendants {
			stack = append(stack, node.Descendants...)
		}

		fmt.Fprintf(&body, "    %d [label=\"%s\"];\n", id, node.Label())

		for _, ancestor := range node.Ancestors {
			if g.HasNode(ancestor) {
				fmt.Fprintf(&edges, "\n    %d -> %d;", ancestor, id)
			}
		}
	}

	if emitted == 0 {
		return ""
	}

	body.Write(edges.Bytes())
	if edges.Len() > 0 {
		body.WriteString("\n")
	}
	body.WriteString("}\n")
	return body.String()
}
