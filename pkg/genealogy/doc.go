// Package genealogy stores an academic genealogy as a directed graph and
// serializes it to the Graphviz dot language.
//
// # Model
//
// A [Record] describes one mathematician: a required name plus optional
// institution, graduation year, and Math Genealogy Project id. A [Node] wraps
// a Record with the ids of its genealogical ancestors (advisors) and
// descendants (students). A [Graph] owns nodes keyed by id and tracks the
// ordered set of head nodes, the entry points of interest.
//
// Adjacency lists may reference ids with no corresponding node in the graph.
// These frontier references are normal: a genealogy is fetched incrementally
// and always has an unexplored edge. The renderer skips them silently.
//
// Nodes without a real id receive a synthetic id at insertion time. Synthetic
// ids are negative and strictly decreasing (-1, -2, ...), so they can never
// collide with the positive ids assigned by the Math Genealogy Project.
//
// # Rendering
//
// [Graph.GenerateDot] walks the graph depth-first from the heads and emits a
// dot document: one definition line per visited node, then one edge line per
// advisor relation whose endpoints are both present. Each node is emitted at
// most once; the visited mark lives on the Node and is never reset, so a
// second GenerateDot call on the same Graph returns "". Build a fresh Graph
// to re-render.
//
// # Concurrency
//
// Graph is not safe for concurrent use. Build and render it from a single
// goroutine.
package genealogy
