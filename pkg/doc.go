// Package pkg provides the core libraries for geneagraph genealogy visualization.
//
// # Overview
//
// Geneagraph builds academic genealogy graphs from the Mathematics Genealogy
// Project and renders them with Graphviz. The pkg directory is organized into
// these areas:
//
//  1. [genealogy] - Domain model (records, nodes, graphs, dot generation)
//  2. [mathgenealogy] - Record fetching, page parsing, and graph resolution
//  3. [cache] - Record caching backends (file, redis, null)
//  4. [graphio] - JSON serialization of graphs
//  5. [render] - In-process Graphviz rendering
//
// # Architecture
//
// The typical data flow through geneagraph:
//
//	Math Genealogy Project
//	         ↓
//	mathgenealogy.Client (fetch + cache)
//	         ↓
//	mathgenealogy.Resolver (crawl advisor/student links)
//	         ↓
//	genealogy.Graph (domain model)
//	         ↓
//	GenerateDot → render.Render (svg/png/jpg)
//
// Supporting packages: [config] for TOML configuration, [errors] for coded
// errors, [httputil] for retries, [observability] for instrumentation hooks,
// and [buildinfo] for version stamping.
package pkg
