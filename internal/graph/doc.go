// Package graph implements the relational index: a Neo4j property graph of
// Memory nodes joined by typed edges.
//
// Like the vector index this is a shadow store: optional at startup,
// best-effort at runtime, and rebuildable from the lexical index.
package graph
