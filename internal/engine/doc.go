// Package engine coordinates the six memory operations across the four
// stores: the canonical markdown tree, the lexical index, the vector index,
// and the relation graph.
//
// Writes fan out in a fixed order: journal append, long-term file, lexical
// upsert, then best-effort vector and graph projection. The canonical tree
// and the lexical index fail loudly; the shadow stores never fail an
// operation. Recall fuses all backends, de-duplicates by memory id, and
// falls back to a filesystem grep when every index comes back empty.
package engine
