// Package vector implements the semantic index: a Qdrant collection of
// 384-dimension cosine embeddings keyed by memory id.
//
// The index is a shadow store. It is optional at startup (unset or
// placeholder QDRANT_URL disables it) and best-effort at runtime; a memory
// that never reaches Qdrant is still fully recallable through the lexical
// index and the markdown grep fallback.
package vector
