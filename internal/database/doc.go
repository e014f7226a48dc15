// Package database implements the lexical index: an embedded SQLite
// database with FTS5 full-text search over memory content, person, and
// project.
//
// The index lives at <store-root>/index.db and mirrors every canonical
// long-term memory file. It is authoritative for existence checks: a memory
// absent from this index is treated as forgotten even if shadow-store
// entries linger.
package database
