// Package markdown implements the canonical store: a filesystem tree of
// markdown files that is the source of truth for all memories.
//
// Layout under the store root:
//
//	journal/YYYY-MM-DD.md          append-only per day
//	long-term/<category>/<slug>.md one file per memory
//	digests/<iso-week>.md          weekly summaries
//	archive/<memory-id>.md         forgotten memories
//	archive/journal/YYYY-MM-DD.md  consumed journals
//	archive/identity/YYYY-MM-DD.md rotated identity cards
//	identity.md                    current identity
//
// All I/O failures surface to the caller; this package never swallows a
// write error.
package markdown
