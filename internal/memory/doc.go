// Package memory defines the core data model: memories, write gates,
// decay classes, journal entries, and identity cards.
//
// Every memory passes a write gate at creation time. The gate declares why
// the memory was kept and determines both its long-term category on disk
// and how quickly it decays when not accessed.
package memory
