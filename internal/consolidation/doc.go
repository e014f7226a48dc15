// Package consolidation ages raw journal entries into weekly digests and
// feeds identity regeneration.
//
// Journals older than the retention window are grouped by ISO week,
// compressed through the summarizer, written to digests/, and the consumed
// sources are moved into the archive.
package consolidation
