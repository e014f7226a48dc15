package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/claude-memory/claude-memory/internal/markdown"
)

// Forget removes a memory everywhere and archives it with the reason. The
// lexical index is authoritative for existence; stale shadow entries in the
// vector and graph stores are cleaned up regardless.
func (e *Engine) Forget(ctx context.Context, memoryID, reason string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.db.Delete(memoryID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return fmt.Sprintf("No memory found with id: %s", memoryID), nil
	}

	archivedAt := e.now().UTC().Format(time.RFC3339)
	if err := markdown.WriteArchive(e.root, m, reason, archivedAt); err != nil {
		return "", err
	}
	if err := markdown.RemoveLongTerm(e.root, m.Gate, m.ID); err != nil {
		e.log.Warn("long-term file removal failed", "memory_id", m.ID, "error", err)
	}

	if e.vectors != nil {
		if err := e.vectors.Delete(ctx, memoryID); err != nil {
			e.log.Warn("vector delete failed", "memory_id", memoryID, "error", err)
		}
	}
	if e.graph != nil {
		if err := e.graph.DeleteNode(ctx, memoryID); err != nil {
			e.log.Warn("graph delete failed", "memory_id", memoryID, "error", err)
		}
	}

	return fmt.Sprintf("Forgotten: %s (reason: %s). Archived for accountability.",
		memoryID, reason), nil
}
