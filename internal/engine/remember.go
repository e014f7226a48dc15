package engine

import (
	"context"
	"fmt"

	"github.com/claude-memory/claude-memory/internal/markdown"
	"github.com/claude-memory/claude-memory/internal/memory"
)

// Remember stores a new memory: journal append, long-term file, lexical
// upsert in that order, then best-effort vector and graph projection.
func (e *Engine) Remember(ctx context.Context, content, gateStr, person, project string) (string, error) {
	gate, err := memory.ParseGate(gateStr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidGate, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now().UTC()
	m := memory.New(content, gate, person, project, now)

	entry := &memory.JournalEntry{
		Timestamp: now,
		Gate:      gate,
		Content:   content,
		Person:    person,
		Project:   project,
	}
	if err := markdown.AppendJournal(e.root, entry); err != nil {
		return "", err
	}
	if err := markdown.WriteLongTerm(e.root, m); err != nil {
		return "", err
	}
	if err := e.db.Upsert(m); err != nil {
		return "", err
	}

	if e.vectors != nil {
		if err := e.vectors.EmbedAndStore(ctx, m.ID, content, person, project); err != nil {
			e.log.Warn("vector store failed", "memory_id", m.ID, "error", err)
		}
	}
	if e.graph != nil {
		if err := e.graph.UpsertNode(ctx, m.ID, gate.String(), person, project, content); err != nil {
			e.log.Warn("graph upsert failed", "memory_id", m.ID, "error", err)
		}
		if err := e.graph.AutoLink(ctx, m.ID, person, project); err != nil {
			e.log.Warn("graph auto-link failed", "memory_id", m.ID, "error", err)
		}
	}

	return fmt.Sprintf("Remembered [%s]: %s (id: %s)",
		gate, truncateRunes(content, 80), m.ID), nil
}
