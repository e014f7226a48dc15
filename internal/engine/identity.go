package engine

import (
	"context"

	"github.com/claude-memory/claude-memory/internal/consolidation"
	"github.com/claude-memory/claude-memory/internal/markdown"
)

// ColdStartMessage primes the very first session, before any identity card
// exists.
const ColdStartMessage = `First session. No identity card yet.

Pay attention to: how this person communicates, what they care about, whether they treat you as a tool or a collaborator. Write your first memory before the session ends.

Use ` + "`remember`" + ` with gate=relational to save what you notice about them.`

// Identity returns the current identity card followed by recent journal
// context, or the cold-start priming message when no card exists yet.
func (e *Engine) Identity(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	content, ok, err := markdown.ReadIdentity(e.root)
	if err != nil {
		return "", err
	}
	if !ok {
		return ColdStartMessage, nil
	}

	recent, err := consolidation.RecentJournals(e.root, 2)
	if err != nil {
		return "", err
	}
	if recent != "" {
		content += "\n\n---\nRecent context:\n" + truncateRunes(recent, 2000)
	}
	return content, nil
}
