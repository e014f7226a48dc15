package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude-memory/claude-memory/internal/consolidation"
	"github.com/claude-memory/claude-memory/internal/markdown"
)

// Reflect runs both consolidation pipelines: journal-to-digest first, then
// identity regeneration. Each step contributes a status line; a failed step
// never blocks the lines after it.
func (e *Engine) Reflect(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var report []string

	if e.summarizer == nil {
		report = append(report, "Summarizer unavailable (ANTHROPIC_API_KEY not set); skipping consolidation.")
		return formatReport(report), nil
	}

	summary, err := consolidation.ConsolidateJournals(ctx, e.root, e.summarizer, e.now())
	switch {
	case err != nil:
		report = append(report, fmt.Sprintf("Journal consolidation failed: %v", err))
	case summary == "":
		report = append(report, "No journals old enough to consolidate.")
	default:
		report = append(report, summary)
	}

	recent, err := consolidation.RecentJournals(e.root, 5)
	if err != nil {
		report = append(report, fmt.Sprintf("Identity regeneration failed: %v", err))
		return formatReport(report), nil
	}
	if recent != "" {
		newIdentity, err := e.summarizer.Identity(ctx, recent)
		if err != nil {
			report = append(report, fmt.Sprintf("Identity regeneration failed: %v", err))
		} else {
			if old, ok, err := markdown.ReadIdentity(e.root); err == nil && ok {
				if err := markdown.ArchiveIdentity(e.root, old, e.now()); err != nil {
					return "", err
				}
			}
			if err := markdown.WriteIdentity(e.root, newIdentity); err != nil {
				return "", err
			}
			report = append(report, "Identity card regenerated.")
		}
	}

	return formatReport(report), nil
}

func formatReport(report []string) string {
	return "Reflection complete:\n- " + strings.Join(report, "\n- ")
}
