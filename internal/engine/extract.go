package engine

import (
	"context"
	"fmt"
	"strings"
)

// AutoExtract runs the summarizer over a transcript and remembers every
// extracted memory. Individual save failures are logged and skipped so one
// bad entry never loses the rest.
func (e *Engine) AutoExtract(ctx context.Context, transcript string) (string, error) {
	if e.summarizer == nil {
		return "Auto-extract unavailable: ANTHROPIC_API_KEY is not set.", nil
	}

	extracted, err := e.summarizer.Extract(ctx, transcript)
	if err != nil {
		return "", err
	}
	if len(extracted) == 0 {
		return "No memories worth keeping from this transcript.", nil
	}

	var saved []string
	for _, mem := range extracted {
		msg, err := e.Remember(ctx, mem.Content, mem.Gate, mem.Person, mem.Project)
		if err != nil {
			e.log.Warn("auto-extract save failed", "gate", mem.Gate, "error", err)
			continue
		}
		saved = append(saved, msg)
	}

	return fmt.Sprintf("Auto-extracted %d memories from transcript:\n%s",
		len(saved), strings.Join(saved, "\n")), nil
}
