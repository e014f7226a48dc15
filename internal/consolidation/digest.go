package consolidation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/claude-memory/claude-memory/internal/logging"
	"github.com/claude-memory/claude-memory/internal/markdown"
)

var log = logging.GetLogger("consolidation")

// Summarizer is the slice of the summarizer the digest pipeline needs.
type Summarizer interface {
	Digest(ctx context.Context, entries string) (string, error)
}

// ConsolidateJournals groups stale journals by ISO week, writes one digest
// per week, and archives the consumed sources. The returned summary is
// empty when there was nothing to consolidate.
func ConsolidateJournals(ctx context.Context, root string, summarizer Summarizer, now time.Time) (string, error) {
	stale, err := StaleJournals(root, now)
	if err != nil {
		return "", err
	}
	if len(stale) == 0 {
		return "", nil
	}

	weeks := make(map[string][]time.Time)
	for _, date := range stale {
		key := WeekKey(date)
		weeks[key] = append(weeks[key], date)
	}

	keys := make([]string, 0, len(weeks))
	for key := range weeks {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var written []string
	for _, key := range keys {
		dates := weeks[key]

		var combined strings.Builder
		for _, date := range dates {
			content, err := markdown.ReadJournal(root, date)
			if err != nil {
				return "", err
			}
			combined.WriteString(content)
			combined.WriteByte('\n')
		}
		if strings.TrimSpace(combined.String()) == "" {
			continue
		}

		digest, err := summarizer.Digest(ctx, combined.String())
		if err != nil {
			return "", err
		}

		if err := writeDigest(root, key, digest); err != nil {
			return "", err
		}
		for _, date := range dates {
			if err := markdown.ArchiveJournal(root, date); err != nil {
				return "", err
			}
		}
		log.Info("week consolidated", "week", key, "journals", len(dates))
		written = append(written, key)
	}

	if len(written) == 0 {
		return "", nil
	}
	return fmt.Sprintf("Consolidated %d weeks: %s", len(written), strings.Join(written, ", ")), nil
}

func writeDigest(root, week, digest string) error {
	dir := filepath.Join(root, "digests")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create digests directory: %w", err)
	}
	doc := fmt.Sprintf("# Week %s\n\n%s\n", week, digest)
	if err := os.WriteFile(filepath.Join(dir, week+".md"), []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write digest %s: %w", week, err)
	}
	return nil
}

func formatWeek(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}
