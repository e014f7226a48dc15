package consolidation

import (
	"strings"
	"time"

	"github.com/claude-memory/claude-memory/internal/markdown"
)

// RetentionDays is how long a journal stays raw before it is eligible for
// digestion.
const RetentionDays = 14

// StaleJournals returns the journal dates older than RetentionDays relative
// to now.
func StaleJournals(root string, now time.Time) ([]time.Time, error) {
	cutoff := now.UTC().AddDate(0, 0, -RetentionDays)
	cutoff = time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)

	dates, err := markdown.ListJournalDates(root)
	if err != nil {
		return nil, err
	}

	var stale []time.Time
	for _, d := range dates {
		if d.Before(cutoff) {
			stale = append(stale, d)
		}
	}
	return stale, nil
}

// RecentJournals concatenates the last count journals in chronological
// order.
func RecentJournals(root string, count int) (string, error) {
	dates, err := markdown.ListJournalDates(root)
	if err != nil {
		return "", err
	}
	if len(dates) > count {
		dates = dates[len(dates)-count:]
	}

	var b strings.Builder
	for _, d := range dates {
		content, err := markdown.ReadJournal(root, d)
		if err != nil {
			return "", err
		}
		if content != "" {
			b.WriteString(content)
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// WeekKey formats a date as its ISO week, e.g. 2024-W11.
func WeekKey(d time.Time) string {
	year, week := d.ISOWeek()
	return formatWeek(year, week)
}
