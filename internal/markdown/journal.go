package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/claude-memory/claude-memory/internal/memory"
)

const dateLayout = "2006-01-02"

// AppendJournal appends an entry to the journal file for the entry's day,
// creating the file with a date header when it does not exist yet.
func AppendJournal(root string, entry *memory.JournalEntry) error {
	dir := filepath.Join(root, "journal")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	date := entry.Timestamp.UTC().Format(dateLayout)
	path := filepath.Join(dir, date+".md")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal %s: %w", date, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat journal %s: %w", date, err)
	}
	if info.Size() == 0 {
		if _, err := fmt.Fprintf(f, "# %s\n", date); err != nil {
			return fmt.Errorf("failed to write journal header: %w", err)
		}
	}

	_, err = fmt.Fprintf(f, "\n## %s - %s\n[%s] %s\n",
		entry.Timestamp.UTC().Format("15:04"), entry.Gate, entry.Gate, entry.Content)
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// ReadJournal returns the contents of one day's journal, or the empty string
// when no journal exists for that date.
func ReadJournal(root string, date time.Time) (string, error) {
	path := filepath.Join(root, "journal", date.Format(dateLayout)+".md")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read journal: %w", err)
	}
	return string(data), nil
}

// ListJournalDates returns the dates of all journal files, sorted ascending.
func ListJournalDates(root string) ([]time.Time, error) {
	dir := filepath.Join(root, "journal")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list journal directory: %w", err)
	}

	var dates []time.Time
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok {
			continue
		}
		date, err := time.Parse(dateLayout, name)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// ArchiveJournal moves a day's journal into archive/journal/. Missing
// journals are a no-op.
func ArchiveJournal(root string, date time.Time) error {
	name := date.Format(dateLayout) + ".md"
	src := filepath.Join(root, "journal", name)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}

	dstDir := filepath.Join(root, "archive", "journal")
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return fmt.Errorf("failed to create journal archive: %w", err)
	}
	if err := os.Rename(src, filepath.Join(dstDir, name)); err != nil {
		return fmt.Errorf("failed to archive journal %s: %w", name, err)
	}
	return nil
}
