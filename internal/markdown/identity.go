package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ReadIdentity returns the current identity card content. ok is false when
// no card has been written yet.
func ReadIdentity(root string) (content string, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(root, "identity.md"))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read identity card: %w", err)
	}
	return string(data), true, nil
}

// WriteIdentity replaces the current identity card.
func WriteIdentity(root, content string) error {
	if err := os.WriteFile(filepath.Join(root, "identity.md"), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write identity card: %w", err)
	}
	return nil
}

// ArchiveIdentity saves a superseded identity card under
// archive/identity/YYYY-MM-DD.md.
func ArchiveIdentity(root, content string, date time.Time) error {
	dir := filepath.Join(root, "archive", "identity")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create identity archive: %w", err)
	}
	path := filepath.Join(dir, date.UTC().Format(dateLayout)+".md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to archive identity card: %w", err)
	}
	return nil
}
