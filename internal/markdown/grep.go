package markdown

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// GrepAll walks every .md file under the store root and returns the full
// contents of files containing the query, matched case-insensitively. This is
// the last-resort recall path when every index comes back empty.
func GrepAll(root, query string) ([]string, error) {
	needle := strings.ToLower(query)

	var results []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable subtrees rather than aborting the whole scan.
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if strings.Contains(strings.ToLower(string(data)), needle) {
			results = append(results, string(data))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// EnsureTree creates the store directory skeleton.
func EnsureTree(root string) error {
	dirs := []string{
		"journal", "digests",
		"long-term/people", "long-term/learnings",
		"long-term/decisions", "long-term/commitments",
		"archive/journal", "archive/identity",
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			return err
		}
	}
	return nil
}
