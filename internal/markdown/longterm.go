package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/claude-memory/claude-memory/internal/memory"
)

// WriteLongTerm writes a memory's canonical file under
// long-term/<category>/<slug>.md with the full record as YAML frontmatter.
func WriteLongTerm(root string, m *memory.Memory) error {
	dir := filepath.Join(root, "long-term", m.Gate.Category())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create long-term directory: %w", err)
	}

	frontmatter, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal memory frontmatter: %w", err)
	}

	path := filepath.Join(dir, Slugify(m.ID)+".md")
	doc := fmt.Sprintf("---\n%s---\n\n%s\n", frontmatter, m.Content)
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write long-term memory: %w", err)
	}
	return nil
}

// ReadLongTerm reads a memory back from its canonical file.
func ReadLongTerm(root string, gate memory.Gate, id string) (*memory.Memory, error) {
	path := filepath.Join(root, "long-term", gate.Category(), Slugify(id)+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read long-term memory: %w", err)
	}

	raw := string(data)
	rest, ok := strings.CutPrefix(raw, "---\n")
	if !ok {
		return nil, fmt.Errorf("long-term file %s has no frontmatter", path)
	}
	front, _, ok := strings.Cut(rest, "---\n")
	if !ok {
		return nil, fmt.Errorf("long-term file %s has unterminated frontmatter", path)
	}

	var m memory.Memory
	if err := yaml.Unmarshal([]byte(front), &m); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return &m, nil
}

// RemoveLongTerm deletes a memory's canonical file. Missing files are a
// no-op so forget can repair partially-written state.
func RemoveLongTerm(root string, gate memory.Gate, id string) error {
	path := filepath.Join(root, "long-term", gate.Category(), Slugify(id)+".md")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove long-term memory: %w", err)
	}
	return nil
}

// WriteArchive writes a forgotten memory into archive/<id>.md with an
// archival frontmatter recording when and why it was forgotten.
func WriteArchive(root string, m *memory.Memory, reason string, archivedAt string) error {
	dir := filepath.Join(root, "archive")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	doc := fmt.Sprintf("---\narchived: %s\nreason: %s\noriginal_gate: %s\n---\n\n%s\n",
		archivedAt, reason, m.Gate, m.Content)
	path := filepath.Join(dir, m.ID+".md")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write archive entry: %w", err)
	}
	return nil
}

// Slugify maps an id to a safe filename: alphanumerics and '-' survive,
// everything else becomes '_'.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
