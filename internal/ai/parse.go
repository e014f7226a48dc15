package ai

import (
	"encoding/json"
	"strings"

	"github.com/claude-memory/claude-memory/internal/memory"
)

// ParseExtracted decodes the summarizer's extraction output. Models
// sometimes wrap the JSON array in prose, so when a direct parse fails the
// substring between the first '[' and the last ']' is tried before giving
// up with an empty list.
func ParseExtracted(text string) []memory.Extracted {
	var out []memory.Extracted
	if err := json.Unmarshal([]byte(text), &out); err == nil {
		return out
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &out); err == nil {
			return out
		}
	}
	return nil
}
