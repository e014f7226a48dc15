package ai

import (
	"testing"
)

func TestParseExtracted(t *testing.T) {
	t.Run("CleanArray", func(t *testing.T) {
		got := ParseExtracted(`[{"gate":"epistemic","content":"X"}]`)
		if len(got) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(got))
		}
		if got[0].Gate != "epistemic" || got[0].Content != "X" {
			t.Errorf("entry mismatch: %+v", got[0])
		}
	})

	t.Run("ArrayWrappedInProse", func(t *testing.T) {
		got := ParseExtracted(`Sure, here you go: [{"gate":"epistemic","content":"X"}] done`)
		if len(got) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(got))
		}
		if got[0].Gate != "epistemic" || got[0].Content != "X" {
			t.Errorf("entry mismatch: %+v", got[0])
		}
	})

	t.Run("EmptyArray", func(t *testing.T) {
		if got := ParseExtracted(`[]`); len(got) != 0 {
			t.Errorf("expected empty, got %d entries", len(got))
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		if got := ParseExtracted(`I have nothing for you`); got != nil {
			t.Errorf("expected nil for garbage, got %+v", got)
		}
	})

	t.Run("MalformedInsideBrackets", func(t *testing.T) {
		if got := ParseExtracted(`prefix [not json at all] suffix`); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("OptionalTags", func(t *testing.T) {
		got := ParseExtracted(`[{"gate":"relational","content":"Alex jokes a lot","person":"Alex","project":"memkit"}]`)
		if len(got) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(got))
		}
		if got[0].Person != "Alex" || got[0].Project != "memkit" {
			t.Errorf("tags not parsed: %+v", got[0])
		}
	})
}
