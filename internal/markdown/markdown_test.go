package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/claude-memory/claude-memory/internal/memory"
)

func TestAppendJournal(t *testing.T) {
	root := t.TempDir()
	ts := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	entry := &memory.JournalEntry{
		Timestamp: ts,
		Gate:      memory.GateRelational,
		Content:   "Alex prefers concise answers.",
		Person:    "Alex",
	}
	if err := AppendJournal(root, entry); err != nil {
		t.Fatalf("AppendJournal failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "journal", "2024-03-15.md"))
	if err != nil {
		t.Fatalf("journal file missing: %v", err)
	}
	got := string(data)

	if !strings.HasPrefix(got, "# 2024-03-15\n") {
		t.Errorf("missing date header, got: %q", got)
	}
	if !strings.Contains(got, "\n## 14:30 - relational\n[relational] Alex prefers concise answers.\n") {
		t.Errorf("entry format mismatch: %q", got)
	}

	t.Run("SecondAppendSkipsHeader", func(t *testing.T) {
		entry2 := &memory.JournalEntry{
			Timestamp: ts.Add(time.Hour),
			Gate:      memory.GateEpistemic,
			Content:   "Learned a thing.",
		}
		if err := AppendJournal(root, entry2); err != nil {
			t.Fatalf("second append failed: %v", err)
		}
		data, _ := os.ReadFile(filepath.Join(root, "journal", "2024-03-15.md"))
		if strings.Count(string(data), "# 2024-03-15\n") != 1 {
			t.Error("date header written twice")
		}
		if !strings.Contains(string(data), "## 15:30 - epistemic") {
			t.Error("second entry missing")
		}
	})
}

func TestJournalListAndArchive(t *testing.T) {
	root := t.TempDir()

	days := []time.Time{
		time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
	}
	for _, d := range days {
		err := AppendJournal(root, &memory.JournalEntry{
			Timestamp: d, Gate: memory.GateBehavioral, Content: "entry",
		})
		if err != nil {
			t.Fatalf("seed journal failed: %v", err)
		}
	}

	dates, err := ListJournalDates(root)
	if err != nil {
		t.Fatalf("ListJournalDates failed: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			t.Error("dates not sorted ascending")
		}
	}

	if err := ArchiveJournal(root, dates[0]); err != nil {
		t.Fatalf("ArchiveJournal failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "journal", "2024-03-10.md")); !os.IsNotExist(err) {
		t.Error("archived journal still in journal/")
	}
	if _, err := os.Stat(filepath.Join(root, "archive", "journal", "2024-03-10.md")); err != nil {
		t.Error("journal not moved into archive/journal/")
	}

	t.Run("ArchiveMissingIsNoop", func(t *testing.T) {
		far := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
		if err := ArchiveJournal(root, far); err != nil {
			t.Errorf("archiving a missing journal should not fail: %v", err)
		}
	})
}

func TestReadJournalMissing(t *testing.T) {
	root := t.TempDir()
	content, err := ReadJournal(root, time.Now())
	if err != nil {
		t.Fatalf("ReadJournal failed: %v", err)
	}
	if content != "" {
		t.Errorf("expected empty content for missing journal, got %q", content)
	}
}

func TestLongTermRoundTrip(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	m := memory.New("I noticed Alex likes terse replies.", memory.GateRelational, "Alex", "memkit", now)

	if err := WriteLongTerm(root, m); err != nil {
		t.Fatalf("WriteLongTerm failed: %v", err)
	}

	path := filepath.Join(root, "long-term", "people", Slugify(m.ID)+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("long-term file missing at %s: %v", path, err)
	}
	if !strings.HasPrefix(string(data), "---\n") {
		t.Error("file should start with frontmatter delimiter")
	}
	if !strings.HasSuffix(string(data), "\n\nI noticed Alex likes terse replies.\n") {
		t.Errorf("body mismatch: %q", string(data))
	}

	got, err := ReadLongTerm(root, m.Gate, m.ID)
	if err != nil {
		t.Fatalf("ReadLongTerm failed: %v", err)
	}
	if got.ID != m.ID || got.Gate != m.Gate || got.Content != m.Content ||
		got.Person != m.Person || got.Project != m.Project ||
		got.Confidence != m.Confidence || got.AccessCount != m.AccessCount ||
		got.DecayClass != m.DecayClass {
		t.Errorf("frontmatter did not round-trip: got %+v want %+v", got, m)
	}
	if !got.Created.Equal(m.Created) || !got.LastAccessed.Equal(m.LastAccessed) {
		t.Error("timestamps did not round-trip")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"mem_20240315_100000_ab12": "mem_20240315_100000_ab12",
		"a b/c":                    "a_b_c",
		"keep-dash":                "keep-dash",
		"dots.and:colons":          "dots_and_colons",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteArchive(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	m := memory.New("Old decision.", memory.GateBehavioral, "", "", now)

	if err := WriteArchive(root, m, "superseded", "2024-04-01T00:00:00Z"); err != nil {
		t.Fatalf("WriteArchive failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "archive", m.ID+".md"))
	if err != nil {
		t.Fatalf("archive file missing: %v", err)
	}
	got := string(data)
	for _, want := range []string{
		"archived: 2024-04-01T00:00:00Z\n",
		"reason: superseded\n",
		"original_gate: behavioral\n",
		"\n\nOld decision.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("archive missing %q in %q", want, got)
		}
	}
}

func TestIdentity(t *testing.T) {
	root := t.TempDir()

	t.Run("MissingCard", func(t *testing.T) {
		_, ok, err := ReadIdentity(root)
		if err != nil {
			t.Fatalf("ReadIdentity failed: %v", err)
		}
		if ok {
			t.Error("expected ok=false with no identity.md")
		}
	})

	t.Run("WriteReadArchive", func(t *testing.T) {
		if err := WriteIdentity(root, "I am a memory."); err != nil {
			t.Fatalf("WriteIdentity failed: %v", err)
		}
		content, ok, err := ReadIdentity(root)
		if err != nil || !ok {
			t.Fatalf("ReadIdentity failed: ok=%v err=%v", ok, err)
		}
		if content != "I am a memory." {
			t.Errorf("identity content mismatch: %q", content)
		}

		date := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
		if err := ArchiveIdentity(root, content, date); err != nil {
			t.Fatalf("ArchiveIdentity failed: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(root, "archive", "identity", "2024-04-01.md"))
		if err != nil {
			t.Fatalf("archived identity missing: %v", err)
		}
		if string(data) != "I am a memory." {
			t.Error("archived identity content mismatch")
		}
	})
}

func TestGrepAll(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	err := AppendJournal(root, &memory.JournalEntry{
		Timestamp: now, Gate: memory.GateEpistemic,
		Content: "The Rhine flows north.",
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("The Rhine in a txt file"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("CaseInsensitiveMatch", func(t *testing.T) {
		results, err := GrepAll(root, "rhine")
		if err != nil {
			t.Fatalf("GrepAll failed: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 match, got %d", len(results))
		}
		if !strings.Contains(results[0], "The Rhine flows north.") {
			t.Error("match content mismatch")
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		results, err := GrepAll(root, "danube")
		if err != nil {
			t.Fatalf("GrepAll failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no matches, got %d", len(results))
		}
	})
}
