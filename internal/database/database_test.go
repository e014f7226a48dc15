package database

import (
	"testing"
	"time"

	"github.com/claude-memory/claude-memory/internal/memory"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open test index: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedMemory(t *testing.T, db *Database, content, person string) *memory.Memory {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	m := memory.New(content, memory.GateRelational, person, "", now)
	if err := db.Upsert(m); err != nil {
		t.Fatalf("failed to seed memory: %v", err)
	}
	return m
}

func TestUpsertAndGet(t *testing.T) {
	db := openTestDB(t)
	m := seedMemory(t, db, "Alex prefers concise answers.", "Alex")

	got, err := db.Get(m.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("memory not found after upsert")
	}
	if got.Content != m.Content || got.Person != m.Person {
		t.Errorf("row mismatch: got %+v", got)
	}
	if got.Gate != memory.GateRelational || got.DecayClass != memory.DecaySlow {
		t.Errorf("gate/decay mismatch: %s/%s", got.Gate, got.DecayClass)
	}
	if got.AccessCount != 1 {
		t.Errorf("access_count = %d, want 1", got.AccessCount)
	}

	t.Run("MissingIDReturnsNil", func(t *testing.T) {
		got, err := db.Get("mem_doesnotexist")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Error("expected nil for missing id")
		}
	})

	t.Run("UpsertReplacesByID", func(t *testing.T) {
		m.Content = "Alex prefers thorough answers."
		if err := db.Upsert(m); err != nil {
			t.Fatalf("re-upsert failed: %v", err)
		}
		got, _ := db.Get(m.ID)
		if got.Content != "Alex prefers thorough answers." {
			t.Errorf("replace did not take: %q", got.Content)
		}
		n, _ := db.Count()
		if n != 1 {
			t.Errorf("expected 1 row after replace, got %d", n)
		}
	})
}

func TestSearchFTS(t *testing.T) {
	db := openTestDB(t)
	seedMemory(t, db, "They prefer concise answers.", "Alex")
	seedMemory(t, db, "The deploy pipeline uses blue-green rollouts.", "")

	t.Run("ContentMatch", func(t *testing.T) {
		results, err := db.SearchFTS("concise", 5)
		if err != nil {
			t.Fatalf("SearchFTS failed: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 hit, got %d", len(results))
		}
		if results[0].Person != "Alex" {
			t.Errorf("wrong row returned: %+v", results[0])
		}
	})

	t.Run("PersonColumnMatch", func(t *testing.T) {
		results, err := db.SearchFTS("Alex", 5)
		if err != nil {
			t.Fatalf("SearchFTS failed: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("expected 1 hit on person column, got %d", len(results))
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		results, err := db.SearchFTS("zeppelin", 5)
		if err != nil {
			t.Fatalf("SearchFTS failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no hits, got %d", len(results))
		}
	})

	t.Run("LimitRespected", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			seedMemory(t, db, "kubernetes cluster notes", "")
		}
		results, err := db.SearchFTS("kubernetes", 5)
		if err != nil {
			t.Fatalf("SearchFTS failed: %v", err)
		}
		if len(results) != 5 {
			t.Errorf("limit not respected: got %d", len(results))
		}
	})
}

func TestTouch(t *testing.T) {
	db := openTestDB(t)
	m := seedMemory(t, db, "Touch target.", "")

	if err := db.Touch(m.ID); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}

	got, _ := db.Get(m.ID)
	if got.AccessCount != 2 {
		t.Errorf("access_count = %d, want 2", got.AccessCount)
	}
	if got.LastAccessed.Before(m.LastAccessed) {
		t.Error("last_accessed went backwards")
	}
}

func TestDelete(t *testing.T) {
	db := openTestDB(t)
	m := seedMemory(t, db, "Delete me.", "")

	prior, err := db.Delete(m.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if prior == nil || prior.Content != "Delete me." {
		t.Errorf("prior row not returned: %+v", prior)
	}

	got, _ := db.Get(m.ID)
	if got != nil {
		t.Error("row still present after delete")
	}

	t.Run("FTSMirrorCleared", func(t *testing.T) {
		results, err := db.SearchFTS("delete", 5)
		if err != nil {
			t.Fatalf("SearchFTS failed: %v", err)
		}
		if len(results) != 0 {
			t.Error("deleted row still matches in FTS")
		}
	})

	t.Run("MissingReturnsNil", func(t *testing.T) {
		prior, err := db.Delete("mem_doesnotexist")
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if prior != nil {
			t.Error("expected nil for missing id")
		}
	})
}

func TestAll(t *testing.T) {
	db := openTestDB(t)
	seedMemory(t, db, "first", "")
	seedMemory(t, db, "second", "")

	all, err := db.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 rows, got %d", len(all))
	}
}
