package cache

import "testing"

func TestPutUpdatesExistingEntryWithoutGrowing(t *testing.T) {
	cache := NewLRUCache[string, string](2)

	cache.Put("alpha", "x")
	cache.Put("beta", "value")
	cache.Put("alpha", "y")

	if cache.Len() != 2 {
		t.Fatalf("unexpected cache length: got %d, want 2", cache.Len())
	}
	if value, hit := cache.Get("alpha"); !hit || value != "y" {
		t.Fatalf("expected updated alpha, hit=%v value=%q", hit, value)
	}
	if value, hit := cache.Get("beta"); !hit || value != "value" {
		t.Fatalf("expected beta to remain in cache, hit=%v value=%q", hit, value)
	}
}

type customKey struct {
	name string
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewLRUCache[customKey, []byte](2)

	first := customKey{name: "first"}
	second := customKey{name: "second"}
	third := customKey{name: "third"}

	cache.Put(first, []byte("a"))
	cache.Put(second, []byte("b"))

	// Touch first so second becomes the eviction candidate.
	if _, hit := cache.Get(first); !hit {
		t.Fatal("expected first to be cached")
	}
	cache.Put(third, []byte("c"))

	if _, hit := cache.Get(second); hit {
		t.Fatal("expected second to be evicted")
	}
	if _, hit := cache.Get(first); !hit {
		t.Fatal("expected first to survive")
	}
	if _, hit := cache.Get(third); !hit {
		t.Fatal("expected third to be cached")
	}
}

func TestRemove(t *testing.T) {
	cache := NewLRUCache[int, string](3)
	cache.Put(1, "one")
	cache.Remove(1)
	cache.Remove(2)

	if _, hit := cache.Get(1); hit {
		t.Fatal("expected removed key to miss")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache, got %d", cache.Len())
	}
}

func TestNonPositiveSizeKeepsOneEntry(t *testing.T) {
	cache := NewLRUCache[string, int](0)
	cache.Put("a", 1)
	cache.Put("b", 2)

	if cache.Len() != 1 {
		t.Fatalf("expected one entry, got %d", cache.Len())
	}
	if _, hit := cache.Get("b"); !hit {
		t.Fatal("expected most recent entry to be kept")
	}
}
