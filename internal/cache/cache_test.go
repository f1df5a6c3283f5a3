package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestPutUpdatesExistingEntryWithoutGrowingSize(t *testing.T) {
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

func TestPutEvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewLRUCache[int, string](2)

	cache.Put(1, "one")
	cache.Put(2, "two")
	if _, hit := cache.Get(1); !hit {
		t.Fatalf("expected 1 to be cached")
	}
	cache.Put(3, "three")

	if _, hit := cache.Get(2); hit {
		t.Fatalf("expected 2 to be evicted")
	}
	for _, key := range []int{1, 3} {
		if _, hit := cache.Get(key); !hit {
			t.Fatalf("expected %d to be cached", key)
		}
	}
}

func TestNewLRUCacheClampsSize(t *testing.T) {
	cache := NewLRUCache[string, int](0)
	cache.Put("a", 1)
	cache.Put("b", 2)
	if cache.Len() != 1 {
		t.Fatalf("expected size to be clamped to 1, got %d", cache.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	cache := NewLRUCache[string, int](16)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i+j)%32)
				cache.Put(key, j)
				cache.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if cache.Len() > 16 {
		t.Fatalf("cache grew past its size: %d", cache.Len())
	}
}

func TestKeyOf(t *testing.T) {
	a := KeyOf("index.md", []byte("# Home"))
	if a != KeyOf("index.md", []byte("# Home")) {
		t.Fatalf("expected equal keys for equal content")
	}
	if a == KeyOf("index.md", []byte("# Home!")) {
		t.Fatalf("expected content change to change the key")
	}
	if a == KeyOf("other.md", []byte("# Home")) {
		t.Fatalf("expected path change to change the key")
	}
}
