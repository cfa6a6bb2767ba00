package marketdata

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	cache := NewCache(time.Minute)

	cache.Set("prices:AAPL", 42)

	value, ok := cache.Get("prices:AAPL")
	if !ok {
		t.Fatal("Get should hit after Set")
	}
	if value.(int) != 42 {
		t.Errorf("Get = %v, want 42", value)
	}
}

func TestCache_MissingKey(t *testing.T) {
	cache := NewCache(time.Minute)

	if _, ok := cache.Get("nope"); ok {
		t.Error("Get should miss for an unset key")
	}
}

func TestCache_ExpiredEntryEvicted(t *testing.T) {
	cache := NewCache(time.Minute)
	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.Set("overview:MSFT", "stale")
	current = current.Add(2 * time.Minute)

	if _, ok := cache.Get("overview:MSFT"); ok {
		t.Error("Get should miss after the TTL elapses")
	}
	if cache.Len() != 0 {
		t.Errorf("Len = %d, want 0 after lazy eviction", cache.Len())
	}
}

func TestCache_ExplicitTTL(t *testing.T) {
	cache := NewCache(time.Minute)
	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.SetWithTTL("history:SMH", "merged", time.Hour)
	current = current.Add(30 * time.Minute)

	if _, ok := cache.Get("history:SMH"); !ok {
		t.Error("entry with an hour TTL should survive 30 minutes")
	}
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Len = %d, want 0 after Clear", cache.Len())
	}
}

func TestCache_DeleteSingleKey(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Delete("a")

	if _, ok := cache.Get("a"); ok {
		t.Error("deleted key should be gone")
	}
	if _, ok := cache.Get("b"); !ok {
		t.Error("other keys should survive a single-key delete")
	}
}
