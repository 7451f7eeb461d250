package cache

import (
	"testing"
	"time"
)

func TestGetSetDelete(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Fatal("unexpected hit")
	}
	c.Set("a", 1)
	if v, found := c.Get("a"); !found || v != 1 {
		t.Fatalf("got (%d, %v), want (1, true)", v, found)
	}
	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("overwrite not applied: %d", v)
	}
	c.Delete("a")
	if _, found := c.Get("a"); found {
		t.Fatal("deleted key still present")
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // touch a so b is the eviction candidate
	c.Set("c", 3)

	if _, found := c.Get("b"); found {
		t.Fatal("b should have been evicted")
	}
	if _, found := c.Get("a"); !found {
		t.Fatal("a should survive")
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d, want 2", c.Size())
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)

	if _, found := c.Get("a"); found {
		t.Fatal("expired entry served")
	}
	if n := c.CleanExpired(); n != 1 {
		t.Fatalf("cleaned %d entries, want 1 (a was already dropped on read)", n)
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d, want 0", c.Size())
	}
}
