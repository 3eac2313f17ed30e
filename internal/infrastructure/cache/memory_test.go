package cache

import (
	"testing"
	"time"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ms := NewMemoryStore()

	ms.Set("k", "v", time.Minute)
	if v, ok := ms.Get("k"); !ok || v != "v" {
		t.Fatalf("expected (v, true), got (%q, %v)", v, ok)
	}

	ms.Delete("k")
	if _, ok := ms.Get("k"); ok {
		t.Fatal("deleted key must not resolve")
	}
}

func TestMemoryStore_ExpiredEntryIsGone(t *testing.T) {
	ms := NewMemoryStore()

	ms.Set("k", "v", -time.Second)
	if _, ok := ms.Get("k"); ok {
		t.Fatal("expired key must not resolve")
	}
	// The read evicts it as well.
	ms.mu.Lock()
	_, still := ms.entries["k"]
	ms.mu.Unlock()
	if still {
		t.Fatal("expired key must be evicted on read")
	}
}
