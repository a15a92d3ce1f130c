package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 42, time.Minute)

	v, ok := c.Get("a")
	if !ok {
		t.Fatalf("expected hit for key a")
	}
	if v != 42 {
		t.Fatalf("expected 42, got %d", v)
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestTTLCachePurge(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Purge()

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected miss after purge")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected miss after purge")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache[string, string]()
	c.Set("k", "v", 0)

	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected zero-ttl entry to persist")
	}
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	var c NoopCache[string, int]
	c.Set("a", 1, time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("noop cache must not store values")
	}
}
