package cache

import (
	"fmt"
	"testing"
	"time"
)

// fakeClock lets tests advance cache time deterministically
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(ttl time.Duration, maxSize int) (*Cache, *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New(ttl, maxSize)
	c.now = clk.Now
	return c, clk
}

func TestSetAndGet(t *testing.T) {
	c, _ := newTestCache(time.Minute, 10)

	c.Set("a", 42)
	v, ok := c.Get("a")
	if !ok {
		t.Fatal("value missing after Set")
	}
	if v.(int) != 42 {
		t.Errorf("got %v, want 42", v)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("unknown key reported present")
	}
}

func TestSetOverwrites(t *testing.T) {
	c, _ := newTestCache(time.Minute, 10)

	c.Set("a", "old")
	c.Set("a", "new")
	v, _ := c.Get("a")
	if v != "new" {
		t.Errorf("got %v, want new", v)
	}
	if c.Len() != 1 {
		t.Errorf("overwrite grew cache to %d entries", c.Len())
	}
}

func TestTTLExpiry(t *testing.T) {
	c, clk := newTestCache(time.Minute, 10)

	c.Set("a", 1)
	clk.Advance(59 * time.Second)
	if !c.Has("a") {
		t.Fatal("entry expired before its ttl")
	}

	clk.Advance(2 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived past its ttl")
	}
	// Lazy expiry removed the entry on Get
	if c.Len() != 0 {
		t.Errorf("expired entry left behind, Len=%d", c.Len())
	}
}

func TestEntryExactlyAtTTLStillLive(t *testing.T) {
	c, clk := newTestCache(time.Minute, 10)

	c.Set("a", 1)
	clk.Advance(time.Minute)
	if !c.Has("a") {
		t.Error("entry at exactly ttl age must still be live")
	}
}

func TestEvictsOldestAtCapacity(t *testing.T) {
	c, clk := newTestCache(time.Hour, 3)

	for i, key := range []string{"a", "b", "c"} {
		clk.Advance(time.Duration(i) * time.Second)
		c.Set(key, i)
	}

	clk.Advance(time.Second)
	c.Set("d", 3)

	if c.Has("a") {
		t.Error("oldest entry a survived eviction")
	}
	for _, key := range []string{"b", "c", "d"} {
		if !c.Has(key) {
			t.Errorf("entry %s lost, only the oldest should be evicted", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len=%d, want 3", c.Len())
	}
}

func TestOverwriteDoesNotEvict(t *testing.T) {
	c, clk := newTestCache(time.Hour, 2)

	c.Set("a", 1)
	clk.Advance(time.Second)
	c.Set("b", 2)
	clk.Advance(time.Second)
	c.Set("a", 10)

	if !c.Has("a") || !c.Has("b") {
		t.Error("re-setting an existing key must not evict anything")
	}
}

func TestDeleteAndClear(t *testing.T) {
	c, _ := newTestCache(time.Minute, 10)

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if c.Has("a") {
		t.Error("deleted key still present")
	}
	c.Delete("a") // idempotent

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Clear left %d entries", c.Len())
	}
}

func TestDefaultsForNonPositiveArgs(t *testing.T) {
	c := New(0, 0)
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
	if c.maxSize != DefaultMaxSize {
		t.Errorf("maxSize = %d, want %d", c.maxSize, DefaultMaxSize)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(time.Minute, 50)

	done := make(chan struct{})
	for g := 0; g < 8; g++ {
		go func(g int) {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("k%d", i%20)
				c.Set(key, g)
				c.Get(key)
			}
		}(g)
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
