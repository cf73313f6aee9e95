package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCache_SetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, RecordKey(18231), []byte(`{"name":"Gauss"}`), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, ok, err := c.Get(ctx, RecordKey(18231))
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Fatal("Get() miss after Set()")
	}
	if string(data) != `{"name":"Gauss"}` {
		t.Errorf("Get() = %q, want stored value", data)
	}
}

func TestFileCache_Miss(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "record:404")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() hit on never-set key")
	}
}

func TestFileCache_Expiry(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "record:1", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "record:1"); ok {
		t.Error("Get() hit on expired entry")
	}
}

func TestFileCache_NoExpiry(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "record:1", []byte("x"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "record:1"); !ok {
		t.Error("Get() miss on entry with ttl=0")
	}
}

func TestFileCache_Delete(t *testing.T) {
	c, _ := NewFileCache(t.TempDir())
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "record:1", []byte("x"), 0)
	if err := c.Delete(ctx, "record:1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "record:1"); ok {
		t.Error("Get() hit after Delete()")
	}
	// Deleting again must not fail.
	if err := c.Delete(ctx, "record:1"); err != nil {
		t.Errorf("Delete() of absent key error: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("NullCache.Get() hit, want miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestRecordKey(t *testing.T) {
	if got := RecordKey(18231); got != "record:18231" {
		t.Errorf("RecordKey(18231) = %q, want %q", got, "record:18231")
	}
}

func TestHash_Stable(t *testing.T) {
	a := Hash([]byte("record:1"))
	b := Hash([]byte("record:1"))
	if a != b {
		t.Errorf("Hash() not stable: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(a))
	}
	if Hash([]byte("record:2")) == a {
		t.Error("Hash() collision for distinct keys")
	}
}
