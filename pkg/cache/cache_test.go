package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should never hit")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, err := c.Get(ctx, "frame:a"); err != nil || hit {
		t.Fatalf("empty cache Get = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "frame:a", []byte(`{"rows":[]}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "frame:a")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit %v, err %v", hit, err)
	}
	if string(data) != `{"rows":[]}` {
		t.Errorf("data = %s", data)
	}

	if err := c.Delete(ctx, "frame:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "frame:a"); hit {
		t.Error("hit after Delete")
	}
	if err := c.Delete(ctx, "frame:a"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	p := c.path("k")
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	frames := filepath.Join(dir, "frames")
	if err := os.MkdirAll(frames, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(frames, "plan.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("hit after Clear")
	}
	if _, err := os.Stat(filepath.Join(frames, "plan.json")); err != nil {
		t.Errorf("Clear removed unrelated data: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	j1, err := HashJSON(map[string]int{"a": 1, "b": 2})
	if err != nil {
		t.Fatal(err)
	}
	j2, _ := HashJSON(map[string]int{"b": 2, "a": 1})
	if j1 != j2 {
		t.Error("HashJSON should not depend on map insertion order")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.ItemsKey("mongo", "roadmap.items"); got != "items:mongo:roadmap.items" {
		t.Errorf("ItemsKey = %s", got)
	}

	base := FrameKeyOpts{SettingsHash: "s", Width: 800, Height: 600, Today: "2025-01-01"}
	k1 := k.FrameKey("items", base)
	scrolled := base
	scrolled.ScrollTop = 100
	if k1 == k.FrameKey("items", scrolled) {
		t.Error("scroll offset should change the frame key")
	}
	checked := base
	checked.Debug = true
	if k1 == k.FrameKey("items", checked) {
		t.Error("invariant checking should change the frame key")
	}
	if k1 == k.FrameKey("other", base) {
		t.Error("items hash should change the frame key")
	}
	if !strings.HasPrefix(k1, "frame:") {
		t.Errorf("FrameKey = %s, want frame: prefix", k1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tenant:7:")
	if got := scoped.ItemsKey("file", "a.json"); got != "tenant:7:items:file:a.json" {
		t.Errorf("ItemsKey = %s", got)
	}
	if got := scoped.FrameKey("h", FrameKeyOpts{}); !strings.HasPrefix(got, "tenant:7:frame:") {
		t.Errorf("FrameKey = %s", got)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.ItemsKey("s", "r"); got != "p:items:s:r" {
		t.Errorf("nil inner ItemsKey = %s", got)
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("ROADMAP_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ROADMAP_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := "roadmap:test:" + Hash([]byte(t.Name()))
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("hit after Delete")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "http://nope"); err == nil {
		t.Error("expected error for non-redis url")
	}
}
