package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = hit=%v err=%v, want miss", hit, err)
	}

	want := []byte("<svg/>")
	if err := c.Set(ctx, "artifact:abc", want, 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, hit, err := c.Get(ctx, "artifact:abc")
	if err != nil || !hit {
		t.Fatalf("Get() = hit=%v err=%v, want hit", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	// Negative ttl stores without expiration (clamped), so this must hit.
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Error("entry with non-positive ttl should not expire")
	}

	if err := c.Set(ctx, "short", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry still hits")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry still hits")
	}
	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Errorf("Set() error: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("NullCache Get() = hit=%v err=%v, want permanent miss", hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	layoutOpts := LayoutKeyOpts{Width: 800, Height: 600, TickTarget: 6, GapRatio: 0.25}

	a := k.LayoutKey("hash1", layoutOpts)
	b := k.LayoutKey("hash1", layoutOpts)
	if a != b {
		t.Error("same inputs produced different keys")
	}
	if !strings.HasPrefix(a, "layout:") {
		t.Errorf("layout key %q missing prefix", a)
	}

	if k.LayoutKey("hash2", layoutOpts) == a {
		t.Error("different chart hashes collide")
	}
	narrower := layoutOpts
	narrower.Width = 400
	if k.LayoutKey("hash1", narrower) == a {
		t.Error("different layout options collide")
	}

	art := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "svg", Gridlines: true})
	if !strings.HasPrefix(art, "artifact:") {
		t.Errorf("artifact key %q missing prefix", art)
	}
	png := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "png", Gridlines: true})
	if art == png {
		t.Error("different formats collide")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "serve:charts:")

	opts := ArtifactKeyOpts{Format: "svg"}
	got := scoped.ArtifactKey("h", opts)
	want := "serve:charts:" + inner.ArtifactKey("h", opts)
	if got != want {
		t.Errorf("ArtifactKey() = %q, want %q", got, want)
	}

	// Nil inner falls back to the default keyer.
	fallback := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(fallback.LayoutKey("h", LayoutKeyOpts{}), "p:layout:") {
		t.Error("nil inner keyer not defaulted")
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("chart"))
	if len(a) != 64 {
		t.Errorf("Hash() length = %d, want 64 hex chars", len(a))
	}
	if a != Hash([]byte("chart")) {
		t.Error("Hash() is not deterministic")
	}
	if a == Hash([]byte("chart2")) {
		t.Error("distinct inputs collide")
	}
}
