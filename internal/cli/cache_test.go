package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClearCacheDir(t *testing.T) {
	dir := t.TempDir()
	shard := filepath.Join(dir, "ab")
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{filepath.Join(shard, "one.entry"), filepath.Join(dir, "two.entry")} {
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	count, err := clearCacheDir(dir)
	if err != nil {
		t.Fatalf("clearCacheDir() error: %v", err)
	}
	if count != 2 {
		t.Errorf("removed %d entries, want 2", count)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir not empty after clear: %v", entries)
	}
}

func TestClearCacheDirEmpty(t *testing.T) {
	count, err := clearCacheDir(t.TempDir())
	if err != nil {
		t.Fatalf("clearCacheDir() error: %v", err)
	}
	if count != 0 {
		t.Errorf("removed %d entries from an empty dir", count)
	}
}
