package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDirStorePutWritesFile(t *testing.T) {
	dir := t.TempDir()
	store := NewDirStore(filepath.Join(dir, "nested", "blobs"))

	if err := store.Put(context.Background(), "s1_x.png", []byte{0x89, 0x50}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "nested", "blobs", "s1_x.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data) != 2 || data[0] != 0x89 {
		t.Fatalf("unexpected blob content %v", data)
	}
}

func TestDirStoreListFiltersByPrefix(t *testing.T) {
	store := NewDirStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"s1_a.png", "s1_b.png", "s2_a.png"} {
		if err := store.Put(ctx, name, []byte("x")); err != nil {
			t.Fatalf("Put %s: %v", name, err)
		}
	}

	names, err := store.List(ctx, "s1_")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "s1_a.png" || names[1] != "s1_b.png" {
		t.Fatalf("unexpected listing %v", names)
	}
}

func TestDirStoreListMissingRoot(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "never-created"))

	names, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if names != nil {
		t.Fatalf("expected nil listing, got %v", names)
	}
}
