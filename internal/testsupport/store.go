package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"shelf/internal/library"
)

// MustOpenStore opens a library.Store in a temp directory and registers
// cleanup.
func MustOpenStore(t testing.TB) *library.Store {
	t.Helper()

	store, err := library.Open(filepath.Join(t.TempDir(), "shelf.db"))
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedItem inserts an item for tests using the provided store.
func SeedItem(t testing.TB, store *library.Store, title string, year int) *library.Item {
	t.Helper()

	item, err := store.AddItem(context.Background(), library.ItemDraft{Title: title, Year: year})
	if err != nil {
		t.Fatalf("store.AddItem: %v", err)
	}
	return item
}

// SeedList creates a list for tests using the provided store.
func SeedList(t testing.TB, store *library.Store, name string) *library.List {
	t.Helper()

	list, err := store.CreateList(context.Background(), name)
	if err != nil {
		t.Fatalf("store.CreateList: %v", err)
	}
	return list
}
