package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"
)

func TestBoltStoreSavesAndReplacesHistory(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	storeRaw, err := openBolt(filepath.Join(dir, "nested", "history.db"))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	h, err := store.Load(ctx)
	if err != nil || len(h) != 0 {
		t.Fatalf("expected empty history, got %v err=%v", h, err)
	}

	first := History{
		"SiteA": {"http://x/1", "http://x/2"},
		"SiteB": {"http://y/1"},
	}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Equal(first) {
		t.Fatalf("unexpected history %v", got)
	}

	// A save is a total overwrite: sites missing from the new value disappear.
	second := History{"SiteA": {"http://x/3"}}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Equal(second) {
		t.Fatalf("expected overwrite, got %v", got)
	}
}

func TestBoltStoreReportsCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	storeRaw, err := openBolt(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	if err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(historyBucket)).Put([]byte("SiteA"), []byte("{not json"))
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h, err := store.Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if h == nil || len(h) != 0 {
		t.Fatalf("expected empty non-nil history, got %#v", h)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "/tmp/x"); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := NewStore(TypeJSON, " "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
