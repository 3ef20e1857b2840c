package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const historyBucket = "history"

// boltStore implements a Store backed by BoltDB. Each site is one key whose
// value is the JSON-encoded URL list.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(historyBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Load reads every site entry. Any undecodable entry makes the whole history corrupt.
func (b *boltStore) Load(ctx context.Context) (History, error) {
	if b == nil || b.db == nil {
		return History{}, nil
	}
	if err := ctx.Err(); err != nil {
		return History{}, err
	}

	h := History{}
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(historyBucket))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var urls []string
			if err := json.Unmarshal(v, &urls); err != nil {
				return fmt.Errorf("%w: site %q: %v", ErrCorrupt, string(k), err)
			}
			h[string(k)] = urls
			return nil
		})
	})
	if err != nil {
		return History{}, err
	}
	return h, nil
}

// Save rewrites the bucket in a single transaction.
func (b *boltStore) Save(ctx context.Context, h History) error {
	if b == nil || b.db == nil {
		return fmt.Errorf("history store is closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(historyBucket)) != nil {
			if err := tx.DeleteBucket([]byte(historyBucket)); err != nil {
				return fmt.Errorf("reset bucket: %w", err)
			}
		}
		bucket, err := tx.CreateBucket([]byte(historyBucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		for site, urls := range h {
			if urls == nil {
				urls = []string{}
			}
			val, err := json.Marshal(urls)
			if err != nil {
				return fmt.Errorf("encode site %q: %w", site, err)
			}
			if err := bucket.Put([]byte(site), val); err != nil {
				return fmt.Errorf("put site %q: %w", site, err)
			}
		}
		return nil
	})
}
