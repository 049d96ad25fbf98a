package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/h2hsecure/usercards/internal/domain"
	bolt "go.etcd.io/bbolt"
)

const (
	bucketViews = "views"
)

// NewBoltStore opens a bolt backed view store. Views never outlive the
// process, so the bucket is reset on open.
func NewBoltStore(path string) (domain.ViewStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("db open: path '%s' %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucketViews)) != nil {
			if err := tx.DeleteBucket([]byte(bucketViews)); err != nil {
				return fmt.Errorf("reset bucket: %w", err)
			}
		}
		if _, err := tx.CreateBucket([]byte(bucketViews)); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &boltAdapter{db: db}, nil
}

type boltAdapter struct {
	db *bolt.DB
}

func (b *boltAdapter) Close() error {
	return b.db.Close()
}

// Save implements ViewStore.
func (b *boltAdapter) Save(ctx context.Context, id string, state domain.FetchState) error {
	m, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("db value marshal: %w", err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketViews)).Put([]byte(id), m)
	})
	if err != nil {
		return fmt.Errorf("db put: %w", err)
	}

	return nil
}

// Load implements ViewStore.
func (b *boltAdapter) Load(ctx context.Context, id string) (domain.FetchState, error) {
	var state domain.FetchState

	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketViews)).Get([]byte(id))
		if v == nil {
			return fmt.Errorf("view not found: %s: %w", id, domain.ErrNotFound)
		}

		if err := json.Unmarshal(v, &state); err != nil {
			return fmt.Errorf("db value unmarshal: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.FetchState{}, err
	}

	return state, nil
}

// Delete implements ViewStore.
func (b *boltAdapter) Delete(ctx context.Context, id string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketViews)).Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("db delete: %w", err)
	}

	return nil
}
