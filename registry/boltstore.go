package registry

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/poipnet/libpoip-go/product"
)

var bucketProducts = []byte("products")

// BoltStore persists product snapshots in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("registry: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("registry: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketProducts)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("registry: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// PutProduct stores a product snapshot keyed by product ID, overwriting any
// previous snapshot.
func (s *BoltStore) PutProduct(snap *product.Snapshot) error {
	data, err := encodeGob(snap)
	if err != nil {
		return fmt.Errorf("registry: encode product: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProducts).Put(snap.ID[:], data)
	})
}

// GetProduct retrieves a product snapshot by ID.
func (s *BoltStore) GetProduct(id uuid.UUID) (*product.Snapshot, error) {
	var snap product.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketProducts).Get(id[:])
		if data == nil {
			return ErrProductNotFound
		}
		if err := decodeGob(data, &snap); err != nil {
			return fmt.Errorf("registry: decode product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListProducts returns all stored product snapshots.
func (s *BoltStore) ListProducts() ([]*product.Snapshot, error) {
	var snaps []*product.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProducts).ForEach(func(_, data []byte) error {
			var snap product.Snapshot
			if err := decodeGob(data, &snap); err != nil {
				return fmt.Errorf("registry: decode product: %w", err)
			}
			snaps = append(snaps, &snap)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return snaps, nil
}
