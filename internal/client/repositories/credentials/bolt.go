package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/bottlerun/bottlerun/internal/client/models"
	"github.com/bottlerun/bottlerun/internal/common"
	"github.com/bottlerun/bottlerun/internal/logging"
)

const (
	bucketName = "credentials"
	userKey    = "user"
)

// BoltStore implements Store on top of a bbolt file. Every call is an
// independent bbolt transaction; there is no cross-call atomicity with
// the relational stores.
type BoltStore struct {
	db  *bolt.DB
	log logging.Logger
}

// Open opens (creating if needed) the bbolt file at path and ensures the
// credentials bucket exists. Failures wrap common.ErrStorageOpen.
func Open(path string, log logging.Logger) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open credential store: %v", common.ErrStorageOpen, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to create credential bucket: %v", common.ErrStorageOpen, err)
	}
	return &BoltStore{db: db, log: log}, nil
}

// Close releases the underlying bbolt file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Put(ctx context.Context, profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%w: failed to serialize profile: %v", common.ErrStorageWrite, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if err := b.Delete([]byte(userKey)); err != nil {
			return err
		}
		return b.Put([]byte(userKey), data)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to store profile: %v", common.ErrStorageWrite, err)
	}
	return nil
}

func (s *BoltStore) Get(ctx context.Context) (*models.UserProfile, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(userKey)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read profile: %v", common.ErrStorageRead, err)
	}
	if data == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		// Undecodable cache entries behave like an empty store.
		s.log.Warn(ctx, "discarding undecodable credential cache entry", "error", err)
		return nil, nil
	}
	return &profile, nil
}

func (s *BoltStore) Clear(ctx context.Context) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(userKey))
	})
	if err != nil {
		return fmt.Errorf("%w: failed to clear credentials: %v", common.ErrStorageWrite, err)
	}
	return nil
}
