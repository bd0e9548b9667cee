package persistence

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var sessionBucket = []byte("session")

// BoltTokenSlot stores the token in a local bbolt file so it survives restarts.
type BoltTokenSlot struct {
	db  *bbolt.DB
	key []byte
}

// OpenBoltTokenSlot opens (creating if needed) the database at path.
func OpenBoltTokenSlot(path, key string) (*BoltTokenSlot, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating session bucket: %w", err)
	}
	return &BoltTokenSlot{db: db, key: []byte(key)}, nil
}

func (s *BoltTokenSlot) Load(context.Context) (string, error) {
	var token string
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(sessionBucket).Get(s.key); v != nil {
			token = string(v)
		}
		return nil
	})
	return token, err
}

func (s *BoltTokenSlot) Save(_ context.Context, token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Put(s.key, []byte(token))
	})
}

func (s *BoltTokenSlot) Clear(context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucket).Delete(s.key)
	})
}

// Close closes the underlying bbolt database.
func (s *BoltTokenSlot) Close() error {
	return s.db.Close()
}
