package linkstore

import (
	"context"
	"time"
)

const kvPrefix = Namespace + ":"

// KV is the subset of the gofiber storage interface the link store needs.
// Any gofiber storage driver satisfies it.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

// KVStore keeps links in a gofiber storage backend.
// Create is check-then-set and not atomic across processes.
type KVStore struct {
	kv KV
}

// NewKV creates a link store on top of a gofiber storage driver.
func NewKV(kv KV) *KVStore {
	return &KVStore{kv: kv}
}

func kvKey(uid string) string {
	return kvPrefix + Key(uid)
}

// Get implements Store.
func (s *KVStore) Get(_ context.Context, uid string) (*Link, error) {
	if uid == "" {
		return nil, ErrUIDEmpty
	}

	raw, err := s.kv.Get(kvKey(uid))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if len(raw) == 0 {
		return nil, nil //nolint:nilnil
	}

	return decode(uid, raw)
}

// Set implements Store. Links never expire.
func (s *KVStore) Set(_ context.Context, uid string, userID uint64) error {
	if uid == "" {
		return ErrUIDEmpty
	}

	value, err := encode(userID)
	if err != nil {
		return err
	}

	return s.kv.Set(kvKey(uid), value, 0) //nolint:wrapcheck
}

// Create implements Store.
func (s *KVStore) Create(ctx context.Context, uid string, userID uint64) error {
	existing, err := s.Get(ctx, uid)
	if err != nil {
		return err
	}

	if existing != nil {
		return ErrLinkExists
	}

	return s.Set(ctx, uid, userID)
}

// Delete removes the link for uid.
func (s *KVStore) Delete(_ context.Context, uid string) error {
	if uid == "" {
		return ErrUIDEmpty
	}

	return s.kv.Delete(kvKey(uid)) //nolint:wrapcheck
}
