package linkstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/crowdlink/crowdlink/internal/db/controller/pluginstore"
)

// PluginStore keeps links in the plugin_store_rows table.
type PluginStore struct {
	db *gorm.DB
}

// NewPluginStore creates a link store on top of the gorm plugin store.
func NewPluginStore(db *gorm.DB) *PluginStore {
	return &PluginStore{db: db}
}

// Get implements Store.
func (s *PluginStore) Get(ctx context.Context, uid string) (*Link, error) {
	if uid == "" {
		return nil, ErrUIDEmpty
	}

	row, err := pluginstore.Get(s.db.WithContext(ctx), Namespace, Key(uid))
	if errors.Is(err, pluginstore.ErrRowNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, err
	}

	return decode(uid, row.Value)
}

// Set implements Store.
func (s *PluginStore) Set(ctx context.Context, uid string, userID uint64) error {
	if uid == "" {
		return ErrUIDEmpty
	}

	value, err := encode(userID)
	if err != nil {
		return err
	}

	_, err = pluginstore.Set(s.db.WithContext(ctx), Namespace, Key(uid), value)

	return err
}

// Create implements Store. The unique (plugin_name, store_key) index makes it atomic.
func (s *PluginStore) Create(ctx context.Context, uid string, userID uint64) error {
	if uid == "" {
		return ErrUIDEmpty
	}

	value, err := encode(userID)
	if err != nil {
		return err
	}

	_, err = pluginstore.Create(s.db.WithContext(ctx), Namespace, Key(uid), value)
	if errors.Is(err, pluginstore.ErrRowAlreadyExists) {
		return ErrLinkExists
	}

	return err
}

// List returns every stored link.
func (s *PluginStore) List(ctx context.Context) ([]Link, error) {
	rows, err := pluginstore.List(s.db.WithContext(ctx), Namespace)
	if err != nil {
		return nil, err
	}

	links := make([]Link, 0, len(rows))

	for _, row := range rows {
		uid, ok := strings.CutPrefix(row.Key, keyPrefix)
		if !ok || uid == "" {
			continue
		}

		link, err := decode(uid, row.Value)
		if err != nil {
			return nil, err
		}

		links = append(links, *link)
	}

	return links, nil
}

// Delete removes the link for uid. Deleting a missing link is not an error.
func (s *PluginStore) Delete(ctx context.Context, uid string) error {
	if uid == "" {
		return ErrUIDEmpty
	}

	err := pluginstore.Delete(s.db.WithContext(ctx), Namespace, Key(uid))
	if errors.Is(err, pluginstore.ErrRowNotFound) {
		return nil
	}

	return err
}
