package linkstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/crowdlink/crowdlink/internal/db/models"
)

// memoryKV mimics a gofiber storage driver: Get returns nil, nil for missing keys.
type memoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string][]byte{}}
}

func (m *memoryKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	return m.data[key], nil
}

func (m *memoryKV) Set(key string, val []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.data[key] = val

	return nil
}

func (m *memoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.PluginStoreRow{}))

	return db
}

func backends(t *testing.T) map[string]Store {
	t.Helper()

	return map[string]Store{
		"plugin store": NewPluginStore(setupTestDB(t)),
		"kv":           NewKV(newMemoryKV()),
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "crowd_user_jdoe", Key("jdoe"))
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			link, err := store.Get(ctx, "jdoe")
			require.NoError(t, err)
			assert.Nil(t, link)

			require.NoError(t, store.Set(ctx, "jdoe", 7))

			link, err = store.Get(ctx, "jdoe")
			require.NoError(t, err)
			require.NotNil(t, link)
			assert.Equal(t, Link{UID: "jdoe", UserID: 7}, *link)

			// last write wins
			require.NoError(t, store.Set(ctx, "jdoe", 8))
			link, err = store.Get(ctx, "jdoe")
			require.NoError(t, err)
			assert.Equal(t, uint64(8), link.UserID)

			require.ErrorIs(t, store.Create(ctx, "jdoe", 9), ErrLinkExists)
			link, err = store.Get(ctx, "jdoe")
			require.NoError(t, err)
			assert.Equal(t, uint64(8), link.UserID)

			require.NoError(t, store.Create(ctx, "asmith", 10))
			link, err = store.Get(ctx, "asmith")
			require.NoError(t, err)
			assert.Equal(t, uint64(10), link.UserID)

			_, err = store.Get(ctx, "")
			require.ErrorIs(t, err, ErrUIDEmpty)
			require.ErrorIs(t, store.Set(ctx, "", 1), ErrUIDEmpty)
		})
	}
}

func TestPluginStoreRecordFormat(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewPluginStore(db)

	require.NoError(t, store.Set(ctx, "jdoe", 42))

	var row models.PluginStoreRow
	require.NoError(t, db.Where("plugin_name = ?", Namespace).First(&row).Error)
	assert.Equal(t, "crowd_user_jdoe", row.Key)
	assert.JSONEq(t, `{"user_id":42}`, string(row.Value))
}

func TestPluginStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewPluginStore(db)

	require.NoError(t, store.Set(ctx, "jdoe", 1))
	require.NoError(t, store.Set(ctx, "asmith", 2))
	require.NoError(t, db.Create(&models.PluginStoreRow{PluginName: Namespace, Key: "unrelated", Value: []byte("x")}).Error)

	links, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Link{{UID: "asmith", UserID: 2}, {UID: "jdoe", UserID: 1}}, links)

	require.NoError(t, store.Delete(ctx, "jdoe"))
	require.NoError(t, store.Delete(ctx, "jdoe"))

	link, err := store.Get(ctx, "jdoe")
	require.NoError(t, err)
	assert.Nil(t, link)
}

func TestMalformedRecord(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	kv.data["crowd:crowd_user_jdoe"] = []byte("not json")

	_, err := NewKV(kv).Get(ctx, "jdoe")
	require.ErrorIs(t, err, ErrMalformedRecord)
}

func TestKVErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	errDown := errors.New("storage down")
	kv := newMemoryKV()
	kv.err = errDown
	store := NewKV(kv)

	_, err := store.Get(ctx, "jdoe")
	require.ErrorIs(t, err, errDown)
	require.ErrorIs(t, store.Set(ctx, "jdoe", 1), errDown)
	require.ErrorIs(t, store.Create(ctx, "jdoe", 1), errDown)
}

func TestKVKeysArePrefixed(t *testing.T) {
	kv := newMemoryKV()
	require.NoError(t, NewKV(kv).Set(context.Background(), "jdoe", 3))

	_, ok := kv.data["crowd:crowd_user_jdoe"]
	assert.True(t, ok)
}
