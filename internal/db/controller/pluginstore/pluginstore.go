// Package pluginstore provides namespaced key/value persistence on top of gorm.
// Each identity provider writes below its own plugin name so keys never collide.
package pluginstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/crowdlink/crowdlink/internal/db/models"
)

const (
	pluginKeyQueryPattern = "plugin_name = ? AND store_key = ?"
)

var (
	// ErrRowNotFound is returned when no row exists for the plugin name and key.
	ErrRowNotFound = errors.New("plugin store row not found")
	// ErrPluginNameEmpty is returned when the namespace is empty.
	ErrPluginNameEmpty = errors.New("plugin name cannot be empty")
	// ErrKeyEmpty is returned when the key is empty.
	ErrKeyEmpty = errors.New("plugin store key cannot be empty")
	// ErrRowAlreadyExists is returned by Create when the key is already taken.
	ErrRowAlreadyExists = errors.New("plugin store row already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func check(db *gorm.DB, pluginName, key string) error {
	switch {
	case db == nil:
		return ErrDBNil
	case pluginName == "":
		return ErrPluginNameEmpty
	case key == "":
		return ErrKeyEmpty
	}

	return nil
}

// Get retrieves the row stored under pluginName and key.
func Get(db *gorm.DB, pluginName, key string) (*models.PluginStoreRow, error) {
	if err := check(db, pluginName, key); err != nil {
		return nil, err
	}

	var row models.PluginStoreRow
	result := db.Where(pluginKeyQueryPattern, pluginName, key).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRowNotFound
		}
		return nil, result.Error
	}

	return &row, nil
}

// List returns every row of one plugin ordered by key.
func List(db *gorm.DB, pluginName string) ([]models.PluginStoreRow, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if pluginName == "" {
		return nil, ErrPluginNameEmpty
	}

	var rows []models.PluginStoreRow
	result := db.Where("plugin_name = ?", pluginName).Order("store_key").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// Create inserts a new row and fails with ErrRowAlreadyExists if the key is taken.
func Create(db *gorm.DB, pluginName, key string, value []byte) (*models.PluginStoreRow, error) {
	if err := check(db, pluginName, key); err != nil {
		return nil, err
	}

	var existing models.PluginStoreRow
	result := db.Where(pluginKeyQueryPattern, pluginName, key).First(&existing)
	if result.Error == nil {
		return nil, ErrRowAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	row := &models.PluginStoreRow{
		PluginName: pluginName,
		Key:        key,
		Value:      value,
	}

	// the unique index catches a concurrent insert between the lookup and here
	result = db.Create(row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrRowAlreadyExists
		}
		return nil, result.Error
	}

	return row, nil
}

// Set creates or overwrites the row (last write wins).
func Set(db *gorm.DB, pluginName, key string, value []byte) (*models.PluginStoreRow, error) {
	if err := check(db, pluginName, key); err != nil {
		return nil, err
	}

	var row models.PluginStoreRow
	result := db.Where(pluginKeyQueryPattern, pluginName, key).First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return Create(db, pluginName, key, value)
	}
	if result.Error != nil {
		return nil, result.Error
	}

	row.Value = value
	result = db.Save(&row)
	if result.Error != nil {
		return nil, result.Error
	}

	return &row, nil
}

// Delete removes the row stored under pluginName and key.
func Delete(db *gorm.DB, pluginName, key string) error {
	if err := check(db, pluginName, key); err != nil {
		return err
	}

	result := db.Where(pluginKeyQueryPattern, pluginName, key).Delete(&models.PluginStoreRow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRowNotFound
	}

	return nil
}
