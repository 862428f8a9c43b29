// Package models contains database model definitions.
package models

// PluginStoreRow is a namespaced key/value row.
// PluginName keeps keys of different identity providers apart in one table.
type PluginStoreRow struct {
	ID         uint64 `gorm:"primaryKey"`
	PluginName string `gorm:"size:100;not null;uniqueIndex:idx_plugin_key"`
	Key        string `gorm:"column:store_key;size:255;not null;uniqueIndex:idx_plugin_key"`
	Value      []byte
}

// TableName specifies the database table name for the PluginStoreRow model.
func (PluginStoreRow) TableName() string {
	return "plugin_store_rows"
}
